package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

// sendingDomainBody is the file form of sparkx.SendingDomainParams.
type sendingDomainBody struct {
	Domain         string       `json:"domain"`
	TrackingDomain string       `json:"tracking_domain"`
	DKIM           *sparkx.DKIM `json:"dkim"`
	GenerateDKIM   *bool        `json:"generate_dkim"`
	DKIMKeyLength  int          `json:"dkim_key_length"`
}

func (b sendingDomainBody) params() sparkx.SendingDomainParams {
	return sparkx.SendingDomainParams{
		Domain:         b.Domain,
		TrackingDomain: b.TrackingDomain,
		DKIM:           b.DKIM,
		GenerateDKIM:   b.GenerateDKIM,
		DKIMKeyLength:  b.DKIMKeyLength,
	}
}

func newSendingDomainsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sending-domains",
		Aliases: []string{"sending-domain", "sd"},
		Short:   "Manage and verify sending domains",
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create -f domain.yaml",
		Short: "Register a sending domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body sendingDomainBody
			if err := readBody(createFile, &body); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.SendingDomainResult], error) {
				return c.SendingDomains.Create(ctx, body.params())
			})
		},
	}
	bodyFlag(create, &createFile)

	var updateFile string
	update := &cobra.Command{
		Use:   "update <domain> -f domain.yaml",
		Short: "Change a sending domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body sendingDomainBody
			if err := readBody(updateFile, &body); err != nil {
				return err
			}
			body.Domain = args[0]
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.SendingDomainResult], error) {
				return c.SendingDomains.Update(ctx, body.params())
			})
		},
	}
	bodyFlag(update, &updateFile)

	var vp sparkx.VerifyParams
	verify := &cobra.Command{
		Use:   "verify <domain>",
		Short: "Run DNS or mailbox verification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vp.Domain = args[0]
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.SendingDomainStatus], error) {
				return c.SendingDomains.Verify(ctx, vp)
			})
		},
	}
	vf := verify.Flags()
	vf.BoolVar(&vp.DKIMVerify, "dkim", false, "Check the DKIM record")
	vf.BoolVar(&vp.SPFVerify, "spf", false, "Check the SPF record")
	vf.BoolVar(&vp.CNAMEVerify, "cname", false, "Check the CNAME record")
	vf.BoolVar(&vp.PostmasterAtVerify, "postmaster-at", false, "Send a verification mail to postmaster@")
	vf.BoolVar(&vp.AbuseAtVerify, "abuse-at", false, "Send a verification mail to abuse@")
	vf.StringVar(&vp.PostmasterAtToken, "postmaster-at-token", "", "Token received at postmaster@")
	vf.StringVar(&vp.AbuseAtToken, "abuse-at-token", "", "Token received at abuse@")

	cmd.AddCommand(
		listCmd("List sending domains", a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.SendingDomain], error) {
			return c.SendingDomains.All(ctx)
		}),
		getCmd("Show a sending domain", a, func(ctx context.Context, c *sparkx.Client, domain string) (*sparkx.Response[sparkx.SendingDomain], error) {
			return c.SendingDomains.Find(ctx, domain)
		}),
		create,
		update,
		verify,
		deleteCmd("Delete a sending domain", a, func(ctx context.Context, c *sparkx.Client, domain string) (*sparkx.Response[sparkx.Empty], error) {
			return c.SendingDomains.Delete(ctx, domain)
		}),
	)
	return cmd
}
