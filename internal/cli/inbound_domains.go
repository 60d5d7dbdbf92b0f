package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newInboundDomainsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inbound-domains",
		Aliases: []string{"inbound-domain", "id"},
		Short:   "Manage inbound domains",
	}

	create := &cobra.Command{
		Use:   "create <domain>",
		Short: "Register an inbound domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.Empty], error) {
				return c.InboundDomains.Create(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(
		listCmd("List inbound domains", a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.InboundDomain], error) {
			return c.InboundDomains.All(ctx)
		}),
		getCmd("Show an inbound domain", a, func(ctx context.Context, c *sparkx.Client, domain string) (*sparkx.Response[sparkx.InboundDomain], error) {
			return c.InboundDomains.Find(ctx, domain)
		}),
		create,
		deleteCmd("Delete an inbound domain", a, func(ctx context.Context, c *sparkx.Client, domain string) (*sparkx.Response[sparkx.Empty], error) {
			return c.InboundDomains.Delete(ctx, domain)
		}),
	)
	return cmd
}
