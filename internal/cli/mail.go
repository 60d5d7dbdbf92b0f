package cli

import (
	"os"

	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/Abraxas-365/sparkx/pkg/notifx/notifxprovider"
	"github.com/Abraxas-365/sparkx/pkg/notifx/notifxsparkpost"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newMailCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Send mail through the configured provider",
	}

	var (
		msg       notifx.EmailMessage
		htmlFile  string
		attach    []string
		campaign  string
		tags      []string
		sandbox   bool
		provider  string
		noTrack   bool
		configSet string
	)
	send := &cobra.Command{
		Use:   "send --to addr --subject text [--text body | --html-file page.html]",
		Short: "Send one email",
		Long: `Send one email through the provider named by NOTIFX_PROVIDER (sparkpost,
ses, resend or console). Attachments are local paths or s3://bucket/key URIs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if provider != "" {
				a.cfg.Notifx.Provider = provider
			}

			if htmlFile != "" {
				html, err := os.ReadFile(htmlFile)
				if err != nil {
					return cliErrors.NewWithCause(ErrReadBody, err).WithDetail("file", htmlFile)
				}
				msg.HTMLBody = string(html)
			}

			if len(attach) > 0 {
				files, err := a.cfg.Storage.Reader(ctx)
				if err != nil {
					return err
				}
				for _, uri := range attach {
					att, err := notifx.LoadAttachment(ctx, files, uri)
					if err != nil {
						return err
					}
					msg.Attachments = append(msg.Attachments, att)
				}
			}

			var spark *sparkx.Client
			if a.cfg.Notifx.Provider == notifxsparkpost.ProviderName {
				c, err := a.sparkx()
				if err != nil {
					return err
				}
				spark = c
			}
			client, err := notifxprovider.NewClient(ctx, a.cfg.Notifx, spark)
			if err != nil {
				return err
			}

			opts := []notifx.Option{notifx.WithTags(tags...)}
			if campaign == "" {
				campaign = a.cfg.Notifx.CampaignID
			}
			if campaign != "" {
				opts = append(opts, notifx.WithCampaign(campaign))
			}
			if sandbox {
				opts = append(opts, notifx.WithSandbox())
			}
			if noTrack {
				opts = append(opts, notifx.WithTracking(false, false))
			}
			if configSet != "" {
				opts = append(opts, notifx.WithConfigSet(configSet))
			}

			result, err := client.SendEmail(ctx, msg, opts...)
			if err != nil {
				return err
			}
			return a.print(result)
		},
	}
	f := send.Flags()
	f.StringSliceVar(&msg.To, "to", nil, "Recipient (repeatable)")
	f.StringSliceVar(&msg.CC, "cc", nil, "Carbon copy recipient")
	f.StringSliceVar(&msg.BCC, "bcc", nil, "Blind carbon copy recipient")
	f.StringVar(&msg.From, "from", "", "Sender address (default NOTIFX_FROM_ADDRESS)")
	f.StringVar(&msg.FromName, "from-name", "", "Sender display name")
	f.StringVar(&msg.ReplyTo, "reply-to", "", "Reply-To address")
	f.StringVarP(&msg.Subject, "subject", "s", "", "Subject line")
	f.StringVar(&msg.TextBody, "text", "", "Plain text body")
	f.StringVar(&htmlFile, "html-file", "", "File holding the HTML body")
	f.StringArrayVarP(&attach, "attach", "a", nil, "Attachment path or s3:// URI (repeatable)")
	f.StringVar(&campaign, "campaign", "", "Campaign id")
	f.StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	f.BoolVar(&sandbox, "sandbox", false, "Use the provider sandbox")
	f.BoolVar(&noTrack, "no-tracking", false, "Disable open and click tracking")
	f.StringVar(&configSet, "config-set", "", "SES configuration set")
	f.StringVar(&provider, "provider", "", "Override NOTIFX_PROVIDER")
	_ = send.MarkFlagRequired("to")
	_ = send.MarkFlagRequired("subject")

	cmd.AddCommand(send)
	return cmd
}
