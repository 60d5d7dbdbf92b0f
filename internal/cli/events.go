package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Search message events",
	}

	var s sparkx.MessageEventsSearch
	search := &cobra.Command{
		Use:   "search",
		Short: "Search message events, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.MessageEvent], error) {
				return c.MessageEvents.Search(ctx, s)
			})
		},
	}
	f := search.Flags()
	f.IntSliceVar(&s.BounceClasses, "bounce-classes", nil, "Bounce classification codes")
	f.StringSliceVar(&s.CampaignIDs, "campaign-ids", nil, "Campaign ids")
	f.StringSliceVar(&s.Events, "events", nil, "Event types, e.g. delivery,bounce")
	f.StringSliceVar(&s.FriendlyFroms, "friendly-froms", nil, "Friendly from addresses")
	f.StringVar(&s.From, "from", "", "Start of the window, YYYY-MM-DDTHH:MM")
	f.StringVar(&s.To, "to", "", "End of the window, YYYY-MM-DDTHH:MM")
	f.StringSliceVar(&s.MessageIDs, "message-ids", nil, "Message ids")
	f.IntVar(&s.Page, "page", 0, "Page number")
	f.IntVar(&s.PerPage, "per-page", 0, "Events per page")
	f.StringVar(&s.Reason, "reason", "", "Bounce or failure reason substring")
	f.StringSliceVar(&s.Recipients, "recipients", nil, "Recipient addresses")
	f.StringSliceVar(&s.TemplateIDs, "template-ids", nil, "Template ids")
	f.StringVar(&s.Timezone, "timezone", "", "Timezone of --from and --to")
	f.StringSliceVar(&s.TransmissionIDs, "transmission-ids", nil, "Transmission ids")

	cmd.AddCommand(search)
	return cmd
}
