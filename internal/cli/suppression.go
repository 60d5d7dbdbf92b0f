package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newSuppressionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppression",
		Aliases: []string{"suppression-list", "sup"},
		Short:   "Search and edit the suppression list",
	}

	var s sparkx.SuppressionSearch
	search := &cobra.Command{
		Use:   "search",
		Short: "Search suppressed recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.SuppressionEntry], error) {
				return c.SuppressionList.Search(ctx, s)
			})
		},
	}
	sf := search.Flags()
	sf.StringVar(&s.To, "to", "", "Added before, YYYY-MM-DDTHH:MM")
	sf.StringVar(&s.From, "from", "", "Added after, YYYY-MM-DDTHH:MM")
	sf.StringVar(&s.Domain, "domain", "", "Recipient domain")
	sf.StringVar(&s.Cursor, "cursor", "", "Paging cursor")
	sf.StringVar(&s.Description, "description", "", "Description substring")
	sf.StringSliceVar(&s.Types, "types", nil, "transactional, non_transactional")
	sf.StringSliceVar(&s.Sources, "sources", nil, "Suppression sources")
	sf.IntVar(&s.Limit, "limit", 0, "Maximum results")
	sf.IntVar(&s.PerPage, "per-page", 0, "Results per page")

	check := &cobra.Command{
		Use:   "check <email>",
		Short: "Show the suppression status of a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.SuppressionEntry], error) {
				return c.SuppressionList.CheckStatus(ctx, args[0])
			})
		},
	}

	remove := &cobra.Command{
		Use:     "remove <email>",
		Aliases: []string{"rm"},
		Short:   "Remove a recipient from the list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.Empty], error) {
				return c.SuppressionList.RemoveStatus(ctx, args[0])
			})
		},
	}

	var upsertFile string
	upsert := &cobra.Command{
		Use:   "upsert -f entries.yaml",
		Short: "Add or update suppression entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []sparkx.SuppressionEntry
			if err := readBody(upsertFile, &entries); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.MessageResult], error) {
				return c.SuppressionList.Upsert(ctx, entries...)
			})
		},
	}
	bodyFlag(upsert, &upsertFile)

	cmd.AddCommand(search, check, remove, upsert)
	return cmd
}
