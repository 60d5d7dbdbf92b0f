package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newRelayWebhooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relay-webhooks",
		Aliases: []string{"relay-webhook", "rw"},
		Short:   "Manage inbound relay webhooks",
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create -f relay.yaml",
		Short: "Create a relay webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w sparkx.RelayWebhook
			if err := readBody(createFile, &w); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.IDResult], error) {
				return c.RelayWebhooks.Create(ctx, w)
			})
		},
	}
	bodyFlag(create, &createFile)

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id> -f relay.yaml",
		Short: "Change a relay webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w sparkx.RelayWebhook
			if err := readBody(updateFile, &w); err != nil {
				return err
			}
			w.ID = args[0]
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.IDResult], error) {
				return c.RelayWebhooks.Update(ctx, w)
			})
		},
	}
	bodyFlag(update, &updateFile)

	cmd.AddCommand(
		listCmd("List relay webhooks", a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.RelayWebhook], error) {
			return c.RelayWebhooks.All(ctx)
		}),
		getCmd("Show a relay webhook", a, func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.RelayWebhook], error) {
			return c.RelayWebhooks.Find(ctx, id)
		}),
		create,
		update,
		deleteCmd("Delete a relay webhook", a, func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.Empty], error) {
			return c.RelayWebhooks.Delete(ctx, id)
		}),
	)
	return cmd
}
