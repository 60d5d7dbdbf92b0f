package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newWebhooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "wh"},
		Short:   "Manage event webhooks",
	}

	var timezone string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List webhooks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.Webhook], error) {
				return c.Webhooks.All(ctx, timezone)
			})
		},
	}
	list.Flags().StringVar(&timezone, "timezone", "", "Timezone for timestamps")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Describe a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.Webhook], error) {
				return c.Webhooks.Describe(ctx, args[0], timezone)
			})
		},
	}
	get.Flags().StringVar(&timezone, "timezone", "", "Timezone for timestamps")

	var createFile string
	create := &cobra.Command{
		Use:   "create -f webhook.yaml",
		Short: "Create a webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w sparkx.Webhook
			if err := readBody(createFile, &w); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.WebhookResult], error) {
				return c.Webhooks.Create(ctx, w)
			})
		},
	}
	bodyFlag(create, &createFile)

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id> -f webhook.yaml",
		Short: "Change a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w sparkx.Webhook
			if err := readBody(updateFile, &w); err != nil {
				return err
			}
			w.ID = args[0]
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.WebhookResult], error) {
				return c.Webhooks.Update(ctx, w)
			})
		},
	}
	bodyFlag(update, &updateFile)

	var messageFile string
	validate := &cobra.Command{
		Use:   "validate <id> [-f message.json]",
		Short: "Send a test message to the webhook target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message any = map[string]any{"msys": map[string]any{}}
			if messageFile != "" {
				if err := readBody(messageFile, &message); err != nil {
					return err
				}
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.WebhookValidateResult], error) {
				return c.Webhooks.Validate(ctx, args[0], message)
			})
		},
	}
	validate.Flags().StringVarP(&messageFile, "file", "f", "", "Message to send")

	var limit int
	batches := &cobra.Command{
		Use:   "batch-status <id>",
		Short: "Show recent batch deliveries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.BatchStatus], error) {
				return c.Webhooks.GetBatchStatus(ctx, args[0], limit)
			})
		},
	}
	batches.Flags().IntVar(&limit, "limit", 0, "Maximum batches")

	docs := &cobra.Command{
		Use:   "docs",
		Short: "Describe every event type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.WebhookDocumentation], error) {
				return c.Webhooks.GetDocumentation(ctx)
			})
		},
	}

	var events []string
	samples := &cobra.Command{
		Use:   "samples",
		Short: "Show sample event batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.WebhookPayload], error) {
				return c.Webhooks.GetSamples(ctx, events...)
			})
		},
	}
	samples.Flags().StringSliceVar(&events, "events", nil, "Event types to sample")

	cmd.AddCommand(
		list, get, create, update, validate, batches, docs, samples,
		deleteCmd("Delete a webhook", a, func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.Empty], error) {
			return c.Webhooks.Delete(ctx, id)
		}),
	)
	return cmd
}
