package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newRecipientListsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipient-lists",
		Aliases: []string{"recipient-list", "rl"},
		Short:   "Manage stored recipient lists",
	}

	var showRecipients bool
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a recipient list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.RecipientList], error) {
				return c.RecipientLists.Find(ctx, args[0], showRecipients)
			})
		},
	}
	get.Flags().BoolVar(&showRecipients, "show-recipients", false, "Include the recipients")

	var (
		createFile string
		createErrs int
	)
	create := &cobra.Command{
		Use:   "create -f list.yaml",
		Short: "Create a recipient list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list sparkx.RecipientList
			if err := readBody(createFile, &list); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.RecipientListResult], error) {
				return c.RecipientLists.Create(ctx, list, createErrs)
			})
		},
	}
	bodyFlag(create, &createFile)
	create.Flags().IntVar(&createErrs, "num-rcpt-errors", 0, "Maximum recipient errors to report")

	var (
		updateFile string
		updateErrs int
	)
	update := &cobra.Command{
		Use:   "update <id> -f list.yaml",
		Short: "Replace a recipient list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list sparkx.RecipientList
			if err := readBody(updateFile, &list); err != nil {
				return err
			}
			list.ID = args[0]
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.RecipientListResult], error) {
				return c.RecipientLists.Update(ctx, list, updateErrs)
			})
		},
	}
	bodyFlag(update, &updateFile)
	update.Flags().IntVar(&updateErrs, "num-rcpt-errors", 0, "Maximum recipient errors to report")

	cmd.AddCommand(
		listCmd("List recipient lists", a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.RecipientList], error) {
			return c.RecipientLists.All(ctx)
		}),
		get,
		create,
		update,
		deleteCmd("Delete a recipient list", a, func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.Empty], error) {
			return c.RecipientLists.Delete(ctx, id)
		}),
	)
	return cmd
}
