package cli

import (
	"context"
	"strconv"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newSubaccountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subaccounts",
		Aliases: []string{"subaccount", "sub"},
		Short:   "Manage subaccounts",
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a subaccount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := subaccountID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.Subaccount], error) {
				return c.Subaccounts.Find(ctx, id)
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create -f subaccount.yaml",
		Short: "Create a subaccount and its API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sub sparkx.SubaccountCreate
			if err := readBody(createFile, &sub); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.SubaccountCreateResult], error) {
				return c.Subaccounts.Create(ctx, sub)
			})
		},
	}
	bodyFlag(create, &createFile)

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id> -f subaccount.yaml",
		Short: "Change a subaccount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := subaccountID(args[0])
			if err != nil {
				return err
			}
			var u sparkx.SubaccountUpdate
			if err := readBody(updateFile, &u); err != nil {
				return err
			}
			u.ID = id
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.MessageResult], error) {
				return c.Subaccounts.Update(ctx, u)
			})
		},
	}
	bodyFlag(update, &updateFile)

	cmd.AddCommand(
		listCmd("List subaccounts", a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.Subaccount], error) {
			return c.Subaccounts.All(ctx)
		}),
		get,
		create,
		update,
	)
	return cmd
}

func subaccountID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, cliErrors.NewWithMessage(ErrBadArg, "subaccount id must be a positive integer").WithDetail("id", arg)
	}
	return id, nil
}
