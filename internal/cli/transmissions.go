package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newTransmissionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transmissions",
		Aliases: []string{"transmission", "tx"},
		Short:   "Send and inspect transmissions",
	}

	var (
		sendFile      string
		numRcptErrors int
	)
	send := &cobra.Command{
		Use:   "send -f transmission.yaml",
		Short: "Send a transmission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tx sparkx.Transmission
			if err := readBody(sendFile, &tx); err != nil {
				return err
			}
			var opts []sparkx.SendOption
			if numRcptErrors > 0 {
				opts = append(opts, sparkx.WithNumRcptErrors(numRcptErrors))
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.SendResult], error) {
				return c.Transmissions.Send(ctx, tx, opts...)
			})
		},
	}
	bodyFlag(send, &sendFile)
	send.Flags().IntVar(&numRcptErrors, "num-rcpt-errors", 0, "Maximum recipient errors to report")

	var filter sparkx.TransmissionFilter
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List scheduled transmissions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.Transmission], error) {
				return c.Transmissions.All(ctx, filter)
			})
		},
	}
	list.Flags().StringVar(&filter.CampaignID, "campaign", "", "Only this campaign")
	list.Flags().StringVar(&filter.TemplateID, "template", "", "Only this template")

	cmd.AddCommand(
		send,
		list,
		getCmd("Show a transmission", a, func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.Transmission], error) {
			return c.Transmissions.Find(ctx, id)
		}),
	)
	return cmd
}
