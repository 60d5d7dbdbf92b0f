package cli

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template", "tpl"},
		Short:   "Manage stored templates",
	}

	var draft bool
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.Template], error) {
				return c.Templates.Find(ctx, args[0], draft)
			})
		},
	}
	get.Flags().BoolVar(&draft, "draft", false, "Show the draft version")

	var createFile string
	create := &cobra.Command{
		Use:   "create -f template.yaml",
		Short: "Create a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var t sparkx.Template
			if err := readBody(createFile, &t); err != nil {
				return err
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.IDResult], error) {
				return c.Templates.Create(ctx, t)
			})
		},
	}
	bodyFlag(create, &createFile)

	var (
		updateFile      string
		publish         bool
		updatePublished bool
	)
	update := &cobra.Command{
		Use:   "update <id> [-f patch.yaml] [--publish]",
		Short: "Change a template or publish its draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := sparkx.TemplateUpdate{ID: args[0], UpdatePublished: updatePublished, Publish: publish}
			if updateFile != "" {
				var patch sparkx.TemplatePatch
				if err := readBody(updateFile, &patch); err != nil {
					return err
				}
				u.Patch = &patch
			}
			if u.Patch == nil && !u.Publish {
				return cliErrors.NewWithMessage(ErrBadArg, "update needs -f or --publish")
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.IDResult], error) {
				return c.Templates.Update(ctx, u)
			})
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "YAML or JSON patch")
	update.Flags().BoolVar(&publish, "publish", false, "Publish the draft")
	update.Flags().BoolVar(&updatePublished, "update-published", false, "Change the published version directly")

	var (
		previewDraft bool
		dataFile     string
	)
	preview := &cobra.Command{
		Use:   "preview <id> [-d data.yaml]",
		Short: "Render a template with substitution data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := map[string]any{}
			if dataFile != "" {
				if err := readBody(dataFile, &data); err != nil {
					return err
				}
			}
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.TemplatePreview], error) {
				return c.Templates.Preview(ctx, args[0], previewDraft, data)
			})
		},
	}
	preview.Flags().BoolVar(&previewDraft, "draft", false, "Render the draft version")
	preview.Flags().StringVarP(&dataFile, "data", "d", "", "Substitution data file")

	cmd.AddCommand(
		listCmd("List templates", a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[[]sparkx.Template], error) {
			return c.Templates.All(ctx)
		}),
		get,
		create,
		update,
		preview,
		deleteCmd("Delete a template", a, func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.Empty], error) {
			return c.Templates.Delete(ctx, id)
		}),
	)
	return cmd
}

// bodyFlag adds the required -f flag.
func bodyFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "file", "f", "", "YAML or JSON request body")
	_ = cmd.MarkFlagRequired("file")
}

func listCmd[T any](short string, a *app, fn func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[T], error)) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, fn)
		},
	}
}

func deleteCmd(short string, a *app, fn func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[sparkx.Empty], error)) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[sparkx.Empty], error) {
				return fn(ctx, c, args[0])
			})
		},
	}
}

func getCmd[T any](short string, a *app, fn func(ctx context.Context, c *sparkx.Client, id string) (*sparkx.Response[T], error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, a, func(ctx context.Context, c *sparkx.Client) (*sparkx.Response[T], error) {
				return fn(ctx, c, args[0])
			})
		},
	}
}
