// Package cli implements the sparkctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/config"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// app carries the state shared by every command.
type app struct {
	out io.Writer
	err io.Writer

	configFile string
	envFiles   []string
	apiKey     string
	origin     string
	retries    int
	retryDelay time.Duration
	verbose    bool

	cfg    *config.Config
	logger *logx.Logger
	client *sparkx.Client
}

// NewRootCmd builds the sparkctl command tree writing to stdout.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{out: os.Stdout, err: os.Stderr})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sparkctl",
		Short: "SparkPost API from the command line",
		Long: `sparkctl drives the SparkPost REST API.

Results are printed as JSON. Commands that take a request body read it
from a YAML or JSON file given with -f.

Get started:
  sparkctl templates list
  sparkctl transmissions send -f message.yaml
  sparkctl events search --recipients user@example.com
  sparkctl mail send --to user@example.com --subject Hi --text "Hello"`,
		Version:           fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(a.out)
	root.SetErr(a.err)

	f := root.PersistentFlags()
	f.StringVarP(&a.configFile, "config", "c", os.Getenv("CONFIG_FILE"), "YAML config file")
	f.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, ".env files to load")
	f.StringVar(&a.apiKey, "api-key", "", "API key (overrides SPARKX_API_KEY)")
	f.StringVar(&a.origin, "origin", "", "API origin, e.g. https://api.eu.sparkpost.com:443")
	f.IntVar(&a.retries, "retries", 0, "Retry retryable failures this many times")
	f.DurationVar(&a.retryDelay, "retry-delay", time.Second, "Delay before the first retry, doubled after each")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "Log every HTTP request")

	root.AddCommand(
		newTemplatesCmd(a),
		newTransmissionsCmd(a),
		newRecipientListsCmd(a),
		newSendingDomainsCmd(a),
		newSuppressionCmd(a),
		newWebhooksCmd(a),
		newRelayWebhooksCmd(a),
		newInboundDomainsCmd(a),
		newSubaccountsCmd(a),
		newEventsCmd(a),
		newMailCmd(a),
	)
	return root
}

// Execute runs sparkctl and returns the process exit code.
func Execute(ctx context.Context) int {
	a := &app{out: os.Stdout, err: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

// SetVersion sets the version info
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

func (a *app) setup() error {
	if a.cfg != nil {
		return nil
	}

	opts := []config.LoadOption{config.WithEnvFiles(a.envFiles...)}
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if a.apiKey != "" {
		cfg.SparkPost.APIKey = a.apiKey
	}
	if a.origin != "" {
		cfg.SparkPost.Origin = a.origin
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	a.logger = cfg.Log.Logger()
	a.logger.SetOutput(a.err)
	logx.SetDefaultLogger(a.logger)
	return nil
}

// sparkx returns the API client, building it on first use.
func (a *app) sparkx() (*sparkx.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := a.cfg.SparkPost.NewClient(a.logger)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}
