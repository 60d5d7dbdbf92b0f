// Package notifxprovider selects a notifx provider from configuration.
package notifxprovider

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/config"
	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/notifx"
	"github.com/Abraxas-365/sparkx/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/sparkx/pkg/notifx/notifxresend"
	"github.com/Abraxas-365/sparkx/pkg/notifx/notifxses"
	"github.com/Abraxas-365/sparkx/pkg/notifx/notifxsparkpost"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
)

var providerErrors = errx.NewRegistry("NOTIFX_PROVIDER")

var (
	ErrUnknownProvider = providerErrors.Register("UNKNOWN", errx.TypeValidation, 400, "Unknown notification provider")
	ErrProviderSetup   = providerErrors.Register("SETUP", errx.TypeInternal, 500, "Failed to set up notification provider")
)

// New builds the provider named by cfg.Provider. spark is required for the
// sparkpost provider only.
func New(ctx context.Context, cfg config.NotifxConfig, spark *sparkx.Client) (notifx.EmailSender, error) {
	switch cfg.Provider {
	case notifxsparkpost.ProviderName:
		if spark == nil {
			return nil, providerErrors.New(ErrProviderSetup).WithDetail("provider", cfg.Provider).WithDetail("reason", "no SparkPost client")
		}
		return notifxsparkpost.NewSparkPostProvider(spark.Transmissions, cfg.FromAddress, cfg.FromName), nil
	case notifxses.ProviderName:
		p, err := notifxses.NewFromRegion(ctx, cfg.AWSRegion, cfg.FromAddress)
		if err != nil {
			return nil, providerErrors.NewWithCause(ErrProviderSetup, err).WithDetail("provider", cfg.Provider)
		}
		return p, nil
	case notifxresend.ProviderName:
		if cfg.ResendKey == "" {
			return nil, providerErrors.New(ErrProviderSetup).WithDetail("provider", cfg.Provider).WithDetail("reason", "no API key")
		}
		return notifxresend.NewResendProvider(cfg.ResendKey, cfg.FromAddress), nil
	case notifxconsole.ProviderName, "":
		return notifxconsole.NewConsoleProvider(logx.GetDefaultLogger()), nil
	default:
		return nil, providerErrors.New(ErrUnknownProvider).WithDetail("provider", cfg.Provider)
	}
}

// NewClient builds a notifx.Client over the configured provider with the
// configured sender defaults.
func NewClient(ctx context.Context, cfg config.NotifxConfig, spark *sparkx.Client) (*notifx.Client, error) {
	provider, err := New(ctx, cfg, spark)
	if err != nil {
		return nil, err
	}
	return notifx.NewClient(provider,
		notifx.WithDefaultFrom(cfg.FromAddress, cfg.FromName),
		notifx.WithDefaultReplyTo(cfg.ReplyTo),
	), nil
}
