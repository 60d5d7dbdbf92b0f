package notifx

import "github.com/Abraxas-365/sparkx/pkg/ptrx"

// SendOptions holds optional configuration for a send operation. Providers
// ignore what they cannot express.
type SendOptions struct {
	CampaignID    string
	Tags          []string
	Metadata      map[string]any
	ConfigSet     string
	Sandbox       bool
	OpenTracking  *bool
	ClickTracking *bool
}

// Option is a functional option for send operations.
type Option func(*SendOptions)

// WithCampaign groups the message under a campaign id.
func WithCampaign(id string) Option {
	return func(o *SendOptions) {
		o.CampaignID = id
	}
}

// WithTags labels the message.
func WithTags(tags ...string) Option {
	return func(o *SendOptions) {
		o.Tags = append(o.Tags, tags...)
	}
}

// WithMetadata attaches key/value metadata echoed back in events.
func WithMetadata(md map[string]any) Option {
	return func(o *SendOptions) {
		if o.Metadata == nil {
			o.Metadata = make(map[string]any, len(md))
		}
		for k, v := range md {
			o.Metadata[k] = v
		}
	}
}

// WithConfigSet sets a provider-specific configuration set identifier.
func WithConfigSet(name string) Option {
	return func(o *SendOptions) {
		o.ConfigSet = name
	}
}

// WithSandbox sends through the provider sandbox when it has one.
func WithSandbox() Option {
	return func(o *SendOptions) {
		o.Sandbox = true
	}
}

// WithTracking toggles open and click tracking.
func WithTracking(opens, clicks bool) Option {
	return func(o *SendOptions) {
		o.OpenTracking = ptrx.Bool(opens)
		o.ClickTracking = ptrx.Bool(clicks)
	}
}

// ApplyOptions folds opts into SendOptions. Providers call it.
func ApplyOptions(opts []Option) SendOptions {
	var so SendOptions
	for _, o := range opts {
		o(&so)
	}
	return so
}
