package config

import (
	"time"

	"github.com/Abraxas-365/sparkx/pkg/httpx"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
)

// SparkPostConfig configures the API client.
type SparkPostConfig struct {
	APIKey     string        `yaml:"api_key"`
	Origin     string        `yaml:"origin" validate:"omitempty,url"`
	Endpoint   string        `yaml:"endpoint" validate:"omitempty,startswith=/"`
	APIVersion string        `yaml:"api_version"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
	Gzip       bool          `yaml:"gzip"`

	// RateLimit caps outgoing requests per second; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" validate:"gte=0"`
}

func loadSparkPostConfig() SparkPostConfig {
	return SparkPostConfig{
		APIKey:     getEnv("SPARKX_API_KEY", ""),
		Origin:     getEnv("SPARKX_ORIGIN", sparkx.DefaultOrigin),
		Endpoint:   getEnv("SPARKX_ENDPOINT", sparkx.DefaultEndpoint),
		APIVersion: getEnv("SPARKX_API_VERSION", sparkx.DefaultAPIVersion),
		Timeout:    getEnvDuration("SPARKX_TIMEOUT", sparkx.DefaultTimeout),
		Gzip:       getEnvBool("SPARKX_GZIP", true),
		RateLimit:  getEnvFloat("SPARKX_RATE_LIMIT", 0),
		RateBurst:  getEnvInt("SPARKX_RATE_BURST", 1),
	}
}

// Options converts the section to client options. The HTTP client is left
// to the caller.
func (c SparkPostConfig) Options() []sparkx.Option {
	opts := []sparkx.Option{sparkx.WithGzip(c.Gzip)}
	if c.Origin != "" {
		opts = append(opts, sparkx.WithOrigin(c.Origin))
	}
	if c.Endpoint != "" {
		opts = append(opts, sparkx.WithEndpoint(c.Endpoint))
	}
	if c.APIVersion != "" {
		opts = append(opts, sparkx.WithAPIVersion(c.APIVersion))
	}
	return opts
}

// NewClient builds an API client whose transport tags requests with an id,
// logs them to logger and honours RateLimit. extra middlewares run
// innermost, closest to the network.
func (c SparkPostConfig) NewClient(logger *logx.Logger, extra ...httpx.Middleware) (*sparkx.Client, error) {
	mws := []httpx.Middleware{httpx.RequestID(httpx.RequestIDHeader)}
	if c.RateLimit > 0 {
		mws = append(mws, httpx.RateLimit(httpx.PerSecond(c.RateLimit, c.RateBurst)))
	}
	if logger != nil {
		mws = append(mws, httpx.Logging(logger))
	}
	mws = append(mws, extra...)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = sparkx.DefaultTimeout
	}
	opts := append(c.Options(), sparkx.WithHTTPClient(httpx.NewClient(timeout, mws...)))
	return sparkx.New(c.APIKey, opts...)
}
