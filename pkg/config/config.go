// Package config loads process configuration from the environment, an
// optional .env file and an optional YAML overlay.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var configErrors = errx.NewRegistry("CONFIG")

var (
	ErrEnvFile  = configErrors.Register("ENV_FILE", errx.TypeInternal, 500, "Failed to load .env file")
	ErrReadFile = configErrors.Register("READ_FILE", errx.TypeInternal, 500, "Failed to read config file")
	ErrDecode   = configErrors.Register("DECODE", errx.TypeValidation, 400, "Invalid config file")
	ErrInvalid  = configErrors.Register("INVALID", errx.TypeValidation, 400, "Invalid configuration")
)

// Config is the full process configuration. Each binary reads the sections it needs.
type Config struct {
	SparkPost SparkPostConfig `yaml:"sparkpost"`
	Log       LogConfig       `yaml:"log"`
	Hook      HookConfig      `yaml:"hook"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Jobx      JobxConfig      `yaml:"jobx"`
	Notifx    NotifxConfig    `yaml:"notifx"`
	Storage   StorageConfig   `yaml:"storage"`
}

type loadOptions struct {
	envFiles []string
	file     string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithEnvFiles loads the given .env files before reading the environment.
// Missing files are skipped.
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) { o.envFiles = files }
}

// WithFile overlays a YAML file on the environment defaults. ${VAR}
// references in the file are expanded and unknown keys are rejected.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) { o.file = path }
}

// Load builds the configuration. CONFIG_FILE names a YAML overlay when
// WithFile is not given.
func Load(opts ...LoadOption) (*Config, error) {
	o := loadOptions{
		envFiles: []string{".env"},
		file:     os.Getenv("CONFIG_FILE"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	for _, f := range o.envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, configErrors.NewWithCause(ErrEnvFile, err).WithDetail("file", f)
		}
	}

	cfg := &Config{
		SparkPost: loadSparkPostConfig(),
		Log:       loadLogConfig(),
		Hook:      loadHookConfig(),
		Postgres:  loadPostgresConfig(),
		Redis:     loadRedisConfig(),
		Jobx:      loadJobxConfig(),
		Notifx:    loadNotifxConfig(),
		Storage:   loadStorageConfig(),
	}

	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return nil, configErrors.NewWithCause(ErrReadFile, err).WithDetail("file", o.file)
		}
		if err := cfg.overlay(data); err != nil {
			return nil, configErrors.NewWithCause(ErrDecode, err).WithDetail("file", o.file)
		}
	}

	// A YAML file may leave the key empty; the conventional variable still applies.
	if cfg.SparkPost.APIKey == "" {
		cfg.SparkPost.APIKey = os.Getenv("SPARKPOST_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) overlay(data []byte) error {
	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violating field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	e := configErrors.NewWithCause(ErrInvalid, err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Namespace()] = fe.Tag()
		}
		e.WithDetail("fields", fields)
	}
	return e
}
