package config

import "time"

// HookConfig configures the webhook intake server.
type HookConfig struct {
	Addr string `yaml:"addr" validate:"required"`
	Path string `yaml:"path" validate:"required,startswith=/"`

	// Username and PasswordHash (bcrypt) enable basic auth. Token enables the
	// X-MessageSystems-Webhook-Token header. Either may be used.
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash" validate:"required_with=Username"`
	Token        string `yaml:"token"`

	Queue        string        `yaml:"queue"`
	BodyLimit    int           `yaml:"body_limit" validate:"gte=0"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func loadHookConfig() HookConfig {
	return HookConfig{
		Addr:         getEnv("HOOK_ADDR", ":8080"),
		Path:         getEnv("HOOK_PATH", "/webhooks/sparkpost"),
		Username:     getEnv("HOOK_USERNAME", ""),
		PasswordHash: getEnv("HOOK_PASSWORD_HASH", ""),
		Token:        getEnv("HOOK_TOKEN", ""),
		Queue:        getEnv("HOOK_QUEUE", "sparkpost"),
		BodyLimit:    getEnvInt("HOOK_BODY_LIMIT", 10*1024*1024),
		ReadTimeout:  getEnvDuration("HOOK_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("HOOK_WRITE_TIMEOUT", 10*time.Second),
	}
}
