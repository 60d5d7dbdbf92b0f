package config

import "github.com/Abraxas-365/sparkx/pkg/logx"

// LogConfig selects the logger level and format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal off TRACE DEBUG INFO WARN WARNING ERROR FATAL OFF"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "console"),
	}
}

// Logger builds a logger from the LOG_* environment with this section on top.
func (c LogConfig) Logger() *logx.Logger {
	lc := logx.LoadFromEnv()
	if c.Level != "" {
		lc.Level = logx.ParseLevel(c.Level)
	}
	if c.Format == "json" {
		lc.Format = logx.FormatJSON
	}
	return logx.NewLogger(lc)
}
