package config

import "time"

// JobxConfig configures the background job queue.
type JobxConfig struct {
	Concurrency     int           `yaml:"concurrency" validate:"gte=1"`
	Queues          []string      `yaml:"queues" validate:"min=1"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	DequeueTimeout  time.Duration `yaml:"dequeue_timeout"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	MaxRetryDelay   time.Duration `yaml:"max_retry_delay"`
	MaxRetries      int           `yaml:"max_retries" validate:"gte=0"`
}

func loadJobxConfig() JobxConfig {
	return JobxConfig{
		Concurrency:     getEnvInt("JOBX_CONCURRENCY", 4),
		Queues:          getEnvStringSlice("JOBX_QUEUES", []string{"sparkpost"}),
		PollInterval:    getEnvDuration("JOBX_POLL_INTERVAL", time.Second),
		ShutdownTimeout: getEnvDuration("JOBX_SHUTDOWN_TIMEOUT", 30*time.Second),
		DequeueTimeout:  getEnvDuration("JOBX_DEQUEUE_TIMEOUT", 5*time.Second),
		RetryDelay:      getEnvDuration("JOBX_RETRY_DELAY", 30*time.Second),
		MaxRetryDelay:   getEnvDuration("JOBX_MAX_RETRY_DELAY", 10*time.Minute),
		MaxRetries:      getEnvInt("JOBX_MAX_RETRIES", 3),
	}
}
