// Composition root of the webhook server. Owns infrastructure (DB, Redis,
// job queue) and wires the hookx intake onto it.
package main

import (
	"context"
	"slices"

	"github.com/Abraxas-365/sparkx/pkg/config"
	"github.com/Abraxas-365/sparkx/pkg/hookx"
	"github.com/Abraxas-365/sparkx/pkg/hookx/hookxpostgres"
	"github.com/Abraxas-365/sparkx/pkg/httpx"
	"github.com/Abraxas-365/sparkx/pkg/jobx"
	"github.com/Abraxas-365/sparkx/pkg/jobx/jobxredis"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and the webhook components.
type Container struct {
	Config *config.Config
	Logger *logx.Logger

	// Infrastructure
	DB       *sqlx.DB
	Redis    *redis.Client
	Registry *prometheus.Registry

	// Components
	Queue   jobx.Queue
	Jobs    *jobx.Client
	Store   hookx.EventStore
	Spark   *sparkx.Client
	Handler *hookx.Handler
}

// NewContainer connects every configured backend. Postgres and Redis are
// optional; without them events and jobs stay in memory.
func NewContainer(ctx context.Context, cfg *config.Config, logger *logx.Logger) (*Container, error) {
	logger.WithFields(nil).Info("initializing container")

	c := &Container{Config: cfg, Logger: logger, Registry: prometheus.NewRegistry()}
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initQueue(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initSparkPost(); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initHooks()

	logger.WithFields(nil).Info("container initialized")
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	pg := c.Config.Postgres
	if pg.DSN == "" {
		c.Store = hookx.NewMemoryStore()
		c.Logger.WithFields(nil).Warn("DATABASE_URL not set, events are kept in memory")
		return nil
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", pg.DSN)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(pg.MaxOpenConns)
	db.SetMaxIdleConns(pg.MaxIdleConns)
	db.SetConnMaxLifetime(pg.ConnMaxLifetime)
	c.DB = db

	store := hookxpostgres.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	c.Store = store
	c.Logger.WithFields(nil).Info("database connected")
	return nil
}

func (c *Container) initQueue(ctx context.Context) error {
	rc := c.Config.Redis
	if rc.Addr == "" {
		c.Queue = jobx.NewMemoryQueue()
		c.Logger.WithFields(nil).Warn("REDIS_ADDR not set, jobs are queued in memory")
	} else {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return err
		}
		c.Queue = jobxredis.NewRedisQueue(c.Redis,
			jobxredis.WithPrefix(rc.Prefix),
			jobxredis.WithDedupTTL(rc.DedupTTL),
		)
		c.Logger.WithField("addr", rc.Addr).Info("redis connected")
	}

	jc := c.Config.Jobx
	queues := jc.Queues
	if !slices.Contains(queues, c.Config.Hook.Queue) {
		queues = append(slices.Clone(queues), c.Config.Hook.Queue)
	}
	c.Jobs = jobx.NewClient(c.Queue,
		jobx.WithQueues(queues...),
		jobx.WithConcurrency(jc.Concurrency),
		jobx.WithPollInterval(jc.PollInterval),
		jobx.WithShutdownTimeout(jc.ShutdownTimeout),
		jobx.WithDequeueTimeout(jc.DequeueTimeout),
		jobx.WithRetryDelay(jc.RetryDelay, jc.MaxRetryDelay),
		jobx.WithDefaultRetries(jc.MaxRetries),
	)
	return nil
}

// initSparkPost builds an API client when a key is configured. It backs the
// opt-in ?check_sparkpost health probe.
func (c *Container) initSparkPost() error {
	if c.Config.SparkPost.APIKey == "" {
		return nil
	}
	metrics := httpx.NewMetrics(c.Registry)
	client, err := c.Config.SparkPost.NewClient(c.Logger, metrics.Middleware())
	if err != nil {
		return err
	}
	c.Spark = client
	return nil
}

func (c *Container) initHooks() {
	hc := c.Config.Hook
	metrics := hookx.NewMetrics(c.Registry)

	hookx.NewProcessor(c.Store, c.Logger).WithMetrics(metrics).Register(c.Jobs)

	opts := []hookx.HandlerOption{
		hookx.WithLogger(c.Logger),
		hookx.WithQueue(hc.Queue),
		hookx.WithMetrics(metrics),
		hookx.WithEventStore(c.Store),
		hookx.WithCredentials(hookx.Credentials{
			Username:     hc.Username,
			PasswordHash: hc.PasswordHash,
			Token:        hc.Token,
		}),
	}
	if store, ok := c.Store.(*hookxpostgres.Store); ok {
		opts = append(opts, hookx.WithHealthCheck("db", store))
	}
	if c.Redis != nil {
		opts = append(opts, hookx.WithHealthCheck("redis", hookx.HealthFunc(func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		})))
	}
	if c.Spark != nil {
		opts = append(opts, hookx.WithOptionalHealthCheck("sparkpost", hookx.HealthFunc(func(ctx context.Context) error {
			_, err := c.Spark.Webhooks.All(ctx, "")
			return err
		})))
	}
	c.Handler = hookx.NewHandler(c.Jobs, opts...)
}

// StartBackgroundServices runs the job workers until ctx ends.
func (c *Container) StartBackgroundServices(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- c.Jobs.Start(ctx)
	}()
	c.Logger.WithFields(nil).Info("job workers started")
	return done
}

func (c *Container) Cleanup() {
	c.Logger.WithFields(nil).Info("cleaning up resources")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.WithError(err).Error("error closing database")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.WithError(err).Error("error closing redis")
		}
	}
}
