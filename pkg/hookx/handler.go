package hookx

import (
	"context"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/jobx"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler accepts SparkPost webhook batches and queues them for
// processing.
type Handler struct {
	enqueuer jobx.JobEnqueuer
	creds    Credentials
	queue    string
	logger   *logx.Logger
	checks   map[string]HealthChecker
	optional map[string]HealthChecker
	store    EventStore
	metrics  *Metrics
	now      func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCredentials requires webhook auth.
func WithCredentials(creds Credentials) HandlerOption {
	return func(h *Handler) { h.creds = creds }
}

// WithQueue sets the queue batches are enqueued on.
func WithQueue(queue string) HandlerOption {
	return func(h *Handler) {
		if queue != "" {
			h.queue = queue
		}
	}
}

// WithLogger sets the handler's logger.
func WithLogger(logger *logx.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// WithHealthCheck adds a named dependency to GET /health.
func WithHealthCheck(name string, check HealthChecker) HandlerOption {
	return func(h *Handler) { h.checks[name] = check }
}

// WithOptionalHealthCheck adds a dependency checked only when the request
// asks for it with ?check_<name>=true.
func WithOptionalHealthCheck(name string, check HealthChecker) HandlerOption {
	return func(h *Handler) { h.optional[name] = check }
}

// WithEventStore exposes GET /events, listing stored events by recipient.
// The route is only mounted when credentials are configured.
func WithEventStore(store EventStore) HandlerOption {
	return func(h *Handler) { h.store = store }
}

// WithMetrics counts received batches on m.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler creates a webhook handler enqueueing on enqueuer.
func NewHandler(enqueuer jobx.JobEnqueuer, opts ...HandlerOption) *Handler {
	h := &Handler{
		enqueuer: enqueuer,
		queue:    jobx.DefaultQueue,
		logger:   logx.GetDefaultLogger(),
		checks:   make(map[string]HealthChecker),
		optional: make(map[string]HealthChecker),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the intake endpoint at path and GET /health.
// GET /events exposes recipient data and is left unmounted without
// credentials.
func (h *Handler) RegisterRoutes(router fiber.Router, path string) {
	if !h.creds.Enabled() {
		h.logger.WithField("path", path).Warn("no webhook credentials configured, intake accepts unauthenticated requests")
	}

	router.Get("/health", h.Health)
	router.Post(path, h.creds.Authenticate(), h.Receive)
	if h.store == nil {
		return
	}
	if !h.creds.Enabled() {
		h.logger.WithFields(nil).Warn("GET /events disabled: it requires webhook credentials")
		return
	}
	router.Get("/events", h.creds.Authenticate(), h.ListEvents)
}

// Receive handles one webhook POST.
func (h *Handler) Receive(c *fiber.Ctx) error {
	body := c.Body()
	events, err := sparkx.ParseEventBatch(body)
	if err != nil {
		h.metrics.batch("invalid")
		return hookErrors.NewWithCause(ErrBadBatch, err)
	}

	batchID := c.Get(BatchIDHeader)
	if batchID == "" {
		batchID = uuid.NewString()
	}
	log := h.logger.WithFields(logx.Fields{
		"batch_id": batchID,
		"events":   len(events),
	})

	if len(events) == 0 {
		h.metrics.batch("ping")
		log.Debug("webhook ping acknowledged")
		return c.SendStatus(fiber.StatusOK)
	}

	payload := BatchPayload{
		BatchID:    batchID,
		ReceivedAt: h.now().UTC(),
		Body:       append([]byte(nil), body...),
	}
	job, err := jobx.NewJob(JobType, payload, jobx.OnQueue(h.queue), jobx.WithKey(batchID))
	if err != nil {
		return err
	}

	jobID, err := h.enqueuer.Enqueue(c.UserContext(), job)
	if err != nil {
		h.metrics.batch("enqueue_failed")
		return hookErrors.NewWithCause(ErrEnqueue, err).WithDetail("batch_id", batchID)
	}
	h.metrics.batch("queued")

	log.WithField("job_id", jobID).Info("webhook batch queued")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"batch_id": batchID,
		"job_id":   jobID,
	})
}

// Health pings every registered dependency. Any failure answers 503.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	health := fiber.Map{"status": "healthy"}
	probe := func(name string, check HealthChecker) {
		if err := check.Ping(ctx); err != nil {
			health[name] = "unhealthy"
			health[name+"_error"] = err.Error()
			health["status"] = "degraded"
			return
		}
		health[name] = "healthy"
	}
	for name, check := range h.checks {
		probe(name, check)
	}
	for name, check := range h.optional {
		if c.QueryBool("check_"+name, false) {
			probe(name, check)
		}
	}

	status := fiber.StatusOK
	if health["status"] == "degraded" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(health)
}

// ListEvents answers GET /events?rcpt_to=addr&limit=n with the newest
// stored events for the recipient.
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	rcpt := c.Query("rcpt_to")
	if rcpt == "" {
		return hookErrors.NewWithMessage(ErrBadQuery, "rcpt_to is required")
	}
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		return hookErrors.NewWithMessage(ErrBadQuery, "limit must be between 1 and 1000").WithDetail("limit", limit)
	}

	events, err := h.store.ListByRecipient(c.UserContext(), rcpt, limit)
	if err != nil {
		return hookErrors.NewWithCause(ErrStore, err).WithDetail("rcpt_to", rcpt)
	}
	if events == nil {
		events = []StoredEvent{}
	}
	return c.JSON(fiber.Map{"results": events, "total_count": len(events)})
}
