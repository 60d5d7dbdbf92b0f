package hookx

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts webhook traffic. A nil *Metrics records nothing.
type Metrics struct {
	batches *prometheus.CounterVec
	events  *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparkx_webhook_batches_total",
				Help: "Webhook batches received, by outcome.",
			},
			[]string{"result"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sparkx_webhook_events_total",
				Help: "Webhook events processed, by whether they were new.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.batches, m.events)
	return m
}

func (m *Metrics) batch(result string) {
	if m != nil {
		m.batches.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) stored(saved, total int) {
	if m == nil {
		return
	}
	m.events.WithLabelValues("stored").Add(float64(saved))
	m.events.WithLabelValues("duplicate").Add(float64(total - saved))
}
