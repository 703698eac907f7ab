package mailer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Send outcomes used as the result label.
const (
	ResultSuccess       = "success"
	ResultFailure       = "failure"
	ResultNotConfigured = "not_configured"
)

// Metrics counts send attempts and template failures.
type Metrics struct {
	Sends          *prometheus.CounterVec
	RenderFailures *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Sends: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fixora_email_send_total",
			Help: "Email send attempts by result.",
		}, []string{"result"}),
		RenderFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fixora_email_template_render_failures_total",
			Help: "Email template renders that produced no output.",
		}, []string{"template"}),
	}
}

func (m *Metrics) send(result string) {
	if m == nil {
		return
	}
	m.Sends.WithLabelValues(result).Inc()
}

func (m *Metrics) renderFailed(name string) {
	if m == nil {
		return
	}
	m.RenderFailures.WithLabelValues(name).Inc()
}
