package service

import "github.com/prometheus/client_golang/prometheus"

// Entitlement check outcomes used as the "result" label.
const (
	resultEntitled    = "entitled"
	resultNotEntitled = "not_entitled"
	resultAnonymous   = "anonymous"
	resultError       = "error"
)

// Metrics holds the domain counters. A nil *Metrics records nothing.
type Metrics struct {
	viewsRecorded     prometheus.Counter
	entitlementChecks *prometheus.CounterVec
	grantsWritten     prometheus.Counter
}

// NewMetrics creates the domain counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		viewsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notes_views_recorded_total",
			Help: "Total number of note reveals counted.",
		}),
		entitlementChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entitlement_checks_total",
			Help: "Entitlement checks by outcome.",
		}, []string{"result"}),
		grantsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "access_grants_written_total",
			Help: "Access grants written after a verified payment.",
		}),
	}
	for _, c := range []prometheus.Collector{m.viewsRecorded, m.entitlementChecks, m.grantsWritten} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) viewRecorded() {
	if m != nil {
		m.viewsRecorded.Inc()
	}
}

func (m *Metrics) entitlementChecked(result string) {
	if m != nil {
		m.entitlementChecks.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) grantWritten() {
	if m != nil {
		m.grantsWritten.Inc()
	}
}
