package service

import (
	"mediaccess/internal/store"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts store activity. It observes synchronously since
// counter increments never block.
type StoreMetrics struct {
	mutations     *prometheus.CounterVec
	logs          *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewStoreMetrics registers the store counters on reg
func NewStoreMetrics(reg prometheus.Registerer) (*StoreMetrics, error) {
	m := &StoreMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediaccess",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Committed store mutations by operation.",
		}, []string{"operation"}),
		logs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediaccess",
			Subsystem: "store",
			Name:      "system_logs_total",
			Help:      "System log entries emitted by module and status.",
		}, []string{"module", "status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediaccess",
			Subsystem: "store",
			Name:      "notifications_total",
			Help:      "Notifications emitted by type.",
		}, []string{"type"}),
	}

	for _, c := range []prometheus.Collector{m.mutations, m.logs, m.notifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements store.Observer
func (m *StoreMetrics) Observe(ev store.Event) {
	switch ev.Kind {
	case store.EventMutation:
		m.mutations.WithLabelValues(ev.Operation).Inc()
	case store.EventLog:
		if ev.Log != nil {
			m.logs.WithLabelValues(string(ev.Log.Module), string(ev.Log.Status)).Inc()
		}
	case store.EventNotification:
		if ev.Notification != nil {
			m.notifications.WithLabelValues(string(ev.Notification.Type)).Inc()
		}
	}
}
