package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics метрики Prometheus для бота. Методы безопасно вызывать на nil.
type Metrics struct {
	UpdatesProcessed prometheus.Counter
	CommandsTotal    *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	ErrorsTotal      *prometheus.CounterVec
	SetupsCompleted  prometheus.Counter
	ProfilesTotal    prometheus.Gauge
}

// New регистрирует метрики в reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UpdatesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fitbalance",
			Name:      "updates_processed_total",
			Help:      "Total number of processed text messages",
		}),

		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitbalance",
			Name:      "commands_total",
			Help:      "Total number of processed commands by name",
		}, []string{"command"}),

		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fitbalance",
			Name:      "command_duration_seconds",
			Help:      "Duration of command processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),

		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitbalance",
			Name:      "errors_total",
			Help:      "Handled errors by kind",
		}, []string{"kind"}),

		SetupsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fitbalance",
			Name:      "profile_setups_completed_total",
			Help:      "Completed profile setup dialogues",
		}),

		ProfilesTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fitbalance",
			Name:      "profiles",
			Help:      "Profiles held in memory",
		}),
	}
}

func (m *Metrics) IncUpdate() {
	if m == nil {
		return
	}
	m.UpdatesProcessed.Inc()
}

// ObserveCommand учитывает команду и время её обработки
func (m *Metrics) ObserveCommand(command string, started time.Time) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}

func (m *Metrics) IncError(kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncSetupCompleted() {
	if m == nil {
		return
	}
	m.SetupsCompleted.Inc()
}

func (m *Metrics) SetProfiles(n int) {
	if m == nil {
		return
	}
	m.ProfilesTotal.Set(float64(n))
}
