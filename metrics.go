package pumpd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry
	ticks    prometheus.Counter
	commands *prometheus.CounterVec
	saves    prometheus.Counter
	moving   prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pumpd_ticks_total",
			Help: "Number of processed ticks.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpd_motor_commands_total",
			Help: "Number of commands sent to the motor.",
		}, []string{"command"}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pumpd_settings_saves_total",
			Help: "Number of settings commits written to storage.",
		}),
		moving: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pumpd_motor_moving",
			Help: "1 while the motor is running.",
		}),
	}
	m.registry.MustRegister(m.ticks, m.commands, m.saves, m.moving)

	return m
}

func (m *metrics) observe(r Report, moving bool) {
	m.ticks.Inc()
	for _, command := range r.Commands {
		m.commands.WithLabelValues(command.String()).Inc()
	}
	if r.Saved {
		m.saves.Inc()
	}

	if moving {
		m.moving.Set(1)
	} else {
		m.moving.Set(0)
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
