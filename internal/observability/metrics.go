package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eyerest",
		Subsystem: "countdown",
		Name:      "sessions_started_total",
		Help:      "Countdown sessions started, by routine.",
	}, []string{"routine"})

	sessionsFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eyerest",
		Subsystem: "countdown",
		Name:      "sessions_finished_total",
		Help:      "Countdown sessions that ended, by routine and outcome (expired or stopped).",
	}, []string{"routine", "outcome"})

	trainerActivations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eyerest",
		Subsystem: "trainer",
		Name:      "activations_total",
		Help:      "Trainer activations, by animated kind.",
	}, []string{"kind"})

	trainerTicks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eyerest",
		Subsystem: "trainer",
		Name:      "ticks_total",
		Help:      "Trainer animation ticks, by animated kind.",
	}, []string{"kind"})

	streamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "eyerest",
		Subsystem: "stream",
		Name:      "clients",
		Help:      "Connected render stream clients.",
	})
)

func init() {
	prometheus.MustRegister(sessionsStarted, sessionsFinished, trainerActivations, trainerTicks, streamClients)
}

// RecordSessionStarted counts a countdown start.
func RecordSessionStarted(routine string) {
	sessionsStarted.WithLabelValues(routine).Inc()
}

// RecordSessionFinished counts a countdown end. outcome is the terminal
// signal name.
func RecordSessionFinished(routine, outcome string) {
	sessionsFinished.WithLabelValues(routine, outcome).Inc()
}

// RecordTrainerActivation counts a trainer selection.
func RecordTrainerActivation(kind string) {
	trainerActivations.WithLabelValues(kind).Inc()
}

// RecordTrainerTick counts one animation step.
func RecordTrainerTick(kind string) {
	trainerTicks.WithLabelValues(kind).Inc()
}

// StreamConnected tracks a render stream client for its lifetime. Call the
// returned func on disconnect.
func StreamConnected() func() {
	streamClients.Inc()
	return streamClients.Dec
}
