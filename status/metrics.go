package status

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name
const Namespace = "scenery"

// Metrics is the central metrics facade for the lifecycle layer
// Components cache the pointer during assembly; a nil *Metrics disables recording
type Metrics struct {
	registrations prometheus.Counter
	invocations   *prometheus.CounterVec
	sceneEnters   *prometheus.CounterVec
	sceneExits    *prometheus.CounterVec
	despawned     *prometheus.CounterVec
	transitions   *prometheus.CounterVec
}

// Invocation results
const (
	ResultInvoked  = "invoked"
	ResultNotFound = "not_registered"
)

// NewMetrics registers all collectors with reg
// Pass prometheus.NewRegistry() for isolation; registering twice on one registerer panics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registrations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "oneshot",
			Name:      "registrations_total",
			Help:      "Callbacks registered under a marker key",
		}),
		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "oneshot",
			Name:      "invocations_total",
			Help:      "Invoke-by-key requests by marker and result",
		}, []string{"marker", "result"}),
		sceneEnters: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "scene",
			Name:      "enters_total",
			Help:      "Scene setups triggered by state entry",
		}, []string{"scene"}),
		sceneExits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "scene",
			Name:      "exits_total",
			Help:      "Scene teardowns triggered by state exit",
		}, []string{"scene"}),
		despawned: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "scene",
			Name:      "entities_despawned_total",
			Help:      "Entities staged for destruction by scene teardown, roots and descendants",
		}, []string{"scene"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "state",
			Name:      "transitions_total",
			Help:      "Completed state transitions by target state",
		}, []string{"state"}),
	}
}

// Registered counts a callback registration
func (m *Metrics) Registered() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

// Invoked counts an invoke-by-key request
func (m *Metrics) Invoked(marker, result string) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(marker, result).Inc()
}

// SceneEntered counts a scene setup trigger
func (m *Metrics) SceneEntered(scene string) {
	if m == nil {
		return
	}
	m.sceneEnters.WithLabelValues(scene).Inc()
}

// SceneExited counts a teardown and the number of entities it staged for destruction
func (m *Metrics) SceneExited(scene string, entities int) {
	if m == nil {
		return
	}
	m.sceneExits.WithLabelValues(scene).Inc()
	m.despawned.WithLabelValues(scene).Add(float64(entities))
}

// Transitioned counts a completed state transition
func (m *Metrics) Transitioned(state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state).Inc()
}
