package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "countdown"

// Session results recorded by ObserveSession.
const (
	SessionStarted   = "started"
	SessionExpired   = "expired"
	SessionCancelled = "cancelled"
	SessionInvalid   = "invalid"
)

// Recorder counts lookups, ticks and session transitions.
// A nil Recorder discards everything.
type Recorder struct {
	lookups  *prometheus.CounterVec
	sessions *prometheus.CounterVec
	ticks    prometheus.Counter
}

// NewRecorder creates the collectors and registers them.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	recorder := &Recorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Submissions by resolution path (remote, or the reason for falling back).",
		}, []string{"outcome"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Countdown session transitions.",
		}, []string{"result"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Local recomputations performed by the refresh loop.",
		}),
	}
	if registerer != nil {
		registerer.MustRegister(recorder.lookups, recorder.sessions, recorder.ticks)
	}
	return recorder
}

// ObserveLookup records how a submission was resolved.
func (recorder *Recorder) ObserveLookup(outcome string) {
	if recorder == nil {
		return
	}
	recorder.lookups.WithLabelValues(outcome).Inc()
}

// ObserveSession records a session transition.
func (recorder *Recorder) ObserveSession(result string) {
	if recorder == nil {
		return
	}
	recorder.sessions.WithLabelValues(result).Inc()
}

// ObserveTick records one refresh-loop recomputation.
func (recorder *Recorder) ObserveTick() {
	if recorder == nil {
		return
	}
	recorder.ticks.Inc()
}
