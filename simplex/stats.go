package simplex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats mirrors gophersat's Solver.Stats (solver/solver.go): a plain
// struct of counters that both backs a -verbose-style snapshot and, here,
// doubles as a Prometheus CounterVec family so the engine's published
// counters (the names named in simplex.cpp's Statistics constructor) are
// externally observable the way AleutianFOSS wires promauto counters
// into its own hot paths (services/trace/agent/routing/metrics.go).
type Stats struct {
	Pivots                    uint64
	Updates                   uint64
	AssertUpperConflicts      uint64
	AssertLowerConflicts      uint64
	UpdateConflicts           uint64
	Ejections                 uint64
	UnEjections               uint64
	EarlyConflicts            uint64
	EarlyConflictImprovements uint64
	PivotsAfterConflict       uint64
	ChecksWithWastefulPivots  uint64

	SelectInitialConflictTime time.Duration
	PivotTime                 time.Duration

	counters *prometheus.CounterVec
	timers   *prometheus.HistogramVec
}

// NewStats builds a Stats registered against reg under the
// theory_arith_simplex namespace. reg may be nil, in which case the
// Prometheus side is disabled and Stats behaves as a plain counter
// struct (the engine never requires a registry to function).
func NewStats(reg prometheus.Registerer) *Stats {
	s := &Stats{}
	if reg == nil {
		return s
	}
	s.counters = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "theory_arith",
		Subsystem: "simplex",
		Name:      "events_total",
		Help:      "Counts of named simplex engine events (pivots, updates, conflicts, ejections).",
	}, []string{"event"})
	s.timers = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "theory_arith",
		Subsystem: "simplex",
		Name:      "phase_duration_seconds",
		Help:      "Duration of named simplex engine phases.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"phase"})
	reg.MustRegister(s.counters, s.timers)
	return s
}

func (s *Stats) bump(field *uint64, event string) {
	*field++
	if s.counters != nil {
		s.counters.WithLabelValues(event).Inc()
	}
}

func (s *Stats) incPivots()                    { s.bump(&s.Pivots, "pivots") }
func (s *Stats) incUpdates()                    { s.bump(&s.Updates, "updates") }
func (s *Stats) incAssertUpperConflicts()       { s.bump(&s.AssertUpperConflicts, "assert_upper_conflicts") }
func (s *Stats) incAssertLowerConflicts()       { s.bump(&s.AssertLowerConflicts, "assert_lower_conflicts") }
func (s *Stats) incUpdateConflicts()            { s.bump(&s.UpdateConflicts, "update_conflicts") }
func (s *Stats) incEjections()                  { s.bump(&s.Ejections, "ejections") }
func (s *Stats) incUnEjections()                { s.bump(&s.UnEjections, "un_ejections") }
func (s *Stats) incEarlyConflicts()             { s.bump(&s.EarlyConflicts, "early_conflicts") }
func (s *Stats) incEarlyConflictImprovements()  { s.bump(&s.EarlyConflictImprovements, "early_conflict_improvements") }
func (s *Stats) incPivotsAfterConflict()        { s.bump(&s.PivotsAfterConflict, "pivots_after_conflict") }
func (s *Stats) incChecksWithWastefulPivots()   { s.bump(&s.ChecksWithWastefulPivots, "checks_with_wasteful_pivots") }

func (s *Stats) timeSelectInitialConflict() func() {
	start := nowFunc()
	return func() {
		d := sinceFunc(start)
		s.SelectInitialConflictTime += d
		if s.timers != nil {
			s.timers.WithLabelValues("select_initial_conflict").Observe(d.Seconds())
		}
	}
}

func (s *Stats) timePivot() func() {
	start := nowFunc()
	return func() {
		d := sinceFunc(start)
		s.PivotTime += d
		if s.timers != nil {
			s.timers.WithLabelValues("pivot").Observe(d.Seconds())
		}
	}
}

// nowFunc/sinceFunc are indirected so tests can stub timing determinism
// if ever needed; production wiring just forwards to the time package.
var nowFunc = time.Now
var sinceFunc = time.Since
