// Package trace implements the zero-overhead scoring trace capability:
// a disabled ScoringContext is a singleton null object that discards every
// event at no allocation cost, while an enabled one buffers events for
// later rendering by internal/explain. The no-op implementation is
// selected once at construction time rather than guarded by an
// if-enabled check at every call site.
package trace

import (
	"time"
)

// Phase enumerates the fixed pipeline stages a ScoringContext can record
// against. The set is closed (not extensible per-call) so a rendered
// trace has a stable, bounded shape.
type Phase int

const (
	PhaseNormalize Phase = iota
	PhaseTypeConsistencyCheck
	PhasePhoneticFilter
	PhaseNameCompare
	PhaseAltNameCompare
	PhaseAddressCompare
	PhaseGovernmentIDCompare
	PhaseCryptoCompare
	PhaseContactCompare
	PhaseDateCompare
	PhaseSupportingInfoCompare
	PhaseWeightedAggregate
	PhaseExactIDShortCircuit
	PhaseFinalClamp
	PhaseMerge
	PhaseRank
)

func (p Phase) String() string {
	names := [...]string{
		"normalize",
		"typeConsistencyCheck",
		"phoneticFilter",
		"nameCompare",
		"altNameCompare",
		"addressCompare",
		"governmentIdCompare",
		"cryptoCompare",
		"contactCompare",
		"dateCompare",
		"supportingInfoCompare",
		"weightedAggregate",
		"exactIdShortCircuit",
		"finalClamp",
		"merge",
		"rank",
	}
	if int(p) < 0 || int(p) >= len(names) {
		return "unknown"
	}
	return names[p]
}

// ScoringEvent is a single recorded step within a scoring call. DurationMs
// is only set for events recorded via Traced; a plain Record leaves it 0.
type ScoringEvent struct {
	Timestamp   time.Time
	Phase       Phase
	Description string
	Data        map[string]any
	DurationMs  float64
}

// ScoringTrace is the rendered output of an enabled ScoringContext: every
// event recorded during the call, plus session metadata. DurationMs is
// filled in by the caller once the call completes (ScoringContext itself
// has no notion of "done").
type ScoringTrace struct {
	SessionID  string
	Events     []ScoringEvent
	DurationMs float64
	Metadata   map[string]string
}

// ScoringContext is the capability passed through a scoring call. Use
// NewDisabled for the zero-overhead path and NewEnabled to collect a full
// ScoringTrace.
type ScoringContext interface {
	// Record appends an event. No-op on a disabled context.
	Record(phase Phase, description string, data map[string]any)
	// IsEnabled reports whether events are actually retained.
	IsEnabled() bool
	// ToTrace renders the accumulated events. A disabled context returns
	// a ScoringTrace with no events.
	ToTrace(sessionID string, durationMs float64) ScoringTrace

	// recordDuration appends a timed event. Unexported: only Traced builds
	// durations, always from its own monotonic measurement.
	recordDuration(phase Phase, description string, durationMs float64, data map[string]any)
}

// Traced runs f under phase, timing it on a monotonic clock, and returns
// f's result unchanged. On a disabled ctx, f runs with no timing overhead
// and nothing is recorded. On an enabled ctx, a single event is recorded
// for phase with DurationMs set to the elapsed time in milliseconds.
func Traced[T any](ctx ScoringContext, phase Phase, description string, f func() T) T {
	if !ctx.IsEnabled() {
		return f()
	}
	start := time.Now()
	result := f()
	elapsed := time.Since(start)
	ctx.recordDuration(phase, description, float64(elapsed.Nanoseconds())/1e6, nil)
	return result
}

type disabledContext struct{}

// disabledSingleton is the one shared instance returned by NewDisabled:
// since it holds no mutable state, every caller can safely share it.
var disabledSingleton = &disabledContext{}

// NewDisabled returns the shared no-op ScoringContext. Record is a no-op;
// ToTrace returns an empty trace.
func NewDisabled() ScoringContext { return disabledSingleton }

func (d *disabledContext) Record(Phase, string, map[string]any) {}
func (d *disabledContext) IsEnabled() bool                      { return false }
func (d *disabledContext) ToTrace(sessionID string, durationMs float64) ScoringTrace {
	return ScoringTrace{SessionID: sessionID, DurationMs: durationMs}
}
func (d *disabledContext) recordDuration(Phase, string, float64, map[string]any) {}

type enabledContext struct {
	events []ScoringEvent
	now    func() time.Time
}

// NewEnabled returns a fresh per-call ScoringContext that buffers every
// recorded event. now lets callers inject a deterministic clock in tests;
// pass nil to use time.Now.
func NewEnabled(now func() time.Time) ScoringContext {
	if now == nil {
		now = time.Now
	}
	return &enabledContext{now: now}
}

func (e *enabledContext) Record(phase Phase, description string, data map[string]any) {
	e.events = append(e.events, ScoringEvent{
		Timestamp:   e.now(),
		Phase:       phase,
		Description: description,
		Data:        data,
	})
}

func (e *enabledContext) IsEnabled() bool { return true }

func (e *enabledContext) recordDuration(phase Phase, description string, durationMs float64, data map[string]any) {
	e.events = append(e.events, ScoringEvent{
		Timestamp:   e.now(),
		Phase:       phase,
		Description: description,
		Data:        data,
		DurationMs:  durationMs,
	})
}

func (e *enabledContext) ToTrace(sessionID string, durationMs float64) ScoringTrace {
	return ScoringTrace{
		SessionID:  sessionID,
		Events:     e.events,
		DurationMs: durationMs,
	}
}
