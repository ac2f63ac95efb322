package trace

import (
	"testing"
	"time"
)

func TestDisabledContextIsNoOp(t *testing.T) {
	ctx := NewDisabled()
	if ctx.IsEnabled() {
		t.Errorf("IsEnabled() = true, want false for NewDisabled()")
	}
	ctx.Record(PhaseNameCompare, "should be discarded", map[string]any{"x": 1})

	tr := ctx.ToTrace("session-1", 12.5)
	if len(tr.Events) != 0 {
		t.Errorf("Events = %v, want empty after recording on a disabled context", tr.Events)
	}
	if tr.SessionID != "session-1" || tr.DurationMs != 12.5 {
		t.Errorf("ToTrace metadata not preserved: %+v", tr)
	}
}

func TestDisabledContextIsSharedSingleton(t *testing.T) {
	if NewDisabled() != NewDisabled() {
		t.Errorf("NewDisabled() returned distinct instances, want the shared singleton")
	}
}

func TestEnabledContextRecordsEvents(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := NewEnabled(func() time.Time { return fixed })
	if !ctx.IsEnabled() {
		t.Errorf("IsEnabled() = false, want true for NewEnabled()")
	}

	ctx.Record(PhaseNameCompare, "comparing names", map[string]any{"score": 0.9})
	ctx.Record(PhaseAddressCompare, "comparing addresses", nil)

	tr := ctx.ToTrace("session-2", 3.0)
	if len(tr.Events) != 2 {
		t.Fatalf("Events length = %d, want 2", len(tr.Events))
	}
	if tr.Events[0].Phase != PhaseNameCompare || tr.Events[0].Timestamp != fixed {
		t.Errorf("Events[0] = %+v, want phase=%v timestamp=%v", tr.Events[0], PhaseNameCompare, fixed)
	}
	if tr.Events[1].Phase != PhaseAddressCompare {
		t.Errorf("Events[1].Phase = %v, want %v", tr.Events[1].Phase, PhaseAddressCompare)
	}
}

func TestTracedDisabledRunsAndReturnsResultWithNoRecording(t *testing.T) {
	ctx := NewDisabled()
	called := false
	got := Traced(ctx, PhaseNameCompare, "compare names", func() int {
		called = true
		return 42
	})
	if !called {
		t.Errorf("Traced did not invoke f on a disabled context")
	}
	if got != 42 {
		t.Errorf("Traced returned %v, want 42", got)
	}
	tr := ctx.ToTrace("session-3", 0)
	if len(tr.Events) != 0 {
		t.Errorf("Events = %v, want empty for a disabled context", tr.Events)
	}
}

func TestTracedEnabledRecordsDuration(t *testing.T) {
	ctx := NewEnabled(nil)
	got := Traced(ctx, PhaseAddressCompare, "compare addresses", func() string {
		return "result"
	})
	if got != "result" {
		t.Errorf("Traced returned %q, want %q", got, "result")
	}

	tr := ctx.ToTrace("session-4", 0)
	if len(tr.Events) != 1 {
		t.Fatalf("Events length = %d, want 1", len(tr.Events))
	}
	if tr.Events[0].Phase != PhaseAddressCompare {
		t.Errorf("Events[0].Phase = %v, want %v", tr.Events[0].Phase, PhaseAddressCompare)
	}
	if tr.Events[0].DurationMs < 0 {
		t.Errorf("Events[0].DurationMs = %v, want >= 0", tr.Events[0].DurationMs)
	}
}

func TestPhaseStringKnownAndUnknown(t *testing.T) {
	if got := PhaseNameCompare.String(); got != "nameCompare" {
		t.Errorf("PhaseNameCompare.String() = %q, want %q", got, "nameCompare")
	}
	if got := Phase(999).String(); got != "unknown" {
		t.Errorf("Phase(999).String() = %q, want %q", got, "unknown")
	}
}
