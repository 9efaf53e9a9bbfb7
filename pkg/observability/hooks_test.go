package observability

import (
	"context"
	"testing"
	"time"
)

type countingLayoutHooks struct {
	NoopLayoutHooks
	stages int
}

func (h *countingLayoutHooks) OnStage(context.Context, string, time.Duration) { h.stages++ }

func TestSetLayoutHooks(t *testing.T) {
	defer Reset()

	h := &countingLayoutHooks{}
	SetLayoutHooks(h)

	Layout().OnStage(context.Background(), "build", time.Millisecond)
	Layout().OnStage(context.Background(), "rank", time.Millisecond)

	if h.stages != 2 {
		t.Errorf("stages = %d, want 2", h.stages)
	}
}

func TestReset(t *testing.T) {
	h := &countingLayoutHooks{}
	SetLayoutHooks(h)
	Reset()

	Layout().OnStage(context.Background(), "build", time.Millisecond)
	if h.stages != 0 {
		t.Error("hooks still installed after Reset")
	}
}

func TestSetNilKeepsNoop(t *testing.T) {
	defer Reset()

	SetLayoutHooks(nil)
	SetCacheHooks(nil)

	// Must not panic.
	Layout().OnComputeStart(context.Background(), 1, 0)
	Cache().OnCacheMiss(context.Background(), "layout")
}
