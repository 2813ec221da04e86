package observability

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, 120)
	p.OnParseComplete(ctx, "flowchart", 4, time.Millisecond)
	p.OnLayoutStart(ctx, "flowchart", 4)
	p.OnLayoutComplete(ctx, "flowchart", time.Millisecond)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	a := NoopAPIHooks{}
	a.OnRequest(ctx, "POST", "/v1/render")
	a.OnResponse(ctx, "POST", "/v1/render", 200, time.Millisecond)
}

type countingPipelineHooks struct {
	NoopPipelineHooks
	parses atomic.Int64
}

func (c *countingPipelineHooks) OnParseStart(context.Context, int) {
	c.parses.Add(1)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := API().(NoopAPIHooks); !ok {
		t.Error("API() should return NoopAPIHooks by default")
	}

	counting := &countingPipelineHooks{}
	SetPipelineHooks(counting)
	Pipeline().OnParseStart(context.Background(), 1)
	if got := counting.parses.Load(); got != 1 {
		t.Errorf("parse events = %d, want 1", got)
	}

	// nil registrations are ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(counting) {
		t.Error("SetPipelineHooks(nil) should not replace registered hooks")
	}
}
