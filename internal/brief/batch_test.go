package brief

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/glitchsec/osintkit/internal/model"
)

func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("briefs all subjects in input order", func(t *testing.T) {
		t.Parallel()

		factory := func() *Pipeline {
			p := New()
			p.AddStep(&fakeStep{name: "mark", fn: func(b *model.Brief) {
				b.Background = "briefed " + b.Name
			}})
			return p
		}

		bp := NewBatchProcessor(factory, WithConcurrency(2))
		subjects := []string{"Alpha Corp", "Beta GmbH", "Gamma Ltd"}

		briefs, err := bp.ProcessBatch(context.Background(), model.BriefCompany, subjects)
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v", err)
		}
		if len(briefs) != 3 {
			t.Fatalf("got %d briefs, want 3", len(briefs))
		}
		for i, b := range briefs {
			if b.Name != subjects[i] {
				t.Errorf("briefs[%d].Name = %q, want %q", i, b.Name, subjects[i])
			}
			if b.Background != "briefed "+subjects[i] {
				t.Errorf("briefs[%d] not processed: %+v", i, b)
			}
			if b.Kind != model.BriefCompany {
				t.Errorf("briefs[%d].Kind = %q", i, b.Kind)
			}
		}
	})

	t.Run("concurrency limit is respected", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int32
		factory := func() *Pipeline {
			p := New()
			p.AddStep(&fakeStep{name: "track", fn: func(*model.Brief) {
				n := active.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				active.Add(-1)
			}})
			return p
		}

		bp := NewBatchProcessor(factory, WithConcurrency(2))
		if _, err := bp.ProcessBatch(context.Background(), model.BriefPerson, []string{"a", "b", "c", "d", "e"}); err != nil {
			t.Fatalf("ProcessBatch() error = %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
		}
	})

	t.Run("step failures do not abort other subjects", func(t *testing.T) {
		t.Parallel()

		factory := func() *Pipeline {
			p := New()
			p.AddStep(&fakeStep{name: "flaky", err: errors.New("quota exceeded")})
			return p
		}

		bp := NewBatchProcessor(factory)
		briefs, err := bp.ProcessBatch(context.Background(), model.BriefPerson, []string{"a", "b"})
		if err != nil {
			t.Fatalf("ProcessBatch() error = %v", err)
		}
		for i, b := range briefs {
			if b == nil {
				t.Fatalf("briefs[%d] is nil", i)
			}
			if b.StepErrors["flaky"] == "" {
				t.Errorf("briefs[%d] missing step error", i)
			}
		}
	})
}
