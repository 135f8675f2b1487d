package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/geoready/internal/cache"
	"github.com/nao1215/geoready/internal/model"
)

// stubAnalyzer returns a fixed report or error for every start URL.
type stubAnalyzer struct {
	report *model.AggregateReport
	err    error
}

func (s *stubAnalyzer) Crawl(_ context.Context, _ string) (*model.AggregateReport, error) {
	return s.report, s.err
}

// stubReport builds a minimal report with the given score.
func stubReport(score int) *model.AggregateReport {
	return &model.AggregateReport{
		Summary: model.Summary{
			AverageScore: score,
			CheckStats:   map[model.CheckName]model.CheckStat{},
		},
		Detailed:     map[model.CheckName]model.DetailedCheck{},
		PagesCrawled: 1,
	}
}

// namedStep is a configurable step for orchestration tests.
type namedStep struct {
	name string
	do   func(ctx context.Context, run *Run) error
}

func (s *namedStep) Name() string { return s.name }

func (s *namedStep) Do(ctx context.Context, run *Run) error {
	if s.do == nil {
		return nil
	}
	return s.do(ctx, run)
}

// TestPipeline tests step orchestration.
func TestPipeline(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order and records them", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		p.AddSteps(
			&namedStep{name: "first", do: func(_ context.Context, _ *Run) error {
				order = append(order, "first")
				return nil
			}},
			&namedStep{name: "second", do: func(_ context.Context, _ *Run) error {
				order = append(order, "second")
				return nil
			}},
		)

		run := &Run{StartURL: "https://example.com/"}
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("execute failed: %v", err)
		}

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("unexpected execution order: %v", order)
		}
		if len(run.StepsRun) != 2 || run.StepsRun[0] != "first" || run.StepsRun[1] != "second" {
			t.Errorf("unexpected StepsRun: %v", run.StepsRun)
		}
	})

	t.Run("a failing step aborts the run", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		var reached bool

		p := New()
		p.AddSteps(
			&namedStep{name: "fails", do: func(_ context.Context, _ *Run) error {
				return stepErr
			}},
			&namedStep{name: "unreached", do: func(_ context.Context, _ *Run) error {
				reached = true
				return nil
			}},
		)

		run := &Run{StartURL: "https://example.com/"}
		if err := p.Execute(context.Background(), run); !errors.Is(err, stepErr) {
			t.Errorf("expected step error, got %v", err)
		}
		if reached {
			t.Error("steps after a failure must not run")
		}
		if len(run.StepsRun) != 0 {
			t.Errorf("failed step must not be recorded, got %v", run.StepsRun)
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var reached bool
		p := New()
		p.AddStep(&namedStep{name: "unreached", do: func(_ context.Context, _ *Run) error {
			reached = true
			return nil
		}})

		if err := p.Execute(ctx, &Run{}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if reached {
			t.Error("no step must run after cancellation")
		}
	})

	t.Run("step names reflect added steps", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&namedStep{name: "a"}, &namedStep{name: "b"})

		if p.StepCount() != 2 {
			t.Errorf("expected 2 steps, got %d", p.StepCount())
		}
		names := p.StepNames()
		if len(names) != 2 || names[0] != "a" || names[1] != "b" {
			t.Errorf("unexpected step names: %v", names)
		}
	})
}

// TestSteps tests the analyze and cache steps.
func TestSteps(t *testing.T) {
	t.Parallel()

	t.Run("analyze step stores the report on the run", func(t *testing.T) {
		t.Parallel()

		want := stubReport(80)
		step := NewAnalyzeStep(&stubAnalyzer{report: want})

		run := &Run{StartURL: "https://example.com/"}
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if run.Report != want {
			t.Error("expected the analyzer's report on the run")
		}
	})

	t.Run("analyze step wraps analyzer errors", func(t *testing.T) {
		t.Parallel()

		crawlErr := errors.New("fetch start page: boom")
		step := NewAnalyzeStep(&stubAnalyzer{err: crawlErr})

		run := &Run{StartURL: "https://example.com/"}
		if err := step.Do(context.Background(), run); !errors.Is(err, crawlErr) {
			t.Errorf("expected wrapped analyzer error, got %v", err)
		}
		if run.Report != nil {
			t.Error("failed analysis must not set a report")
		}
	})

	t.Run("cache step stores the report and records the handle", func(t *testing.T) {
		t.Parallel()

		store := cache.NewStore()
		defer store.Close()

		run := &Run{StartURL: "https://example.com/", Report: stubReport(70)}
		if err := NewCacheStep(store).Do(context.Background(), run); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if run.Handle == nil || run.Handle.ID == "" {
			t.Fatal("expected a cache handle on the run")
		}

		got, err := store.Get(run.Handle.ID)
		if err != nil {
			t.Fatalf("cached report not retrievable: %v", err)
		}
		if got.Report != run.Report {
			t.Error("cache returned a different report")
		}
	})

	t.Run("cache step requires a report", func(t *testing.T) {
		t.Parallel()

		store := cache.NewStore()
		defer store.Close()

		run := &Run{StartURL: "https://example.com/"}
		if err := NewCacheStep(store).Do(context.Background(), run); !errors.Is(err, ErrNoReport) {
			t.Errorf("expected ErrNoReport, got %v", err)
		}
	})
}

// TestBatchProcessor tests concurrent multi-site analysis.
func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("returns one run per site in input order", func(t *testing.T) {
		t.Parallel()

		factory := func() *Pipeline {
			p := New()
			p.AddStep(NewAnalyzeStep(&stubAnalyzer{report: stubReport(60)}))
			return p
		}

		urls := []string{
			"https://a.example/",
			"https://b.example/",
			"https://c.example/",
		}

		runs, err := NewBatchProcessor(factory).ProcessBatch(context.Background(), urls)
		if err != nil {
			t.Fatalf("batch failed: %v", err)
		}
		if len(runs) != len(urls) {
			t.Fatalf("expected %d runs, got %d", len(urls), len(runs))
		}
		for i, run := range runs {
			if run.StartURL != urls[i] {
				t.Errorf("run %d is for %q, want %q", i, run.StartURL, urls[i])
			}
			if run.Report == nil {
				t.Errorf("run %d has no report", i)
			}
		}
	})

	t.Run("one failing site does not stop the others", func(t *testing.T) {
		t.Parallel()

		var calls int
		factory := func() *Pipeline {
			calls++
			p := New()
			if calls == 2 {
				p.AddStep(NewAnalyzeStep(&stubAnalyzer{err: errors.New("down")}))
			} else {
				p.AddStep(NewAnalyzeStep(&stubAnalyzer{report: stubReport(60)}))
			}
			return p
		}

		runs, err := NewBatchProcessor(factory, WithBatchConcurrency(1)).ProcessBatch(
			context.Background(),
			[]string{"https://a.example/", "https://b.example/", "https://c.example/"},
		)
		if err != nil {
			t.Fatalf("batch failed: %v", err)
		}

		var withReport int
		for _, run := range runs {
			if run != nil && run.Report != nil {
				withReport++
			}
		}
		if withReport != 2 {
			t.Errorf("expected 2 successful runs, got %d", withReport)
		}
	})
}
