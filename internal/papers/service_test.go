package papers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/papergen/backend/internal/generator"
	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/planner"
	"github.com/papergen/backend/internal/prompts"
)

// fakeLLM counts calls and optionally fails specific 1-based call numbers.
type fakeLLM struct {
	mu     sync.Mutex
	calls  int
	failOn map[int]bool
}

func (f *fakeLLM) Generate(ctx context.Context, req generator.Request) (*generator.LLMResponse, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if f.failOn[call] {
		return nil, errors.New("simulated upstream failure")
	}

	q := map[string]any{
		"content":     fmt.Sprintf("Calculate the efficiency of machine %d given the data shown.", call),
		"marks":       3,
		"solution":    "Efficiency = useful output / total input = 0.6.",
		"mark_scheme": []string{"M1 ratio of outputs", "A1 0.6 or 60%"},
	}
	data, _ := json.Marshal(q)
	return &generator.LLMResponse{Content: string(data)}, nil
}

func testService(llm generator.LLMClient) *Service {
	router := prompts.NewRouterWith(prompts.NewRegistry(), rand.New(rand.NewSource(1)))
	exec := generator.NewExecutor(llm, router)
	return NewService(planner.NewWithRand(rand.New(rand.NewSource(1))), exec, nil, nil)
}

func testRequest() models.GeneratePaperRequest {
	return models.GeneratePaperRequest{
		ExamBoard:     "aqa",
		Qualification: "gcse",
		Subject:       "physics",
		PaperName:     "Physics Paper 1",
		Config: &models.PaperConfig{
			TotalMarks: 50,
			Sections: []models.SectionConfig{
				{ID: "a", Name: "Section A", TargetMarks: 20},
				{ID: "b", Name: "Section B", TargetMarks: 30},
			},
			SelectedSubtopics: map[string][]string{
				"phys-energy":      {"energy stores", "efficiency"},
				"phys-electricity": {"circuits", "resistance"},
			},
			DifficultyDistribution: models.DifficultyWeights{Easy: 30, Medium: 50, Hard: 20},
		},
	}
}

// collect runs Plan + Generate and returns the emitted event sequence.
func collect(t *testing.T, ctx context.Context, svc *Service, req models.GeneratePaperRequest) []any {
	t.Helper()

	plan, err := svc.Plan(req)
	if err != nil {
		t.Fatalf("planning failed: %v", err)
	}

	var events []any
	svc.Generate(ctx, 0, req, plan, func(event any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		events = append(events, event)
		return nil
	})
	return events
}

func terminalComplete(t *testing.T, events []any) models.CompleteEvent {
	t.Helper()
	if len(events) == 0 {
		t.Fatal("no events emitted")
	}
	complete, ok := events[len(events)-1].(models.CompleteEvent)
	if !ok {
		t.Fatalf("last event is %T, want CompleteEvent", events[len(events)-1])
	}
	return complete
}

func TestGenerate_ProgressThenComplete(t *testing.T) {
	events := collect(t, context.Background(), testService(&fakeLLM{}), testRequest())
	complete := terminalComplete(t, events)

	total := complete.Stats.Requested
	progress := 0
	for i, ev := range events[:len(events)-1] {
		p, ok := ev.(models.ProgressEvent)
		if !ok {
			t.Fatalf("event %d is %T, want ProgressEvent", i, ev)
		}
		if p.Current != progress {
			t.Errorf("event %d: current = %d, want %d", i, p.Current, progress)
		}
		if p.Total != total {
			t.Errorf("event %d: total = %d, want %d", i, p.Total, total)
		}
		progress++
	}
	// One progress event per task plus the initial zero.
	if progress != total+1 {
		t.Errorf("got %d progress events, want %d", progress, total+1)
	}
}

func TestGenerate_MarkTotalsSurviveFailures(t *testing.T) {
	// Every third call fails; sentinels keep their planned marks so the
	// paper still sums to the configured total.
	llm := &fakeLLM{failOn: map[int]bool{3: true, 6: true, 9: true}}
	events := collect(t, context.Background(), testService(llm), testRequest())
	complete := terminalComplete(t, events)

	paper := complete.Paper
	if paper.TotalMarks != 50 {
		t.Errorf("paper total = %d, want 50", paper.TotalMarks)
	}

	wantSections := map[string]int{"a": 20, "b": 30}
	for _, sec := range paper.Sections {
		sum := 0
		for _, q := range sec.Questions {
			sum += q.Marks
		}
		if sum != sec.TotalMarks {
			t.Errorf("section %s: stored total %d, questions sum to %d", sec.ID, sec.TotalMarks, sum)
		}
		if sec.TotalMarks != wantSections[sec.ID] {
			t.Errorf("section %s: total %d, want %d", sec.ID, sec.TotalMarks, wantSections[sec.ID])
		}
	}

	if complete.Stats.Failed == 0 {
		t.Error("expected some failed questions in stats")
	}
	if complete.Stats.Succeeded+complete.Stats.Failed != complete.Stats.Requested {
		t.Errorf("stats do not add up: %+v", complete.Stats)
	}
}

func TestGenerate_QuestionNumbersAreContiguous(t *testing.T) {
	events := collect(t, context.Background(), testService(&fakeLLM{failOn: map[int]bool{2: true}}), testRequest())
	complete := terminalComplete(t, events)

	want := 1
	for _, sec := range complete.Paper.Sections {
		for _, q := range sec.Questions {
			if q.QuestionNumber != want {
				t.Fatalf("question number %d, want %d", q.QuestionNumber, want)
			}
			want++
		}
	}
	if want-1 != complete.Stats.Requested {
		t.Errorf("numbered %d questions, stats say %d", want-1, complete.Stats.Requested)
	}
}

func TestGenerate_BatchedPolicyWhenRepeatsAllowed(t *testing.T) {
	req := testRequest()
	req.Config.Settings.AllowRepeats = true

	events := collect(t, context.Background(), testService(&fakeLLM{}), req)
	complete := terminalComplete(t, events)

	if complete.Paper.TotalMarks != 50 {
		t.Errorf("paper total = %d, want 50", complete.Paper.TotalMarks)
	}

	// Batched execution still reports every completed task.
	progressEvents := 0
	for _, ev := range events {
		if _, ok := ev.(models.ProgressEvent); ok {
			progressEvents++
		}
	}
	if progressEvents != complete.Stats.Requested+1 {
		t.Errorf("got %d progress events, want %d", progressEvents, complete.Stats.Requested+1)
	}
}

func TestGenerate_NoTerminalEventAfterDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := collect(t, ctx, testService(&fakeLLM{}), testRequest())

	for _, ev := range events {
		if _, ok := ev.(models.CompleteEvent); ok {
			t.Error("complete event sent to a disconnected client")
		}
		if _, ok := ev.(models.ErrorEvent); ok {
			t.Error("error event sent to a disconnected client")
		}
	}
}

func TestGenerate_PaperCarriesRequestIdentity(t *testing.T) {
	req := testRequest()
	req.Config.Settings.TimeLimitMinutes = 90

	events := collect(t, context.Background(), testService(&fakeLLM{}), req)
	complete := terminalComplete(t, events)

	paper := complete.Paper
	if paper.ID == "" || complete.PaperID != paper.ID {
		t.Error("paper ID missing or inconsistent with the event envelope")
	}
	if paper.ExamBoard != "aqa" || paper.Qualification != "gcse" || paper.Subject != "physics" {
		t.Errorf("paper identity wrong: %+v", paper)
	}
	if paper.TimeLimitMinutes != 90 {
		t.Errorf("time limit = %d, want 90", paper.TimeLimitMinutes)
	}
	if len(paper.Sections) != 2 || paper.Sections[0].Name != "Section A" {
		t.Error("section structure not preserved")
	}
}

func TestPlan_InvalidConfigMakesNoLLMCalls(t *testing.T) {
	llm := &fakeLLM{}
	svc := testService(llm)

	req := testRequest()
	req.Config.SelectedSubtopics = nil

	if _, err := svc.Plan(req); err == nil {
		t.Fatal("expected a planning error")
	}

	var planErr *planner.PlanError
	_, err := svc.Plan(req)
	if !errors.As(err, &planErr) {
		t.Errorf("expected PlanError, got %v", err)
	}
	if llm.calls != 0 {
		t.Errorf("invalid config triggered %d LLM calls", llm.calls)
	}
}
