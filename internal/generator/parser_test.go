package generator

import (
	"strings"
	"testing"
)

const validQuestionJSON = `{
  "content": "A 2 kg trolley accelerates from rest to 6 m/s in 4 s. Calculate the resultant force acting on the trolley.",
  "marks": 3,
  "solution": "a = (6 - 0) / 4 = 1.5 m/s^2. F = ma = 2 x 1.5 = 3 N.",
  "mark_scheme": ["M1 calculates acceleration", "M1 applies F = ma", "A1 3 N cao"]
}`

func TestParseResponse_Valid(t *testing.T) {
	q, err := ParseResponse(validQuestionJSON)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if q.Marks != 3 {
		t.Errorf("marks = %d, want 3", q.Marks)
	}
	if len(q.MarkScheme) != 3 {
		t.Errorf("mark scheme entries = %d, want 3", len(q.MarkScheme))
	}
	if q.Diagram != nil {
		t.Error("no diagram was supplied")
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	for _, fence := range []string{"```json\n%s\n```", "```\n%s\n```"} {
		input := strings.Replace(fence, "%s", validQuestionJSON, 1)
		if _, err := ParseResponse(input); err != nil {
			t.Errorf("fenced input %q prefix failed: %v", input[:6], err)
		}
	}
}

func TestParseResponse_DiagramSpec(t *testing.T) {
	input := `{
  "content": "The graph shows velocity against time for a cyclist. Using the graph, work out the distance travelled in the first 10 s.",
  "marks": 2,
  "solution": "Distance is the area under the graph: 0.5 x 10 x 8 = 40 m.",
  "mark_scheme": ["M1 area under graph", "A1 40 m"],
  "diagram": {"type": "graph", "description": "velocity-time graph rising linearly from 0 to 8 m/s over 10 s", "data": {"x_axis": "time / s", "y_axis": "velocity / m/s"}}
}`

	q, err := ParseResponse(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if q.Diagram == nil {
		t.Fatal("diagram spec dropped")
	}
	if q.Diagram.Type != "graph" {
		t.Errorf("diagram type %q", q.Diagram.Type)
	}
}

func TestParseResponse_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prose not json", "Here is your question: what is 2+2?"},
		{"missing content", `{"marks": 2, "solution": "x=2", "mark_scheme": ["A1"]}`},
		{"missing solution", `{"content": "Solve x+1=3.", "marks": 2, "mark_scheme": ["A1"]}`},
		{"empty mark scheme", `{"content": "Solve x+1=3.", "marks": 2, "solution": "x=2", "mark_scheme": []}`},
		{"blank mark scheme entry", `{"content": "Solve x+1=3.", "marks": 2, "solution": "x=2", "mark_scheme": ["A1", "  "]}`},
		{"diagram without type", `{"content": "Sketch y=x^2.", "marks": 2, "solution": "Parabola.", "mark_scheme": ["B1 shape", "B1 vertex"], "diagram": {"description": "a parabola"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseResponse(tc.input); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestModelFor(t *testing.T) {
	t.Setenv("ANTHROPIC_MODEL", "")

	if got := ModelFor("physics", "gcse", "aqa"); got != defaultModel {
		t.Errorf("unmapped combination should use the default model, got %q", got)
	}
	if got := ModelFor("Mathematics", "A-Level", "Edexcel"); got == defaultModel {
		t.Error("A-level maths should route to the override model")
	}

	t.Setenv("ANTHROPIC_MODEL", "claude-test-model")
	if got := ModelFor("mathematics", "a-level", "edexcel"); got != "claude-test-model" {
		t.Errorf("env override ignored, got %q", got)
	}
}
