package prompts

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/papergen/backend/internal/models"
)

type quantFormat struct {
	name         string
	commandWords []string
}

// quantFormats maps a requested question type to a format for quantitative
// subjects (maths and the sciences). Types that only make sense on essay
// papers collapse to the short extended response format.
var quantFormats = map[models.QuestionType]quantFormat{
	models.TypeCalculation:  {name: "calculation", commandWords: []string{"Calculate", "Work out", "Show that"}},
	models.TypeExplain:      {name: "explain", commandWords: []string{"Explain why", "Describe", "State and explain"}},
	models.TypeDataAnalysis: {name: "data-response", commandWords: []string{"Using the data", "Using the graph", "Using the table"}},
	models.TypeGraph:        {name: "data-response", commandWords: []string{"Plot", "Sketch", "Using the graph"}},
	models.TypeShortAnswer:  {name: "explain", commandWords: []string{"State", "Give", "Name"}},
	models.TypeExtended:     {name: "short-extended-response", commandWords: []string{"Compare", "Evaluate", "Describe in detail"}},
	models.TypeEssay:        {name: "short-extended-response", commandWords: []string{"Compare", "Evaluate"}},
}

// QuantBuilder is the generic prompt builder for quantitative subjects.
type QuantBuilder struct {
	rng *rand.Rand
}

func (b *QuantBuilder) Build(plan models.QuestionPlan, subject, topicName string) string {
	format, ok := quantFormats[plan.QuestionType]
	if !ok {
		format = quantFormats[models.TypeExplain]
	}
	command := format.commandWords[b.rng.Intn(len(format.commandWords))]

	var sb strings.Builder

	fmt.Fprintf(&sb, "Write one %s exam question for %s on the topic %q, subtopic %q.\n",
		format.name, subject, topicName, plan.Subtopic)
	fmt.Fprintf(&sb, "The question is worth exactly %d marks at %s difficulty.\n", plan.Marks, plan.Difficulty)
	fmt.Fprintf(&sb, "Use the command word %q.\n\n", command)

	if format.name == "data-response" {
		sb.WriteString("Include a small realistic data set or described graph in the question content for the student to work from.\n\n")
	}

	sb.WriteString("DIAGRAM:\nIf a diagram would help (circuit, graph axes, geometric figure, apparatus), include a structured diagram spec in the response with a type, a one-line description, and the data needed to draw it. Omit it otherwise.\n\n")

	writeQuantMarkScheme(&sb, format.name, plan.Marks)

	sb.WriteString("\nThe model solution must show full working, with the final answer on its own line.\n")

	return sb.String()
}

// writeQuantMarkScheme emits mark scheme notation conventions matched to
// the exact mark value: M (method), A (accuracy, dependent on M), B
// (independent), with ft (follow through) and cao (correct answer only)
// tags where they apply.
func writeQuantMarkScheme(sb *strings.Builder, format string, marks int) {
	fmt.Fprintf(sb, "MARK SCHEME:\nProvide exactly %d mark points using standard notation.\n", marks)

	switch format {
	case "calculation":
		switch {
		case marks == 1:
			sb.WriteString("Single B1 mark, cao.\n")
		case marks == 2:
			sb.WriteString("M1 for a correct method step, A1 for the correct answer (cao).\n")
		default:
			fmt.Fprintf(sb, "M1 for each of the %d method steps, A1 for the final answer. Mark intermediate results ft from an earlier error.\n", marks-1)
		}
	case "explain":
		fmt.Fprintf(sb, "B1 for each of %d independent creditworthy points. No ft.\n", marks)
	case "data-response":
		sb.WriteString("B1 for each correct reading or manipulation of the data, M1/A1 for any calculation steps, ft from a misread value where the method is otherwise sound.\n")
	default:
		fmt.Fprintf(sb, "Award level-free points: B1 for each of %d distinct comparisons or judgements, each tied to the stimulus.\n", marks)
	}

	sb.WriteString("Each mark scheme entry must begin with its notation tag (M1, A1 or B1) followed by the creditworthy statement.\n")
}
