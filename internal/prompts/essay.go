package prompts

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/papergen/backend/internal/models"
)

// bandedThreshold is the mark value at or above which essay questions get
// full level-descriptor mark scheme guidance instead of a flat point list.
const bandedThreshold = 8

type essayFormat struct {
	name         string
	commandWords []string
	minMarks     int
	maxMarks     int
}

var essayFormats = []essayFormat{
	{name: "data-response", commandWords: []string{"Using the source, explain", "With reference to the extract, explain"}, minMarks: 0, maxMarks: 12},
	{name: "explain", commandWords: []string{"Explain", "Describe and explain"}, minMarks: 0, maxMarks: 10},
	{name: "analyse", commandWords: []string{"Analyse", "Examine"}, minMarks: 6, maxMarks: 16},
	{name: "short-essay", commandWords: []string{"Discuss", "Assess"}, minMarks: 8, maxMarks: 16},
	{name: "extended-essay", commandWords: []string{"Evaluate", "To what extent do you agree that"}, minMarks: 16, maxMarks: 0},
}

// formatsByDifficulty narrows the candidate formats before the mark filter
// is applied. Harder questions pull from the analytical end.
var formatsByDifficulty = map[models.Difficulty][]string{
	models.DifficultyEasy:   {"data-response", "explain"},
	models.DifficultyMedium: {"data-response", "explain", "analyse", "short-essay"},
	models.DifficultyHard:   {"analyse", "short-essay", "extended-essay"},
}

// EssayBuilder is the generic prompt builder for essay-style subjects
// (literature, history, economics, psychology, geography, business).
type EssayBuilder struct {
	rng *rand.Rand
}

func (b *EssayBuilder) Build(plan models.QuestionPlan, subject, qualification, topicName string) string {
	format := b.pickFormat(plan)
	command := format.commandWords[b.rng.Intn(len(format.commandWords))]

	var sb strings.Builder

	fmt.Fprintf(&sb, "Write one %s exam question for %s (%s) on the topic %q, subtopic %q.\n",
		format.name, subject, qualification, topicName, plan.Subtopic)
	fmt.Fprintf(&sb, "The question is worth exactly %d marks at %s difficulty.\n", plan.Marks, plan.Difficulty)
	fmt.Fprintf(&sb, "Begin the question with the command word %q.\n\n", command)

	b.writeStimulus(&sb, subject, plan.Subtopic, format)

	if plan.Marks >= bandedThreshold {
		writeBandedMarkScheme(&sb, plan.Marks)
	} else {
		fmt.Fprintf(&sb, "MARK SCHEME:\nProvide a flat list of exactly %d creditworthy points, one mark each. Each point must be a specific, markable statement a student could plausibly write.\n", plan.Marks)
	}

	sb.WriteString("\nThe model solution must be a full-mark exemplar answer written in the register of a strong exam candidate.\n")

	return sb.String()
}

func (b *EssayBuilder) pickFormat(plan models.QuestionPlan) essayFormat {
	allowed := formatsByDifficulty[plan.Difficulty]
	if allowed == nil {
		allowed = formatsByDifficulty[models.DifficultyMedium]
	}

	var candidates []essayFormat
	for _, f := range essayFormats {
		if !contains(allowed, f.name) {
			continue
		}
		if plan.Marks < f.minMarks {
			continue
		}
		if f.maxMarks > 0 && plan.Marks > f.maxMarks {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		// No format fits the mark value; fall back to a plain explain item.
		return essayFormats[1]
	}
	return candidates[b.rng.Intn(len(candidates))]
}

func (b *EssayBuilder) writeStimulus(sb *strings.Builder, subject, subtopic string, format essayFormat) {
	if !stimulusSubject(subject) {
		if format.name == "data-response" {
			sb.WriteString("STIMULUS:\nInvent a short, realistic stimulus (a data table, case study, or scenario of 60-120 words) for the question to reference. Include it verbatim in the question content.\n\n")
		}
		return
	}

	if material, ok := LookupStimulus(subject, subtopic); ok {
		fmt.Fprintf(sb, "STIMULUS:\nBase the question on this %s. Quote it in full at the start of the question content, attributed to %s:\n%s\n\n",
			material.Kind, material.Source, material.Text)
		return
	}

	sb.WriteString("STIMULUS:\nNo curated source is available for this subtopic. Synthesize a plausible period-appropriate stimulus of 60-120 words and include it verbatim in the question content, clearly marked as adapted material.\n\n")
}

// writeBandedMarkScheme emits assessment-objective guidance plus banded
// level descriptors sized to the exact mark value.
func writeBandedMarkScheme(sb *strings.Builder, marks int) {
	ao1 := marks / 2
	ao3 := marks - ao1

	fmt.Fprintf(sb, "MARK SCHEME:\nUse a levels-of-response mark scheme totalling exactly %d marks.\n", marks)
	fmt.Fprintf(sb, "Assessment objectives: AO1 (knowledge and understanding) %d marks, AO3 (analysis and evaluation) %d marks.\n", ao1, ao3)

	levels := 3
	if marks >= 16 {
		levels = 4
	}
	sb.WriteString("Level descriptors (top level first):\n")

	upper := marks
	for l := levels; l >= 1; l-- {
		lower := (marks*(l-1))/levels + 1
		fmt.Fprintf(sb, "- Level %d (%d-%d marks): %s\n", l, lower, upper, levelDescriptor(l, levels))
		upper = lower - 1
	}
	sb.WriteString("Each mark scheme entry must name the level, its mark range, and the qualities of an answer in that band.\n")
}

func levelDescriptor(level, levels int) string {
	switch {
	case level == levels:
		return "sustained, well-structured argument; precise use of evidence; evaluative judgement reached and supported"
	case level == levels-1:
		return "clear explanation with mostly relevant evidence; some analysis, limited evaluation"
	case level == 1:
		return "simple or generalised statements; little supporting evidence"
	default:
		return "some relevant knowledge; description outweighs analysis"
	}
}

func stimulusSubject(subject string) bool {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(subject, " ", "-"))) {
	case "english-literature", "english-language", "history":
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
