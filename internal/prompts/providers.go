package prompts

import (
	"fmt"
	"strings"

	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/syllabus"
)

// defaultRegistry wires the subject-specific strategy providers the
// generator ships with. New subjects are added here by registration — the
// router itself never grows subject branches.
func defaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("biology", "gcse", "aqa", StrategyFunc(aqaGCSEBiology))
	r.Register("mathematics", "a-level", "edexcel", StrategyFunc(edexcelALevelMaths))
	r.Register("psychology", "a-level", "aqa", StrategyFunc(aqaALevelPsychology))
	r.Register("history", "gcse", "ocr", StrategyFunc(ocrGCSEHistory))

	return r
}

func aqaGCSEBiology(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write one AQA GCSE Biology structured question on %s (%s).\n", topic.Name, subtopic)
	fmt.Fprintf(&sb, "Difficulty: %s. ", difficulty)
	sb.WriteString(`Follow AQA house style: a short context sentence, then the task.
Use AQA command words only (describe, explain, compare, evaluate, calculate).
Prefer questions grounded in a required practical or a data set where the
subtopic allows. Mark scheme points are single creditworthy statements; do
not accept vague answers — each point must name the biological structure or
process precisely.
The solution must use correct tier-appropriate terminology.
`)
	return sb.String()
}

func edexcelALevelMaths(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write one Edexcel A Level Mathematics question on %s (%s).\n", topic.Name, subtopic)
	fmt.Fprintf(&sb, "Difficulty: %s. ", difficulty)
	sb.WriteString(`Follow Edexcel conventions: multi-part structure (a), (b) where natural,
exact values unless the question says otherwise, and "Show that" steps for
harder items. Mark scheme uses Edexcel notation: M marks for method, A marks
dependent on the preceding M, B marks independent; annotate ft and cao
where they apply. The solution must show every algebraic step — no jumps.
Include a diagram spec for any geometric or graphical setting.
`)
	return sb.String()
}

func aqaALevelPsychology(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write one AQA A Level Psychology question on %s (%s).\n", topic.Name, subtopic)
	fmt.Fprintf(&sb, "Difficulty: %s. ", difficulty)
	sb.WriteString(`Follow AQA Psychology paper style: either a short application scenario
(a named person in a situation, 40-80 words) followed by an "outline and
explain" task, or a 16-mark "Discuss" essay. For essays use the AQA levels
mark scheme (AO1 description 6 marks, AO3 evaluation 10 marks, four levels).
Evaluation points must name specific studies or methodological issues, not
generic commentary. The solution must be a full-mark exemplar.
`)
	return sb.String()
}

func ocrGCSEHistory(topic syllabus.Topic, difficulty models.Difficulty, subtopic string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write one OCR GCSE History question on %s (%s).\n", topic.Name, subtopic)
	fmt.Fprintf(&sb, "Difficulty: %s. ", difficulty)
	sb.WriteString(`Follow OCR conventions: second-order concept focus (causation, consequence,
change, significance). Use OCR stems ("Why did...", "How far do you agree...",
"Write a clear and organised summary of..."). For "how far" questions the
mark scheme is levels-based with an explicit requirement for a supported
judgement; for summary questions it is point-based. Period-specific detail
is required in every mark scheme point — reject generic statements.
`)
	return sb.String()
}
