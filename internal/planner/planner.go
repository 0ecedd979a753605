package planner

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/syllabus"
)

// PlanError is a request-invalid condition detected before any generation
// call is made.
type PlanError struct {
	Reason string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("invalid paper config: %s", e.Reason)
}

type SectionPlan struct {
	SectionID    string
	SectionName  string
	Instructions string
	Questions    []models.QuestionPlan
}

type PaperPlan struct {
	Sections []SectionPlan
}

// AllQuestions returns every plan in section order.
func (p *PaperPlan) AllQuestions() []models.QuestionPlan {
	var out []models.QuestionPlan
	for _, s := range p.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

func (p *PaperPlan) TotalQuestions() int {
	n := 0
	for _, s := range p.Sections {
		n += len(s.Questions)
	}
	return n
}

// Valid per-question mark values by subject classification. Quantitative
// papers are built from short structured items; essay papers from larger
// banded responses.
var markValues = map[syllabus.Classification][]int{
	syllabus.ClassQuantitative: {1, 2, 3, 4, 5, 6},
	syllabus.ClassEssay:        {4, 6, 8, 10, 12, 16, 20, 25},
}

type Distributor struct {
	rng *rand.Rand
}

func New() *Distributor {
	return &Distributor{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand builds a distributor with an injected source, for
// deterministic tests.
func NewWithRand(rng *rand.Rand) *Distributor {
	return &Distributor{rng: rng}
}

// Distribute turns a paper config into a concrete ordered list of question
// plans. The binding invariant: for every section, the plan's marks sum to
// exactly the section's target.
func (d *Distributor) Distribute(config *models.PaperConfig, subject, qualification string) (*PaperPlan, error) {
	if config == nil {
		return nil, &PlanError{Reason: "config is required"}
	}
	if len(config.Sections) == 0 {
		return nil, &PlanError{Reason: "at least one section is required"}
	}
	if len(config.SelectedSubtopics) == 0 {
		return nil, &PlanError{Reason: "at least one topic must be selected"}
	}

	class := syllabus.Classify(subject)
	topics := selectedTopics(config)
	if len(topics) == 0 {
		return nil, &PlanError{Reason: "no selected topic has any subtopics"}
	}

	sectionTargets := resolveSectionTargets(config)

	plan := &PaperPlan{}
	for i, sec := range config.Sections {
		target := sectionTargets[i]
		if target <= 0 {
			return nil, &PlanError{Reason: fmt.Sprintf("section %q has no target marks", sec.ID)}
		}

		questions, err := d.planSection(config, sec, target, topics, class)
		if err != nil {
			return nil, err
		}

		plan.Sections = append(plan.Sections, SectionPlan{
			SectionID:    sec.ID,
			SectionName:  sec.Name,
			Instructions: sec.Instructions,
			Questions:    questions,
		})
	}

	if plan.TotalQuestions() == 0 {
		return nil, &PlanError{Reason: "distribution produced no questions"}
	}

	return plan, nil
}

// selectedTopics returns topic IDs that carry at least one subtopic, in
// stable order.
func selectedTopics(config *models.PaperConfig) []string {
	var ids []string
	for id, subs := range config.SelectedSubtopics {
		if len(subs) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// resolveSectionTargets fills in missing per-section targets from the paper
// total, splitting evenly with the remainder going to the earliest sections.
func resolveSectionTargets(config *models.PaperConfig) []int {
	targets := make([]int, len(config.Sections))
	unset := 0
	remaining := config.TotalMarks
	for i, s := range config.Sections {
		targets[i] = s.TargetMarks
		if s.TargetMarks > 0 {
			remaining -= s.TargetMarks
		} else {
			unset++
		}
	}
	if unset == 0 || remaining <= 0 {
		return targets
	}
	share := remaining / unset
	extra := remaining % unset
	for i := range targets {
		if targets[i] > 0 {
			continue
		}
		targets[i] = share
		if extra > 0 {
			targets[i]++
			extra--
		}
	}
	return targets
}

func (d *Distributor) planSection(config *models.PaperConfig, sec models.SectionConfig, target int, topics []string, class syllabus.Classification) ([]models.QuestionPlan, error) {
	allocations := allocateByWeight(target, topics, config.TopicWeights)

	// TargetQuestionCount is a soft sizing hint: it steers question size
	// toward target/count marks but never breaks mark exactness.
	hint := 0
	if sec.TargetQuestionCount > 0 {
		hint = target / sec.TargetQuestionCount
	}

	var questions []models.QuestionPlan
	for _, topicID := range topics {
		remaining := allocations[topicID]
		subtopics := config.SelectedSubtopics[topicID]

		for remaining > 0 {
			marks := d.pickMarkValue(class, remaining, hint)
			remaining -= marks

			questions = append(questions, models.QuestionPlan{
				ID:           uuid.NewString(),
				TopicID:      topicID,
				Subtopic:     subtopics[d.rng.Intn(len(subtopics))],
				Marks:        marks,
				Difficulty:   d.pickDifficulty(config.DifficultyDistribution),
				QuestionType: d.pickQuestionType(config.QuestionTypeDistribution, class),
			})
		}
	}

	if len(questions) == 0 {
		return nil, &PlanError{Reason: fmt.Sprintf("section %q has no valid subtopic selection", sec.ID)}
	}

	return questions, nil
}

// allocateByWeight splits target marks across topics proportionally to
// their weights (default 1.0), using largest-remainder rounding so the
// allocations sum to exactly the target.
func allocateByWeight(target int, topics []string, weights map[string]float64) map[string]int {
	totalWeight := 0.0
	for _, id := range topics {
		totalWeight += weightFor(weights, id)
	}

	type share struct {
		id       string
		floor    int
		fraction float64
	}

	shares := make([]share, 0, len(topics))
	allocated := 0
	for _, id := range topics {
		exact := float64(target) * weightFor(weights, id) / totalWeight
		fl := int(exact)
		shares = append(shares, share{id: id, floor: fl, fraction: exact - float64(fl)})
		allocated += fl
	}

	// Hand out the leftover marks to the largest fractional remainders.
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].fraction > shares[j].fraction })
	for i := 0; allocated < target; i++ {
		shares[i%len(shares)].floor++
		allocated++
	}

	out := make(map[string]int, len(shares))
	for _, s := range shares {
		out[s.id] = s.floor
	}
	return out
}

func weightFor(weights map[string]float64, topicID string) float64 {
	if w, ok := weights[topicID]; ok && w > 0 {
		return w
	}
	return 1.0
}

// pickMarkValue samples a valid mark value no greater than remaining; when
// nothing in the valid set fits, the question is clamped to land exactly on
// the remaining marks rather than overshoot. A non-zero sizeHint narrows
// the draw to the valid values nearest the hint.
func (d *Distributor) pickMarkValue(class syllabus.Classification, remaining, sizeHint int) int {
	var candidates []int
	for _, v := range markValues[class] {
		if v <= remaining {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return remaining
	}
	if sizeHint > 0 {
		candidates = nearestTo(candidates, sizeHint)
	}
	pick := candidates[d.rng.Intn(len(candidates))]
	// Avoid stranding a remainder below the smallest valid value.
	if left := remaining - pick; left > 0 && left < markValues[class][0] {
		return remaining
	}
	return pick
}

// nearestTo keeps the candidates with the smallest distance to the hint.
func nearestTo(candidates []int, hint int) []int {
	best := -1
	for _, v := range candidates {
		d := v - hint
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	var out []int
	for _, v := range candidates {
		d := v - hint
		if d < 0 {
			d = -d
		}
		if d == best {
			out = append(out, v)
		}
	}
	return out
}

func (d *Distributor) pickDifficulty(w models.DifficultyWeights) models.Difficulty {
	weights := []int{w.Easy, w.Medium, w.Hard}
	total := w.Easy + w.Medium + w.Hard
	if total <= 0 {
		weights = []int{1, 1, 1}
		total = 3
	}
	r := d.rng.Intn(total)
	levels := []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
	for i, wt := range weights {
		if r < wt {
			return levels[i]
		}
		r -= wt
	}
	return models.DifficultyMedium
}

var defaultTypeWeights = map[syllabus.Classification]map[models.QuestionType]int{
	syllabus.ClassQuantitative: {
		models.TypeCalculation:  3,
		models.TypeExplain:      2,
		models.TypeDataAnalysis: 1,
	},
	syllabus.ClassEssay: {
		models.TypeExplain:  2,
		models.TypeExtended: 2,
		models.TypeEssay:    1,
	},
}

func (d *Distributor) pickQuestionType(dist map[models.QuestionType]int, class syllabus.Classification) models.QuestionType {
	weights := dist
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		weights = defaultTypeWeights[class]
		for _, w := range weights {
			total += w
		}
	}

	// Stable iteration so an injected rand source yields the same plan.
	types := make([]models.QuestionType, 0, len(weights))
	for t, w := range weights {
		if w > 0 {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	r := d.rng.Intn(total)
	for _, t := range types {
		if r < weights[t] {
			return t
		}
		r -= weights[t]
	}
	return models.TypeExplain
}
