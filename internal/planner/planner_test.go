package planner

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/papergen/backend/internal/models"
)

func testDistributor() *Distributor {
	return NewWithRand(rand.New(rand.NewSource(42)))
}

func physicsConfig() *models.PaperConfig {
	return &models.PaperConfig{
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
	}
}

func TestDistribute_SectionMarksSumExactly(t *testing.T) {
	plan, err := testDistributor().Distribute(physicsConfig(), "physics", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	wantTargets := map[string]int{"a": 20, "b": 30}
	for _, sec := range plan.Sections {
		sum := 0
		for _, q := range sec.Questions {
			if q.Marks <= 0 {
				t.Errorf("section %s: question with non-positive marks %d", sec.SectionID, q.Marks)
			}
			sum += q.Marks
		}
		if sum != wantTargets[sec.SectionID] {
			t.Errorf("section %s: marks sum to %d, want %d", sec.SectionID, sum, wantTargets[sec.SectionID])
		}
	}
}

func TestDistribute_EveryPlanFieldPopulated(t *testing.T) {
	plan, err := testDistributor().Distribute(physicsConfig(), "physics", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	seen := map[string]bool{}
	for _, q := range plan.AllQuestions() {
		if q.ID == "" {
			t.Error("question plan with empty ID")
		}
		if seen[q.ID] {
			t.Errorf("duplicate plan ID %s", q.ID)
		}
		seen[q.ID] = true
		if q.TopicID == "" || q.Subtopic == "" {
			t.Errorf("plan %s missing topic/subtopic: %+v", q.ID, q)
		}
		if q.Difficulty == "" || q.QuestionType == "" {
			t.Errorf("plan %s missing difficulty/type: %+v", q.ID, q)
		}
	}
}

func TestDistribute_SubtopicsComeFromSelection(t *testing.T) {
	config := physicsConfig()
	plan, err := testDistributor().Distribute(config, "physics", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	for _, q := range plan.AllQuestions() {
		selected := config.SelectedSubtopics[q.TopicID]
		found := false
		for _, s := range selected {
			if s == q.Subtopic {
				found = true
			}
		}
		if !found {
			t.Errorf("plan %s uses subtopic %q not selected for topic %s", q.ID, q.Subtopic, q.TopicID)
		}
	}
}

func TestDistribute_RejectsInvalidConfigs(t *testing.T) {
	noSections := physicsConfig()
	noSections.Sections = nil

	noTopics := physicsConfig()
	noTopics.SelectedSubtopics = map[string][]string{}

	emptySubtopics := physicsConfig()
	emptySubtopics.SelectedSubtopics = map[string][]string{"phys-energy": {}}

	cases := []struct {
		name   string
		config *models.PaperConfig
	}{
		{"nil config", nil},
		{"no sections", noSections},
		{"no topics selected", noTopics},
		{"topics without subtopics", emptySubtopics},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testDistributor().Distribute(tc.config, "physics", "gcse")
			var planErr *PlanError
			if !errors.As(err, &planErr) {
				t.Fatalf("expected PlanError, got: %v", err)
			}
		})
	}
}

func TestDistribute_EssayMarkValues(t *testing.T) {
	config := &models.PaperConfig{
		TotalMarks: 60,
		Sections: []models.SectionConfig{
			{ID: "a", Name: "Section A", TargetMarks: 60},
		},
		SelectedSubtopics: map[string][]string{
			"hist-weimar-nazi": {"the weimar republic", "hitler's rise to power"},
		},
		DifficultyDistribution: models.DifficultyWeights{Easy: 1, Medium: 1, Hard: 1},
	}

	plan, err := testDistributor().Distribute(config, "history", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	sum := 0
	for _, q := range plan.AllQuestions() {
		// Essay papers are built from larger items than structured papers.
		if q.Marks < 3 {
			t.Errorf("essay question with %d marks, want at least 3", q.Marks)
		}
		sum += q.Marks
	}
	if sum != 60 {
		t.Errorf("paper marks sum to %d, want 60", sum)
	}
}

func TestResolveSectionTargets_EvenSplit(t *testing.T) {
	config := &models.PaperConfig{
		TotalMarks: 50,
		Sections: []models.SectionConfig{
			{ID: "a"}, {ID: "b"}, {ID: "c"},
		},
	}

	targets := resolveSectionTargets(config)
	want := []int{17, 17, 16}
	for i, got := range targets {
		if got != want[i] {
			t.Errorf("section %d: target %d, want %d", i, got, want[i])
		}
	}
}

func TestResolveSectionTargets_MixedExplicitAndUnset(t *testing.T) {
	config := &models.PaperConfig{
		TotalMarks: 50,
		Sections: []models.SectionConfig{
			{ID: "a", TargetMarks: 30}, {ID: "b"}, {ID: "c"},
		},
	}

	targets := resolveSectionTargets(config)
	if targets[0] != 30 {
		t.Errorf("explicit target overridden: got %d", targets[0])
	}
	if targets[1]+targets[2] != 20 {
		t.Errorf("unset sections got %d+%d, want 20 total", targets[1], targets[2])
	}
}

func TestAllocateByWeight_SumsExactly(t *testing.T) {
	cases := []struct {
		name    string
		target  int
		topics  []string
		weights map[string]float64
	}{
		{"equal weights", 20, []string{"a", "b"}, nil},
		{"skewed weights", 20, []string{"a", "b"}, map[string]float64{"a": 3, "b": 1}},
		{"indivisible", 25, []string{"a", "b", "c"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alloc := allocateByWeight(tc.target, tc.topics, tc.weights)
			sum := 0
			for _, v := range alloc {
				sum += v
			}
			if sum != tc.target {
				t.Errorf("allocations sum to %d, want %d", sum, tc.target)
			}
		})
	}
}

func TestAllocateByWeight_RespectsProportions(t *testing.T) {
	alloc := allocateByWeight(20, []string{"a", "b"}, map[string]float64{"a": 3, "b": 1})
	if alloc["a"] != 15 || alloc["b"] != 5 {
		t.Errorf("got a=%d b=%d, want a=15 b=5", alloc["a"], alloc["b"])
	}
}

func TestPickMarkValue_ClampsToRemaining(t *testing.T) {
	d := testDistributor()

	// 3 is below every valid essay mark value, so the question must land
	// exactly on the remainder.
	if got := d.pickMarkValue("essay", 3, 0); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestPickMarkValue_NeverOvershoots(t *testing.T) {
	d := testDistributor()
	for remaining := 1; remaining <= 30; remaining++ {
		got := d.pickMarkValue("quantitative", remaining, 0)
		if got > remaining {
			t.Fatalf("remaining %d: picked %d", remaining, got)
		}
		if got <= 0 {
			t.Fatalf("remaining %d: picked non-positive %d", remaining, got)
		}
	}
}

func TestDistribute_QuestionCountHint(t *testing.T) {
	config := physicsConfig()
	config.Sections = []models.SectionConfig{
		// 20 marks in roughly 4 questions steers every pick toward 5 marks.
		{ID: "a", Name: "Section A", TargetMarks: 20, TargetQuestionCount: 4},
	}

	plan, err := testDistributor().Distribute(config, "physics", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	sum := 0
	for _, q := range plan.AllQuestions() {
		if q.Marks != 5 {
			t.Errorf("hinted section produced a %d-mark question, want 5", q.Marks)
		}
		sum += q.Marks
	}
	if sum != 20 {
		t.Errorf("hinted section sums to %d, want 20", sum)
	}
}

func TestDistribute_DeterministicWithSeed(t *testing.T) {
	a, err := NewWithRand(rand.New(rand.NewSource(7))).Distribute(physicsConfig(), "physics", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	b, err := NewWithRand(rand.New(rand.NewSource(7))).Distribute(physicsConfig(), "physics", "gcse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	qa, qb := a.AllQuestions(), b.AllQuestions()
	if len(qa) != len(qb) {
		t.Fatalf("plans differ in length: %d vs %d", len(qa), len(qb))
	}
	for i := range qa {
		if qa[i].Marks != qb[i].Marks || qa[i].Difficulty != qb[i].Difficulty ||
			qa[i].QuestionType != qb[i].QuestionType || qa[i].Subtopic != qb[i].Subtopic {
			t.Errorf("plan %d differs: %+v vs %+v", i, qa[i], qb[i])
		}
	}
}
