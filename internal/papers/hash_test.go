package papers

import (
	"testing"

	"github.com/papergen/backend/internal/models"
)

func hashConfig() *models.PaperConfig {
	return &models.PaperConfig{
		TotalMarks: 50,
		Sections: []models.SectionConfig{
			{ID: "a", TargetMarks: 20},
			{ID: "b", TargetMarks: 30},
		},
		SelectedSubtopics: map[string][]string{
			"phys-energy":      {"efficiency"},
			"phys-electricity": {"circuits"},
		},
		DifficultyDistribution: models.DifficultyWeights{Easy: 30, Medium: 50, Hard: 20},
	}
}

func TestConfigHash_Deterministic(t *testing.T) {
	a, b := ConfigHash(hashConfig()), ConfigHash(hashConfig())
	if a != b {
		t.Errorf("same config hashed to %s and %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hash %q is not 16 hex characters", a)
	}
}

func TestConfigHash_IndependentOfMapOrder(t *testing.T) {
	base := ConfigHash(hashConfig())

	reordered := hashConfig()
	reordered.SelectedSubtopics = map[string][]string{
		"phys-electricity": {"circuits"},
		"phys-energy":      {"efficiency"},
	}
	if got := ConfigHash(reordered); got != base {
		t.Error("hash depends on map insertion order")
	}
}

func TestConfigHash_SensitiveToShape(t *testing.T) {
	base := ConfigHash(hashConfig())

	moreMarks := hashConfig()
	moreMarks.TotalMarks = 60
	if ConfigHash(moreMarks) == base {
		t.Error("hash ignores total marks")
	}

	differentTopic := hashConfig()
	differentTopic.SelectedSubtopics["phys-forces"] = []string{"momentum"}
	if ConfigHash(differentTopic) == base {
		t.Error("hash ignores topic selection")
	}

	harder := hashConfig()
	harder.DifficultyDistribution = models.DifficultyWeights{Easy: 0, Medium: 40, Hard: 60}
	if ConfigHash(harder) == base {
		t.Error("hash ignores difficulty distribution")
	}
}
