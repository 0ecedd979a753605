package papers

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/papergen/backend/internal/models"
)

// ConfigHash is a cheap deterministic digest of the config's shape: mark
// total, section ids, sorted selected topic ids, and the difficulty
// distribution. Stored alongside the paper; never used as a cache key.
func ConfigHash(config *models.PaperConfig) string {
	h := fnv.New64a()

	fmt.Fprintf(h, "marks:%d;", config.TotalMarks)
	for _, s := range config.Sections {
		fmt.Fprintf(h, "sec:%s:%d;", s.ID, s.TargetMarks)
	}

	topicIDs := make([]string, 0, len(config.SelectedSubtopics))
	for id := range config.SelectedSubtopics {
		topicIDs = append(topicIDs, id)
	}
	sort.Strings(topicIDs)
	for _, id := range topicIDs {
		fmt.Fprintf(h, "topic:%s;", id)
	}

	d := config.DifficultyDistribution
	fmt.Fprintf(h, "diff:%d:%d:%d;", d.Easy, d.Medium, d.Hard)

	return fmt.Sprintf("%016x", h.Sum64())
}
