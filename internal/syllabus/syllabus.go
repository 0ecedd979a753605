package syllabus

import "strings"

// Topic describes one curriculum topic for a subject. Boards and
// Qualifications act as filters — empty means the topic applies to all.
type Topic struct {
	ID             string
	Name           string
	Subject        string
	Subtopics      []string
	Boards         []string
	Qualifications []string
}

// Classification partitions subjects by the shape of their assessment:
// essay subjects need banded mark schemes and stimulus material,
// quantitative subjects need worked solutions and M/A/B mark notation.
type Classification string

const (
	ClassEssay        Classification = "essay"
	ClassQuantitative Classification = "quantitative"
)

var essaySubjects = map[string]bool{
	"english-literature": true,
	"english-language":   true,
	"history":            true,
	"economics":          true,
	"psychology":         true,
	"geography":          true,
	"business":           true,
	"sociology":          true,
	"religious-studies":  true,
}

// Classify returns the assessment classification for a subject.
// Unknown subjects default to quantitative.
func Classify(subject string) Classification {
	if essaySubjects[normalize(subject)] {
		return ClassEssay
	}
	return ClassQuantitative
}

// Lookup finds the topic descriptor for (topicID, subject, board,
// qualification). Returns false if the topic is unknown for that
// combination — callers fall back to a generic prompt builder.
func Lookup(topicID, subject, board, qualification string) (Topic, bool) {
	topics, ok := catalog[normalize(subject)]
	if !ok {
		return Topic{}, false
	}
	for _, t := range topics {
		if t.ID != topicID {
			continue
		}
		if !matches(t.Boards, board) || !matches(t.Qualifications, qualification) {
			continue
		}
		return t, true
	}
	return Topic{}, false
}

// TopicsFor returns all topics known for a subject under a board and
// qualification.
func TopicsFor(subject, board, qualification string) []Topic {
	var out []Topic
	for _, t := range catalog[normalize(subject)] {
		if matches(t.Boards, board) && matches(t.Qualifications, qualification) {
			out = append(out, t)
		}
	}
	return out
}

func matches(filter []string, value string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if strings.EqualFold(f, value) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, " ", "-")))
}
