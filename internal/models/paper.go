package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	TypeCalculation  QuestionType = "calculation"
	TypeExplain      QuestionType = "explain"
	TypeDataAnalysis QuestionType = "data-analysis"
	TypeGraph        QuestionType = "graph"
	TypeExtended     QuestionType = "extended"
	TypeShortAnswer  QuestionType = "short-answer"
	TypeEssay        QuestionType = "essay"
)

var ValidQuestionTypes = map[QuestionType]bool{
	TypeCalculation:  true,
	TypeExplain:      true,
	TypeDataAnalysis: true,
	TypeGraph:        true,
	TypeExtended:     true,
	TypeShortAnswer:  true,
	TypeEssay:        true,
}

// ── Paper Configuration ────────────────────────────────

type PaperSettings struct {
	AllowRepeats     bool `json:"allow_repeats"`
	TimeLimitMinutes int  `json:"time_limit_minutes"`
}

type SectionConfig struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Instructions        string `json:"instructions"`
	TargetMarks         int    `json:"target_marks"`
	TargetQuestionCount int    `json:"target_question_count,omitempty"`
}

// PaperConfig is the declarative request for a paper. Distributions are
// relative weights — they do not have to sum to 100.
type PaperConfig struct {
	TotalMarks               int                  `json:"total_marks"`
	Sections                 []SectionConfig      `json:"sections"`
	SelectedSubtopics        map[string][]string  `json:"selected_subtopics"`
	DifficultyDistribution   DifficultyWeights    `json:"difficulty_distribution"`
	QuestionTypeDistribution map[QuestionType]int `json:"question_type_distribution,omitempty"`
	TopicWeights             map[string]float64   `json:"topic_weights,omitempty"`
	Settings                 PaperSettings        `json:"settings"`
}

type DifficultyWeights struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// ── Question Plans ─────────────────────────────────────

// QuestionPlan is an immutable generation task descriptor. All plans for a
// paper are created before the first LLM call and never mutated afterward.
type QuestionPlan struct {
	ID           string       `json:"id"`
	TopicID      string       `json:"topic_id"`
	Subtopic     string       `json:"subtopic"`
	Marks        int          `json:"marks"`
	Difficulty   Difficulty   `json:"difficulty"`
	QuestionType QuestionType `json:"question_type"`
}

// ── Generated Output ───────────────────────────────────

type DiagramSpec struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
}

// GeneratedQuestion is the outcome of one QuestionPlan. A failed generation
// still yields one of these, with Failed=true and sentinel content — it is
// never dropped from the paper.
type GeneratedQuestion struct {
	ID             string       `json:"id"`
	QuestionNumber int          `json:"question_number"`
	Content        string       `json:"content"`
	Marks          int          `json:"marks"`
	Difficulty     Difficulty   `json:"difficulty"`
	QuestionType   QuestionType `json:"question_type"`
	TopicID        string       `json:"topic_id"`
	Subtopic       string       `json:"subtopic"`
	Solution       string       `json:"solution"`
	MarkScheme     []string     `json:"mark_scheme"`
	Diagram        *DiagramSpec `json:"diagram,omitempty"`
	Failed         bool         `json:"failed,omitempty"`
}

type GeneratedSection struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Instructions string              `json:"instructions"`
	Questions    []GeneratedQuestion `json:"questions"`
	TotalMarks   int                 `json:"total_marks"`
}

type GeneratedPaper struct {
	ID               string             `json:"id"`
	ExamBoard        string             `json:"exam_board"`
	Qualification    string             `json:"qualification"`
	Subject          string             `json:"subject"`
	PaperName        string             `json:"paper_name"`
	Sections         []GeneratedSection `json:"sections"`
	TotalMarks       int                `json:"total_marks"`
	TimeLimitMinutes int                `json:"time_limit_minutes"`
	Settings         PaperSettings      `json:"settings"`
	CreatedAt        time.Time          `json:"created_at"`
}

type GenerationStats struct {
	Requested  int   `json:"requested"`
	Succeeded  int   `json:"succeeded"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"duration_ms"`
}

// ── Request/Response Types ─────────────────────────────

type GeneratePaperRequest struct {
	ExamBoard     string       `json:"exam_board"`
	Qualification string       `json:"qualification"`
	Subject       string       `json:"subject"`
	PaperName     string       `json:"paper_name"`
	Config        *PaperConfig `json:"config"`
}

// ── Stream Events ──────────────────────────────────────

// The paper generation endpoint streams a sequence of JSON events, each
// tagged by a "type" field. Exactly one terminal event (complete or error)
// is sent before the stream closes.

type ProgressEvent struct {
	Type    string `json:"type"` // "progress"
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

type CompleteEvent struct {
	Type    string          `json:"type"` // "complete"
	PaperID string          `json:"paper_id"`
	Paper   *GeneratedPaper `json:"paper"`
	Stats   GenerationStats `json:"stats"`
}

type ErrorEvent struct {
	Type  string `json:"type"` // "error"
	Error string `json:"error"`
}

func NewProgressEvent(current, total int) ProgressEvent {
	return ProgressEvent{Type: "progress", Current: current, Total: total}
}

func NewCompleteEvent(paper *GeneratedPaper, stats GenerationStats) CompleteEvent {
	return CompleteEvent{Type: "complete", PaperID: paper.ID, Paper: paper, Stats: stats}
}

func NewErrorEvent(msg string) ErrorEvent {
	return ErrorEvent{Type: "error", Error: msg}
}
