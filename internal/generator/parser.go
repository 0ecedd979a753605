package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/papergen/backend/internal/models"
)

// ParsedQuestion is the structured block extracted from one LLM response.
type ParsedQuestion struct {
	Content    string              `json:"content"`
	Marks      int                 `json:"marks"`
	Solution   string              `json:"solution"`
	MarkScheme []string            `json:"mark_scheme"`
	Diagram    *models.DiagramSpec `json:"diagram,omitempty"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse extracts and validates the structured question block from
// a raw model response.
func ParseResponse(responseBody string) (*ParsedQuestion, error) {
	cleaned := stripCodeFences(responseBody)
	if cleaned == "" {
		return nil, &ValidationError{Errors: []string{"empty response"}}
	}

	var q ParsedQuestion
	if err := json.Unmarshal([]byte(cleaned), &q); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestion(&q); err != nil {
		return nil, err
	}

	return &q, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuestion(q *ParsedQuestion) error {
	var errs []string

	if strings.TrimSpace(q.Content) == "" {
		errs = append(errs, "empty content")
	}
	if strings.TrimSpace(q.Solution) == "" {
		errs = append(errs, "empty solution")
	}
	if len(q.MarkScheme) == 0 {
		errs = append(errs, "empty mark_scheme")
	}
	for i, entry := range q.MarkScheme {
		if strings.TrimSpace(entry) == "" {
			errs = append(errs, fmt.Sprintf("mark_scheme entry %d is empty", i+1))
		}
	}
	if q.Diagram != nil && q.Diagram.Type == "" {
		errs = append(errs, "diagram present but has no type")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
