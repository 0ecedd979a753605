package generator

import (
	"os"
	"strings"
)

const defaultModel = "claude-sonnet-4-5-20250929"

type modelKey struct {
	subject       string
	qualification string
	board         string
}

// modelOverrides routes specific (subject, qualification, board)
// combinations to a different model. A-level maths gets the stronger model
// because its multi-step working is where cheaper models drop marks.
var modelOverrides = map[modelKey]string{
	{"mathematics", "a-level", "edexcel"}: "claude-opus-4-5-20251101",
	{"mathematics", "a-level", "aqa"}:     "claude-opus-4-5-20251101",
	{"mathematics", "a-level", "ocr"}:     "claude-opus-4-5-20251101",
}

// ModelFor returns the model to use for one generation task. Precedence:
// ANTHROPIC_MODEL env override, then the per-combination table, then the
// default.
func ModelFor(subject, qualification, board string) string {
	if m := os.Getenv("ANTHROPIC_MODEL"); m != "" {
		return m
	}
	key := modelKey{
		subject:       normalize(subject),
		qualification: normalize(qualification),
		board:         normalize(board),
	}
	if m, ok := modelOverrides[key]; ok {
		return m
	}
	return defaultModel
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, " ", "-")))
}
