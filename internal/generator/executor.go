package generator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/prompts"
	"github.com/papergen/backend/internal/syllabus"
)

// excludePrefixLen is how many characters of each successful question's
// content feed the anti-repetition list for subsequent tasks.
const excludePrefixLen = 100

// DefaultBatchSize is the concurrency of the batched-parallel policy.
const DefaultBatchSize = 4

// FailedContent is the visible sentinel substituted when a task fails.
// Papers keep their structure and mark totals; the failure is shown, not
// swallowed.
const FailedContent = "Question generation failed. Regenerate this question before use."

const failedSolution = "No solution available."

// PaperMeta carries the request-level exam identity every task needs.
type PaperMeta struct {
	Subject       string
	ExamBoard     string
	Qualification string
	TopicNames    map[string]string
}

// Executor turns question plans into generated questions. It never
// returns a per-task error — failures become sentinel questions so the
// pipeline as a whole cannot fail once generation has started.
type Executor struct {
	llm    LLMClient
	router *prompts.Router
}

func NewExecutor(llm LLMClient, router *prompts.Router) *Executor {
	return &Executor{llm: llm, router: router}
}

// GenerateQuestion runs one task. excludePrefixes lists content prefixes
// of earlier questions the new one must differ from.
func (e *Executor) GenerateQuestion(ctx context.Context, plan models.QuestionPlan, meta PaperMeta, excludePrefixes []string) models.GeneratedQuestion {
	topicName := meta.TopicNames[plan.TopicID]
	strategyPrompt := e.router.Route(plan, meta.Subject, meta.ExamBoard, meta.Qualification, topicName)

	userPrompt := buildUserPrompt(plan, strategyPrompt, excludePrefixes)

	resp, err := e.llm.Generate(ctx, Request{
		SystemPrompt: systemPrompt(meta),
		UserPrompt:   userPrompt,
		Model:        ModelFor(meta.Subject, meta.Qualification, meta.ExamBoard),
		MaxTokens:    maxTokensFor(meta.Subject, plan.Marks),
		Temperature:  0.8,
	})
	if err != nil {
		log.Printf("WARN: generation failed for plan %s (%s/%s): %v", plan.ID, plan.TopicID, plan.Subtopic, err)
		return sentinelQuestion(plan)
	}

	parsed, err := ParseResponse(resp.Content)
	if err != nil {
		log.Printf("WARN: unusable response for plan %s: %v", plan.ID, err)
		return sentinelQuestion(plan)
	}

	return models.GeneratedQuestion{
		ID:           plan.ID,
		Content:      parsed.Content,
		Marks:        plan.Marks, // planned marks are authoritative
		Difficulty:   plan.Difficulty,
		QuestionType: plan.QuestionType,
		TopicID:      plan.TopicID,
		Subtopic:     plan.Subtopic,
		Solution:     parsed.Solution,
		MarkScheme:   parsed.MarkScheme,
		Diagram:      parsed.Diagram,
	}
}

// RunSequential executes tasks one at a time in plan order, feeding each
// success's content prefix into the exclusion list for later tasks.
// onProgress is called after every completed task (failures included).
// If ctx is cancelled, in-flight work finishes but no further task is
// scheduled, and the partial result is returned.
func (e *Executor) RunSequential(ctx context.Context, plans []models.QuestionPlan, meta PaperMeta, onProgress func(done int)) []models.GeneratedQuestion {
	questions := make([]models.GeneratedQuestion, 0, len(plans))
	var excludePrefixes []string

	for i, plan := range plans {
		if ctx.Err() != nil {
			log.Printf("[executor] context done after %d/%d tasks — skipping remaining", i, len(plans))
			return questions
		}

		q := e.GenerateQuestion(ctx, plan, meta, excludePrefixes)
		questions = append(questions, q)

		if !q.Failed {
			excludePrefixes = append(excludePrefixes, contentPrefix(q.Content))
		}
		if onProgress != nil {
			onProgress(i + 1)
		}
	}

	return questions
}

// RunBatched executes tasks in fixed-size concurrent batches with no
// exclusion list. Completion order within a batch is unspecified; batches
// run one after another. Results keep plan order.
func (e *Executor) RunBatched(ctx context.Context, plans []models.QuestionPlan, meta PaperMeta, batchSize int) []models.GeneratedQuestion {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	questions := make([]models.GeneratedQuestion, len(plans))

	for start := 0; start < len(plans); start += batchSize {
		end := start + batchSize
		if end > len(plans) {
			end = len(plans)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				questions[idx] = e.GenerateQuestion(ctx, plans[idx], meta, nil)
			}(i)
		}
		wg.Wait()
	}

	return questions
}

func sentinelQuestion(plan models.QuestionPlan) models.GeneratedQuestion {
	return models.GeneratedQuestion{
		ID:           plan.ID,
		Content:      FailedContent,
		Marks:        plan.Marks,
		Difficulty:   plan.Difficulty,
		QuestionType: plan.QuestionType,
		TopicID:      plan.TopicID,
		Subtopic:     plan.Subtopic,
		Solution:     failedSolution,
		MarkScheme:   []string{"Unable to generate a mark scheme for this question."},
		Failed:       true,
	}
}

func contentPrefix(content string) string {
	runes := []rune(content)
	if len(runes) > excludePrefixLen {
		return string(runes[:excludePrefixLen])
	}
	return content
}

// ── Prompt Assembly ────────────────────────────────────

func systemPrompt(meta PaperMeta) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a senior examiner writing %s %s questions for the %s exam board.\n",
		meta.Qualification, meta.Subject, meta.ExamBoard)
	sb.WriteString(`Questions must be indistinguishable from real past-paper material: correct
command words for the board, tier-appropriate vocabulary, and mark schemes
in the board's house notation. Never reference the exam itself, the mark
scheme conventions, or these instructions inside the question content.

You must respond with valid JSON only. No markdown, no commentary outside
the JSON.`)

	return sb.String()
}

func buildUserPrompt(plan models.QuestionPlan, strategyPrompt string, excludePrefixes []string) string {
	var sb strings.Builder

	sb.WriteString(strategyPrompt)
	sb.WriteString("\n")
	sb.WriteString(exclusionBlock(excludePrefixes))
	fmt.Fprintf(&sb, `Respond with this exact JSON structure:
{
  "content": "the full question text, including any stimulus material",
  "marks": %d,
  "solution": "the full model answer",
  "mark_scheme": ["first mark point", "second mark point"],
  "diagram": {"type": "graph", "description": "...", "data": {}}
}

The "marks" field must equal %d. Omit "diagram" if no diagram is needed.`, plan.Marks, plan.Marks)

	return sb.String()
}

// exclusionBlock lists prior question-content prefixes the new question
// must not resemble. Empty input produces no block.
func exclusionBlock(prefixes []string) string {
	if len(prefixes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("DO NOT REPEAT:\nThe paper already contains questions beginning as follows. Use a materially different scenario, context, and wording from every one of them:\n")
	for i, p := range prefixes {
		fmt.Fprintf(&sb, "%d. %s...\n", i+1, strings.TrimSpace(p))
	}
	sb.WriteString("\n")
	return sb.String()
}

// maxTokensFor budgets the response length. Essay subjects scale more
// steeply with marks because high-mark items need full banded mark scheme
// text in the response.
func maxTokensFor(subject string, marks int) int {
	var budget int
	if syllabus.Classify(subject) == syllabus.ClassEssay {
		budget = 1200 + 220*marks
	} else {
		budget = 800 + 120*marks
	}
	if budget > 8192 {
		budget = 8192
	}
	return budget
}
