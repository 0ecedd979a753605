package papers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/papergen/backend/internal/generator"
	"github.com/papergen/backend/internal/models"
	"github.com/papergen/backend/internal/planner"
	"github.com/papergen/backend/internal/syllabus"
)

// Service orchestrates one paper-generation request: plan, generate with
// incremental progress, assemble, then persist best-effort. All state is
// request-scoped; nothing here is shared across requests.
type Service struct {
	distributor *planner.Distributor
	executor    *generator.Executor
	store       *Store
	gate        UsageGate
	batchSize   int
}

func NewService(distributor *planner.Distributor, executor *generator.Executor, store *Store, gate UsageGate) *Service {
	return &Service{
		distributor: distributor,
		executor:    executor,
		store:       store,
		gate:        gate,
		batchSize:   generator.DefaultBatchSize,
	}
}

func (s *Service) Gate() UsageGate {
	return s.gate
}

// Plan validates the config and builds the full set of question plans.
// Called before the stream opens so invalid requests get a plain client
// error and zero generation calls.
func (s *Service) Plan(req models.GeneratePaperRequest) (*planner.PaperPlan, error) {
	return s.distributor.Distribute(req.Config, req.Subject, req.Qualification)
}

// Generate runs the pipeline for a pre-validated plan, emitting progress
// events followed by exactly one terminal event. Individual task failures
// are absorbed as sentinel questions; once generation begins, the only
// outcome that is not "complete" is a client disconnect (no terminal event
// is sent to a dead stream).
func (s *Service) Generate(ctx context.Context, userID int64, req models.GeneratePaperRequest, plan *planner.PaperPlan, emit func(event any) error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[papers] pipeline panic: %v", r)
			emit(models.NewErrorEvent("paper generation failed unexpectedly"))
		}
	}()

	start := time.Now()
	total := plan.TotalQuestions()

	if err := emit(models.NewProgressEvent(0, total)); err != nil {
		return
	}

	meta := generator.PaperMeta{
		Subject:       req.Subject,
		ExamBoard:     req.ExamBoard,
		Qualification: req.Qualification,
		TopicNames:    topicNames(plan, req),
	}

	questions := s.run(ctx, plan, meta, req.Config, total, emit)
	if ctx.Err() != nil {
		log.Printf("[papers] client disconnected mid-stream — paper abandoned")
		return
	}

	paper := assemble(plan, questions, req)
	stats := buildStats(questions, time.Since(start))

	if err := emit(models.NewCompleteEvent(paper, stats)); err != nil {
		return
	}

	// Persistence is fire-and-forget: the paper has already been delivered,
	// so a storage failure must never surface on the stream.
	if s.store != nil {
		hash := ConfigHash(req.Config)
		go s.persist(userID, paper, hash)
	}
}

// run picks the execution policy. Sequential-with-dedup is the default:
// the exclusion list is an ordered accumulator, so anti-repetition needs
// ordered execution. When the config allows repeats, throughput wins and
// tasks run in concurrent batches instead.
func (s *Service) run(ctx context.Context, plan *planner.PaperPlan, meta generator.PaperMeta, config *models.PaperConfig, total int, emit func(event any) error) []models.GeneratedQuestion {
	plans := plan.AllQuestions()

	if config.Settings.AllowRepeats {
		questions := make([]models.GeneratedQuestion, 0, len(plans))
		done := 0
		for start := 0; start < len(plans); start += s.batchSize {
			end := start + s.batchSize
			if end > len(plans) {
				end = len(plans)
			}
			if ctx.Err() != nil {
				return questions
			}
			batch := s.executor.RunBatched(ctx, plans[start:end], meta, s.batchSize)
			questions = append(questions, batch...)
			for range batch {
				done++
				emit(models.NewProgressEvent(done, total))
			}
		}
		return questions
	}

	return s.executor.RunSequential(ctx, plans, meta, func(done int) {
		emit(models.NewProgressEvent(done, total))
	})
}

func (s *Service) persist(userID int64, paper *models.GeneratedPaper, configHash string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.store.SavePaper(ctx, userID, paper, configHash); err != nil {
		log.Printf("WARN: failed to persist paper %s: %v", paper.ID, err)
		return
	}
	if userID > 0 && s.gate != nil {
		s.gate.RecordUse(ctx, userID)
	}
}

// assemble rebuilds the flat question list into the original section
// structure. Question numbers are paper-global and contiguous; section and
// paper totals are recomputed from the questions, never trusted from the
// plan — a sentinel-failed question still carries its planned marks, so
// totals hold even under partial failure.
func assemble(plan *planner.PaperPlan, questions []models.GeneratedQuestion, req models.GeneratePaperRequest) *models.GeneratedPaper {
	byID := make(map[string]models.GeneratedQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	paper := &models.GeneratedPaper{
		ID:               uuid.NewString(),
		ExamBoard:        req.ExamBoard,
		Qualification:    req.Qualification,
		Subject:          req.Subject,
		PaperName:        req.PaperName,
		Settings:         req.Config.Settings,
		TimeLimitMinutes: req.Config.Settings.TimeLimitMinutes,
		CreatedAt:        time.Now().UTC(),
	}

	number := 0
	for _, sp := range plan.Sections {
		section := models.GeneratedSection{
			ID:           sp.SectionID,
			Name:         sp.SectionName,
			Instructions: sp.Instructions,
		}
		for _, qp := range sp.Questions {
			q, ok := byID[qp.ID]
			if !ok {
				continue
			}
			number++
			q.QuestionNumber = number
			section.Questions = append(section.Questions, q)
			section.TotalMarks += q.Marks
		}
		paper.TotalMarks += section.TotalMarks
		paper.Sections = append(paper.Sections, section)
	}

	return paper
}

func buildStats(questions []models.GeneratedQuestion, elapsed time.Duration) models.GenerationStats {
	stats := models.GenerationStats{
		Requested:  len(questions),
		DurationMs: elapsed.Milliseconds(),
	}
	for _, q := range questions {
		if q.Failed {
			stats.Failed++
		} else {
			stats.Succeeded++
		}
	}
	return stats
}

// topicNames resolves each planned topic to a display name, falling back
// to the raw topic id when the syllabus has no entry.
func topicNames(plan *planner.PaperPlan, req models.GeneratePaperRequest) map[string]string {
	names := make(map[string]string)
	for _, sp := range plan.Sections {
		for _, qp := range sp.Questions {
			if _, ok := names[qp.TopicID]; ok {
				continue
			}
			if t, found := syllabus.Lookup(qp.TopicID, req.Subject, req.ExamBoard, req.Qualification); found {
				names[qp.TopicID] = t.Name
			} else {
				names[qp.TopicID] = qp.TopicID
			}
		}
	}
	return names
}
