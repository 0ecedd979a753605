package papers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/papergen/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SavePaper persists one fully assembled paper. Callers treat this as
// best-effort: the paper has already been streamed to the client.
func (s *Store) SavePaper(ctx context.Context, userID int64, paper *models.GeneratedPaper, configHash string) error {
	sectionsJSON, err := json.Marshal(paper.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	settingsJSON, err := json.Marshal(paper.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	var uid any
	if userID > 0 {
		uid = userID
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generated_papers
		 (paper_id, user_id, config_hash, exam_board, qualification, subject, paper_name,
		  sections, total_marks, time_limit_minutes, settings, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		paper.ID, uid, configHash, paper.ExamBoard, paper.Qualification, paper.Subject,
		paper.PaperName, sectionsJSON, paper.TotalMarks, paper.TimeLimitMinutes,
		settingsJSON, paper.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert paper: %w", err)
	}
	return nil
}

func (s *Store) GetPaper(ctx context.Context, paperID string) (*models.GeneratedPaper, error) {
	var paper models.GeneratedPaper
	var sectionsJSON, settingsJSON []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT paper_id, exam_board, qualification, subject, paper_name,
		        sections, total_marks, time_limit_minutes, settings, created_at
		 FROM generated_papers WHERE paper_id = $1`,
		paperID,
	).Scan(&paper.ID, &paper.ExamBoard, &paper.Qualification, &paper.Subject,
		&paper.PaperName, &sectionsJSON, &paper.TotalMarks, &paper.TimeLimitMinutes,
		&settingsJSON, &paper.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sectionsJSON, &paper.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	if err := json.Unmarshal(settingsJSON, &paper.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &paper, nil
}

// ── Usage Counters ─────────────────────────────────────

func (s *Store) CountUsage(ctx context.Context, userID int64, period string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(papers_generated, 0) FROM usage_counters WHERE user_id = $1 AND period = $2`,
		userID, period,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count usage: %w", err)
	}
	return count, nil
}

func (s *Store) IncrementUsage(ctx context.Context, userID int64, period string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_counters (user_id, period, papers_generated)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, period)
		 DO UPDATE SET papers_generated = usage_counters.papers_generated + 1`,
		userID, period,
	)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	return nil
}
