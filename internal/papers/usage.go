package papers

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/papergen/backend/internal/models"
)

// UsageGate is consulted exactly once per request, before any streaming
// begins. It is the only point where a whole request can be rejected
// outright.
type UsageGate interface {
	IsAllowed(ctx context.Context, userID int64) (models.UsageDecision, error)
	RecordUse(ctx context.Context, userID int64)
}

// StoreGate enforces a free-tier monthly paper limit backed by the
// usage_counters table.
type StoreGate struct {
	store *Store
	limit int
}

func NewStoreGate(store *Store) *StoreGate {
	limit := 10
	if v := os.Getenv("FREE_PAPER_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return &StoreGate{store: store, limit: limit}
}

func (g *StoreGate) IsAllowed(ctx context.Context, userID int64) (models.UsageDecision, error) {
	used, err := g.store.CountUsage(ctx, userID, currentPeriod())
	if err != nil {
		return models.UsageDecision{}, err
	}

	remaining := g.limit - used
	if remaining < 0 {
		remaining = 0
	}

	return models.UsageDecision{
		Allowed:   used < g.limit,
		Tier:      "free",
		Remaining: remaining,
	}, nil
}

// RecordUse is best-effort; the paper has already been delivered.
func (g *StoreGate) RecordUse(ctx context.Context, userID int64) {
	if err := g.store.IncrementUsage(ctx, userID, currentPeriod()); err != nil {
		log.Printf("WARN: failed to record usage for user %d: %v", userID, err)
	}
}

func currentPeriod() string {
	return time.Now().UTC().Format("2006-01")
}
