package game

import (
	"context"
	"fmt"
	"time"

	"github.com/nvbach/omnitask/internal/model"
	"github.com/nvbach/omnitask/internal/store"
)

// Ledger records completed-session results. It is append-only: nothing
// here updates or deletes a score once written.
type Ledger struct {
	store store.Store
}

// NewLedger creates a ledger over the given store.
func NewLedger(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Record appends a score entry for a completed session and is a no-op
// for sessions that ended without completing (timeout, cancel).
func (l *Ledger) Record(ctx context.Context, g model.BrainGame, r Result) error {
	if !r.Completed {
		return nil
	}

	entry := model.GameScore{
		GameTitle: g.Title,
		Type:      g.Type,
		Score:     r.Score,
		Date:      time.Now(),
	}
	if err := l.store.CreateScore(ctx, entry); err != nil {
		return fmt.Errorf("recording score for %s: %w", g.Title, err)
	}

	return nil
}

// TopN returns the n highest-scoring entries, descending. Equal scores
// come back in unspecified relative order.
func (l *Ledger) TopN(ctx context.Context, n int) ([]model.GameScore, error) {
	return l.store.TopScores(ctx, n)
}
