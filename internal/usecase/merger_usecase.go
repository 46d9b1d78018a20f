package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ybnd/monizze-csv/internal/domain"
)

// HistoryMerger reconciles freshly retrieved history against the
// persisted record. The portal only reports a bounded window, so each
// run stitches the fresh window onto the tail of older rows the
// portal no longer returns. This relies on history being append-only
// at the source; the merger does not verify that.
type HistoryMerger struct {
	store  HistoryStore
	logger zerolog.Logger
}

// NewHistoryMerger creates a new HistoryMerger.
func NewHistoryMerger(store HistoryStore, logger zerolog.Logger) *HistoryMerger {
	return &HistoryMerger{
		store:  store,
		logger: logger,
	}
}

// MergeResult reports what a merge did.
type MergeResult struct {
	Preserved int
	Fresh     int
	Written   int
	Skipped   bool
}

// MergeAndPersist stitches fresh onto the preserved prefix of the
// stored record and rewrites the record wholesale. fresh must be
// sorted ascending by date, as produced by HistoryBuilder.Finalize.
//
// Stored rows strictly older than the oldest fresh entry are kept
// verbatim; everything from that point on is replaced by the fresh
// authoritative copy. The scan trusts the stored sort order from
// prior runs and stops at the first row that is not older, so rows
// past the cutoff are never parsed.
//
// An empty fresh collection is a no-op: the record is left untouched
// and the result is flagged Skipped.
func (m *HistoryMerger) MergeAndPersist(ctx context.Context, fresh []domain.Transaction) (*MergeResult, error) {
	if len(fresh) == 0 {
		m.logger.Warn().Msg("nothing retrieved, leaving record untouched")
		return &MergeResult{Skipped: true}, nil
	}

	oldest := fresh[0]

	rows, err := m.store.ReadRows(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		rows = nil
	}

	preserved := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := domain.ParseRow(row)
		if err != nil {
			return nil, err
		}
		if !tx.When.Before(oldest.When) {
			break
		}
		preserved = append(preserved, tx)
	}

	merged := make([]domain.Transaction, 0, len(preserved)+len(fresh))
	merged = append(merged, preserved...)
	merged = append(merged, fresh...)

	if err := m.store.WriteAll(ctx, merged); err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("oldest_fresh", oldest.Date).
		Int("preserved", len(preserved)).
		Int("fresh", len(fresh)).
		Int("written", len(merged)).
		Msg("record merged")

	return &MergeResult{
		Preserved: len(preserved),
		Fresh:     len(fresh),
		Written:   len(merged),
	}, nil
}
