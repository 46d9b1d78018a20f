package usecase

import (
	"context"

	"github.com/ybnd/monizze-csv/internal/domain"
)

// TransactionSource yields portal history pages one at a time. Paging
// is sequential: callers consult HasMore between fetches and never
// overlap NextPage calls.
type TransactionSource interface {
	// NextPage returns the next page of voucher history.
	NextPage(ctx context.Context) (domain.Page, error)
	// HasMore reports whether the source can produce another page.
	HasMore() bool
}

// HistoryStore reads and rewrites the persisted transaction record as
// a whole. There is no incremental append; a run reads once and
// writes once.
type HistoryStore interface {
	// ReadRows returns every data row in stored order, or
	// domain.ErrRecordNotFound when no record exists yet.
	ReadRows(ctx context.Context) ([]domain.Row, error)
	// WriteAll replaces the record with the given transactions.
	WriteAll(ctx context.Context, history []domain.Transaction) error
}
