package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/ybnd/monizze-csv/internal/domain"
)

// HistoryBuilder accumulates raw portal pages into a deduplicated
// transaction set. The portal reports overlapping pages, so the set
// semantics are what keeps the collection duplicate-free.
type HistoryBuilder struct {
	seen map[domain.Key]domain.Transaction
}

// NewHistoryBuilder creates an empty HistoryBuilder.
func NewHistoryBuilder() *HistoryBuilder {
	return &HistoryBuilder{
		seen: make(map[domain.Key]domain.Transaction),
	}
}

// AddPage folds one page into the set and reports how many entries
// were new. Re-adding an already seen transaction changes nothing;
// the caller uses the growth count to decide whether to keep paging.
//
// A page with a malformed entry contributes nothing at all: the whole
// page is validated before any of it is admitted.
func (b *HistoryBuilder) AddPage(page domain.Page) (int, error) {
	parsed := make([]domain.Transaction, 0, len(page))
	for _, group := range page {
		for i, entry := range group.Entries {
			tx, err := domain.NewTransaction(entry.Date, group.Voucher, entry.Amount, entry.Detail)
			if err != nil {
				return 0, fmt.Errorf("%w: voucher %q entry %d: %v", domain.ErrPageMalformed, group.Voucher, i, err)
			}
			parsed = append(parsed, tx)
		}
	}

	before := len(b.seen)
	for _, tx := range parsed {
		b.seen[tx.Key()] = tx
	}
	return len(b.seen) - before, nil
}

// Size returns the number of distinct transactions accumulated so far.
func (b *HistoryBuilder) Size() int {
	return len(b.seen)
}

// Finalize returns the accumulated set sorted ascending by date, with
// the deterministic tie-break from domain.Transaction.Less.
func (b *HistoryBuilder) Finalize() []domain.Transaction {
	out := make([]domain.Transaction, 0, len(b.seen))
	for _, tx := range b.seen {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// BuildFromPages drains src into a sorted collection. Paging stops
// when the source is exhausted or when a page adds no new
// transactions; either signal alone is sufficient. Fetch and parse
// failures abort the build with nothing to merge.
func BuildFromPages(ctx context.Context, src TransactionSource) ([]domain.Transaction, int, error) {
	builder := NewHistoryBuilder()

	pages := 0
	for src.HasMore() {
		page, err := src.NextPage(ctx)
		if err != nil {
			return nil, pages, err
		}

		added, err := builder.AddPage(page)
		if err != nil {
			return nil, pages, err
		}
		pages++

		if added == 0 {
			break
		}
	}

	return builder.Finalize(), pages, nil
}
