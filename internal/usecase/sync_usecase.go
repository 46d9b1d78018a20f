package usecase

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"
)

// SyncUseCase runs one full retrieval-and-merge pass: drain the
// source, drop excluded vouchers, merge into the record.
type SyncUseCase struct {
	source  TransactionSource
	merger  *HistoryMerger
	exclude []*regexp.Regexp
	logger  zerolog.Logger
}

// NewSyncUseCase creates a new SyncUseCase. exclude patterns are
// matched against voucher codes; matching transactions never reach
// the record.
func NewSyncUseCase(source TransactionSource, merger *HistoryMerger, exclude []*regexp.Regexp, logger zerolog.Logger) *SyncUseCase {
	return &SyncUseCase{
		source:  source,
		merger:  merger,
		exclude: exclude,
		logger:  logger,
	}
}

// SyncReport summarizes one sync run.
type SyncReport struct {
	Pages      int
	Excluded   int
	Preserved  int
	Fresh      int
	Written    int
	Skipped    bool
	PerVoucher map[string]int
}

// Run retrieves all pages and merges the result. The write is the
// single commit point: any failure before it leaves the record as it
// was.
func (uc *SyncUseCase) Run(ctx context.Context) (*SyncReport, error) {
	fresh, pages, err := BuildFromPages(ctx, uc.source)
	if err != nil {
		return nil, err
	}

	kept := fresh[:0:0]
	excluded := 0
	perVoucher := make(map[string]int)
	for _, tx := range fresh {
		if uc.isExcluded(tx.Voucher) {
			excluded++
			continue
		}
		kept = append(kept, tx)
		perVoucher[tx.Voucher]++
	}

	uc.logger.Debug().
		Int("pages", pages).
		Int("retrieved", len(fresh)).
		Int("excluded", excluded).
		Msg("retrieval finished")

	result, err := uc.merger.MergeAndPersist(ctx, kept)
	if err != nil {
		return nil, err
	}

	return &SyncReport{
		Pages:      pages,
		Excluded:   excluded,
		Preserved:  result.Preserved,
		Fresh:      result.Fresh,
		Written:    result.Written,
		Skipped:    result.Skipped,
		PerVoucher: perVoucher,
	}, nil
}

func (uc *SyncUseCase) isExcluded(voucher string) bool {
	for _, re := range uc.exclude {
		if re.MatchString(voucher) {
			return true
		}
	}
	return false
}
