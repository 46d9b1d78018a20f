// Package source provides decorators shared by transaction source
// implementations.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/ybnd/monizze-csv/internal/domain"
	"github.com/ybnd/monizze-csv/internal/usecase"
)

// RetryingSource wraps a TransactionSource so transient NextPage
// failures are retried with exponential backoff. Malformed pages are
// permanent; retrying cannot fix them.
type RetryingSource struct {
	src      usecase.TransactionSource
	retries  int
	interval time.Duration
	logger   zerolog.Logger
}

// WithRetry decorates src. retries is the number of attempts after
// the first; interval is the initial backoff interval.
func WithRetry(src usecase.TransactionSource, retries int, interval time.Duration, logger zerolog.Logger) *RetryingSource {
	return &RetryingSource{
		src:      src,
		retries:  retries,
		interval: interval,
		logger:   logger,
	}
}

// HasMore reports whether the wrapped source can produce another page.
func (s *RetryingSource) HasMore() bool {
	return s.src.HasMore()
}

// NextPage fetches the next page, retrying transient failures.
func (s *RetryingSource) NextPage(ctx context.Context) (domain.Page, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.interval

	var page domain.Page
	attempts := 0

	err := backoff.Retry(func() error {
		var err error
		page, err = s.src.NextPage(ctx)
		if err == nil {
			return nil
		}

		if errors.Is(err, domain.ErrPageMalformed) {
			return backoff.Permanent(err)
		}

		attempts++
		if attempts > s.retries {
			return backoff.Permanent(err)
		}

		s.logger.Warn().Err(err).Int("retry", attempts).Msg("page fetch failed, retrying")
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	return page, nil
}
