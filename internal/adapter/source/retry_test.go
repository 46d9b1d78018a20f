package source_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybnd/monizze-csv/internal/adapter/source"
	"github.com/ybnd/monizze-csv/internal/domain"
)

// flakySource fails NextPage a fixed number of times before
// succeeding.
type flakySource struct {
	failures int
	err      error
	calls    int
	page     domain.Page
}

func (s *flakySource) HasMore() bool { return true }

func (s *flakySource) NextPage(ctx context.Context) (domain.Page, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return s.page, nil
}

func TestWithRetryRecoversFromTransientFailures(t *testing.T) {
	inner := &flakySource{
		failures: 2,
		err:      fmt.Errorf("connection reset"),
		page:     domain.Page{{Voucher: "emv"}},
	}

	src := source.WithRetry(inner, 3, time.Millisecond, zerolog.Nop())
	page, err := src.NextPage(context.Background())
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetryGivesUpAfterLimit(t *testing.T) {
	transient := errors.New("connection reset")
	inner := &flakySource{failures: 10, err: transient}

	src := source.WithRetry(inner, 2, time.Millisecond, zerolog.Nop())
	_, err := src.NextPage(context.Background())
	require.ErrorIs(t, err, transient)
	assert.Equal(t, 3, inner.calls) // first attempt + 2 retries
}

func TestWithRetryDoesNotRetryMalformedPages(t *testing.T) {
	inner := &flakySource{
		failures: 10,
		err:      fmt.Errorf("%w: truncated", domain.ErrPageMalformed),
	}

	src := source.WithRetry(inner, 5, time.Millisecond, zerolog.Nop())
	_, err := src.NextPage(context.Background())
	require.ErrorIs(t, err, domain.ErrPageMalformed)
	assert.Equal(t, 1, inner.calls)
}

func TestWithRetryForwardsHasMore(t *testing.T) {
	src := source.WithRetry(&flakySource{}, 1, time.Millisecond, zerolog.Nop())
	assert.True(t, src.HasMore())
}
