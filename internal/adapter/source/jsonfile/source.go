// Package jsonfile implements usecase.TransactionSource over captured
// portal history responses. Each file holds one /voucher/history
// payload of the form {"data": {"<voucher>": [{date, amount, detail}]}}.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ybnd/monizze-csv/internal/domain"
)

// historyResponse mirrors the portal history payload.
type historyResponse struct {
	Data map[string][]historyEntry `json:"data"`
}

// Fields are pointers so a missing key is distinguishable from an
// empty value; a missing key fails the whole page.
type historyEntry struct {
	Date   *string      `json:"date"`
	Amount *json.Number `json:"amount"`
	Detail *string      `json:"detail"`
}

// Source yields one page per captured response file, in the order the
// files were given.
type Source struct {
	paths []string
	next  int
}

// New creates a Source over the given response files.
func New(paths []string) *Source {
	return &Source{paths: paths}
}

// HasMore reports whether any response files remain.
func (s *Source) HasMore() bool {
	return s.next < len(s.paths)
}

// NextPage reads and decodes the next response file. Voucher groups
// come out in sorted code order so a page always decodes to the same
// Page value.
func (s *Source) NextPage(ctx context.Context) (domain.Page, error) {
	if !s.HasMore() {
		return nil, fmt.Errorf("no pages left")
	}
	path := s.paths[s.next]
	s.next++

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", path, err)
	}

	var resp historyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPageMalformed, path, err)
	}

	vouchers := make([]string, 0, len(resp.Data))
	for voucher := range resp.Data {
		vouchers = append(vouchers, voucher)
	}
	sort.Strings(vouchers)

	page := make(domain.Page, 0, len(vouchers))
	for _, voucher := range vouchers {
		group := domain.VoucherEntries{Voucher: voucher}
		for i, entry := range resp.Data[voucher] {
			if entry.Date == nil || entry.Amount == nil || entry.Detail == nil {
				return nil, fmt.Errorf("%w: %s: voucher %q entry %d is missing fields", domain.ErrPageMalformed, path, voucher, i)
			}
			group.Entries = append(group.Entries, domain.RawEntry{
				Date:   *entry.Date,
				Amount: entry.Amount.String(),
				Detail: *entry.Detail,
			})
		}
		page = append(page, group)
	}

	return page, nil
}
