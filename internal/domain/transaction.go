package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are the textual date forms accepted from the portal and
// from previously written records, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Transaction is a single voucher movement. The raw date text is part
// of the transaction's identity; the parsed time is used only for
// ordering and prefix comparison.
type Transaction struct {
	Date    string
	When    time.Time
	Voucher string
	Amount  decimal.Decimal
	Detail  string
}

// Key identifies a transaction. Two transactions are the same record
// iff all four fields match; the tuple is the only primary key the
// portal data offers. The amount is canonicalized to two decimals so
// "6", "6.0" and "6.00" name the same money.
type Key struct {
	Date    string
	Voucher string
	Amount  string
	Detail  string
}

// NewTransaction validates the raw fields of one portal entry. An
// unparsable date or amount is an error; no partial transaction is
// ever produced.
func NewTransaction(date, voucher, amount, detail string) (Transaction, error) {
	when, err := ParseDate(date)
	if err != nil {
		return Transaction{}, err
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	return Transaction{
		Date:    date,
		When:    when,
		Voucher: voucher,
		Amount:  value,
		Detail:  detail,
	}, nil
}

// ParseDate parses the ISO-8601 date or date-time text used by the
// portal and by the record file.
func ParseDate(date string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if when, err := time.Parse(layout, date); err == nil {
			return when, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", date)
}

// Key returns the identity of the transaction.
func (t Transaction) Key() Key {
	return Key{
		Date:    t.Date,
		Voucher: t.Voucher,
		Amount:  t.Amount.StringFixed(2),
		Detail:  t.Detail,
	}
}

// Less orders transactions ascending by date. Entries sharing a date
// are ordered by voucher, canonical amount and detail so the order is
// deterministic across runs; no meaning is attached to the tie-break.
func (t Transaction) Less(u Transaction) bool {
	if !t.When.Equal(u.When) {
		return t.When.Before(u.When)
	}
	a, b := t.Key(), u.Key()
	if a.Voucher != b.Voucher {
		return a.Voucher < b.Voucher
	}
	if a.Amount != b.Amount {
		return a.Amount < b.Amount
	}
	return a.Detail < b.Detail
}
