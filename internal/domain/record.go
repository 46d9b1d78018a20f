package domain

import "fmt"

// Header is the fixed first row of the persisted record. The column
// order doubles as the field order of every data row.
var Header = []string{"Date", "Monizze Voucher", "Amount", "Detail"}

// Row is one raw data row of the persisted record, before validation.
type Row struct {
	Date    string
	Voucher string
	Amount  string
	Detail  string
}

// ParseRow lifts a raw record row to a Transaction. A row that does
// not parse wraps ErrRecordMalformed; callers never guess at damaged
// rows.
func ParseRow(r Row) (Transaction, error) {
	tx, err := NewTransaction(r.Date, r.Voucher, r.Amount, r.Detail)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: %v", ErrRecordMalformed, err)
	}
	return tx, nil
}
