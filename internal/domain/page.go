package domain

// RawEntry is one transaction entry as found in a portal history
// response, before validation.
type RawEntry struct {
	Date   string
	Amount string
	Detail string
}

// VoucherEntries groups the raw entries reported for one voucher.
type VoucherEntries struct {
	Voucher string
	Entries []RawEntry
}

// Page is one history response worth of entries. Group order is
// whatever the source produced; it carries no meaning.
type Page []VoucherEntries
