package domain

import "errors"

var (
	// Page errors
	ErrPageMalformed = errors.New("history page is malformed")

	// Record errors
	ErrRecordMalformed  = errors.New("record row is malformed")
	ErrRecordUnreadable = errors.New("record is unreadable")
	ErrRecordNotFound   = errors.New("record not found")
)
