package models

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of
// multiple transactions.
type Journal struct {
	JournalID          string        `db:"journal_id"`
	BusinessID         string        `db:"business_id"`
	JournalDate        time.Time     `db:"journal_date"`
	Description        string        `db:"description"` // Nullable
	Status             JournalStatus `db:"status"`      // Default: POSTED
	OriginalJournalID  string        `db:"original_journal_id"`  // Nullable, set on reversal journals
	ReversingJournalID string        `db:"reversing_journal_id"` // Nullable, set on reversed journals
	AuditFields
}
