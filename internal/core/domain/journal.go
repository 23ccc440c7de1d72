package domain

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple
// transaction lines.
type Journal struct {
	JournalID         string        `json:"journalID"`   // Primary Key (UUID)
	BusinessID        string        `json:"businessID"`  // FK -> businesses.business_id
	JournalDate       time.Time     `json:"journalDate"` // Date the event occurred
	Description       string        `json:"description"` // Nullable user description
	Status            JournalStatus `json:"status"`      // Default: POSTED
	OriginalJournalID string        `json:"originalJournalID,omitempty"` // Set on reversal journals
	ReversingJournalID string       `json:"reversingJournalID,omitempty"`
	AuditFields
	Transactions []Transaction `json:"transactions,omitempty"`
}
