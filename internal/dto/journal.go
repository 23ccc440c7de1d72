package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
)

// CreateTransactionRequest defines one line of a journal to be created.
type CreateTransactionRequest struct {
	AccountID       string `json:"accountID" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	TransactionType string `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string `json:"notes"`
}

// CreateJournalRequest defines the data needed to post a new journal.
// Debits and credits must balance.
type CreateJournalRequest struct {
	Date         string                     `json:"date" binding:"required,datetime=2006-01-02"`
	Description  string                     `json:"description"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string `json:"transactionID"`
	JournalID     string `json:"journalID"`
	AccountID     string `json:"accountID"`
	Amount        string `json:"amount"`
	Type          string `json:"type"` // DEBIT or CREDIT
	Notes         string `json:"notes,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               string                `json:"date"` // YYYY-MM-DD
	Description        string                `json:"description"`
	Status             domain.JournalStatus  `json:"status"`
	OriginalJournalID  string                `json:"originalJournalID,omitempty"`
	ReversingJournalID string                `json:"reversingJournalID,omitempty"`
	Transactions       []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit               int     `form:"limit,default=20"`
	NextToken           *string `form:"nextToken"`
	IncludeReversals    bool    `form:"includeReversals,default=false"`
	IncludeTransactions bool    `form:"includeTransactions,default=false"`
}

// ListJournalsResponse wraps a page of journals with the token for the
// next page, if any.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListTransactionsParams holds parameters for listing account transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		JournalID:     txn.JournalID,
		AccountID:     txn.AccountID,
		Amount:        reports.FormatAmount(txn.Amount),
		Type:          string(txn.TransactionType),
		Notes:         txn.Notes,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate.Format("2006-01-02"),
		Description:        j.Description,
		Status:             j.Status,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
	}
	if len(j.Transactions) > 0 {
		resp.Transactions = ToTransactionResponses(j.Transactions)
	}
	return resp
}
