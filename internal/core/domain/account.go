package domain

import (
	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide indicates which column a positive balance of an account type
// belongs to under double-entry convention.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// NormalSide returns the normal balance side for the account type.
// Asset and Expense accounts are debit-normal; Liability, Equity and
// Revenue accounts are credit-normal.
func (t AccountType) NormalSide() (NormalSide, error) {
	switch t {
	case Asset, Expense:
		return DebitNormal, nil
	case Liability, Equity, Revenue:
		return CreditNormal, nil
	default:
		return "", apperrors.ErrUnknownAccountType
	}
}

// IsValid reports whether the account type is one of the closed set.
func (t AccountType) IsValid() bool {
	_, err := t.NormalSide()
	return err == nil
}

// Account represents a general-ledger account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	BusinessID      string          `json:"businessID"`      // FK -> businesses.business_id (NON-NULL)
	Code            string          `json:"code"`            // Account code, unique per business; reports sort on it
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc. Fixed at creation
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Soft delete or status flag
	AuditFields                     // Embed CreatedAt, CreatedBy, etc.
	Balance         decimal.Decimal `json:"balance"` // Persisted running balance, signed per normal side
}
