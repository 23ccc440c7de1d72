package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user lacks permission for the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidAmount indicates a money value failed decimal parsing or carried
// more than two fractional digits. Amounts are never silently coerced to zero.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrUnknownAccountType indicates an account type outside the closed set
// {ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE}. Report builders reject the
// whole report rather than guess a column, since misclassification corrupts
// the balance invariants.
var ErrUnknownAccountType = errors.New("unknown account type")

// ErrMissingCustomer indicates an invoice references a contact that does not
// exist. AR aging still aggregates the balance under a placeholder name so
// the report totals stay reconciled.
var ErrMissingCustomer = errors.New("missing customer")

// ErrUnbalancedJournal indicates a journal whose total debits do not equal
// its total credits.
var ErrUnbalancedJournal = errors.New("journal entries do not balance")

// ErrOverApplied indicates a payment application that exceeds the open
// balance of the target invoice or bill.
var ErrOverApplied = errors.New("payment exceeds open balance")

// ErrConflict indicates the resource is in a state that does not allow the
// requested operation.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRefreshTokenExpired indicates the stored refresh token has expired and
// the user must log in again.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
