package accounting

import (
	"fmt"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount expresses a transaction amount in the normal-side
// convention of the account it touches: debit-normal accounts (Asset,
// Expense) grow on debits, credit-normal accounts (Liability, Equity,
// Revenue) grow on credits. Account balances are stored in this convention,
// so a positive balance always means "normal side".
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: account type %q on account %s", apperrors.ErrUnknownAccountType, accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// ValidateJournalBalance checks the double-entry invariant: the sum of all
// debit amounts must equal the sum of all credit amounts exactly. This is
// independent of account types; a debit to cash against a credit to revenue
// is a balanced journal.
func ValidateJournalBalance(transactions []domain.Transaction, accountTypes map[string]domain.AccountType) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal must have at least two transaction entries")
	}

	debits := decimal.Zero
	credits := decimal.Zero

	for _, txn := range transactions {
		if !txn.Amount.IsPositive() {
			return fmt.Errorf("transaction amount must be positive for transaction ID %s", txn.TransactionID)
		}
		if _, ok := accountTypes[txn.AccountID]; !ok {
			return fmt.Errorf("account type not found for account ID %s", txn.AccountID)
		}

		switch txn.TransactionType {
		case domain.Debit:
			debits = debits.Add(txn.Amount)
		case domain.Credit:
			credits = credits.Add(txn.Amount)
		default:
			return fmt.Errorf("unknown transaction type %q for transaction ID %s", txn.TransactionType, txn.TransactionID)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("journal entries do not balance: debits %s, credits %s", debits.String(), credits.String())
	}

	return nil
}
