package reports_test

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Shared fixtures for the report builder tests.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func account(id, code, name string, accountType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:   id,
		BusinessID:  "biz-1",
		Code:        code,
		Name:        name,
		AccountType: accountType,
		IsActive:    true,
	}
}

func balance(accountID, amount string) domain.LedgerBalance {
	return domain.LedgerBalance{AccountID: accountID, NetBalance: dec(amount)}
}

// chartOfAccounts is a small but representative chart used across tests.
func chartOfAccounts() []domain.Account {
	return []domain.Account{
		account("acc-cash", "1000", "Cash", domain.Asset),
		account("acc-ar", "1100", "Accounts Receivable", domain.Asset),
		account("acc-ap", "2000", "Accounts Payable", domain.Liability),
		account("acc-loan", "2100", "Bank Loan", domain.Liability),
		account("acc-capital", "3000", "Owner Capital", domain.Equity),
		account("acc-sales", "4000", "Sales Revenue", domain.Revenue),
		account("acc-rent", "5000", "Rent Expense", domain.Expense),
		account("acc-wages", "5100", "Wages Expense", domain.Expense),
	}
}

func invoice(id, customerID, dueDate, balanceAmt string) domain.Invoice {
	due := date(dueDate)
	return domain.Invoice{
		InvoiceID:   id,
		BusinessID:  "biz-1",
		CustomerID:  customerID,
		InvoiceDate: due.AddDate(0, -1, 0),
		DueDate:     due,
		TotalAmount: dec(balanceAmt),
		Balance:     dec(balanceAmt),
		Status:      domain.InvoiceOpen,
	}
}

func customerMap(contacts ...domain.Contact) map[string]domain.Contact {
	m := make(map[string]domain.Contact, len(contacts))
	for _, c := range contacts {
		m[c.ContactID] = c
	}
	return m
}

func customer(id, name string) domain.Contact {
	return domain.Contact{
		ContactID:  id,
		BusinessID: "biz-1",
		Name:       name,
		Kind:       domain.ContactCustomer,
		IsActive:   true,
	}
}
