package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerBalance is the signed balance of a single account as produced by the
// ledger query layer. The sign follows the account's normal side: a positive
// value on a debit-normal account means a net debit balance, and a positive
// value on a credit-normal account means a net credit balance.
type LedgerBalance struct {
	AccountID  string          `json:"accountID"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// TrialBalanceEntry is a single row in a trial balance report. Exactly one
// of Debit/Credit is nonzero per entry; an abnormal balance is re-expressed
// on the opposite column with positive magnitude, never dropped.
type TrialBalanceEntry struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account's balance split into debit/credit
// columns. Totals are compared exactly, never with an epsilon tolerance.
type TrialBalanceReport struct {
	Entries      []TrialBalanceEntry `json:"entries"`
	TotalDebits  decimal.Decimal     `json:"totalDebits"`
	TotalCredits decimal.Decimal     `json:"totalCredits"`
	IsBalanced   bool                `json:"isBalanced"`
}

// ReportAccount is an account line inside a report section.
type ReportAccount struct {
	AccountID  string          `json:"accountID"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

// ReportSection groups account lines with their signed total in the
// section's natural sign.
type ReportSection struct {
	Accounts []ReportAccount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceSheetReport groups accounts into Assets, Liabilities and Equity.
// IsBalanced holds the accounting equation Assets = Liabilities + Equity
// under exact comparison. Revenue/Expense activity not yet closed into
// equity will surface here as an imbalance; the builder does not auto-close.
type BalanceSheetReport struct {
	Assets      ReportSection `json:"assets"`
	Liabilities ReportSection `json:"liabilities"`
	Equity      ReportSection `json:"equity"`
	IsBalanced  bool          `json:"isBalanced"`
}

// ProfitLossReport nets Revenue and Expense activity over a period.
// NetIncome = Revenue.Total - Expenses.Total exactly; it may be negative.
type ProfitLossReport struct {
	Revenue   ReportSection   `json:"revenue"`
	Expenses  ReportSection   `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
}

// AgingBucket is one row of an AR aging report: a customer's open invoice
// balances grouped by days overdue. Each invoice balance lands in exactly
// one bucket column and in Total.
type AgingBucket struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days1To30"`
	Days31To60   decimal.Decimal `json:"days31To60"`
	Days61To90   decimal.Decimal `json:"days61To90"`
	Days91Plus   decimal.Decimal `json:"days91Plus"`
	Total        decimal.Decimal `json:"total"`
}

// ARAgingReport buckets open invoice balances by days overdue as of a
// reference date. One row per customer; customers with no open invoices
// are omitted.
type ARAgingReport struct {
	AsOfDate time.Time     `json:"asOfDate"`
	Buckets  []AgingBucket `json:"buckets"`
}
