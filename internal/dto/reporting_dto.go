package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  string `json:"debit"`
		Credit string `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  string `json:"totalRevenue"`
		TotalExpenses string `json:"totalExpenses"`
		NetIncome     string `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      string `json:"totalAssets"`
		TotalLiabilities string `json:"totalLiabilities"`
		TotalEquity      string `json:"totalEquity"`
	} `json:"summary"`
	IsBalanced bool `json:"isBalanced"`
}

// AgingRowResponse represents one customer's row in the AR aging report
type AgingRowResponse struct {
	CustomerID   string `json:"customerID"`
	CustomerName string `json:"customerName"`
	Current      string `json:"current"`
	Days1To30    string `json:"days1To30"`
	Days31To60   string `json:"days31To60"`
	Days61To90   string `json:"days61To90"`
	Days91Plus   string `json:"days91Plus"`
	Total        string `json:"total"`
}

// ARAgingResponse represents the accounts receivable aging report response
type ARAgingResponse struct {
	AsOf   string             `json:"asOf"`
	Rows   []AgingRowResponse `json:"rows"`
	Totals AgingRowResponse   `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance report to a DTO response
func ToTrialBalanceResponse(report *domain.TrialBalanceReport, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:       asOf.Format("2006-01-02"),
		Rows:       make([]TrialBalanceRowResponse, len(report.Entries)),
		IsBalanced: report.IsBalanced,
	}

	for i, row := range report.Entries {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.Name,
			AccountType: string(row.AccountType),
			Debit:       reports.FormatAmount(row.Debit),
			Credit:      reports.FormatAmount(row.Credit),
		}
	}

	response.Totals.Debit = reports.FormatAmount(report.TotalDebits)
	response.Totals.Credit = reports.FormatAmount(report.TotalCredits)

	return response
}

func toAccountAmountResponses(section domain.ReportSection) []AccountAmountResponse {
	rows := make([]AccountAmountResponse, len(section.Accounts))
	for i, acc := range section.Accounts {
		rows[i] = AccountAmountResponse{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Amount:    reports.FormatAmount(acc.NetBalance),
		}
	}
	return rows
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.ProfitLossReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: report.StartDate.Format("2006-01-02"),
		ToDate:   report.EndDate.Format("2006-01-02"),
		Revenue:  toAccountAmountResponses(report.Revenue),
		Expenses: toAccountAmountResponses(report.Expenses),
	}

	response.Summary.TotalRevenue = reports.FormatAmount(report.Revenue.Total)
	response.Summary.TotalExpenses = reports.FormatAmount(report.Expenses.Total)
	response.Summary.NetIncome = reports.FormatAmount(report.NetIncome)

	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        asOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
		IsBalanced:  report.IsBalanced,
	}

	response.Summary.TotalAssets = reports.FormatAmount(report.Assets.Total)
	response.Summary.TotalLiabilities = reports.FormatAmount(report.Liabilities.Total)
	response.Summary.TotalEquity = reports.FormatAmount(report.Equity.Total)

	return response
}

func toAgingRowResponse(b domain.AgingBucket) AgingRowResponse {
	return AgingRowResponse{
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		Current:      reports.FormatAmount(b.Current),
		Days1To30:    reports.FormatAmount(b.Days1To30),
		Days31To60:   reports.FormatAmount(b.Days31To60),
		Days61To90:   reports.FormatAmount(b.Days61To90),
		Days91Plus:   reports.FormatAmount(b.Days91Plus),
		Total:        reports.FormatAmount(b.Total),
	}
}

// ToARAgingResponse converts a domain AR aging report to a DTO response.
// The totals row is computed from the report's buckets.
func ToARAgingResponse(report *domain.ARAgingReport) ARAgingResponse {
	response := ARAgingResponse{
		AsOf: report.AsOfDate.Format("2006-01-02"),
		Rows: make([]AgingRowResponse, len(report.Buckets)),
	}

	for i, b := range report.Buckets {
		response.Rows[i] = toAgingRowResponse(b)
	}
	response.Totals = toAgingRowResponse(reports.ComputeAgingTotals(report))

	return response
}
