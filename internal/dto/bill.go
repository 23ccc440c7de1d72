package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
)

// CreateBillRequest defines the data needed to record a vendor bill.
type CreateBillRequest struct {
	VendorID    string `json:"vendorID" binding:"required"`
	BillNumber  string `json:"billNumber" binding:"required"`
	BillDate    string `json:"billDate" binding:"required,datetime=2006-01-02"`
	DueDate     string `json:"dueDate" binding:"required,datetime=2006-01-02"`
	TotalAmount string `json:"totalAmount" binding:"required"`
	Memo        string `json:"memo"`
}

// UpdateBillRequest defines the data allowed for updating a bill.
type UpdateBillRequest struct {
	BillNumber  *string `json:"billNumber"`
	BillDate    *string `json:"billDate" binding:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	TotalAmount *string `json:"totalAmount"`
	Memo        *string `json:"memo"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID        string            `json:"billID"`
	VendorID      string            `json:"vendorID"`
	BillNumber    string            `json:"billNumber"`
	BillDate      string            `json:"billDate"`
	DueDate       string            `json:"dueDate"`
	TotalAmount   string            `json:"totalAmount"`
	Balance       string            `json:"balance"`
	Status        domain.BillStatus `json:"status"`
	Memo          string            `json:"memo"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	Status   *domain.BillStatus `form:"status" binding:"omitempty,oneof=DRAFT OPEN PARTIAL PAID VOID"`
	VendorID *string            `form:"vendorID"`
	Limit    int                `form:"limit,default=20"`
	Offset   int                `form:"offset,default=0"`
}

// ListBillsResponse wraps the list of bills.
type ListBillsResponse struct {
	Bills []BillResponse `json:"bills"`
}

// ToBillResponse converts a domain.Bill to BillResponse DTO
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:        b.BillID,
		VendorID:      b.VendorID,
		BillNumber:    b.BillNumber,
		BillDate:      b.BillDate.Format("2006-01-02"),
		DueDate:       b.DueDate.Format("2006-01-02"),
		TotalAmount:   reports.FormatAmount(b.TotalAmount),
		Balance:       reports.FormatAmount(b.Balance),
		Status:        b.Status,
		Memo:          b.Memo,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBillsResponse converts a slice of domain.Bill to ListBillsResponse
func ToListBillsResponse(bills []domain.Bill) ListBillsResponse {
	res := make([]BillResponse, len(bills))
	for i, b := range bills {
		res[i] = ToBillResponse(&b)
	}
	return ListBillsResponse{Bills: res}
}
