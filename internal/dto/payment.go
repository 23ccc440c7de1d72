package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
)

// PaymentApplicationRequest allocates part of a payment to a single
// invoice or bill. Exactly one of InvoiceID/BillID must be set.
type PaymentApplicationRequest struct {
	InvoiceID string `json:"invoiceID"`
	BillID    string `json:"billID"`
	Amount    string `json:"amount" binding:"required"`
}

// RecordPaymentRequest defines the data needed to record a payment and
// apply it against open invoices or bills.
type RecordPaymentRequest struct {
	ContactID    string                      `json:"contactID" binding:"required"`
	Direction    domain.PaymentDirection     `json:"direction" binding:"required,oneof=RECEIVED SENT"`
	PaymentDate  string                      `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Amount       string                      `json:"amount" binding:"required"`
	Reference    string                      `json:"reference"`
	Memo         string                      `json:"memo"`
	Applications []PaymentApplicationRequest `json:"applications" binding:"required,min=1,dive"`
}

// PaymentApplicationResponse describes one allocation of a payment.
type PaymentApplicationResponse struct {
	ApplicationID string `json:"applicationID"`
	InvoiceID     string `json:"invoiceID,omitempty"`
	BillID        string `json:"billID,omitempty"`
	Amount        string `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string                       `json:"paymentID"`
	ContactID     string                       `json:"contactID"`
	Direction     domain.PaymentDirection      `json:"direction"`
	PaymentDate   string                       `json:"paymentDate"`
	Amount        string                       `json:"amount"`
	Reference     string                       `json:"reference,omitempty"`
	Memo          string                       `json:"memo,omitempty"`
	Applications  []PaymentApplicationResponse `json:"applications,omitempty"`
	CreatedAt     time.Time                    `json:"createdAt"`
	LastUpdatedAt time.Time                    `json:"lastUpdatedAt"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Direction *domain.PaymentDirection `form:"direction" binding:"omitempty,oneof=RECEIVED SENT"`
	ContactID *string                  `form:"contactID"`
	Limit     int                      `form:"limit,default=20"`
	Offset    int                      `form:"offset,default=0"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain.Payment and its applications to a
// PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment, applications []domain.PaymentApplication) PaymentResponse {
	apps := make([]PaymentApplicationResponse, len(applications))
	for i, a := range applications {
		apps[i] = PaymentApplicationResponse{
			ApplicationID: a.ApplicationID,
			InvoiceID:     a.InvoiceID,
			BillID:        a.BillID,
			Amount:        reports.FormatAmount(a.Amount),
		}
	}
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		ContactID:     p.ContactID,
		Direction:     p.Direction,
		PaymentDate:   p.PaymentDate.Format("2006-01-02"),
		Amount:        reports.FormatAmount(p.Amount),
		Reference:     p.Reference,
		Memo:          p.Memo,
		Applications:  apps,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListPaymentsResponse converts a slice of domain.Payment to ListPaymentsResponse
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentResponse(&p, nil)
	}
	return ListPaymentsResponse{Payments: res}
}
