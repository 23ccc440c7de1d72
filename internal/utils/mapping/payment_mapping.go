package mapping

import (
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		BusinessID:  d.BusinessID,
		ContactID:   d.ContactID,
		PaymentDate: d.PaymentDate,
		Amount:      d.Amount,
		Direction:   string(d.Direction),
		Reference:   d.Reference,
		Memo:        d.Memo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		BusinessID:  m.BusinessID,
		ContactID:   m.ContactID,
		PaymentDate: m.PaymentDate,
		Amount:      m.Amount,
		Direction:   domain.PaymentDirection(m.Direction),
		Reference:   m.Reference,
		Memo:        m.Memo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelPaymentApplication converts a domain PaymentApplication to its model
func ToModelPaymentApplication(d domain.PaymentApplication) models.PaymentApplication {
	return models.PaymentApplication{
		ApplicationID: d.ApplicationID,
		PaymentID:     d.PaymentID,
		InvoiceID:     d.InvoiceID,
		BillID:        d.BillID,
		Amount:        d.Amount,
		AppliedAt:     d.AppliedAt,
	}
}

// ToDomainPaymentApplication converts a model PaymentApplication to its domain form
func ToDomainPaymentApplication(m models.PaymentApplication) domain.PaymentApplication {
	return domain.PaymentApplication{
		ApplicationID: m.ApplicationID,
		PaymentID:     m.PaymentID,
		InvoiceID:     m.InvoiceID,
		BillID:        m.BillID,
		Amount:        m.Amount,
		AppliedAt:     m.AppliedAt,
	}
}

// ToDomainPaymentApplicationSlice converts a slice of model PaymentApplications
func ToDomainPaymentApplicationSlice(ms []models.PaymentApplication) []domain.PaymentApplication {
	ds := make([]domain.PaymentApplication, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentApplication(m)
	}
	return ds
}
