package mapping

import (
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:      d.BillID,
		BusinessID:  d.BusinessID,
		VendorID:    d.VendorID,
		BillNumber:  d.BillNumber,
		BillDate:    d.BillDate,
		DueDate:     d.DueDate,
		TotalAmount: d.TotalAmount,
		Balance:     d.Balance,
		Status:      string(d.Status),
		Memo:        d.Memo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:      m.BillID,
		BusinessID:  m.BusinessID,
		VendorID:    m.VendorID,
		BillNumber:  m.BillNumber,
		BillDate:    m.BillDate,
		DueDate:     m.DueDate,
		TotalAmount: m.TotalAmount,
		Balance:     m.Balance,
		Status:      domain.BillStatus(m.Status),
		Memo:        m.Memo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillSlice converts a slice of model Bills to a slice of domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}
