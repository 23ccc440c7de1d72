package mapping

import (
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/models"
)

// ToModelBusiness converts a domain Business to a model Business
func ToModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:  d.BusinessID,
		Name:        d.Name,
		LegalName:   d.LegalName,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBusiness converts a model Business to a domain Business
func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		LegalName:   m.LegalName,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBusinessSlice converts a slice of model Businesses
func ToDomainBusinessSlice(ms []models.Business) []domain.Business {
	ds := make([]domain.Business, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBusiness(m)
	}
	return ds
}
