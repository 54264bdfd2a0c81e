// Package mapping converts between persistence rows (internal/models) and domain types.
package mapping

import (
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/models"
)

func auditToModel(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

func auditToDomain(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}
