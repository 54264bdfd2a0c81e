package mapping

import (
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		TenantID:        d.TenantID,
		Name:            d.Name,
		AccountType:     string(d.AccountType),
		IsSystemAccount: d.IsSystemAccount,
		Status:          string(d.Status),
		Description:     d.Description,
		AuditFields:     auditToModel(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		TenantID:        m.TenantID,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		IsSystemAccount: m.IsSystemAccount,
		Status:          domain.AccountStatus(m.Status),
		Description:     m.Description,
		AuditFields:     auditToDomain(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
