package services

import (
	"context"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves the tenant's chart of accounts, optionally filtered by type and status.
	ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new non-system account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's name, type, status or description.
	UpdateAccount(ctx context.Context, tenantID string, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account that is neither a system account nor referenced by entries.
	DeleteAccount(ctx context.Context, tenantID string, accountID int64, userID string) error

	// SeedSystemAccounts creates the default system chart of accounts for a tenant, skipping names that exist.
	SeedSystemAccounts(ctx context.Context, tenantID string, userID string) ([]domain.Account, error)
}

// AccountProtectionSvc reports on account deletion and retyping guards
type AccountProtectionSvc interface {
	// GetAccountProtectionStatus reports whether deletion or type change is currently blocked and why.
	GetAccountProtectionStatus(ctx context.Context, tenantID string, accountID int64) (*domain.ProtectionStatus, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountProtectionSvc
}
