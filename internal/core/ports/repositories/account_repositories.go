package repositories

import (
	"context"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account of a tenant. Returns apperrors.ErrNotFound when missing.
	FindAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error)

	// FindAccountByName retrieves an account by its case-insensitive name.
	FindAccountByName(ctx context.Context, tenantID string, name string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of a tenant with the given IDs. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves the tenant's accounts ordered by name.
	ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)

	// CountEntriesForAccount counts journal entries (of any voucher status) referencing the account.
	CountEntriesForAccount(ctx context.Context, tenantID string, accountID int64) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and sets its AccountID.
	// Returns apperrors.ErrDuplicate when the name is taken within the tenant.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount updates an existing account's mutable fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount physically removes a non-system account. Returns apperrors.ErrNotFound when no
	// deletable row exists and a *apperrors.ProtectedAccountError when entries still reference it.
	DeleteAccount(ctx context.Context, tenantID string, accountID int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
