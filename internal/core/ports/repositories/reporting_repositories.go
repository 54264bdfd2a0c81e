package repositories

import (
	"context"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// LedgerSnapshot reads posted ledger data as of one consistent point in time.
// Date bounds are inclusive and nil means unbounded. Entries of Cancelled vouchers
// never contribute to totals, lines or movements.
type LedgerSnapshot interface {
	// AccountTotals returns debit and credit sums for every account of the tenant, including idle ones.
	AccountTotals(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.AccountTotals, error)

	// AccountTotal returns the sums for one account. Returns apperrors.ErrNotFound for unknown accounts.
	AccountTotal(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.AccountTotals, error)

	// AccountEntries returns the account's entries ordered by voucher date, voucher number and line.
	// RunningBalance is left for the caller to fill in.
	AccountEntries(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) ([]domain.LedgerLine, error)

	// CashMovements returns, per posted voucher touching a cash account, the debits and credits on cash accounts.
	CashMovements(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.CashMovement, error)

	// VoucherAudits returns per-voucher aggregates over all vouchers regardless of status.
	VoucherAudits(ctx context.Context, tenantID string) ([]domain.VoucherAudit, error)

	// DanglingEntries returns entries whose account is missing or belongs to another tenant.
	DanglingEntries(ctx context.Context, tenantID string) ([]domain.EntryReference, error)
}

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// ReadSnapshot runs fn against a read-only view that does not change while fn runs.
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap LedgerSnapshot) error) error
}
