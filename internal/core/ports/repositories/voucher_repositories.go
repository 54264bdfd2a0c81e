package repositories

import (
	"context"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher with its entries. Returns apperrors.ErrNotFound when missing.
	FindVoucherByID(ctx context.Context, tenantID string, voucherID int64) (*domain.Voucher, error)

	// ListVouchers retrieves a page of vouchers (with entries) ordered by date and id, newest first.
	// It returns the vouchers, a token for the next page, and an error.
	ListVouchers(ctx context.Context, tenantID string, filter domain.VoucherFilter) ([]domain.Voucher, *string, error)
}

// VoucherWriter defines write operations for voucher data
type VoucherWriter interface {
	// RunInPostingTx executes fn as one atomic unit of work. A collision with a
	// concurrent writer is reported as apperrors.ErrConcurrentModification and leaves no trace.
	RunInPostingTx(ctx context.Context, fn func(ctx context.Context, tx PostingTx) error) error

	// CancelVoucher moves a Posted voucher to Cancelled. It reports false when no Posted voucher
	// with that id exists, leaving the caller to find out why.
	CancelVoucher(ctx context.Context, tenantID string, voucherID int64, userID string, at time.Time) (bool, error)
}

// PostingTx is the set of operations available inside a posting unit of work.
type PostingTx interface {
	// LockVoucherSeries serialises number generation for one tenant and prefix until the unit ends.
	LockVoucherSeries(ctx context.Context, tenantID string, prefix string) error

	// LastVoucherNumber returns the highest voucher number in the series, or "" when the series is empty.
	LastVoucherNumber(ctx context.Context, tenantID string, prefix string) (string, error)

	// LockAccounts reads the given accounts and keeps them from being deleted or changed until the unit ends.
	LockAccounts(ctx context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error)

	// InsertVoucher persists the header and its entries, setting generated IDs on both.
	InsertVoucher(ctx context.Context, voucher *domain.Voucher) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
