package services_test

import (
	"context"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- MockAccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, tenantID string, name string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountEntriesForAccount(ctx context.Context, tenantID string, accountID int64) (int64, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tenantID string, accountID int64) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- MockVoucherRepository ---

// MockVoucherRepository hands the configured Tx to RunInPostingTx callbacks.
type MockVoucherRepository struct {
	mock.Mock
	Tx portsrepo.PostingTx
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, tenantID string, voucherID int64) (*domain.Voucher, error) {
	args := m.Called(ctx, tenantID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, tenantID string, filter domain.VoucherFilter) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, tenantID, filter)
	var vouchers []domain.Voucher
	if args.Get(0) != nil {
		vouchers = args.Get(0).([]domain.Voucher)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return vouchers, next, args.Error(2)
}

// RunInPostingTx runs fn against m.Tx. A non-nil error configured on the mock
// replaces the callback's result, simulating a failed commit.
func (m *MockVoucherRepository) RunInPostingTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.PostingTx) error) error {
	args := m.Called(ctx)
	if err := fn(ctx, m.Tx); err != nil {
		return err
	}
	return args.Error(0)
}

func (m *MockVoucherRepository) CancelVoucher(ctx context.Context, tenantID string, voucherID int64, userID string, at time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, voucherID, userID, at)
	return args.Bool(0), args.Error(1)
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

// --- MockPostingTx ---

type MockPostingTx struct {
	mock.Mock
}

func (m *MockPostingTx) LockVoucherSeries(ctx context.Context, tenantID string, prefix string) error {
	args := m.Called(ctx, tenantID, prefix)
	return args.Error(0)
}

func (m *MockPostingTx) LastVoucherNumber(ctx context.Context, tenantID string, prefix string) (string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockPostingTx) LockAccounts(ctx context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockPostingTx) InsertVoucher(ctx context.Context, voucher *domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

var _ portsrepo.PostingTx = (*MockPostingTx)(nil)

// --- MockReportingRepository / MockLedgerSnapshot ---

type MockReportingRepository struct {
	Snapshot *MockLedgerSnapshot
	Err      error
}

func (m *MockReportingRepository) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, m.Snapshot)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

type MockLedgerSnapshot struct {
	mock.Mock
}

func (m *MockLedgerSnapshot) AccountTotals(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

func (m *MockLedgerSnapshot) AccountTotal(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.AccountTotals, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTotals), args.Error(1)
}

func (m *MockLedgerSnapshot) AccountEntries(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerSnapshot) CashMovements(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.CashMovement, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashMovement), args.Error(1)
}

func (m *MockLedgerSnapshot) VoucherAudits(ctx context.Context, tenantID string) ([]domain.VoucherAudit, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherAudit), args.Error(1)
}

func (m *MockLedgerSnapshot) DanglingEntries(ctx context.Context, tenantID string) ([]domain.EntryReference, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryReference), args.Error(1)
}

var _ portsrepo.LedgerSnapshot = (*MockLedgerSnapshot)(nil)
