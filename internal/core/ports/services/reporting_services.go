package services

import (
	"context"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Nil date bounds mean unbounded; all bounds are inclusive.
type ReportingService interface {
	// AccountBalance computes Σdebit − Σcredit of posted entries on the account dated on or before asOf.
	AccountBalance(ctx context.Context, tenantID string, accountID int64, asOf *time.Time) (*domain.AccountBalance, error)

	// TrialBalance lists every account's net balance over the window.
	TrialBalance(ctx context.Context, tenantID string, from, to *time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GeneralLedger lists an account's entries with a running balance seeded from the opening balance.
	GeneralLedger(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.GeneralLedger, error)

	// CashFlow partitions cash-touching vouchers of the period into receipts and payments.
	CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error)
}

// IntegrityService audits the whole ledger of a tenant.
type IntegrityService interface {
	// RunIntegrityCheck re-verifies voucher balances and references and flags abnormal balances.
	RunIntegrityCheck(ctx context.Context, tenantID string) (*domain.IntegrityReport, error)
}
