package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return apperrors.NewValidationError("dateFrom cannot be after dateTo")
	}
	return nil
}

// dayBefore returns the inclusive upper bound that excludes from itself.
func dayBefore(from time.Time) *time.Time {
	d := from.AddDate(0, 0, -1)
	return &d
}

func logDate(key string, t *time.Time) slog.Attr {
	if t == nil {
		return slog.String(key, "")
	}
	return slog.String(key, t.Format(domain.DateLayout))
}

// AccountBalance computes the balance of one account as of a date.
func (s *reportingService) AccountBalance(ctx context.Context, tenantID string, accountID int64, asOf *time.Time) (*domain.AccountBalance, error) {
	var result *domain.AccountBalance
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		totals, err := snap.AccountTotal(ctx, tenantID, accountID, nil, asOf)
		if err != nil {
			return err
		}
		result = &domain.AccountBalance{
			Account:      totals.Account,
			AsOfDate:     asOf,
			TotalDebits:  totals.TotalDebits,
			TotalCredits: totals.TotalCredits,
			Balance:      totals.Balance(),
		}
		return nil
	})
	if err != nil {
		return nil, s.reportFailure(ctx, err, "account balance", slog.Int64("account_id", accountID))
	}
	return result, nil
}

// TrialBalance generates a trial balance over an optional window.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, from, to *time.Time) (*domain.TrialBalance, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	var totals []domain.AccountTotals
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		var err error
		totals, err = snap.AccountTotals(ctx, tenantID, from, to)
		return err
	})
	if err != nil {
		return nil, s.reportFailure(ctx, err, "trial balance")
	}

	report := &domain.TrialBalance{
		DateFrom:     from,
		DateTo:       to,
		Rows:         make([]domain.TrialBalanceRow, 0, len(totals)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, t := range totals {
		debit, credit := accounting.SplitBalance(t.Balance())
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:     t.Account.AccountID,
			AccountName:   t.Account.Name,
			AccountType:   t.Account.AccountType,
			DebitBalance:  debit,
			CreditBalance: credit,
		})
		report.TotalDebits = report.TotalDebits.Add(debit)
		report.TotalCredits = report.TotalCredits.Add(credit)
	}
	report.Difference = report.TotalDebits.Sub(report.TotalCredits)
	report.IsBalanced = accounting.IsBalanced(report.TotalDebits, report.TotalCredits)

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("tenant_id", tenantID),
		logDate("from", from),
		logDate("to", to),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error) {
	if err := checkRange(&from, &to); err != nil {
		return nil, err
	}

	var totals []domain.AccountTotals
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		var err error
		totals, err = snap.AccountTotals(ctx, tenantID, &from, &to)
		return err
	})
	if err != nil {
		return nil, s.reportFailure(ctx, err, "profit and loss")
	}

	report := &domain.ProfitLossReport{
		DateFrom:              from,
		DateTo:                to,
		Income:                []domain.ReportLine{},
		DirectExpenses:        []domain.ReportLine{},
		IndirectExpenses:      []domain.ReportLine{},
		TotalIncome:           decimal.Zero,
		TotalDirectExpenses:   decimal.Zero,
		TotalIndirectExpenses: decimal.Zero,
	}
	for _, t := range totals {
		line := reportLine(t)
		switch accounting.SectionOf(t.Account.AccountType) {
		case accounting.SectionIncome:
			report.Income = append(report.Income, line)
			report.TotalIncome = report.TotalIncome.Add(line.Amount)
		case accounting.SectionDirectExpense:
			report.DirectExpenses = append(report.DirectExpenses, line)
			report.TotalDirectExpenses = report.TotalDirectExpenses.Add(line.Amount)
		case accounting.SectionIndirectExpense:
			report.IndirectExpenses = append(report.IndirectExpenses, line)
			report.TotalIndirectExpenses = report.TotalIndirectExpenses.Add(line.Amount)
		}
	}
	report.TotalExpenses = report.TotalDirectExpenses.Add(report.TotalIndirectExpenses)
	report.GrossProfit = report.TotalIncome.Sub(report.TotalDirectExpenses)
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("tenant_id", tenantID),
		logDate("from", &from),
		logDate("to", &to),
		slog.String("net_profit", report.NetProfit.StringFixed(2)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	var totals []domain.AccountTotals
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		var err error
		totals, err = snap.AccountTotals(ctx, tenantID, nil, &asOf)
		return err
	})
	if err != nil {
		return nil, s.reportFailure(ctx, err, "balance sheet")
	}

	report := &domain.BalanceSheetReport{
		AsOfDate:         asOf,
		Assets:           []domain.ReportLine{},
		Liabilities:      []domain.ReportLine{},
		RetainedEarnings: decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	for _, t := range totals {
		line := reportLine(t)
		switch accounting.SectionOf(t.Account.AccountType) {
		case accounting.SectionAsset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(line.Amount)
		case accounting.SectionLiability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(line.Amount)
		case accounting.SectionIncome:
			report.RetainedEarnings = report.RetainedEarnings.Add(line.Amount)
		default:
			report.RetainedEarnings = report.RetainedEarnings.Sub(line.Amount)
		}
	}
	report.TotalEquity = report.RetainedEarnings
	claims := report.TotalLiabilities.Add(report.TotalEquity)
	report.Difference = report.TotalAssets.Sub(claims)
	report.IsBalanced = accounting.IsBalanced(report.TotalAssets, claims)

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("tenant_id", tenantID),
		logDate("as_of", &asOf),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// GeneralLedger lists an account's entries with running balances.
func (s *reportingService) GeneralLedger(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.GeneralLedger, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	report := &domain.GeneralLedger{DateFrom: from, DateTo: to}
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		var openingTo *time.Time
		if from != nil {
			openingTo = dayBefore(*from)
		}
		opening, err := snap.AccountTotal(ctx, tenantID, accountID, nil, openingTo)
		if err != nil {
			return err
		}
		report.Account = opening.Account
		if from != nil {
			report.OpeningBalance = opening.Balance()
		}

		report.Lines, err = snap.AccountEntries(ctx, tenantID, accountID, from, to)
		return err
	})
	if err != nil {
		return nil, s.reportFailure(ctx, err, "general ledger", slog.Int64("account_id", accountID))
	}

	if report.Lines == nil {
		report.Lines = []domain.LedgerLine{}
	}
	running := report.OpeningBalance
	report.TotalDebits, report.TotalCredits = decimal.Zero, decimal.Zero
	for i := range report.Lines {
		line := &report.Lines[i]
		running = running.Add(line.Debit).Sub(line.Credit)
		line.RunningBalance = running
		report.TotalDebits = report.TotalDebits.Add(line.Debit)
		report.TotalCredits = report.TotalCredits.Add(line.Credit)
	}
	report.ClosingBalance = running

	s.LogInfo(ctx, "General ledger generated successfully",
		slog.String("tenant_id", tenantID),
		slog.Int64("account_id", accountID),
		slog.Int("line_count", len(report.Lines)))
	return report, nil
}

// CashFlow classifies cash-touching vouchers of a period by their net cash effect.
func (s *reportingService) CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error) {
	if err := checkRange(&from, &to); err != nil {
		return nil, err
	}

	var (
		openingTotals []domain.AccountTotals
		movements     []domain.CashMovement
	)
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		var err error
		if openingTotals, err = snap.AccountTotals(ctx, tenantID, nil, dayBefore(from)); err != nil {
			return err
		}
		movements, err = snap.CashMovements(ctx, tenantID, &from, &to)
		return err
	})
	if err != nil {
		return nil, s.reportFailure(ctx, err, "cash flow")
	}

	report := &domain.CashFlowReport{
		DateFrom:       from,
		DateTo:         to,
		OpeningBalance: decimal.Zero,
		Receipts:       []domain.CashFlowLine{},
		Payments:       []domain.CashFlowLine{},
		Transfers:      []domain.CashFlowLine{},
		TotalReceipts:  decimal.Zero,
		TotalPayments:  decimal.Zero,
	}
	for _, t := range openingTotals {
		if t.Account.AccountType.IsCash() {
			report.OpeningBalance = report.OpeningBalance.Add(t.Balance())
		}
	}

	for _, m := range movements {
		net := m.Net()
		line := domain.CashFlowLine{
			VoucherID:     m.VoucherID,
			VoucherNumber: m.VoucherNumber,
			VoucherDate:   m.VoucherDate,
			VoucherType:   m.VoucherType,
			Narration:     m.Narration,
			Amount:        net.Abs(),
		}
		switch {
		case net.IsPositive():
			report.Receipts = append(report.Receipts, line)
			report.TotalReceipts = report.TotalReceipts.Add(line.Amount)
		case net.IsNegative():
			report.Payments = append(report.Payments, line)
			report.TotalPayments = report.TotalPayments.Add(line.Amount)
		default:
			line.Amount = m.Inflow
			report.Transfers = append(report.Transfers, line)
		}
	}
	report.NetCashFlow = report.TotalReceipts.Sub(report.TotalPayments)
	report.ClosingBalance = report.OpeningBalance.Add(report.NetCashFlow)

	s.LogInfo(ctx, "Cash flow report generated successfully",
		slog.String("tenant_id", tenantID),
		logDate("from", &from),
		logDate("to", &to),
		slog.Int("receipts", len(report.Receipts)),
		slog.Int("payments", len(report.Payments)))
	return report, nil
}

func reportLine(t domain.AccountTotals) domain.ReportLine {
	return domain.ReportLine{
		AccountID:   t.Account.AccountID,
		AccountName: t.Account.Name,
		AccountType: t.Account.AccountType,
		Amount:      accounting.NaturalAmount(t.Account.AccountType, t.Balance()),
	}
}

func (s *reportingService) reportFailure(ctx context.Context, err error, report string, keyvals ...any) error {
	if isClientError(err) {
		return err
	}
	s.LogError(ctx, err, "Failed to generate "+report+" report", keyvals...)
	return fmt.Errorf("failed to generate %s report: %w", report, err)
}
