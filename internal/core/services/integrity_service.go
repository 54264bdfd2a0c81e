package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Integrity check names as reported to clients.
const (
	CheckVoucherBalance     = "voucher_balance"
	CheckVoucherTotalAmount = "voucher_total_amount"
	CheckMinimumEntries     = "minimum_entries"
	CheckEntrySides         = "entry_sides"
	CheckAccountReferences  = "account_references"
	CheckVoucherNumbers     = "voucher_numbers"
	CheckTrialBalance       = "trial_balance"
	CheckNormalBalance      = "normal_balance"
)

type integrityService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

// IntegrityServiceOption is a functional option for configuring the integrity service
type IntegrityServiceOption func(*integrityService)

// WithIntegrityClock overrides the clock used for checked_at.
func WithIntegrityClock(now func() time.Time) IntegrityServiceOption {
	return func(s *integrityService) {
		s.now = now
	}
}

// NewIntegrityService creates the ledger auditor.
func NewIntegrityService(repo portsrepo.ReportingRepository, options ...IntegrityServiceOption) portssvc.IntegrityService {
	svc := &integrityService{reportingRepo: repo, now: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IntegrityService = (*integrityService)(nil)

// RunIntegrityCheck audits the tenant's ledger. Findings are reported, never repaired.
func (s *integrityService) RunIntegrityCheck(ctx context.Context, tenantID string) (*domain.IntegrityReport, error) {
	var (
		audits   []domain.VoucherAudit
		dangling []domain.EntryReference
		totals   []domain.AccountTotals
	)
	err := s.reportingRepo.ReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		var err error
		if audits, err = snap.VoucherAudits(ctx, tenantID); err != nil {
			return err
		}
		if dangling, err = snap.DanglingEntries(ctx, tenantID); err != nil {
			return err
		}
		totals, err = snap.AccountTotals(ctx, tenantID, nil, nil)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger for integrity check", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to run integrity check: %w", err)
	}

	results := []domain.IntegrityCheckResult{
		checkVoucherBalance(audits),
		checkVoucherTotals(audits),
		checkMinimumEntries(audits),
		checkEntrySides(audits),
		checkAccountReferences(dangling),
		checkVoucherNumbers(audits),
		checkTrialBalance(totals),
		checkNormalBalances(totals),
	}

	report := &domain.IntegrityReport{
		TenantID:  tenantID,
		CheckedAt: s.now().UTC(),
		Passed:    true,
		Results:   results,
	}
	for _, r := range results {
		if r.Passed {
			continue
		}
		if r.Severity == domain.SeverityError {
			report.Failures++
			report.Passed = false
		} else {
			report.Warnings++
		}
	}

	if report.Passed {
		s.LogInfo(ctx, "Integrity check passed",
			slog.String("tenant_id", tenantID),
			slog.Int("vouchers", len(audits)),
			slog.Int("warnings", report.Warnings))
	} else {
		s.LogWarn(ctx, "Integrity check found problems",
			slog.String("tenant_id", tenantID),
			slog.Int("failures", report.Failures),
			slog.Int("warnings", report.Warnings))
	}
	return report, nil
}

func newResult(name string, severity domain.IntegritySeverity, details []string, okMsg, failMsg string) domain.IntegrityCheckResult {
	if details == nil {
		details = []string{}
	}
	r := domain.IntegrityCheckResult{
		CheckName: name,
		Passed:    len(details) == 0,
		Severity:  severity,
		Message:   okMsg,
		Details:   details,
	}
	if !r.Passed {
		r.Message = fmt.Sprintf(failMsg, len(details))
	}
	return r
}

func checkVoucherBalance(audits []domain.VoucherAudit) domain.IntegrityCheckResult {
	var details []string
	for _, a := range audits {
		if !accounting.IsBalanced(a.TotalDebits, a.TotalCredits) {
			details = append(details, fmt.Sprintf("%s: debits %s, credits %s",
				a.VoucherNumber, a.TotalDebits.StringFixed(2), a.TotalCredits.StringFixed(2)))
		}
	}
	return newResult(CheckVoucherBalance, domain.SeverityError, details,
		"All vouchers are balanced", "%d voucher(s) have unequal debits and credits")
}

func checkVoucherTotals(audits []domain.VoucherAudit) domain.IntegrityCheckResult {
	var details []string
	for _, a := range audits {
		if !a.TotalAmount.Equal(a.TotalDebits) {
			details = append(details, fmt.Sprintf("%s: header total %s, entry debits %s",
				a.VoucherNumber, a.TotalAmount.StringFixed(2), a.TotalDebits.StringFixed(2)))
		}
	}
	return newResult(CheckVoucherTotalAmount, domain.SeverityError, details,
		"All voucher totals match their entries", "%d voucher(s) have a total that differs from their debits")
}

func checkMinimumEntries(audits []domain.VoucherAudit) domain.IntegrityCheckResult {
	var details []string
	for _, a := range audits {
		if a.EntryCount < 2 {
			details = append(details, fmt.Sprintf("%s: %d entr(ies)", a.VoucherNumber, a.EntryCount))
		}
	}
	return newResult(CheckMinimumEntries, domain.SeverityError, details,
		"All vouchers have at least two entries", "%d voucher(s) have fewer than two entries")
}

func checkEntrySides(audits []domain.VoucherAudit) domain.IntegrityCheckResult {
	var details []string
	for _, a := range audits {
		if a.MalformedEntries > 0 {
			details = append(details, fmt.Sprintf("%s: %d malformed entr(ies)", a.VoucherNumber, a.MalformedEntries))
		}
	}
	return newResult(CheckEntrySides, domain.SeverityError, details,
		"Every entry has exactly one positive side", "%d voucher(s) contain entries without exactly one positive side")
}

func checkAccountReferences(dangling []domain.EntryReference) domain.IntegrityCheckResult {
	details := make([]string, 0, len(dangling))
	for _, d := range dangling {
		details = append(details, fmt.Sprintf("%s: entry %d references unknown account %d",
			d.VoucherNumber, d.EntryID, d.LedgerAccountID))
	}
	return newResult(CheckAccountReferences, domain.SeverityError, details,
		"All entries reference accounts of this tenant", "%d entr(ies) reference missing accounts")
}

func checkVoucherNumbers(audits []domain.VoucherAudit) domain.IntegrityCheckResult {
	var details []string
	for _, a := range audits {
		if err := accounting.CheckVoucherNumber(a.VoucherNumber, a.VoucherType, a.VoucherDate); err != nil {
			details = append(details, err.Error())
		}
	}
	return newResult(CheckVoucherNumbers, domain.SeverityError, details,
		"All voucher numbers match their type and date", "%d voucher number(s) do not match their type and date")
}

func checkTrialBalance(totals []domain.AccountTotals) domain.IntegrityCheckResult {
	debits, credits := decimal.Zero, decimal.Zero
	for _, t := range totals {
		debits = debits.Add(t.TotalDebits)
		credits = credits.Add(t.TotalCredits)
	}
	var details []string
	if !accounting.IsBalanced(debits, credits) {
		details = append(details, fmt.Sprintf("total debits %s, total credits %s, difference %s",
			debits.StringFixed(2), credits.StringFixed(2), debits.Sub(credits).StringFixed(2)))
	}
	return newResult(CheckTrialBalance, domain.SeverityError, details,
		"Ledger-wide debits equal credits", "Ledger is out of balance (%d finding)")
}

func checkNormalBalances(totals []domain.AccountTotals) domain.IntegrityCheckResult {
	var details []string
	for _, t := range totals {
		if accounting.SectionOf(t.Account.AccountType) == accounting.SectionIncome {
			continue
		}
		if natural := accounting.NaturalAmount(t.Account.AccountType, t.Balance()); natural.IsNegative() {
			details = append(details, fmt.Sprintf("%s (%s) carries a %s balance of %s",
				t.Account.Name, t.Account.AccountType, oppositeSide(t.Account.AccountType), natural.Abs().StringFixed(2)))
		}
	}
	return newResult(CheckNormalBalance, domain.SeverityWarning, details,
		"All accounts carry their normal balance", "%d account(s) carry an abnormal balance")
}

func oppositeSide(t domain.AccountType) domain.BalanceSide {
	if t.NormalBalance() == domain.DebitSide {
		return domain.CreditSide
	}
	return domain.DebitSide
}
