package memory

import (
	"context"
	"sort"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	store *Store
}

func newReportingRepository(store *Store) portsrepo.ReportingRepository {
	return &reportingRepository{store: store}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, snapshot{store: r.store})
}

// snapshot reads the store without locking; ReadSnapshot holds the read lock.
type snapshot struct {
	store *Store
}

var _ portsrepo.LedgerSnapshot = snapshot{}

func inWindow(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

// postedVouchers returns the tenant's Posted vouchers in the window, ordered by date and number.
func (s snapshot) postedVouchers(tenantID string, from, to *time.Time) []domain.Voucher {
	var out []domain.Voucher
	for _, v := range s.store.tenantVouchersLocked(tenantID) {
		if v.Status == domain.VoucherPosted && inWindow(v.VoucherDate, from, to) {
			out = append(out, v)
		}
	}
	return out
}

func (s snapshot) AccountTotals(_ context.Context, tenantID string, from, to *time.Time) ([]domain.AccountTotals, error) {
	sums := make(map[int64]*domain.AccountTotals)
	accounts := s.store.tenantAccountsLocked(tenantID)
	out := make([]domain.AccountTotals, len(accounts))
	for i, acc := range accounts {
		out[i] = domain.AccountTotals{Account: acc, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
		sums[acc.AccountID] = &out[i]
	}

	for _, v := range s.postedVouchers(tenantID, from, to) {
		for _, e := range v.Entries {
			if t, ok := sums[e.LedgerAccountID]; ok {
				t.TotalDebits = t.TotalDebits.Add(e.DebitAmount)
				t.TotalCredits = t.TotalCredits.Add(e.CreditAmount)
			}
		}
	}
	return out, nil
}

func (s snapshot) AccountTotal(_ context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.AccountTotals, error) {
	acc, ok := s.store.accountLocked(tenantID, accountID)
	if !ok {
		return nil, apperrors.NewNotFoundError("account %d", accountID)
	}
	out := &domain.AccountTotals{Account: acc, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
	for _, v := range s.postedVouchers(tenantID, from, to) {
		for _, e := range v.Entries {
			if e.LedgerAccountID == accountID {
				out.TotalDebits = out.TotalDebits.Add(e.DebitAmount)
				out.TotalCredits = out.TotalCredits.Add(e.CreditAmount)
			}
		}
	}
	return out, nil
}

func (s snapshot) AccountEntries(_ context.Context, tenantID string, accountID int64, from, to *time.Time) ([]domain.LedgerLine, error) {
	if _, ok := s.store.accountLocked(tenantID, accountID); !ok {
		return nil, apperrors.NewNotFoundError("account %d", accountID)
	}
	lines := []domain.LedgerLine{}
	for _, v := range s.postedVouchers(tenantID, from, to) {
		entries := append([]domain.JournalEntry(nil), v.Entries...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].LineNo < entries[j].LineNo })
		for _, e := range entries {
			if e.LedgerAccountID != accountID {
				continue
			}
			narration := e.Narration
			if narration == nil {
				narration = v.Narration
			}
			lines = append(lines, domain.LedgerLine{
				EntryID:       e.EntryID,
				VoucherID:     v.VoucherID,
				VoucherNumber: v.VoucherNumber,
				VoucherDate:   v.VoucherDate,
				VoucherType:   v.VoucherType,
				LineNo:        e.LineNo,
				Narration:     narration,
				Debit:         e.DebitAmount,
				Credit:        e.CreditAmount,
			})
		}
	}
	return lines, nil
}

func (s snapshot) CashMovements(_ context.Context, tenantID string, from, to *time.Time) ([]domain.CashMovement, error) {
	out := []domain.CashMovement{}
	for _, v := range s.postedVouchers(tenantID, from, to) {
		m := domain.CashMovement{
			VoucherID:     v.VoucherID,
			VoucherNumber: v.VoucherNumber,
			VoucherDate:   v.VoucherDate,
			VoucherType:   v.VoucherType,
			Narration:     v.Narration,
			Inflow:        decimal.Zero,
			Outflow:       decimal.Zero,
		}
		touchesCash := false
		for _, e := range v.Entries {
			acc, ok := s.store.accountLocked(tenantID, e.LedgerAccountID)
			if !ok || !acc.AccountType.IsCash() {
				continue
			}
			touchesCash = true
			m.Inflow = m.Inflow.Add(e.DebitAmount)
			m.Outflow = m.Outflow.Add(e.CreditAmount)
		}
		if touchesCash {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s snapshot) VoucherAudits(_ context.Context, tenantID string) ([]domain.VoucherAudit, error) {
	vouchers := s.store.tenantVouchersLocked(tenantID)
	out := make([]domain.VoucherAudit, 0, len(vouchers))
	for _, v := range vouchers {
		a := domain.VoucherAudit{
			VoucherID:     v.VoucherID,
			VoucherNumber: v.VoucherNumber,
			VoucherType:   v.VoucherType,
			VoucherDate:   v.VoucherDate,
			Status:        v.Status,
			TotalAmount:   v.TotalAmount,
			TotalDebits:   decimal.Zero,
			TotalCredits:  decimal.Zero,
			EntryCount:    len(v.Entries),
		}
		for _, e := range v.Entries {
			a.TotalDebits = a.TotalDebits.Add(e.DebitAmount)
			a.TotalCredits = a.TotalCredits.Add(e.CreditAmount)
			if isMalformed(e) {
				a.MalformedEntries++
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func isMalformed(e domain.JournalEntry) bool {
	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return true
	}
	return e.DebitAmount.IsPositive() == e.CreditAmount.IsPositive()
}

func (s snapshot) DanglingEntries(_ context.Context, tenantID string) ([]domain.EntryReference, error) {
	out := []domain.EntryReference{}
	for _, v := range s.store.tenantVouchersLocked(tenantID) {
		for _, e := range v.Entries {
			if _, ok := s.store.accountLocked(tenantID, e.LedgerAccountID); !ok {
				out = append(out, domain.EntryReference{
					EntryID:         e.EntryID,
					VoucherNumber:   v.VoucherNumber,
					LedgerAccountID: e.LedgerAccountID,
				})
			}
		}
	}
	return out, nil
}
