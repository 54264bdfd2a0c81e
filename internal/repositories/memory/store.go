// Package memory provides in-process implementations of the ledger repositories.
// They back the STORAGE_DRIVER=memory mode and the service tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
)

// Store holds every tenant's accounts and vouchers behind one RWMutex.
// Posting units hold the write lock for their whole duration and report
// snapshots hold the read lock, which gives the same isolation the
// PostgreSQL repositories get from their transactions.
type Store struct {
	mu       sync.RWMutex
	accounts map[int64]domain.Account
	vouchers map[int64]domain.Voucher

	lastAccountID int64
	lastVoucherID int64
	lastEntryID   int64
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]domain.Account),
		vouchers: make(map[int64]domain.Voucher),
	}
}

// NewRepositoryProvider wires all memory repositories over one shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newAccountRepository(store),
		VoucherRepo:   newVoucherRepository(store),
		ReportingRepo: newReportingRepository(store),
	}
}

func (s *Store) accountLocked(tenantID string, accountID int64) (domain.Account, bool) {
	acc, ok := s.accounts[accountID]
	if !ok || acc.TenantID != tenantID {
		return domain.Account{}, false
	}
	return acc, true
}

func (s *Store) accountByNameLocked(tenantID, name string) (domain.Account, bool) {
	for _, acc := range s.accounts {
		if acc.TenantID == tenantID && strings.EqualFold(acc.Name, name) {
			return acc, true
		}
	}
	return domain.Account{}, false
}

// tenantAccountsLocked returns the tenant's accounts ordered by name.
func (s *Store) tenantAccountsLocked(tenantID string) []domain.Account {
	var out []domain.Account
	for _, acc := range s.accounts {
		if acc.TenantID == tenantID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if li != lj {
			return li < lj
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out
}

// tenantVouchersLocked returns the tenant's vouchers ordered by date, number.
func (s *Store) tenantVouchersLocked(tenantID string) []domain.Voucher {
	var out []domain.Voucher
	for _, v := range s.vouchers {
		if v.TenantID == tenantID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VoucherDate.Equal(out[j].VoucherDate) {
			return out[i].VoucherDate.Before(out[j].VoucherDate)
		}
		return voucherNumberLess(out[i].VoucherNumber, out[j].VoucherNumber)
	})
	return out
}

// voucherNumberLess orders numbers of one series numerically: shorter sequences sort first.
func voucherNumberLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// withAccountNames returns a copy of v whose entries carry their account names.
func (s *Store) withAccountNames(v domain.Voucher) domain.Voucher {
	out := v
	out.Entries = make([]domain.JournalEntry, len(v.Entries))
	for i, e := range v.Entries {
		if acc, ok := s.accounts[e.LedgerAccountID]; ok {
			e.AccountName = acc.Name
		}
		out.Entries[i] = e
	}
	return out
}
