package memory

import (
	"context"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
)

type accountRepository struct {
	store *Store
}

func newAccountRepository(store *Store) portsrepo.AccountRepositoryFacade {
	return &accountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(_ context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accountLocked(tenantID, accountID)
	if !ok {
		return nil, apperrors.NewNotFoundError("account %d", accountID)
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountByName(_ context.Context, tenantID string, name string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accountByNameLocked(tenantID, name)
	if !ok {
		return nil, apperrors.NewNotFoundError("account %q", name)
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountsByIDs(_ context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.store.accountLocked(tenantID, id); ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (r *accountRepository) ListAccounts(_ context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []domain.Account{}
	for _, acc := range r.store.tenantAccountsLocked(tenantID) {
		if filter.Type != nil && acc.AccountType != *filter.Type {
			continue
		}
		if filter.Status != nil && acc.Status != *filter.Status {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

func (r *accountRepository) CountEntriesForAccount(_ context.Context, tenantID string, accountID int64) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.countEntriesLocked(tenantID, accountID), nil
}

func (s *Store) countEntriesLocked(tenantID string, accountID int64) int64 {
	var n int64
	for _, v := range s.vouchers {
		if v.TenantID != tenantID {
			continue
		}
		for _, e := range v.Entries {
			if e.LedgerAccountID == accountID {
				n++
			}
		}
	}
	return n
}

func (r *accountRepository) SaveAccount(_ context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.accountByNameLocked(account.TenantID, account.Name); taken {
		return apperrors.ErrDuplicate
	}
	r.store.lastAccountID++
	account.AccountID = r.store.lastAccountID
	r.store.accounts[account.AccountID] = *account
	return nil
}

func (r *accountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.accountLocked(account.TenantID, account.AccountID)
	if !ok {
		return apperrors.NewNotFoundError("account %d", account.AccountID)
	}
	if other, taken := r.store.accountByNameLocked(account.TenantID, account.Name); taken && other.AccountID != account.AccountID {
		return apperrors.ErrDuplicate
	}
	account.IsSystemAccount = current.IsSystemAccount
	account.CreatedAt = current.CreatedAt
	account.CreatedBy = current.CreatedBy
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *accountRepository) DeleteAccount(_ context.Context, tenantID string, accountID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	acc, ok := r.store.accountLocked(tenantID, accountID)
	if !ok || acc.IsSystemAccount {
		return apperrors.NewNotFoundError("deletable account %d", accountID)
	}
	if r.store.countEntriesLocked(tenantID, accountID) > 0 {
		return &apperrors.ProtectedAccountError{
			AccountID: accountID,
			Action:    "delete",
			Reasons:   []apperrors.ProtectionReason{apperrors.ReasonHasEntries},
		}
	}
	delete(r.store.accounts, accountID)
	return nil
}
