package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/pagination"
)

type voucherRepository struct {
	store *Store
}

func newVoucherRepository(store *Store) portsrepo.VoucherRepositoryFacade {
	return &voucherRepository{store: store}
}

var _ portsrepo.VoucherRepositoryFacade = (*voucherRepository)(nil)

// RunInPostingTx holds the store's write lock while fn runs. Inserts are staged
// and only become visible when fn succeeds.
func (r *voucherRepository) RunInPostingTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.PostingTx) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &postingTx{store: r.store}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, v := range tx.staged {
		r.store.vouchers[v.VoucherID] = v
	}
	r.store.lastVoucherID = tx.lastVoucherID(r.store.lastVoucherID)
	r.store.lastEntryID = tx.lastEntryID(r.store.lastEntryID)
	return nil
}

type postingTx struct {
	store  *Store
	staged []domain.Voucher
}

var _ portsrepo.PostingTx = (*postingTx)(nil)

// LockVoucherSeries is a no-op: the caller already holds the store's write lock.
func (t *postingTx) LockVoucherSeries(context.Context, string, string) error {
	return nil
}

func (t *postingTx) LastVoucherNumber(_ context.Context, tenantID string, prefix string) (string, error) {
	last := ""
	consider := func(v domain.Voucher) {
		if v.TenantID == tenantID && strings.HasPrefix(v.VoucherNumber, prefix) &&
			(last == "" || voucherNumberLess(last, v.VoucherNumber)) {
			last = v.VoucherNumber
		}
	}
	for _, v := range t.store.vouchers {
		consider(v)
	}
	for _, v := range t.staged {
		consider(v)
	}
	return last, nil
}

func (t *postingTx) LockAccounts(_ context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error) {
	out := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := t.store.accountLocked(tenantID, id); ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (t *postingTx) InsertVoucher(_ context.Context, voucher *domain.Voucher) error {
	for _, v := range t.store.vouchers {
		if v.TenantID == voucher.TenantID && v.VoucherNumber == voucher.VoucherNumber {
			return fmt.Errorf("voucher number %s already taken: %w", voucher.VoucherNumber, apperrors.ErrConcurrentModification)
		}
	}
	for _, e := range voucher.Entries {
		if _, ok := t.store.accountLocked(voucher.TenantID, e.LedgerAccountID); !ok {
			return fmt.Errorf("entry references unknown account %d", e.LedgerAccountID)
		}
	}

	voucher.VoucherID = t.lastVoucherID(t.store.lastVoucherID) + 1
	nextEntry := t.lastEntryID(t.store.lastEntryID)
	for i := range voucher.Entries {
		nextEntry++
		voucher.Entries[i].EntryID = nextEntry
		voucher.Entries[i].VoucherID = voucher.VoucherID
	}

	stored := *voucher
	stored.Entries = append([]domain.JournalEntry(nil), voucher.Entries...)
	t.staged = append(t.staged, stored)
	return nil
}

func (t *postingTx) lastVoucherID(committed int64) int64 {
	if n := len(t.staged); n > 0 {
		return t.staged[n-1].VoucherID
	}
	return committed
}

func (t *postingTx) lastEntryID(committed int64) int64 {
	for i := len(t.staged) - 1; i >= 0; i-- {
		if entries := t.staged[i].Entries; len(entries) > 0 {
			return entries[len(entries)-1].EntryID
		}
	}
	return committed
}

func (r *voucherRepository) CancelVoucher(_ context.Context, tenantID string, voucherID int64, userID string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	v, ok := r.store.vouchers[voucherID]
	if !ok || v.TenantID != tenantID || v.Status != domain.VoucherPosted {
		return false, nil
	}
	v.Status = domain.VoucherCancelled
	v.CancelledAt = &at
	v.CancelledBy = &userID
	v.LastUpdatedAt = at
	v.LastUpdatedBy = userID
	r.store.vouchers[voucherID] = v
	return true, nil
}

func (r *voucherRepository) FindVoucherByID(_ context.Context, tenantID string, voucherID int64) (*domain.Voucher, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.vouchers[voucherID]
	if !ok || v.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("voucher %d", voucherID)
	}
	out := r.store.withAccountNames(v)
	return &out, nil
}

func (r *voucherRepository) ListVouchers(_ context.Context, tenantID string, filter domain.VoucherFilter) ([]domain.Voucher, *string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var (
		hasCursor  bool
		cursorDate time.Time
		cursorID   int64
	)
	if filter.NextToken != nil && *filter.NextToken != "" {
		var err error
		cursorDate, cursorID, err = pagination.DecodeVoucherCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		hasCursor = true
	}

	var matched []domain.Voucher
	for _, v := range r.store.vouchers {
		if v.TenantID != tenantID {
			continue
		}
		if filter.DateFrom != nil && v.VoucherDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && v.VoucherDate.After(*filter.DateTo) {
			continue
		}
		if filter.Type != nil && v.VoucherType != *filter.Type {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if hasCursor && !(v.VoucherDate.Before(cursorDate) || (v.VoucherDate.Equal(cursorDate) && v.VoucherID < cursorID)) {
			continue
		}
		matched = append(matched, v)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].VoucherDate.Equal(matched[j].VoucherDate) {
			return matched[i].VoucherDate.After(matched[j].VoucherDate)
		}
		return matched[i].VoucherID > matched[j].VoucherID
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	var nextToken *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeVoucherCursor(last.VoucherDate, last.VoucherID)
		nextToken = &token
	}

	out := make([]domain.Voucher, len(matched))
	for i, v := range matched {
		out[i] = r.store.withAccountNames(v)
	}
	return out, nextToken, nil
}
