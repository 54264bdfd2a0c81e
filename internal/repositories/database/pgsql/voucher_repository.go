package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/models"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/mapping"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/pagination"
)

const voucherColumns = `v.voucher_id, v.tenant_id, v.voucher_number, v.voucher_date, v.voucher_type, v.narration,
	v.reference_number, v.total_amount, v.status, v.cancelled_at, v.cancelled_by,
	v.created_at, v.created_by, v.last_updated_at, v.last_updated_by`

type PgxVoucherRepository struct {
	BaseRepository
}

func newPgxVoucherRepository(pool *pgxpool.Pool) *PgxVoucherRepository {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

func scanVoucher(row pgx.Row) (domain.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.TenantID,
		&m.VoucherNumber,
		&m.VoucherDate,
		&m.VoucherType,
		&m.Narration,
		&m.ReferenceNumber,
		&m.TotalAmount,
		&m.Status,
		&m.CancelledAt,
		&m.CancelledBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Voucher{}, err
	}
	return mapping.ToDomainVoucher(m), nil
}

// postingTxOptions must stay at READ COMMITTED: statements after the series lock
// have to see the voucher the previous lock holder committed, and a snapshot-level
// isolation would pin the snapshot at the lock statement, before the wait.
var postingTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// RunInPostingTx runs fn as one posting unit.
func (r *PgxVoucherRepository) RunInPostingTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.PostingTx) error) error {
	return r.WithTx(ctx, postingTxOptions, func(tx pgx.Tx) error {
		return fn(ctx, &pgxPostingTx{tx: tx})
	})
}

type pgxPostingTx struct {
	tx pgx.Tx
}

var _ portsrepo.PostingTx = (*pgxPostingTx)(nil)

// LockVoucherSeries takes a transaction-scoped advisory lock keyed on tenant and prefix.
func (t *pgxPostingTx) LockVoucherSeries(ctx context.Context, tenantID string, prefix string) error {
	_, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, tenantID+":"+prefix)
	if err != nil {
		return mapWriteConflict(err, "failed to take voucher series lock")
	}
	return nil
}

func (t *pgxPostingTx) LastVoucherNumber(ctx context.Context, tenantID string, prefix string) (string, error) {
	query := `
		SELECT voucher_number
		FROM vouchers
		WHERE tenant_id = $1 AND voucher_number LIKE $2
		ORDER BY length(voucher_number) DESC, voucher_number DESC
		LIMIT 1
		FOR UPDATE`
	var last string
	err := t.tx.QueryRow(ctx, query, tenantID, prefix+"%").Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", mapWriteConflict(err, "failed to read last voucher number")
	}
	return last, nil
}

// LockAccounts reads the accounts FOR SHARE so they cannot be deleted or retyped before commit.
func (t *pgxPostingTx) LockAccounts(ctx context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error) {
	accounts, err := findAccountsByIDs(ctx, t.tx, tenantID, accountIDs, "FOR SHARE")
	if err != nil {
		return nil, mapWriteConflict(err, "failed to lock accounts")
	}
	return accounts, nil
}

func (t *pgxPostingTx) InsertVoucher(ctx context.Context, voucher *domain.Voucher) error {
	m := mapping.ToModelVoucher(*voucher)
	header := `
		INSERT INTO vouchers (tenant_id, voucher_number, voucher_date, voucher_type, narration, reference_number,
			total_amount, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING voucher_id`
	err := t.tx.QueryRow(ctx, header,
		m.TenantID,
		m.VoucherNumber,
		m.VoucherDate,
		m.VoucherType,
		m.Narration,
		m.ReferenceNumber,
		m.TotalAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&voucher.VoucherID)
	if err != nil {
		return mapWriteConflict(err, "failed to insert voucher "+m.VoucherNumber)
	}

	entryInsert := `
		INSERT INTO journal_entries (voucher_id, line_no, ledger_account_id, debit_amount, credit_amount, narration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING entry_id`
	batch := &pgx.Batch{}
	for i := range voucher.Entries {
		e := &voucher.Entries[i]
		e.VoucherID = voucher.VoucherID
		batch.Queue(entryInsert, e.VoucherID, e.LineNo, e.LedgerAccountID, e.DebitAmount, e.CreditAmount, e.Narration, e.CreatedAt).
			QueryRow(func(row pgx.Row) error {
				return row.Scan(&e.EntryID)
			})
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteConflict(err, "failed to insert journal entries for "+m.VoucherNumber)
	}
	return nil
}

// CancelVoucher flips a Posted voucher to Cancelled in a single guarded update.
func (r *PgxVoucherRepository) CancelVoucher(ctx context.Context, tenantID string, voucherID int64, userID string, at time.Time) (bool, error) {
	query := `
		UPDATE vouchers
		SET status = $3, cancelled_at = $4, cancelled_by = $5, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND voucher_id = $2 AND status = $6`
	tag, err := r.Pool.Exec(ctx, query, tenantID, voucherID,
		string(domain.VoucherCancelled), at, userID, string(domain.VoucherPosted))
	if err != nil {
		return false, fmt.Errorf("failed to cancel voucher %d: %w", voucherID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindVoucherByID retrieves a voucher with its entries.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, tenantID string, voucherID int64) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers v WHERE v.tenant_id = $1 AND v.voucher_id = $2`
	voucher, err := scanVoucher(r.Pool.QueryRow(ctx, query, tenantID, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("voucher %d", voucherID)
		}
		return nil, fmt.Errorf("failed to find voucher %d: %w", voucherID, err)
	}

	entries, err := r.findEntries(ctx, []int64{voucherID})
	if err != nil {
		return nil, err
	}
	voucher.Entries = entries[voucherID]
	return &voucher, nil
}

func (r *PgxVoucherRepository) findEntries(ctx context.Context, voucherIDs []int64) (map[int64][]domain.JournalEntry, error) {
	query := `
		SELECT je.entry_id, je.voucher_id, je.line_no, je.ledger_account_id, a.name,
			je.debit_amount, je.credit_amount, je.narration, je.created_at
		FROM journal_entries je
		LEFT JOIN accounts a ON a.account_id = je.ledger_account_id
		WHERE je.voucher_id = ANY($1)
		ORDER BY je.voucher_id, je.line_no`
	rows, err := r.Pool.Query(ctx, query, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		var m models.JournalEntry
		err := row.Scan(&m.EntryID, &m.VoucherID, &m.LineNo, &m.LedgerAccountID, &m.AccountName,
			&m.DebitAmount, &m.CreditAmount, &m.Narration, &m.CreatedAt)
		return mapping.ToDomainJournalEntry(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}

	out := make(map[int64][]domain.JournalEntry, len(voucherIDs))
	for _, e := range entries {
		out[e.VoucherID] = append(out[e.VoucherID], e)
	}
	return out, nil
}

// ListVouchers retrieves a page of vouchers ordered by date and id, newest first.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, tenantID string, filter domain.VoucherFilter) ([]domain.Voucher, *string, error) {
	conditions := []string{"v.tenant_id = $1"}
	args := []any{tenantID}
	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.DateFrom != nil {
		add("v.voucher_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("v.voucher_date <= $%d", *filter.DateTo)
	}
	if filter.Type != nil {
		add("v.voucher_type = $%d", string(*filter.Type))
	}
	if filter.Status != nil {
		add("v.status = $%d", string(*filter.Status))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeVoucherCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursorDate, cursorID)
		conditions = append(conditions, fmt.Sprintf("(v.voucher_date, v.voucher_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit+1)
	query := `SELECT ` + voucherColumns + ` FROM vouchers v WHERE ` + strings.Join(conditions, " AND ") +
		fmt.Sprintf(` ORDER BY v.voucher_date DESC, v.voucher_id DESC LIMIT $%d`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	vouchers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Voucher, error) {
		return scanVoucher(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan vouchers: %w", err)
	}

	var nextToken *string
	if len(vouchers) > limit {
		vouchers = vouchers[:limit]
		last := vouchers[limit-1]
		token := pagination.EncodeVoucherCursor(last.VoucherDate, last.VoucherID)
		nextToken = &token
	}
	if len(vouchers) == 0 {
		return []domain.Voucher{}, nil, nil
	}

	ids := make([]int64, len(vouchers))
	for i, v := range vouchers {
		ids[i] = v.VoucherID
	}
	entries, err := r.findEntries(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range vouchers {
		vouchers[i].Entries = entries[vouchers[i].VoucherID]
	}
	return vouchers, nextToken, nil
}
