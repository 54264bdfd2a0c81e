package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/models"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ReadSnapshot runs fn inside a read-only REPEATABLE READ transaction.
func (r *reportingRepository) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return r.WithTx(ctx, opts, func(tx pgx.Tx) error {
		return fn(ctx, &pgxSnapshot{tx: tx})
	})
}

type pgxSnapshot struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerSnapshot = (*pgxSnapshot)(nil)

// postedEntries selects entries of Posted vouchers of tenant $1 within the optional window $2..$3.
const postedEntries = `
	SELECT je.ledger_account_id, je.debit_amount, je.credit_amount
	FROM journal_entries je
	JOIN vouchers v ON v.voucher_id = je.voucher_id
	WHERE v.tenant_id = $1
		AND v.status = 'Posted'
		AND ($2::date IS NULL OR v.voucher_date >= $2::date)
		AND ($3::date IS NULL OR v.voucher_date <= $3::date)`

func (s *pgxSnapshot) AccountTotals(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.tenant_id, a.name, a.account_type, a.is_system_account, a.status, a.description,
			a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
			COALESCE(SUM(pe.debit_amount), 0), COALESCE(SUM(pe.credit_amount), 0)
		FROM accounts a
		LEFT JOIN (` + postedEntries + `) pe ON pe.ledger_account_id = a.account_id
		WHERE a.tenant_id = $1
		GROUP BY a.account_id
		ORDER BY lower(a.name), a.account_id`

	rows, err := s.tx.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	totals, err := pgx.CollectRows(rows, scanAccountTotals)
	if err != nil {
		return nil, fmt.Errorf("error scanning account totals: %w", err)
	}
	return totals, nil
}

func scanAccountTotals(row pgx.CollectableRow) (domain.AccountTotals, error) {
	var (
		m      models.Account
		totals domain.AccountTotals
	)
	err := row.Scan(
		&m.AccountID, &m.TenantID, &m.Name, &m.AccountType, &m.IsSystemAccount, &m.Status, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&totals.TotalDebits, &totals.TotalCredits,
	)
	totals.Account = mapping.ToDomainAccount(m)
	return totals, err
}

func (s *pgxSnapshot) AccountTotal(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) (*domain.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.tenant_id, a.name, a.account_type, a.is_system_account, a.status, a.description,
			a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
			COALESCE(SUM(pe.debit_amount), 0), COALESCE(SUM(pe.credit_amount), 0)
		FROM accounts a
		LEFT JOIN (` + postedEntries + `) pe ON pe.ledger_account_id = a.account_id
		WHERE a.tenant_id = $1 AND a.account_id = $4
		GROUP BY a.account_id`

	rows, err := s.tx.Query(ctx, query, tenantID, from, to, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying account total: %w", err)
	}
	totals, err := pgx.CollectExactlyOneRow(rows, scanAccountTotals)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account %d", accountID)
		}
		return nil, fmt.Errorf("error scanning account total: %w", err)
	}
	return &totals, nil
}

func (s *pgxSnapshot) AccountEntries(ctx context.Context, tenantID string, accountID int64, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT je.entry_id, v.voucher_id, v.voucher_number, v.voucher_date, v.voucher_type, je.line_no,
			COALESCE(je.narration, v.narration), je.debit_amount, je.credit_amount
		FROM journal_entries je
		JOIN vouchers v ON v.voucher_id = je.voucher_id
		WHERE v.tenant_id = $1
			AND je.ledger_account_id = $4
			AND v.status = 'Posted'
			AND ($2::date IS NULL OR v.voucher_date >= $2::date)
			AND ($3::date IS NULL OR v.voucher_date <= $3::date)
		ORDER BY v.voucher_date, length(v.voucher_number), v.voucher_number, je.line_no`

	rows, err := s.tx.Query(ctx, query, tenantID, from, to, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying account entries: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerLine, error) {
		var l domain.LedgerLine
		err := row.Scan(&l.EntryID, &l.VoucherID, &l.VoucherNumber, &l.VoucherDate, &l.VoucherType, &l.LineNo,
			&l.Narration, &l.Debit, &l.Credit)
		l.VoucherDate = domain.DateOnly(l.VoucherDate)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning account entries: %w", err)
	}
	return lines, nil
}

func (s *pgxSnapshot) CashMovements(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.CashMovement, error) {
	query := `
		SELECT v.voucher_id, v.voucher_number, v.voucher_date, v.voucher_type, v.narration,
			SUM(je.debit_amount), SUM(je.credit_amount)
		FROM vouchers v
		JOIN journal_entries je ON je.voucher_id = v.voucher_id
		JOIN accounts a ON a.account_id = je.ledger_account_id AND a.tenant_id = v.tenant_id
		WHERE v.tenant_id = $1
			AND v.status = 'Posted'
			AND a.account_type IN ('Bank', 'Asset')
			AND ($2::date IS NULL OR v.voucher_date >= $2::date)
			AND ($3::date IS NULL OR v.voucher_date <= $3::date)
		GROUP BY v.voucher_id
		ORDER BY v.voucher_date, length(v.voucher_number), v.voucher_number`

	rows, err := s.tx.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying cash movements: %w", err)
	}
	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashMovement, error) {
		var m domain.CashMovement
		err := row.Scan(&m.VoucherID, &m.VoucherNumber, &m.VoucherDate, &m.VoucherType, &m.Narration, &m.Inflow, &m.Outflow)
		m.VoucherDate = domain.DateOnly(m.VoucherDate)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning cash movements: %w", err)
	}
	return movements, nil
}

func (s *pgxSnapshot) VoucherAudits(ctx context.Context, tenantID string) ([]domain.VoucherAudit, error) {
	query := `
		SELECT v.voucher_id, v.voucher_number, v.voucher_type, v.voucher_date, v.status, v.total_amount,
			COALESCE(SUM(je.debit_amount), 0), COALESCE(SUM(je.credit_amount), 0), COUNT(je.entry_id),
			COUNT(je.entry_id) FILTER (WHERE je.debit_amount < 0 OR je.credit_amount < 0
				OR (je.debit_amount > 0) = (je.credit_amount > 0))
		FROM vouchers v
		LEFT JOIN journal_entries je ON je.voucher_id = v.voucher_id
		WHERE v.tenant_id = $1
		GROUP BY v.voucher_id
		ORDER BY v.voucher_date, length(v.voucher_number), v.voucher_number`

	rows, err := s.tx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error querying voucher audits: %w", err)
	}
	audits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.VoucherAudit, error) {
		var a domain.VoucherAudit
		err := row.Scan(&a.VoucherID, &a.VoucherNumber, &a.VoucherType, &a.VoucherDate, &a.Status, &a.TotalAmount,
			&a.TotalDebits, &a.TotalCredits, &a.EntryCount, &a.MalformedEntries)
		a.VoucherDate = domain.DateOnly(a.VoucherDate)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning voucher audits: %w", err)
	}
	return audits, nil
}

func (s *pgxSnapshot) DanglingEntries(ctx context.Context, tenantID string) ([]domain.EntryReference, error) {
	query := `
		SELECT je.entry_id, v.voucher_number, je.ledger_account_id
		FROM journal_entries je
		JOIN vouchers v ON v.voucher_id = je.voucher_id
		LEFT JOIN accounts a ON a.account_id = je.ledger_account_id AND a.tenant_id = v.tenant_id
		WHERE v.tenant_id = $1 AND a.account_id IS NULL
		ORDER BY je.entry_id`

	rows, err := s.tx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error querying dangling entries: %w", err)
	}
	refs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.EntryReference])
	if err != nil {
		return nil, fmt.Errorf("error scanning dangling entries: %w", err)
	}
	return refs, nil
}
