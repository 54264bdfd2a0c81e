package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/models"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/mapping"
)

const accountColumns = `account_id, tenant_id, name, account_type, is_system_account, status, description,
	created_at, created_by, last_updated_at, last_updated_by`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Name,
		&m.AccountType,
		&m.IsSystemAccount,
		&m.Status,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
}

func (r *PgxAccountRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID within a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	acc, err := r.findOne(ctx, `tenant_id = $1 AND account_id = $2`, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account %d", accountID)
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByName retrieves an account by its case-insensitive name within a tenant.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, tenantID string, name string) (*domain.Account, error) {
	acc, err := r.findOne(ctx, `tenant_id = $1 AND lower(name) = lower($2)`, tenantID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account %q", name)
		}
		return nil, fmt.Errorf("failed to find account by name: %w", err)
	}
	return acc, nil
}

func findAccountsByIDs(ctx context.Context, q querier, tenantID string, accountIDs []int64, lockClause string) (map[int64]domain.Account, error) {
	out := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2) ORDER BY account_id ` + lockClause
	rows, err := q.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out, nil
}

// FindAccountsByIDs retrieves multiple accounts of a tenant by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []int64) (map[int64]domain.Account, error) {
	accounts, err := findAccountsByIDs(ctx, r.Pool, tenantID, accountIDs, "")
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by ids: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the tenant's accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY lower(name), account_id`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return accounts, nil
}

// CountEntriesForAccount counts journal entries referencing the account, whatever the voucher status.
func (r *PgxAccountRepository) CountEntriesForAccount(ctx context.Context, tenantID string, accountID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries je
		JOIN vouchers v ON v.voucher_id = je.voucher_id
		WHERE v.tenant_id = $1 AND je.ledger_account_id = $2`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries for account %d: %w", accountID, err)
	}
	return count, nil
}

// SaveAccount inserts a new account and sets its generated ID.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	query := `
		INSERT INTO accounts (tenant_id, name, account_type, is_system_account, status, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING account_id`

	err := r.Pool.QueryRow(ctx, query,
		m.TenantID,
		m.Name,
		m.AccountType,
		m.IsSystemAccount,
		m.Status,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&account.AccountID)
	if err != nil {
		if isUniqueViolation(err, constraintAccountName) {
			return fmt.Errorf("%w: account named %q", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save account %q: %w", m.Name, err)
	}
	return nil
}

// UpdateAccount updates the mutable fields of an account. is_system_account is never written.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, account_type = $4, status = $5, description = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND account_id = $2`

	tag, err := r.Pool.Exec(ctx, query,
		m.TenantID,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.Status,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, constraintAccountName) {
			return fmt.Errorf("%w: account named %q", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update account %d: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account %d", m.AccountID)
	}
	return nil
}

// DeleteAccount removes a non-system account. The row is locked first so a
// concurrent posting either commits its entries before the delete (and the
// foreign key refuses it) or waits and then finds the account gone.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tenantID string, accountID int64) error {
	return r.WithTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var isSystem bool
		err := tx.QueryRow(ctx,
			`SELECT is_system_account FROM accounts WHERE tenant_id = $1 AND account_id = $2 FOR UPDATE`,
			tenantID, accountID).Scan(&isSystem)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("account %d", accountID)
			}
			return fmt.Errorf("failed to lock account %d: %w", accountID, err)
		}
		if isSystem {
			return apperrors.NewNotFoundError("deletable account %d", accountID)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM accounts WHERE tenant_id = $1 AND account_id = $2 AND NOT is_system_account`,
			tenantID, accountID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return &apperrors.ProtectedAccountError{
					AccountID: accountID,
					Action:    "delete",
					Reasons:   []apperrors.ProtectionReason{apperrors.ReasonHasEntries},
				}
			}
			return fmt.Errorf("failed to delete account %d: %w", accountID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("deletable account %d", accountID)
		}
		return nil
	})
}
