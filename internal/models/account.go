package models

// Account is a row of the accounts table.
type Account struct {
	AccountID       int64   `db:"account_id"`
	TenantID        string  `db:"tenant_id"`
	Name            string  `db:"name"`
	AccountType     string  `db:"account_type"`
	IsSystemAccount bool    `db:"is_system_account"`
	Status          string  `db:"status"`
	Description     *string `db:"description"`
	AuditFields
}
