package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is a row of the vouchers table.
type Voucher struct {
	VoucherID       int64           `db:"voucher_id"`
	TenantID        string          `db:"tenant_id"`
	VoucherNumber   string          `db:"voucher_number"`
	VoucherDate     time.Time       `db:"voucher_date"`
	VoucherType     string          `db:"voucher_type"`
	Narration       *string         `db:"narration"`
	ReferenceNumber *string         `db:"reference_number"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          string          `db:"status"`
	CancelledAt     *time.Time      `db:"cancelled_at"`
	CancelledBy     *string         `db:"cancelled_by"`
	AuditFields
}

// JournalEntry is a row of the journal_entries table, optionally joined with the account name.
type JournalEntry struct {
	EntryID         int64           `db:"entry_id"`
	VoucherID       int64           `db:"voucher_id"`
	LineNo          int             `db:"line_no"`
	LedgerAccountID int64           `db:"ledger_account_id"`
	AccountName     *string         `db:"account_name"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	Narration       *string         `db:"narration"`
	CreatedAt       time.Time       `db:"created_at"`
}
