package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies a voucher and selects its number series.
type VoucherType string

const (
	PaymentVoucher VoucherType = "Payment"
	ReceiptVoucher VoucherType = "Receipt"
	JournalVoucher VoucherType = "Journal"
)

// IsValid reports whether t is a known voucher type.
func (t VoucherType) IsValid() bool {
	return t == PaymentVoucher || t == ReceiptVoucher || t == JournalVoucher
}

// Letter returns the voucher number prefix letter for the type, or "" for unknown types.
func (t VoucherType) Letter() string {
	switch t {
	case PaymentVoucher:
		return "P"
	case ReceiptVoucher:
		return "R"
	case JournalVoucher:
		return "J"
	}
	return ""
}

// VoucherStatus is the lifecycle state of a voucher. Posted -> Cancelled is the only transition.
type VoucherStatus string

const (
	VoucherPosted    VoucherStatus = "Posted"
	VoucherCancelled VoucherStatus = "Cancelled"
)

// IsValid reports whether s is a known status.
func (s VoucherStatus) IsValid() bool {
	return s == VoucherPosted || s == VoucherCancelled
}

// Voucher is a transaction header grouping one balanced set of journal entries.
type Voucher struct {
	VoucherID       int64           `json:"voucher_id"`
	TenantID        string          `json:"tenant_id"`
	VoucherNumber   string          `json:"voucher_number"`
	VoucherDate     time.Time       `json:"voucher_date"`
	VoucherType     VoucherType     `json:"voucher_type"`
	Narration       *string         `json:"narration,omitempty"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          VoucherStatus   `json:"status"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CancelledBy     *string         `json:"cancelled_by,omitempty"`
	AuditFields
	Entries []JournalEntry `json:"entries"`
}

// JournalEntry is one debit or credit leg of a voucher.
type JournalEntry struct {
	EntryID         int64           `json:"entry_id"`
	VoucherID       int64           `json:"voucher_id"`
	LineNo          int             `json:"line_no"`
	LedgerAccountID int64           `json:"ledger_account_id"`
	AccountName     string          `json:"account_name,omitempty"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	Narration       *string         `json:"narration,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryInput is a proposed entry line, before validation.
type EntryInput struct {
	LedgerAccountID int64
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
	Narration       *string
}

// EntryValidation is the outcome of running the double-entry rules over a set of entry lines.
type EntryValidation struct {
	IsValid      bool            `json:"is_valid"`
	Errors       []string        `json:"errors"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
}

// VoucherFilter narrows voucher listings. Dates are inclusive.
type VoucherFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Type      *VoucherType
	Status    *VoucherStatus
	Limit     int
	NextToken *string
}
