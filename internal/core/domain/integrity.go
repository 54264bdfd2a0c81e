package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherAudit is the raw material the integrity checker needs about one voucher.
type VoucherAudit struct {
	VoucherID     int64
	VoucherNumber string
	VoucherType   VoucherType
	VoucherDate   time.Time
	Status        VoucherStatus
	TotalAmount   decimal.Decimal
	TotalDebits   decimal.Decimal
	TotalCredits  decimal.Decimal
	EntryCount    int
	// MalformedEntries counts entries with a negative side, both sides set, or neither.
	MalformedEntries int
}

// EntryReference identifies an entry whose account is missing or belongs to another tenant.
type EntryReference struct {
	EntryID         int64
	VoucherNumber   string
	LedgerAccountID int64
}

// IntegritySeverity separates hard failures from advisory findings.
type IntegritySeverity string

const (
	SeverityError   IntegritySeverity = "error"
	SeverityWarning IntegritySeverity = "warning"
)

// IntegrityCheckResult is the outcome of a single named check.
type IntegrityCheckResult struct {
	CheckName string
	Passed    bool
	Severity  IntegritySeverity
	Message   string
	Details   []string
}

// IntegrityReport is the outcome of a full ledger audit.
type IntegrityReport struct {
	TenantID  string
	CheckedAt time.Time
	Passed    bool
	Failures  int
	Warnings  int
	Results   []IntegrityCheckResult
}
