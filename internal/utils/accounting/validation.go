package accounting

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	MaxNarrationLength      = 500
	MaxEntryNarrationLength = 200
	MaxReferenceLength      = 100
	minEntries              = 2
)

// VoucherHeader holds the voucher-level fields of a posting request as received.
type VoucherHeader struct {
	Date            string
	VoucherType     domain.VoucherType
	Narration       *string
	ReferenceNumber *string
}

// ValidateEntries runs the double-entry rules over a proposed set of entry lines.
// Every violation is collected so callers can report them all at once.
// accounts holds the tenant accounts the entries may reference; pass nil to skip
// the existence check.
func ValidateEntries(entries []domain.EntryInput, accounts map[int64]domain.Account) domain.EntryValidation {
	var errs []string
	totalDebits, totalCredits := decimal.Zero, decimal.Zero

	if len(entries) < minEntries {
		errs = append(errs, "At least two entries are required for double-entry accounting")
	}

	for i, e := range entries {
		if e.LedgerAccountID <= 0 {
			errs = append(errs, fmt.Sprintf("Entry %d: ledger account id must be a positive integer", i+1))
			continue
		}
		if accounts == nil {
			continue
		}
		acc, ok := accounts[e.LedgerAccountID]
		if !ok {
			errs = append(errs, fmt.Sprintf("Entry %d: account %d does not exist", i+1, e.LedgerAccountID))
		} else if !acc.IsActive() {
			errs = append(errs, fmt.Sprintf("Entry %d: account %d (%s) is inactive", i+1, acc.AccountID, acc.Name))
		}
	}

	for i, e := range entries {
		errs = append(errs, amountErrors(i+1, "debit", e.DebitAmount)...)
		errs = append(errs, amountErrors(i+1, "credit", e.CreditAmount)...)
	}

	for i, e := range entries {
		hasDebit, hasCredit := e.DebitAmount.IsPositive(), e.CreditAmount.IsPositive()
		switch {
		case hasDebit && hasCredit:
			errs = append(errs, fmt.Sprintf("Entry %d: cannot have both debit and credit amounts", i+1))
		case !hasDebit && !hasCredit:
			errs = append(errs, fmt.Sprintf("Entry %d: must have either debit or credit amount", i+1))
		}
		if e.Narration != nil && utf8.RuneCountInString(*e.Narration) > MaxEntryNarrationLength {
			errs = append(errs, fmt.Sprintf("Entry %d: narration cannot exceed %d characters", i+1, MaxEntryNarrationLength))
		}
		totalDebits = totalDebits.Add(e.DebitAmount)
		totalCredits = totalCredits.Add(e.CreditAmount)
	}

	if !IsBalanced(totalDebits, totalCredits) {
		errs = append(errs, fmt.Sprintf("Total debits (%s) must equal total credits (%s)",
			totalDebits.StringFixed(2), totalCredits.StringFixed(2)))
	}

	if errs == nil {
		errs = []string{}
	}
	return domain.EntryValidation{
		IsValid:      len(errs) == 0,
		Errors:       errs,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
	}
}

func amountErrors(line int, side string, amount decimal.Decimal) []string {
	var errs []string
	if amount.IsNegative() {
		errs = append(errs, fmt.Sprintf("Entry %d: %s amount cannot be negative", line, side))
	}
	if !HasAtMostTwoDecimals(amount) {
		errs = append(errs, fmt.Sprintf("Entry %d: %s amount cannot have more than 2 decimal places", line, side))
	}
	return errs
}

// ValidateVoucherHeader checks the voucher-level fields and returns the parsed voucher date.
// today is the current instant in the ledger's time zone; a voucher may be dated
// any time up to the end of that day.
func ValidateVoucherHeader(h VoucherHeader, today time.Time) (time.Time, []string) {
	var errs []string

	if !h.VoucherType.IsValid() {
		errs = append(errs, fmt.Sprintf("Voucher type must be one of %s, %s, %s",
			domain.PaymentVoucher, domain.ReceiptVoucher, domain.JournalVoucher))
	}

	date, err := time.Parse(domain.DateLayout, h.Date)
	if err != nil {
		errs = append(errs, "Date must be in YYYY-MM-DD format")
	} else if date.After(domain.DateOnly(today)) {
		errs = append(errs, "Voucher date cannot be in the future")
	}

	if h.Narration != nil && utf8.RuneCountInString(*h.Narration) > MaxNarrationLength {
		errs = append(errs, fmt.Sprintf("Narration cannot exceed %d characters", MaxNarrationLength))
	}
	if h.ReferenceNumber != nil && utf8.RuneCountInString(*h.ReferenceNumber) > MaxReferenceLength {
		errs = append(errs, fmt.Sprintf("Reference number cannot exceed %d characters", MaxReferenceLength))
	}

	return date, errs
}
