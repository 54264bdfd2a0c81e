package dto

import (
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one proposed debit or credit line. Amounts may be sent as JSON numbers or strings.
type EntryRequest struct {
	LedgerAccountID int64           `json:"ledger_account_id"`
	DebitAmount     decimal.Decimal `json:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	Narration       *string         `json:"narration"`
}

// PostVoucherRequest defines the data needed to post a voucher.
// Field rules are checked by the posting engine so that every problem is reported together.
type PostVoucherRequest struct {
	Date            string             `json:"date"`
	VoucherType     domain.VoucherType `json:"voucher_type"`
	Narration       *string            `json:"narration"`
	ReferenceNumber *string            `json:"reference_number"`
	Entries         []EntryRequest     `json:"entries"`
}

// ValidateEntriesRequest carries entries for a dry-run validation.
type ValidateEntriesRequest struct {
	Entries []EntryRequest `json:"entries"`
}

// ToEntryInputs converts request lines to domain inputs.
func ToEntryInputs(entries []EntryRequest) []domain.EntryInput {
	inputs := make([]domain.EntryInput, len(entries))
	for i, e := range entries {
		inputs[i] = domain.EntryInput{
			LedgerAccountID: e.LedgerAccountID,
			DebitAmount:     e.DebitAmount,
			CreditAmount:    e.CreditAmount,
			Narration:       e.Narration,
		}
	}
	return inputs
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	DateFrom  string  `form:"dateFrom" binding:"omitempty,ledgerdate"`
	DateTo    string  `form:"dateTo" binding:"omitempty,ledgerdate"`
	Type      string  `form:"type" binding:"omitempty,vouchertype"`
	Status    string  `form:"status" binding:"omitempty,voucherstatus"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         int64   `json:"entry_id"`
	LineNo          int     `json:"line_no"`
	LedgerAccountID int64   `json:"ledger_account_id"`
	AccountName     string  `json:"account_name,omitempty"`
	DebitAmount     string  `json:"debit_amount"`
	CreditAmount    string  `json:"credit_amount"`
	Narration       *string `json:"narration,omitempty"`
}

// VoucherResponse defines the data returned for a voucher and its entries.
type VoucherResponse struct {
	VoucherID       int64                `json:"voucher_id"`
	VoucherNumber   string               `json:"voucher_number"`
	Date            string               `json:"date"`
	VoucherType     domain.VoucherType   `json:"voucher_type"`
	Narration       *string              `json:"narration,omitempty"`
	ReferenceNumber *string              `json:"reference_number,omitempty"`
	TotalAmount     string               `json:"total_amount"`
	Status          domain.VoucherStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	CreatedBy       string               `json:"created_by"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
	CancelledBy     *string              `json:"cancelled_by,omitempty"`
	Entries         []EntryResponse      `json:"entries"`
}

// ListVouchersResponse is a page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"next_token,omitempty"`
}

// EntryValidationResponse is the result of a dry-run validation.
type EntryValidationResponse struct {
	IsValid      bool     `json:"is_valid"`
	TotalDebits  string   `json:"total_debits"`
	TotalCredits string   `json:"total_credits"`
	Errors       []string `json:"errors"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		LineNo:          e.LineNo,
		LedgerAccountID: e.LedgerAccountID,
		AccountName:     e.AccountName,
		DebitAmount:     Money(e.DebitAmount),
		CreditAmount:    Money(e.CreditAmount),
		Narration:       e.Narration,
	}
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	entries := make([]EntryResponse, len(v.Entries))
	for i := range v.Entries {
		entries[i] = ToEntryResponse(&v.Entries[i])
	}
	return VoucherResponse{
		VoucherID:       v.VoucherID,
		VoucherNumber:   v.VoucherNumber,
		Date:            formatDate(v.VoucherDate),
		VoucherType:     v.VoucherType,
		Narration:       v.Narration,
		ReferenceNumber: v.ReferenceNumber,
		TotalAmount:     Money(v.TotalAmount),
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
		CancelledAt:     v.CancelledAt,
		CancelledBy:     v.CancelledBy,
		Entries:         entries,
	}
}

// ToVoucherResponses converts a slice of vouchers.
func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return res
}

// ToEntryValidationResponse converts a validation outcome.
func ToEntryValidationResponse(v *domain.EntryValidation) EntryValidationResponse {
	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}
	return EntryValidationResponse{
		IsValid:      v.IsValid,
		TotalDebits:  Money(v.TotalDebits),
		TotalCredits: Money(v.TotalCredits),
		Errors:       errs,
	}
}
