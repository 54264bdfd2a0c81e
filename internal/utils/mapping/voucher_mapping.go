package mapping

import (
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/models"
)

// ToModelVoucher converts a domain Voucher header to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:       d.VoucherID,
		TenantID:        d.TenantID,
		VoucherNumber:   d.VoucherNumber,
		VoucherDate:     d.VoucherDate,
		VoucherType:     string(d.VoucherType),
		Narration:       d.Narration,
		ReferenceNumber: d.ReferenceNumber,
		TotalAmount:     d.TotalAmount,
		Status:          string(d.Status),
		CancelledAt:     d.CancelledAt,
		CancelledBy:     d.CancelledBy,
		AuditFields:     auditToModel(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher without entries
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:       m.VoucherID,
		TenantID:        m.TenantID,
		VoucherNumber:   m.VoucherNumber,
		VoucherDate:     domain.DateOnly(m.VoucherDate),
		VoucherType:     domain.VoucherType(m.VoucherType),
		Narration:       m.Narration,
		ReferenceNumber: m.ReferenceNumber,
		TotalAmount:     m.TotalAmount,
		Status:          domain.VoucherStatus(m.Status),
		CancelledAt:     m.CancelledAt,
		CancelledBy:     m.CancelledBy,
		AuditFields:     auditToDomain(m.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	e := domain.JournalEntry{
		EntryID:         m.EntryID,
		VoucherID:       m.VoucherID,
		LineNo:          m.LineNo,
		LedgerAccountID: m.LedgerAccountID,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		Narration:       m.Narration,
		CreatedAt:       m.CreatedAt,
	}
	if m.AccountName != nil {
		e.AccountName = *m.AccountName
	}
	return e
}
