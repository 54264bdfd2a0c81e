package services

import (
	"context"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
)

// VoucherReaderSvc defines read operations for voucher data
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher with its entries.
	GetVoucherByID(ctx context.Context, tenantID string, voucherID int64) (*domain.Voucher, error)

	// ListVouchers retrieves a page of vouchers.
	ListVouchers(ctx context.Context, tenantID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines the posting engine's write operations
type VoucherWriterSvc interface {
	// PostVoucher validates and atomically persists a voucher with a freshly assigned number.
	PostVoucher(ctx context.Context, tenantID string, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// CancelVoucher moves a Posted voucher to Cancelled.
	CancelVoucher(ctx context.Context, tenantID string, voucherID int64, userID string) (*domain.Voucher, error)
}

// VoucherValidatorSvc exposes the double-entry rules without persisting anything
type VoucherValidatorSvc interface {
	// ValidateEntries checks entry lines against the tenant's accounts.
	ValidateEntries(ctx context.Context, tenantID string, entries []dto.EntryRequest) (*domain.EntryValidation, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
	VoucherValidatorSvc
}
