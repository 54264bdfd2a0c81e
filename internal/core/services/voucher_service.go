package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/accounting"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const defaultPostingAttempts = 3

// voucherService is the posting engine.
type voucherService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountReader
	now         func() time.Time
	location    *time.Location
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

// VoucherServiceOption is a functional option for configuring the voucher service
type VoucherServiceOption func(*voucherService)

// WithVoucherClock overrides the clock used for "today" and audit timestamps.
func WithVoucherClock(now func() time.Time) VoucherServiceOption {
	return func(s *voucherService) {
		s.now = now
	}
}

// WithLedgerLocation sets the time zone that decides which calendar day "today" is.
func WithLedgerLocation(loc *time.Location) VoucherServiceOption {
	return func(s *voucherService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithMaxPostingAttempts bounds how often a posting unit is restarted after a conflict.
func WithMaxPostingAttempts(n int) VoucherServiceOption {
	return func(s *voucherService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRetryBackoff overrides the pause between posting attempts.
func WithRetryBackoff(backoff func(attempt int) time.Duration) VoucherServiceOption {
	return func(s *voucherService) {
		s.backoff = backoff
	}
}

// NewVoucherService creates the voucher posting engine.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, accountRepo portsrepo.AccountReader, options ...VoucherServiceOption) portssvc.VoucherSvcFacade {
	svc := &voucherService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		now:         time.Now,
		location:    time.UTC,
		maxAttempts: defaultPostingAttempts,
		backoff:     jitteredBackoff,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

func jitteredBackoff(attempt int) time.Duration {
	base := time.Duration(attempt) * 15 * time.Millisecond
	return base + time.Duration(rand.Int63n(int64(20*time.Millisecond)))
}

func distinctAccountIDs(entries []domain.EntryInput) []int64 {
	seen := make(map[int64]struct{}, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if e.LedgerAccountID <= 0 {
			continue
		}
		if _, ok := seen[e.LedgerAccountID]; ok {
			continue
		}
		seen[e.LedgerAccountID] = struct{}{}
		ids = append(ids, e.LedgerAccountID)
	}
	return ids
}

func (s *voucherService) loadAccounts(ctx context.Context, tenantID string, entries []domain.EntryInput) (map[int64]domain.Account, error) {
	ids := distinctAccountIDs(entries)
	if len(ids) == 0 {
		return map[int64]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for entries", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

func entryValidationError(errs []string, v domain.EntryValidation) *apperrors.ValidationError {
	debits, credits := v.TotalDebits, v.TotalCredits
	return &apperrors.ValidationError{Errors: errs, TotalDebits: &debits, TotalCredits: &credits}
}

func (s *voucherService) ValidateEntries(ctx context.Context, tenantID string, entries []dto.EntryRequest) (*domain.EntryValidation, error) {
	inputs := dto.ToEntryInputs(entries)
	accounts, err := s.loadAccounts(ctx, tenantID, inputs)
	if err != nil {
		return nil, err
	}
	result := accounting.ValidateEntries(inputs, accounts)
	return &result, nil
}

func (s *voucherService) PostVoucher(ctx context.Context, tenantID string, req dto.PostVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	today := s.now().In(s.location)
	date, errs := accounting.ValidateVoucherHeader(accounting.VoucherHeader{
		Date:            req.Date,
		VoucherType:     req.VoucherType,
		Narration:       req.Narration,
		ReferenceNumber: req.ReferenceNumber,
	}, today)

	inputs := dto.ToEntryInputs(req.Entries)
	accounts, err := s.loadAccounts(ctx, tenantID, inputs)
	if err != nil {
		return nil, err
	}
	validation := accounting.ValidateEntries(inputs, accounts)
	errs = append(errs, validation.Errors...)
	if len(errs) > 0 {
		s.LogDebug(ctx, "Voucher rejected by validation",
			slog.String("tenant_id", tenantID),
			slog.Int("error_count", len(errs)))
		return nil, entryValidationError(errs, validation)
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		voucher, err := s.postOnce(ctx, tenantID, req, date, inputs, validation.TotalDebits, creatorUserID)
		if err == nil {
			s.LogInfo(ctx, "Voucher posted",
				slog.Int64("voucher_id", voucher.VoucherID),
				slog.String("voucher_number", voucher.VoucherNumber),
				slog.String("tenant_id", tenantID),
				slog.Int("attempt", attempt))
			return voucher, nil
		}
		if !errors.Is(err, apperrors.ErrConcurrentModification) {
			var vErr *apperrors.ValidationError
			if !errors.As(err, &vErr) {
				s.LogError(ctx, err, "Failed to post voucher", slog.String("tenant_id", tenantID))
			}
			return nil, err
		}

		lastErr = err
		s.LogWarn(ctx, "Voucher posting conflicted, retrying",
			slog.String("tenant_id", tenantID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		if attempt == s.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.backoff(attempt)):
		}
	}

	s.LogError(ctx, lastErr, "Voucher posting gave up after repeated conflicts",
		slog.String("tenant_id", tenantID),
		slog.Int("attempts", s.maxAttempts))
	return nil, &apperrors.TransientConflictError{Attempts: s.maxAttempts, Err: lastErr}
}

func (s *voucherService) postOnce(ctx context.Context, tenantID string, req dto.PostVoucherRequest, date time.Time, inputs []domain.EntryInput, total decimal.Decimal, userID string) (*domain.Voucher, error) {
	var posted *domain.Voucher
	err := s.voucherRepo.RunInPostingTx(ctx, func(ctx context.Context, tx portsrepo.PostingTx) error {
		number, err := assignVoucherNumber(ctx, tx, tenantID, req.VoucherType, date)
		if err != nil {
			return err
		}

		// Accounts may have been deleted or deactivated since the first check.
		locked, err := tx.LockAccounts(ctx, tenantID, distinctAccountIDs(inputs))
		if err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if recheck := accounting.ValidateEntries(inputs, locked); !recheck.IsValid {
			return entryValidationError(recheck.Errors, recheck)
		}

		now := s.now()
		voucher := &domain.Voucher{
			TenantID:        tenantID,
			VoucherNumber:   number,
			VoucherDate:     date,
			VoucherType:     req.VoucherType,
			Narration:       req.Narration,
			ReferenceNumber: req.ReferenceNumber,
			TotalAmount:     total,
			Status:          domain.VoucherPosted,
			AuditFields:     domain.NewAuditFields(userID, now),
			Entries:         make([]domain.JournalEntry, len(inputs)),
		}
		for i, in := range inputs {
			voucher.Entries[i] = domain.JournalEntry{
				LineNo:          i + 1,
				LedgerAccountID: in.LedgerAccountID,
				AccountName:     locked[in.LedgerAccountID].Name,
				DebitAmount:     in.DebitAmount,
				CreditAmount:    in.CreditAmount,
				Narration:       in.Narration,
				CreatedAt:       now,
			}
		}

		if err := tx.InsertVoucher(ctx, voucher); err != nil {
			return err
		}
		posted = voucher
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

func (s *voucherService) CancelVoucher(ctx context.Context, tenantID string, voucherID int64, userID string) (*domain.Voucher, error) {
	changed, err := s.voucherRepo.CancelVoucher(ctx, tenantID, voucherID, userID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel voucher", slog.Int64("voucher_id", voucherID))
		return nil, err
	}

	voucher, err := s.GetVoucherByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, &apperrors.InvalidStateError{
			Entity:  "voucher",
			ID:      voucherID,
			Current: string(voucher.Status),
			Message: "only Posted vouchers can be cancelled",
		}
	}

	s.LogInfo(ctx, "Voucher cancelled",
		slog.Int64("voucher_id", voucherID),
		slog.String("voucher_number", voucher.VoucherNumber),
		slog.String("tenant_id", tenantID))
	return voucher, nil
}

func (s *voucherService) GetVoucherByID(ctx context.Context, tenantID string, voucherID int64) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, tenantID, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find voucher", slog.Int64("voucher_id", voucherID))
		}
		return nil, err
	}
	return voucher, nil
}

func (s *voucherService) ListVouchers(ctx context.Context, tenantID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	filter, err := toVoucherFilter(params)
	if err != nil {
		return nil, err
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve vouchers: %w", err)
	}

	s.LogDebug(ctx, "Vouchers listed", slog.Int("count", len(vouchers)))
	return &dto.ListVouchersResponse{
		Vouchers:  dto.ToVoucherResponses(vouchers),
		NextToken: nextToken,
	}, nil
}

func toVoucherFilter(params dto.ListVouchersParams) (domain.VoucherFilter, error) {
	var errs []string
	filter := domain.VoucherFilter{Limit: params.Limit}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	parse := func(field, value string) *time.Time {
		if value == "" {
			return nil
		}
		t, err := time.Parse(domain.DateLayout, value)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be in YYYY-MM-DD format", field))
			return nil
		}
		return &t
	}
	filter.DateFrom = parse("dateFrom", params.DateFrom)
	filter.DateTo = parse("dateTo", params.DateTo)
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		errs = append(errs, "dateFrom cannot be after dateTo")
	}

	if params.Type != "" {
		t := domain.VoucherType(params.Type)
		if !t.IsValid() {
			errs = append(errs, fmt.Sprintf("Invalid voucher type %q", params.Type))
		}
		filter.Type = &t
	}
	if params.Status != "" {
		st := domain.VoucherStatus(params.Status)
		if !st.IsValid() {
			errs = append(errs, fmt.Sprintf("Invalid voucher status %q", params.Status))
		}
		filter.Status = &st
	}
	if params.NextToken != nil && *params.NextToken != "" {
		if _, _, err := pagination.DecodeVoucherCursor(*params.NextToken); err != nil {
			errs = append(errs, "nextToken is invalid")
		}
		filter.NextToken = params.NextToken
	}

	if len(errs) > 0 {
		return filter, apperrors.NewValidationError(errs...)
	}
	return filter, nil
}
