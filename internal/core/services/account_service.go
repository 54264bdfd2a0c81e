package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/apperrors"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	portssvc "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/services"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/dto"
)

const (
	minAccountNameLength    = 2
	maxAccountNameLength    = 100
	maxAccountDescLength    = 500
	systemAccountSeedAuthor = "system"
)

// systemChart is the default chart of accounts every new tenant starts with.
var systemChart = []struct {
	Name        string
	AccountType domain.AccountType
	Description string
}{
	{"Cash-in-Hand", domain.Asset, "Cash held at the station"},
	{"Bank Account", domain.Bank, "Primary operating bank account"},
	{"Fuel Sales", domain.Customer, "Revenue from fuel sales"},
	{"Fuel Purchases", domain.DirectExpense, "Cost of fuel bought for resale"},
	{"Sundry Creditors", domain.Vendor, "Amounts owed to suppliers"},
	{"Capital Account", domain.Liability, "Owner's capital"},
	{"General Expenses", domain.IndirectExpense, "Day to day operating expenses"},
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func validateAccountName(name string) []string {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return []string{"Account name is required"}
	case n < minAccountNameLength || n > maxAccountNameLength:
		return []string{fmt.Sprintf("Account name must be between %d and %d characters", minAccountNameLength, maxAccountNameLength)}
	}
	return nil
}

func validateAccountDescription(desc *string) []string {
	if desc != nil && utf8.RuneCountInString(*desc) > maxAccountDescLength {
		return []string{fmt.Sprintf("Description cannot exceed %d characters", maxAccountDescLength)}
	}
	return nil
}

func duplicateNameError(name string) error {
	return apperrors.NewValidationError(fmt.Sprintf("An account named %q already exists", name))
}

func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)

	var errs []string
	errs = append(errs, validateAccountName(name)...)
	if !req.AccountType.IsValid() {
		errs = append(errs, fmt.Sprintf("Invalid account type %q", req.AccountType))
	}
	status := domain.AccountActive
	if req.Status != nil {
		status = *req.Status
		if !status.IsValid() {
			errs = append(errs, fmt.Sprintf("Invalid account status %q", status))
		}
	}
	errs = append(errs, validateAccountDescription(req.Description)...)
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	if existing, err := s.accountRepo.FindAccountByName(ctx, tenantID, name); err == nil && existing != nil {
		return nil, duplicateNameError(name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account name", slog.String("tenant_id", tenantID))
		return nil, err
	}

	now := s.now()
	account := domain.Account{
		TenantID:        tenantID,
		Name:            name,
		AccountType:     req.AccountType,
		IsSystemAccount: false,
		Status:          status,
		Description:     req.Description,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, duplicateNameError(name)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("tenant_id", tenantID),
			slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", account.AccountID),
		slog.String("tenant_id", tenantID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts for tenant %s: %w", tenantID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if req.IsSystemAccount != nil {
		return nil, apperrors.NewValidationError("is_system_account cannot be changed")
	}

	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	var errs []string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if nameErrs := validateAccountName(name); len(nameErrs) > 0 {
			errs = append(errs, nameErrs...)
		} else if !strings.EqualFold(name, account.Name) {
			other, err := s.accountRepo.FindAccountByName(ctx, tenantID, name)
			switch {
			case err == nil && other.AccountID != account.AccountID:
				return nil, duplicateNameError(name)
			case err != nil && !errors.Is(err, apperrors.ErrNotFound):
				s.LogError(ctx, err, "Failed to check account name", slog.Int64("account_id", accountID))
				return nil, err
			}
		}
		account.Name = name
	}
	if req.AccountType != nil && !req.AccountType.IsValid() {
		errs = append(errs, fmt.Sprintf("Invalid account type %q", *req.AccountType))
	}
	if req.Status != nil && !req.Status.IsValid() {
		errs = append(errs, fmt.Sprintf("Invalid account status %q", *req.Status))
	}
	errs = append(errs, validateAccountDescription(req.Description)...)
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	if req.AccountType != nil && *req.AccountType != account.AccountType {
		status, err := s.protectionOf(ctx, account)
		if err != nil {
			return nil, err
		}
		if !status.CanChangeType {
			return nil, &apperrors.ProtectedAccountError{
				AccountID: accountID,
				Action:    "change the type of",
				Reasons:   toProtectionReasons(status.Reasons),
			}
		}
		account.AccountType = *req.AccountType
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.Description != nil {
		account.Description = req.Description
	}
	account.Touch(userID, s.now())

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, duplicateNameError(account.Name)
		}
		s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.Int64("account_id", accountID),
		slog.String("tenant_id", tenantID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, tenantID string, accountID int64, userID string) error {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}

	status, err := s.protectionOf(ctx, account)
	if err != nil {
		return err
	}
	if !status.CanDelete {
		return &apperrors.ProtectedAccountError{
			AccountID: accountID,
			Action:    "delete",
			Reasons:   toProtectionReasons(status.Reasons),
		}
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		var protectedErr *apperrors.ProtectedAccountError
		if !errors.As(err, &protectedErr) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.Int64("account_id", accountID),
		slog.String("tenant_id", tenantID),
		slog.String("user_id", userID))
	return nil
}

func (s *accountService) GetAccountProtectionStatus(ctx context.Context, tenantID string, accountID int64) (*domain.ProtectionStatus, error) {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	return s.protectionOf(ctx, account)
}

func (s *accountService) protectionOf(ctx context.Context, account *domain.Account) (*domain.ProtectionStatus, error) {
	count, err := s.accountRepo.CountEntriesForAccount(ctx, account.TenantID, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count entries for account", slog.Int64("account_id", account.AccountID))
		return nil, err
	}

	reasons := []string{}
	if account.IsSystemAccount {
		reasons = append(reasons, string(apperrors.ReasonSystemAccount))
	}
	if count > 0 {
		reasons = append(reasons, string(apperrors.ReasonHasEntries))
	}
	protected := len(reasons) > 0
	return &domain.ProtectionStatus{
		AccountID:     account.AccountID,
		IsProtected:   protected,
		CanDelete:     !protected,
		CanChangeType: !protected,
		EntryCount:    count,
		Reasons:       reasons,
	}, nil
}

func toProtectionReasons(reasons []string) []apperrors.ProtectionReason {
	out := make([]apperrors.ProtectionReason, len(reasons))
	for i, r := range reasons {
		out[i] = apperrors.ProtectionReason(r)
	}
	return out
}

func (s *accountService) SeedSystemAccounts(ctx context.Context, tenantID string, userID string) ([]domain.Account, error) {
	if userID == "" {
		userID = systemAccountSeedAuthor
	}

	created := make([]domain.Account, 0, len(systemChart))
	for _, def := range systemChart {
		_, err := s.accountRepo.FindAccountByName(ctx, tenantID, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up system account", slog.String("name", def.Name))
			return nil, err
		}

		now := s.now()
		desc := def.Description
		account := domain.Account{
			TenantID:        tenantID,
			Name:            def.Name,
			AccountType:     def.AccountType,
			IsSystemAccount: true,
			Status:          domain.AccountActive,
			Description:     &desc,
			AuditFields:     domain.NewAuditFields(userID, now),
		}
		if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
			// Lost a race with a concurrent seed.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			s.LogError(ctx, err, "Failed to seed system account", slog.String("name", def.Name))
			return nil, err
		}
		created = append(created, account)
	}

	s.LogInfo(ctx, "System accounts seeded",
		slog.String("tenant_id", tenantID),
		slog.Int("created", len(created)))
	return created, nil
}
