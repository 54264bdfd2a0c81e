package dto

import (
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string                `json:"name" binding:"required,max=100"`
	AccountType domain.AccountType    `json:"account_type" binding:"required,accounttype"`
	Description *string               `json:"description" binding:"omitempty,max=500"`
	Status      *domain.AccountStatus `json:"status" binding:"omitempty,accountstatus"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// IsSystemAccount is accepted only so that attempts to change it can be rejected explicitly.
type UpdateAccountRequest struct {
	Name            *string               `json:"name" binding:"omitempty,max=100"`
	AccountType     *domain.AccountType   `json:"account_type" binding:"omitempty,accounttype"`
	Status          *domain.AccountStatus `json:"status" binding:"omitempty,accountstatus"`
	Description     *string               `json:"description" binding:"omitempty,max=500"`
	IsSystemAccount *bool                 `json:"is_system_account"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Type   string `form:"type" binding:"omitempty,accounttype"`
	Status string `form:"status" binding:"omitempty,accountstatus"`
}

// ToFilter converts the query parameters to a domain filter.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	var filter domain.AccountFilter
	if p.Type != "" {
		t := domain.AccountType(p.Type)
		filter.Type = &t
	}
	if p.Status != "" {
		s := domain.AccountStatus(p.Status)
		filter.Status = &s
	}
	return filter
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       int64                `json:"account_id"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"account_type"`
	IsSystemAccount bool                 `json:"is_system_account"`
	Status          domain.AccountStatus `json:"status"`
	Description     *string              `json:"description,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	CreatedBy       string               `json:"created_by"`
	LastUpdatedAt   time.Time            `json:"last_updated_at"`
	LastUpdatedBy   string               `json:"last_updated_by"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		IsSystemAccount: acc.IsSystemAccount,
		Status:          acc.Status,
		Description:     acc.Description,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
// Balance is net debit: positive for a debit balance, negative for a credit balance.
type AccountBalanceResponse struct {
	AccountID    int64              `json:"account_id"`
	AccountName  string             `json:"account_name"`
	AccountType  domain.AccountType `json:"account_type"`
	AsOfDate     *string            `json:"as_of_date,omitempty"`
	TotalDebits  string             `json:"total_debits"`
	TotalCredits string             `json:"total_credits"`
	Balance      string             `json:"balance"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:    b.Account.AccountID,
		AccountName:  b.Account.Name,
		AccountType:  b.Account.AccountType,
		AsOfDate:     formatDatePtr(b.AsOfDate),
		TotalDebits:  Money(b.TotalDebits),
		TotalCredits: Money(b.TotalCredits),
		Balance:      Money(b.Balance),
	}
}
