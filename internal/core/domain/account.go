package domain

// AccountType is the fixed chart-of-accounts taxonomy of the fuel-station ledger.
type AccountType string

const (
	DirectExpense   AccountType = "Direct Expense"
	IndirectExpense AccountType = "Indirect Expense"
	Asset           AccountType = "Asset"
	Liability       AccountType = "Liability"
	Customer        AccountType = "Customer"
	Vendor          AccountType = "Vendor"
	Bank            AccountType = "Bank"
)

// AccountTypes returns every valid account type in display order.
func AccountTypes() []AccountType {
	return []AccountType{Asset, Bank, Liability, Vendor, Customer, DirectExpense, IndirectExpense}
}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case DirectExpense, IndirectExpense, Asset, Liability, Customer, Vendor, Bank:
		return true
	}
	return false
}

// BalanceSide is the side (debit or credit) on which an account normally carries its balance.
type BalanceSide string

const (
	DebitSide  BalanceSide = "debit"
	CreditSide BalanceSide = "credit"
)

// NormalBalance returns the side an account of this type is expected to carry.
// Customer accounts stand in for revenue in this ledger, so they are credit-normal.
func (t AccountType) NormalBalance() BalanceSide {
	switch t {
	case Asset, Bank, DirectExpense, IndirectExpense:
		return DebitSide
	default:
		return CreditSide
	}
}

// IsCash reports whether entries on accounts of this type move cash.
func (t AccountType) IsCash() bool {
	return t == Bank || t == Asset
}

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

// IsValid reports whether s is a known status.
func (s AccountStatus) IsValid() bool {
	return s == AccountActive || s == AccountInactive
}

// Account represents one ledger account (chart-of-accounts node) of a tenant.
type Account struct {
	AccountID       int64         `json:"account_id"`
	TenantID        string        `json:"tenant_id"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"account_type"`
	IsSystemAccount bool          `json:"is_system_account"`
	Status          AccountStatus `json:"status"`
	Description     *string       `json:"description,omitempty"`
	AuditFields
}

// IsActive reports whether the account accepts new entries.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Type   *AccountType
	Status *AccountStatus
}

// ProtectionStatus describes whether an account may currently be deleted or retyped, and why not.
type ProtectionStatus struct {
	AccountID     int64    `json:"account_id"`
	IsProtected   bool     `json:"is_protected"`
	CanDelete     bool     `json:"can_delete"`
	CanChangeType bool     `json:"can_change_type"`
	EntryCount    int64    `json:"entry_count"`
	Reasons       []string `json:"reasons"`
}
