package accounting

import (
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance bounds the debit/credit difference; anything smaller counts as balanced.
var Tolerance = decimal.New(1, -2)

// IsBalanced reports whether debits and credits agree within Tolerance.
func IsBalanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThan(Tolerance)
}

// HasAtMostTwoDecimals reports whether d can be stored as a currency amount without rounding.
func HasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// SplitBalance splits a net debit balance into trial balance columns.
// A positive balance lands in the debit column, a negative one in the credit column as a magnitude.
func SplitBalance(balance decimal.Decimal) (debit, credit decimal.Decimal) {
	if balance.IsPositive() {
		return balance, decimal.Zero
	}
	if balance.IsNegative() {
		return decimal.Zero, balance.Neg()
	}
	return decimal.Zero, decimal.Zero
}

// NaturalAmount expresses a net debit balance on the account type's normal side,
// so a healthy balance is positive for every type.
func NaturalAmount(accountType domain.AccountType, netDebit decimal.Decimal) decimal.Decimal {
	if accountType.NormalBalance() == domain.DebitSide {
		return netDebit
	}
	return netDebit.Neg()
}

// Section is the financial statement bucket an account type reports under.
type Section string

const (
	SectionAsset           Section = "asset"
	SectionLiability       Section = "liability"
	SectionIncome          Section = "income"
	SectionDirectExpense   Section = "direct_expense"
	SectionIndirectExpense Section = "indirect_expense"
)

// SectionOf maps the seven account types onto statement buckets.
// Customer accounts are the revenue proxy of this ledger and Vendor accounts are payables.
func SectionOf(accountType domain.AccountType) Section {
	switch accountType {
	case domain.Asset, domain.Bank:
		return SectionAsset
	case domain.Liability, domain.Vendor:
		return SectionLiability
	case domain.Customer:
		return SectionIncome
	case domain.DirectExpense:
		return SectionDirectExpense
	default:
		return SectionIndirectExpense
	}
}
