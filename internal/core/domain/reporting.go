package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals holds the debit and credit sums of one account over a window of posted vouchers.
type AccountTotals struct {
	Account      Account
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// Balance is the net debit balance: positive means net debit, negative net credit.
func (t AccountTotals) Balance() decimal.Decimal {
	return t.TotalDebits.Sub(t.TotalCredits)
}

// AccountBalance is the balance of one account as of a date.
type AccountBalance struct {
	Account      Account
	AsOfDate     *time.Time
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balance      decimal.Decimal
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID     int64
	AccountName   string
	AccountType   AccountType
	DebitBalance  decimal.Decimal
	CreditBalance decimal.Decimal
}

// TrialBalance lists every account's net balance over a window.
type TrialBalance struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	Rows         []TrialBalanceRow
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal
	IsBalanced   bool
}

// ReportLine is one account with an amount expressed on its report section's natural side.
type ReportLine struct {
	AccountID   int64
	AccountName string
	AccountType AccountType
	Amount      decimal.Decimal
}

// ProfitLossReport is income less expenses over a period.
type ProfitLossReport struct {
	DateFrom              time.Time
	DateTo                time.Time
	Income                []ReportLine
	DirectExpenses        []ReportLine
	IndirectExpenses      []ReportLine
	TotalIncome           decimal.Decimal
	TotalDirectExpenses   decimal.Decimal
	TotalIndirectExpenses decimal.Decimal
	TotalExpenses         decimal.Decimal
	GrossProfit           decimal.Decimal
	NetProfit             decimal.Decimal
}

// BalanceSheetReport is a point-in-time view of assets, liabilities and equity.
type BalanceSheetReport struct {
	AsOfDate         time.Time
	Assets           []ReportLine
	Liabilities      []ReportLine
	RetainedEarnings decimal.Decimal
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
	Difference       decimal.Decimal
	IsBalanced       bool
}

// LedgerLine is one entry of an account's general ledger.
type LedgerLine struct {
	EntryID        int64
	VoucherID      int64
	VoucherNumber  string
	VoucherDate    time.Time
	VoucherType    VoucherType
	LineNo         int
	Narration      *string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// GeneralLedger is the ordered entry history of one account with running balances.
type GeneralLedger struct {
	Account        Account
	DateFrom       *time.Time
	DateTo         *time.Time
	OpeningBalance decimal.Decimal
	Lines          []LedgerLine
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
	ClosingBalance decimal.Decimal
}

// CashMovement is the cash effect of one posted voucher: debits and credits on cash accounts.
type CashMovement struct {
	VoucherID     int64
	VoucherNumber string
	VoucherDate   time.Time
	VoucherType   VoucherType
	Narration     *string
	Inflow        decimal.Decimal
	Outflow       decimal.Decimal
}

// Net is the voucher's net cash effect.
func (m CashMovement) Net() decimal.Decimal {
	return m.Inflow.Sub(m.Outflow)
}

// CashFlowLine is a voucher classified as a receipt, payment or transfer.
type CashFlowLine struct {
	VoucherID     int64
	VoucherNumber string
	VoucherDate   time.Time
	VoucherType   VoucherType
	Narration     *string
	Amount        decimal.Decimal
}

// CashFlowReport partitions cash-touching vouchers of a period into receipts and payments.
type CashFlowReport struct {
	DateFrom       time.Time
	DateTo         time.Time
	OpeningBalance decimal.Decimal
	Receipts       []CashFlowLine
	Payments       []CashFlowLine
	Transfers      []CashFlowLine
	TotalReceipts  decimal.Decimal
	TotalPayments  decimal.Decimal
	NetCashFlow    decimal.Decimal
	ClosingBalance decimal.Decimal
}
