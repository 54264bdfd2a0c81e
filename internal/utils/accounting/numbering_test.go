package accounting

import (
	"testing"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherPrefix(t *testing.T) {
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	prefix, err := VoucherPrefix(domain.JournalVoucher, date)
	require.NoError(t, err)
	assert.Equal(t, "J202401", prefix)

	prefix, err = VoucherPrefix(domain.PaymentVoucher, date.AddDate(0, 11, 0))
	require.NoError(t, err)
	assert.Equal(t, "P202412", prefix)

	_, err = VoucherPrefix("Contra", date)
	assert.Error(t, err)
}

func TestNextVoucherNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		last   string
		want   string
	}{
		{"first of series", "J202401", "", "J2024010001"},
		{"increments", "R202403", "R2024030041", "R2024030042"},
		{"rolls past 9999", "P202402", "P2024029999", "P20240210000"},
		{"after widened sequence", "P202402", "P20240210000", "P20240210001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextVoucherNumber(tt.prefix, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextVoucherNumber_ForeignSeries(t *testing.T) {
	_, err := NextVoucherNumber("J202401", "P2024010001")
	assert.Error(t, err)

	_, err = NextVoucherNumber("J202401", "J202401AB12")
	assert.Error(t, err)
}

func TestCheckVoucherNumber(t *testing.T) {
	date := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckVoucherNumber("R2024030007", domain.ReceiptVoucher, date))
	assert.Error(t, CheckVoucherNumber("R2024040007", domain.ReceiptVoucher, date), "month mismatch")
	assert.Error(t, CheckVoucherNumber("J2024030007", domain.ReceiptVoucher, date), "letter mismatch")
	assert.Error(t, CheckVoucherNumber("R2024030000", domain.ReceiptVoucher, date), "zero sequence")
}

func TestSplitBalanceAndSections(t *testing.T) {
	debit, credit := SplitBalance(dec("-250.50"))
	assert.True(t, debit.IsZero())
	assert.True(t, credit.Equal(dec("250.50")))

	debit, credit = SplitBalance(dec("10"))
	assert.True(t, debit.Equal(dec("10")))
	assert.True(t, credit.IsZero())

	assert.Equal(t, SectionIncome, SectionOf(domain.Customer))
	assert.Equal(t, SectionLiability, SectionOf(domain.Vendor))
	assert.Equal(t, SectionAsset, SectionOf(domain.Bank))
	assert.True(t, NaturalAmount(domain.Customer, dec("-40")).Equal(dec("40")))
}
