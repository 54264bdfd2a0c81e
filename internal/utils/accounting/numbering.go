package accounting

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
)

// VoucherPrefix returns the number series prefix for a voucher type and date,
// e.g. "J202401" for a Journal dated in January 2024.
func VoucherPrefix(voucherType domain.VoucherType, date time.Time) (string, error) {
	letter := voucherType.Letter()
	if letter == "" {
		return "", fmt.Errorf("unknown voucher type %q", voucherType)
	}
	return fmt.Sprintf("%s%04d%02d", letter, date.Year(), int(date.Month())), nil
}

// NextVoucherNumber derives the number following last within prefix's series.
// An empty last starts the series at 0001. Sequences past 9999 keep growing in width.
func NextVoucherNumber(prefix, last string) (string, error) {
	seq := 1
	if last != "" {
		n, err := sequenceOf(prefix, last)
		if err != nil {
			return "", err
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func sequenceOf(prefix, number string) (int, error) {
	if !strings.HasPrefix(number, prefix) {
		return 0, fmt.Errorf("voucher number %q does not belong to series %q", number, prefix)
	}
	digits := number[len(prefix):]
	if len(digits) < 4 {
		return 0, fmt.Errorf("voucher number %q has a malformed sequence", number)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("voucher number %q has a malformed sequence", number)
	}
	return n, nil
}

// CheckVoucherNumber verifies that number belongs to the series implied by the voucher's type and date.
func CheckVoucherNumber(number string, voucherType domain.VoucherType, date time.Time) error {
	prefix, err := VoucherPrefix(voucherType, date)
	if err != nil {
		return err
	}
	n, err := sequenceOf(prefix, number)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("voucher number %q has sequence zero", number)
	}
	return nil
}
