package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeVoucherCursor creates a keyset cursor pointing after the voucher with the given date and id.
func EncodeVoucherCursor(voucherDate time.Time, voucherID int64) string {
	return EncodeMultiFieldToken(voucherDate.Format(dateFormat), strconv.FormatInt(voucherID, 10))
}

// DecodeVoucherCursor parses a cursor produced by EncodeVoucherCursor.
func DecodeVoucherCursor(token string) (time.Time, int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	voucherDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	voucherID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || voucherID <= 0 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (voucher id)")
	}

	return voucherDate, voucherID, nil
}
