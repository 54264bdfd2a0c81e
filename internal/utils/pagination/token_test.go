package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeVoucherCursor(t *testing.T) {
	voucherDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeVoucherCursor(voucherDate, 4711)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeVoucherCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, voucherDate, decodedDate, "Voucher date should match after decode")
	assert.Equal(t, int64(4711), decodedID, "Voucher id should match after decode")
}

func TestDecodeVoucherCursor_Invalid(t *testing.T) {
	_, _, err := DecodeVoucherCursor("!!!not-base64!!!")
	assert.Error(t, err, "Should error on invalid base64")

	_, _, err = DecodeVoucherCursor(EncodeMultiFieldToken("2024-01-15"))
	assert.Error(t, err, "Should error on missing id")

	_, _, err = DecodeVoucherCursor(EncodeMultiFieldToken("15-01-2024", "3"))
	assert.Error(t, err, "Should error on bad date")

	_, _, err = DecodeVoucherCursor(EncodeMultiFieldToken("2024-01-15", "-3"))
	assert.Error(t, err, "Should error on non-positive id")
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"a", "b", "c"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)
}
