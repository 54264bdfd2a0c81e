package services

import (
	"context"
	"fmt"
	"time"

	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	portsrepo "github.com/laxmibabar011/Fuelizer-sub003/internal/core/ports/repositories"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/utils/accounting"
)

// assignVoucherNumber reserves the next number in the voucher's series. It must run inside
// a posting unit: the series lock is held until that unit commits or rolls back, so the
// number cannot be handed out twice.
func assignVoucherNumber(ctx context.Context, tx portsrepo.PostingTx, tenantID string, voucherType domain.VoucherType, date time.Time) (string, error) {
	prefix, err := accounting.VoucherPrefix(voucherType, date)
	if err != nil {
		return "", err
	}
	if err := tx.LockVoucherSeries(ctx, tenantID, prefix); err != nil {
		return "", fmt.Errorf("failed to lock voucher series %s: %w", prefix, err)
	}
	last, err := tx.LastVoucherNumber(ctx, tenantID, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read last voucher number for %s: %w", prefix, err)
	}
	return accounting.NextVoucherNumber(prefix, last)
}
