package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/laxmibabar011/Fuelizer-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Money renders an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

// RegisterValidations adds the ledger-specific binding rules used by the request DTOs.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"accounttype": func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		},
		"accountstatus": func(fl validator.FieldLevel) bool {
			return domain.AccountStatus(fl.Field().String()).IsValid()
		},
		"vouchertype": func(fl validator.FieldLevel) bool {
			return domain.VoucherType(fl.Field().String()).IsValid()
		},
		"voucherstatus": func(fl validator.FieldLevel) bool {
			return domain.VoucherStatus(fl.Field().String()).IsValid()
		},
		"ledgerdate": func(fl validator.FieldLevel) bool {
			_, err := time.Parse(domain.DateLayout, fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
