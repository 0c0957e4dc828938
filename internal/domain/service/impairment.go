package service

import (
	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
)

var daysPerMonth = decimal.NewFromInt(30)

// DaysPastDue returns the loan's effective arrears aging in days. When NDIA
// is present it is used as-is (no clamping, negatives included). Otherwise
// it is derived as round(accumulated_arrears / monthly_installment × 30),
// approximating 30 days per month, or 0 when no installment is known.
//
// This is the single derivation shared by staging and provisioning; the two
// must never diverge.
func DaysPastDue(loan model.LoanSnapshot) float64 {
	if loan.NDIA != nil {
		return float64(*loan.NDIA)
	}
	if loan.MonthlyInstallment.IsPositive() {
		months := loan.AccumulatedArrears.Div(loan.MonthlyInstallment)
		days, _ := months.Mul(daysPerMonth).Round(0).Float64()
		return days
	}
	return 0
}

// CategoryProvision computes the fixed-rate provision for a category:
// balance × rate, where rate is a fraction (0.01 for a 1% rate). The result
// keeps full precision; rounding happens at the summary boundary.
func CategoryProvision(balance, rate decimal.Decimal) decimal.Decimal {
	provision := balance.Mul(rate)
	if provision.IsNegative() {
		return decimal.Zero
	}
	return provision
}
