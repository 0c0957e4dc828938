package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ECL risk components – pure, total functions
// ---------------------------------------------------------------------------

var (
	twelve = decimal.NewFromInt(12)
	one    = decimal.NewFromInt(1)

	// unsecuredLGD is the industry-average loss for loans with no
	// collateral on record.
	unsecuredLGD = decimal.NewFromFloat(0.65)

	// nonCashHaircut is the recovery fraction applied to non-cash
	// collateral, approximating a forced sale.
	nonCashHaircut = decimal.NewFromFloat(0.7)
)

// EffectiveInterestRate derives the annualized interest rate as a fraction
// from the loan's total contractual interest, principal and term. Returns
// zero when the term or principal is zero or absent.
func EffectiveInterestRate(loan model.LoanSnapshot) decimal.Decimal {
	if loan.LoanTerm <= 0 || !loan.LoanAmount.IsPositive() {
		return decimal.Zero
	}
	termMonths := decimal.NewFromInt(int64(loan.LoanTerm))
	monthlyRate := loan.TotalInterest().Div(loan.LoanAmount).Div(termMonths)
	return monthlyRate.Mul(twelve)
}

// ExposureAtDefaultPercentage estimates the fraction of the loan expected
// to still be outstanding at default, as a function of the remaining term
// at the reporting date. It computes the theoretical level-payment balance
//
//	Bt = P × ((1+r)^n − (1+r)^t) / ((1+r)^n − 1)
//
// adds accumulated arrears, and expresses the result as a fraction of the
// original loan amount, clamped to [0,1]. A loan with no recorded amount is
// treated as fully exposed.
func ExposureAtDefaultPercentage(loan model.LoanSnapshot, reportingDate time.Time) decimal.Decimal {
	if !loan.LoanAmount.IsPositive() || loan.LoanTerm <= 0 {
		return one
	}

	n := float64(loan.LoanTerm)
	t := float64(monthsElapsed(loan.IssueDate, reportingDate, loan.LoanTerm))

	// The power terms use float64, as with schedule generation; monetary
	// scaling switches back to decimal.
	monthlyRate, _ := EffectiveInterestRate(loan).Div(twelve).Float64()

	var balanceFraction float64
	if monthlyRate > 0 {
		factorN := math.Pow(1+monthlyRate, n)
		factorT := math.Pow(1+monthlyRate, t)
		balanceFraction = (factorN - factorT) / (factorN - 1)
	} else {
		// Zero-interest: straight-line rundown.
		balanceFraction = (n - t) / n
	}

	theoretical := loan.LoanAmount.Mul(decimal.NewFromFloat(balanceFraction))
	if loan.AccumulatedArrears.IsPositive() {
		theoretical = theoretical.Add(loan.AccumulatedArrears)
	}

	return clampFraction(theoretical.Div(loan.LoanAmount))
}

// LossGivenDefault estimates the fraction of exposure lost after applying
// the client's collateral: cash collateral recovers at face value, non-cash
// at a haircut. Unsecured loans take the industry-average default. Clamped
// to [0,1]; zero when nothing is outstanding.
func LossGivenDefault(loan model.LoanSnapshot, collaterals []model.Collateral) decimal.Decimal {
	if !loan.HasBalance() {
		return unsecuredLGD
	}
	outstanding := loan.Balance()
	if !outstanding.IsPositive() {
		return decimal.Zero
	}
	if len(collaterals) == 0 {
		return unsecuredLGD
	}

	recoverable := decimal.Zero
	for _, c := range collaterals {
		if c.Value.IsNegative() {
			continue
		}
		if c.Kind.Equal(valueobject.CollateralCash) {
			recoverable = recoverable.Add(c.Value)
		} else {
			recoverable = recoverable.Add(c.Value.Mul(nonCashHaircut))
		}
	}

	if recoverable.GreaterThanOrEqual(outstanding) {
		return decimal.Zero
	}
	return clampFraction(outstanding.Sub(recoverable).Div(outstanding))
}

// MarginalECL computes the expected credit loss for one loan:
// balance × EAD% × PD × LGD. Never negative; full precision is preserved,
// rounding happens only at the summary boundary.
func MarginalECL(balance, eadPct, pd, lgd decimal.Decimal) decimal.Decimal {
	ecl := balance.Mul(eadPct).Mul(pd).Mul(lgd)
	if ecl.IsNegative() {
		return decimal.Zero
	}
	return ecl
}

// monthsElapsed counts whole months from issue to the reporting date,
// clamped to [0, termMonths].
func monthsElapsed(issueDate, reportingDate time.Time, termMonths int) int {
	months := (reportingDate.Year()-issueDate.Year())*12 + int(reportingDate.Month()) - int(issueDate.Month())
	if months < 0 {
		return 0
	}
	if months > termMonths {
		return termMonths
	}
	return months
}

func clampFraction(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(one) {
		return one
	}
	return v
}
