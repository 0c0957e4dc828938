package service

import (
	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
)

// PDEstimator estimates a loan's probability of default as a fraction in
// [0,1]. It is an injected capability: callers may supply a trained model
// without touching the calculator.
type PDEstimator interface {
	EstimatePD(loan model.LoanSnapshot) decimal.Decimal
}

var (
	performingPDFloor = decimal.NewFromFloat(0.05)
	performingPDCap   = decimal.NewFromFloat(0.30)
	elevatedPD        = decimal.NewFromFloat(0.30)
	impairedPD        = decimal.NewFromFloat(0.75)
)

// Arrears bands beyond which credit risk is considered significantly
// increased / credit-impaired.
const (
	elevatedRiskDays = 120
	impairedRiskDays = 240
)

// DelinquencyRateEstimator estimates PD from the portfolio's own historical
// delinquency behavior. Loans already deep in arrears take the fixed
// elevated and impaired rates; performing loans take the portfolio's
// observed delinquency rate, floored at 5% and capped below the elevated
// band so PD stays monotonic in arrears aging.
type DelinquencyRateEstimator struct {
	baseRate decimal.Decimal
}

// NewDelinquencyRateEstimator derives the performing-loan base rate from
// the portfolio snapshot: the fraction of loans more than 90 days past due.
func NewDelinquencyRateEstimator(loans []model.LoanSnapshot) *DelinquencyRateEstimator {
	delinquent := 0
	for _, l := range loans {
		if DaysPastDue(l) > 90 {
			delinquent++
		}
	}

	base := performingPDFloor
	if len(loans) > 0 {
		observed := decimal.NewFromInt(int64(delinquent)).Div(decimal.NewFromInt(int64(len(loans))))
		if observed.GreaterThan(base) {
			base = observed
		}
		if base.GreaterThan(performingPDCap) {
			base = performingPDCap
		}
	}
	return &DelinquencyRateEstimator{baseRate: base}
}

// EstimatePD returns the loan's probability of default.
func (e *DelinquencyRateEstimator) EstimatePD(loan model.LoanSnapshot) decimal.Decimal {
	dpd := DaysPastDue(loan)
	switch {
	case dpd >= impairedRiskDays:
		return impairedPD
	case dpd >= elevatedRiskDays:
		return elevatedPD
	default:
		return e.baseRate
	}
}

// BaseRate returns the performing-loan base rate in use.
func (e *DelinquencyRateEstimator) BaseRate() decimal.Decimal { return e.baseRate }
