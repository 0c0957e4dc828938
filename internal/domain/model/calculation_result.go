package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Summary value objects produced by the aggregator
// ---------------------------------------------------------------------------

// BucketSummary carries the monetary totals for one stage or category.
// Monetary fields are rounded to 2 decimal places, rates to 4, as the final
// presentation step; the aggregator accumulates at full precision.
type BucketSummary struct {
	Label          string          `json:"label"`
	Count          int             `json:"num_loans"`
	TotalBalance   decimal.Decimal `json:"total_loan_value"`
	TotalProvision decimal.Decimal `json:"provision_amount"`
	ProvisionRate  decimal.Decimal `json:"provision_rate"`
}

// PortfolioSummary is the overall result of one provisioning run.
type PortfolioSummary struct {
	Buckets             []BucketSummary `json:"buckets"`
	TotalLoans          int             `json:"total_loans"`
	SkippedNoBalance    int             `json:"skipped_no_balance"`
	TotalBalance        decimal.Decimal `json:"total_loan_value"`
	TotalProvision      decimal.Decimal `json:"total_provision"`
	ProvisionPercentage decimal.Decimal `json:"provision_percentage"`

	// ECL component averages; zero for local impairment runs.
	AvgPD  decimal.Decimal `json:"avg_pd"`
	AvgLGD decimal.Decimal `json:"avg_lgd"`
	AvgEAD decimal.Decimal `json:"avg_ead"`
}

// Bucket returns the summary for the given label, if present.
func (s PortfolioSummary) Bucket(label string) (BucketSummary, bool) {
	for _, b := range s.Buckets {
		if b.Label == label {
			return b, true
		}
	}
	return BucketSummary{}, false
}

// ---------------------------------------------------------------------------
// CalculationResult aggregate root
// ---------------------------------------------------------------------------

// CalculationResult is an immutable snapshot of one provisioning
// calculation, derived from exactly one StagingResult.
type CalculationResult struct {
	id              string
	portfolioID     string
	stagingResultID string
	model           valueobject.ProvisioningModel
	reportingDate   time.Time
	summary         PortfolioSummary
	createdAt       time.Time
}

// NewCalculationResult creates a calculation result.
func NewCalculationResult(
	portfolioID, stagingResultID string,
	model valueobject.ProvisioningModel,
	reportingDate time.Time,
	summary PortfolioSummary,
	now time.Time,
) CalculationResult {
	return CalculationResult{
		id:              uuid.New().String(),
		portfolioID:     portfolioID,
		stagingResultID: stagingResultID,
		model:           model,
		reportingDate:   reportingDate,
		summary:         summary,
		createdAt:       now,
	}
}

// ReconstructCalculationResult rebuilds a CalculationResult from
// persistence.
func ReconstructCalculationResult(
	id, portfolioID, stagingResultID string,
	model valueobject.ProvisioningModel,
	reportingDate time.Time,
	summary PortfolioSummary,
	createdAt time.Time,
) CalculationResult {
	return CalculationResult{
		id:              id,
		portfolioID:     portfolioID,
		stagingResultID: stagingResultID,
		model:           model,
		reportingDate:   reportingDate,
		summary:         summary,
		createdAt:       createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r CalculationResult) ID() string	{ return r.id }
func (r CalculationResult) PortfolioID() string	{ return r.portfolioID }
func (r CalculationResult) StagingResultID() string	{ return r.stagingResultID }
func (r CalculationResult) Model() valueobject.ProvisioningModel	{ return r.model }
func (r CalculationResult) ReportingDate() time.Time	{ return r.reportingDate }
func (r CalculationResult) Summary() PortfolioSummary	{ return r.summary }
func (r CalculationResult) CreatedAt() time.Time	{ return r.createdAt }
