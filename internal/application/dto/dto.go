package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// StageECLRequest carries a portfolio snapshot and the three-stage
// configuration for an ECL staging run.
type StageECLRequest struct {
	PortfolioID string                 `json:"portfolio_id"`
	Config      model.ECLStagingConfig `json:"config"`
	Loans       []model.LoanSnapshot   `json:"loans"`
}

// StageLocalImpairmentRequest carries a portfolio snapshot and the
// five-category configuration for a local impairment staging run.
type StageLocalImpairmentRequest struct {
	PortfolioID string                      `json:"portfolio_id"`
	Config      model.LocalImpairmentConfig `json:"config"`
	Loans       []model.LoanSnapshot        `json:"loans"`
}

// CalculateECLRequest requests an ECL provisioning calculation against the
// latest ECL staging result. Loans and collateral form the consistent
// read-only snapshot for the calculation; ReportingDate defaults to today
// when zero.
type CalculateECLRequest struct {
	PortfolioID   string               `json:"portfolio_id"`
	ReportingDate time.Time            `json:"reporting_date"`
	Loans         []model.LoanSnapshot `json:"loans"`
	Collaterals   []model.Collateral   `json:"collaterals"`
}

// CalculateLocalImpairmentRequest requests a local impairment calculation
// against the latest local impairment staging result.
type CalculateLocalImpairmentRequest struct {
	PortfolioID   string               `json:"portfolio_id"`
	ReportingDate time.Time            `json:"reporting_date"`
	Loans         []model.LoanSnapshot `json:"loans"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// StagingResponse echoes the persisted staging result shape: the ordered
// per-loan assignments plus bucket counts.
type StagingResponse struct {
	ResultID     string             `json:"result_id"`
	PortfolioID  string             `json:"portfolio_id"`
	StagingType  string             `json:"staging_type"`
	TotalLoans   int                `json:"total_loans"`
	BucketCounts map[string]int     `json:"bucket_counts"`
	Loans        []model.StagedLoan `json:"loans"`
	CreatedAt    time.Time          `json:"created_at"`
}

// CalculationResponse carries per-bucket totals and the overall summary,
// plus the reporting date actually used.
type CalculationResponse struct {
	ResultID            string                `json:"result_id"`
	PortfolioID         string                `json:"portfolio_id"`
	CalculationType     string                `json:"calculation_type"`
	ReportingDate       time.Time             `json:"reporting_date"`
	Buckets             []model.BucketSummary `json:"buckets"`
	TotalLoans          int                   `json:"total_loans"`
	SkippedNoBalance    int                   `json:"skipped_no_balance"`
	TotalBalance        decimal.Decimal       `json:"total_loan_value"`
	TotalProvision      decimal.Decimal       `json:"total_provision"`
	ProvisionPercentage decimal.Decimal       `json:"provision_percentage"`
	AvgPD               decimal.Decimal       `json:"avg_pd"`
	AvgLGD              decimal.Decimal       `json:"avg_lgd"`
	AvgEAD              decimal.Decimal       `json:"avg_ead"`
}
