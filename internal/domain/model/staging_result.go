package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// StagingResult aggregate root
// ---------------------------------------------------------------------------

// StagedLoan is one loan's stage assignment, in the shape external storage
// persists: the stage label plus the loan fields echoed back.
type StagedLoan struct {
	LoanID     string              `json:"loan_id"`
	EmployeeID string              `json:"employee_id"`
	Stage      string              `json:"stage"`
	Balance    decimal.NullDecimal `json:"outstanding_loan_balance"`
	NDIA       float64             `json:"ndia"`
}

// StagingResult is an immutable snapshot of one staging run. A later
// re-staging produces a new result; callers always read the most recent one
// by creation time.
type StagingResult struct {
	id           string
	portfolioID  string
	model        valueobject.ProvisioningModel
	loans        []StagedLoan
	bucketCounts map[string]int
	eclConfig    ECLStagingConfig
	localConfig  LocalImpairmentConfig
	createdAt    time.Time
}

// NewECLStagingResult creates a staging result for an ECL run.
func NewECLStagingResult(
	portfolioID string,
	loans []StagedLoan,
	bucketCounts map[string]int,
	config ECLStagingConfig,
	now time.Time,
) StagingResult {
	return StagingResult{
		id:           uuid.New().String(),
		portfolioID:  portfolioID,
		model:        valueobject.ProvisioningModelECL,
		loans:        copyStagedLoans(loans),
		bucketCounts: copyCounts(bucketCounts),
		eclConfig:    config,
		createdAt:    now,
	}
}

// NewLocalImpairmentStagingResult creates a staging result for a local
// impairment run.
func NewLocalImpairmentStagingResult(
	portfolioID string,
	loans []StagedLoan,
	bucketCounts map[string]int,
	config LocalImpairmentConfig,
	now time.Time,
) StagingResult {
	return StagingResult{
		id:           uuid.New().String(),
		portfolioID:  portfolioID,
		model:        valueobject.ProvisioningModelLocalImpairment,
		loans:        copyStagedLoans(loans),
		bucketCounts: copyCounts(bucketCounts),
		localConfig:  config,
		createdAt:    now,
	}
}

// ReconstructStagingResult rebuilds a StagingResult from persistence. A
// persisted result may lack per-loan detail (loans == nil) when only the
// summary survived; calculations must then re-stage from raw loans.
func ReconstructStagingResult(
	id, portfolioID string,
	model valueobject.ProvisioningModel,
	loans []StagedLoan,
	bucketCounts map[string]int,
	eclConfig ECLStagingConfig,
	localConfig LocalImpairmentConfig,
	createdAt time.Time,
) StagingResult {
	return StagingResult{
		id:           id,
		portfolioID:  portfolioID,
		model:        model,
		loans:        copyStagedLoans(loans),
		bucketCounts: copyCounts(bucketCounts),
		eclConfig:    eclConfig,
		localConfig:  localConfig,
		createdAt:    createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r StagingResult) ID() string	{ return r.id }
func (r StagingResult) PortfolioID() string	{ return r.portfolioID }
func (r StagingResult) Model() valueobject.ProvisioningModel	{ return r.model }
func (r StagingResult) CreatedAt() time.Time	{ return r.createdAt }
func (r StagingResult) ECLConfig() ECLStagingConfig	{ return r.eclConfig }
func (r StagingResult) LocalConfig() LocalImpairmentConfig	{ return r.localConfig }

// Loans returns a copy of the per-loan stage assignments.
func (r StagingResult) Loans() []StagedLoan	{ return copyStagedLoans(r.loans) }

// HasLoanDetail reports whether per-loan assignments were retained.
func (r StagingResult) HasLoanDetail() bool	{ return len(r.loans) > 0 }

// BucketCount returns the number of loans staged into the given bucket.
func (r StagingResult) BucketCount(label string) int	{ return r.bucketCounts[label] }

// TotalLoans returns the number of loans covered by this staging run.
func (r StagingResult) TotalLoans() int {
	if len(r.loans) > 0 {
		return len(r.loans)
	}
	total := 0
	for _, n := range r.bucketCounts {
		total += n
	}
	return total
}

func copyStagedLoans(in []StagedLoan) []StagedLoan {
	if in == nil {
		return nil
	}
	out := make([]StagedLoan, len(in))
	copy(out, in)
	return out
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
