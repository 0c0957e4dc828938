package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is the interface all engine events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	PortfolioID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common event envelope.
type BaseEvent struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     string    `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	Portfolio     string    `json:"portfolio_id"`
	At            time.Time `json:"occurred_at"`
}

// NewBaseEvent creates an envelope with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType, portfolioID string) BaseEvent {
	return BaseEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Portfolio:     portfolioID,
		At:            time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string	{ return e.ID }
func (e BaseEvent) EventType() string	{ return e.Type }
func (e BaseEvent) AggregateID() string	{ return e.Aggregate }
func (e BaseEvent) AggregateType() string	{ return e.AggregateKind }
func (e BaseEvent) PortfolioID() string	{ return e.Portfolio }
func (e BaseEvent) OccurredAt() time.Time	{ return e.At }

// ---------------------------------------------------------------------------
// Staging events
// ---------------------------------------------------------------------------

// StagingCompleted is raised when a staging run has produced a new result.
type StagingCompleted struct {
	BaseEvent
	StagingType  string         `json:"staging_type"`
	TotalLoans   int            `json:"total_loans"`
	BucketCounts map[string]int `json:"bucket_counts"`
}

func NewStagingCompleted(resultID, portfolioID, stagingType string, totalLoans int, bucketCounts map[string]int) StagingCompleted {
	return StagingCompleted{
		BaseEvent:    NewBaseEvent("provisioning.staging.completed", resultID, "StagingResult", portfolioID),
		StagingType:  stagingType,
		TotalLoans:   totalLoans,
		BucketCounts: bucketCounts,
	}
}

// ---------------------------------------------------------------------------
// Calculation events
// ---------------------------------------------------------------------------

// CalculationCompleted is raised when a provisioning calculation has
// produced a new result.
type CalculationCompleted struct {
	BaseEvent
	CalculationType     string          `json:"calculation_type"`
	ReportingDate       time.Time       `json:"reporting_date"`
	TotalLoans          int             `json:"total_loans"`
	TotalProvision      decimal.Decimal `json:"total_provision"`
	ProvisionPercentage decimal.Decimal `json:"provision_percentage"`
}

func NewCalculationCompleted(
	resultID, portfolioID, calculationType string,
	reportingDate time.Time,
	totalLoans int,
	totalProvision, provisionPercentage decimal.Decimal,
) CalculationCompleted {
	return CalculationCompleted{
		BaseEvent:           NewBaseEvent("provisioning.calculation.completed", resultID, "CalculationResult", portfolioID),
		CalculationType:     calculationType,
		ReportingDate:       reportingDate,
		TotalLoans:          totalLoans,
		TotalProvision:      totalProvision,
		ProvisionPercentage: provisionPercentage,
	}
}
