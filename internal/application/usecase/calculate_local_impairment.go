package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/application/dto"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/event"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/port"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/observability"
)

// CalculateLocalImpairmentUseCase turns the latest local impairment staging
// result into monetary provisions using the fixed category rates.
type CalculateLocalImpairmentUseCase struct {
	classifier  *service.Classifier
	aggregator  *service.Aggregator
	stagingRepo port.StagingResultRepository
	calcRepo    port.CalculationResultRepository
	publisher   port.EventPublisher
	logger      *slog.Logger
}

// NewCalculateLocalImpairmentUseCase wires dependencies.
func NewCalculateLocalImpairmentUseCase(
	classifier *service.Classifier,
	aggregator *service.Aggregator,
	stagingRepo port.StagingResultRepository,
	calcRepo port.CalculationResultRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *CalculateLocalImpairmentUseCase {
	return &CalculateLocalImpairmentUseCase{
		classifier:  classifier,
		aggregator:  aggregator,
		stagingRepo: stagingRepo,
		calcRepo:    calcRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute computes local impairment provisions for the portfolio snapshot.
func (uc *CalculateLocalImpairmentUseCase) Execute(ctx context.Context, req dto.CalculateLocalImpairmentRequest) (dto.CalculationResponse, error) {
	now := time.Now().UTC()
	reportingDate := req.ReportingDate
	if reportingDate.IsZero() {
		reportingDate = now
	}

	// 1. Latest staging result.
	latest, err := uc.stagingRepo.FindLatest(ctx, req.PortfolioID, valueobject.ProvisioningModelLocalImpairment)
	if errors.Is(err, port.ErrNotFound) {
		return dto.CalculationResponse{}, fmt.Errorf("%w: no local impairment staging for portfolio %s", ErrMissingStagingData, req.PortfolioID)
	}
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("find staging result: %w", err)
	}

	// The stored config supplies the category rates regardless of whether
	// per-loan detail survived.
	buckets, err := latest.LocalConfig().Parse()
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("parse stored staging config: %w", err)
	}
	rates := make(map[string]decimal.Decimal, len(buckets))
	for _, b := range buckets {
		rates[b.Category.String()] = b.Rate
	}
	lossRate := rates[valueobject.CategoryLoss.String()]

	// 2. Per-loan assignments: stored detail, or reconstruction through
	// the same classifier.
	staged := latest.Loans()
	if len(staged) == 0 {
		if len(req.Loans) == 0 {
			return dto.CalculationResponse{}, fmt.Errorf(
				"%w: staging result %s has no per-loan detail and no loan snapshot was supplied",
				ErrMissingStagingData, latest.ID(),
			)
		}
		uc.logger.WarnContext(ctx, "staging result has no per-loan detail, re-staging from raw loans",
			"portfolio_id", req.PortfolioID,
			"staging_result_id", latest.ID(),
		)
		staged, _ = uc.classifier.StageLocalImpairment(req.Loans, buckets)
	}

	// 3. Fixed-rate provisions per loan. An unknown label takes the Loss
	// rate, consistent with the aggregator folding it into Loss.
	items := make([]service.LoanProvision, 0, len(staged))
	for _, sl := range staged {
		provision := decimal.Zero
		if sl.Balance.Valid {
			rate, ok := rates[sl.Stage]
			if !ok {
				rate = lossRate
			}
			provision = service.CategoryProvision(sl.Balance.Decimal, rate)
		}
		items = append(items, service.LoanProvision{Loan: sl, Provision: provision})
	}

	// 4. Aggregate into the category summaries.
	labels := make([]string, 0, 5)
	for _, c := range valueobject.ImpairmentCategories() {
		labels = append(labels, c.String())
	}
	summary := uc.aggregator.Summarize(labels, valueobject.CategoryLoss.String(), items, false)

	// 5. Persist the calculation result.
	result := model.NewCalculationResult(
		req.PortfolioID, latest.ID(),
		valueobject.ProvisioningModelLocalImpairment,
		reportingDate, summary, now,
	)
	if err := uc.calcRepo.Save(ctx, result); err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("save calculation result: %w", err)
	}

	// 6. Publish completion.
	evt := event.NewCalculationCompleted(
		result.ID(), req.PortfolioID, result.Model().String(),
		reportingDate, summary.TotalLoans,
		summary.TotalProvision, summary.ProvisionPercentage,
	)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	observability.CalculationRunsTotal.WithLabelValues(result.Model().String()).Inc()

	uc.logger.InfoContext(ctx, "local impairment calculation completed",
		"portfolio_id", req.PortfolioID,
		"result_id", result.ID(),
		"total_provision", summary.TotalProvision,
		"provision_percentage", summary.ProvisionPercentage,
	)

	return calculationResponse(result), nil
}
