package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/application/dto"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/event"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/port"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/observability"
)

// CalculateECLUseCase turns the latest ECL staging result into monetary
// provisions using per-loan PD, LGD and EAD components.
type CalculateECLUseCase struct {
	classifier  *service.Classifier
	aggregator  *service.Aggregator
	stagingRepo port.StagingResultRepository
	calcRepo    port.CalculationResultRepository
	publisher   port.EventPublisher
	estimator   service.PDEstimator // nil: derive per run from the snapshot
	logger      *slog.Logger
}

// NewCalculateECLUseCase wires dependencies. estimator may be nil, in which
// case each run derives a delinquency-rate estimator from its own snapshot.
func NewCalculateECLUseCase(
	classifier *service.Classifier,
	aggregator *service.Aggregator,
	stagingRepo port.StagingResultRepository,
	calcRepo port.CalculationResultRepository,
	publisher port.EventPublisher,
	estimator service.PDEstimator,
	logger *slog.Logger,
) *CalculateECLUseCase {
	return &CalculateECLUseCase{
		classifier:  classifier,
		aggregator:  aggregator,
		stagingRepo: stagingRepo,
		calcRepo:    calcRepo,
		publisher:   publisher,
		estimator:   estimator,
		logger:      logger,
	}
}

// Execute computes ECL provisions for the portfolio snapshot.
func (uc *CalculateECLUseCase) Execute(ctx context.Context, req dto.CalculateECLRequest) (dto.CalculationResponse, error) {
	now := time.Now().UTC()
	reportingDate := req.ReportingDate
	if reportingDate.IsZero() {
		reportingDate = now
	}

	// 1. Latest staging result; a calculation is always derived from one.
	latest, err := uc.stagingRepo.FindLatest(ctx, req.PortfolioID, valueobject.ProvisioningModelECL)
	if errors.Is(err, port.ErrNotFound) {
		return dto.CalculationResponse{}, fmt.Errorf("%w: no ECL staging for portfolio %s", ErrMissingStagingData, req.PortfolioID)
	}
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("find staging result: %w", err)
	}

	// 2. Per-loan assignments: stored detail, or reconstruction from the
	// raw snapshot through the same classifier and the stored config.
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
		buckets, err := latest.ECLConfig().Parse()
		if err != nil {
			return dto.CalculationResponse{}, fmt.Errorf("parse stored staging config: %w", err)
		}
		staged, _ = uc.classifier.StageECL(req.Loans, buckets)
	}

	// 3. Per-loan risk components.
	loanIndex := make(map[string]model.LoanSnapshot, len(req.Loans))
	for _, l := range req.Loans {
		loanIndex[l.LoanID] = l
	}
	book := model.NewCollateralBook(req.Collaterals)

	estimator := uc.estimator
	if estimator == nil {
		estimator = service.NewDelinquencyRateEstimator(req.Loans)
	}

	items := make([]service.LoanProvision, 0, len(staged))
	for _, sl := range staged {
		loan, ok := loanIndex[sl.LoanID]
		if !ok {
			uc.logger.WarnContext(ctx, "staged loan missing from snapshot, skipping",
				"loan_id", sl.LoanID,
				"stage", sl.Stage,
			)
			continue
		}

		pd := estimator.EstimatePD(loan)
		lgd := service.LossGivenDefault(loan, book.ForClient(loan.EmployeeID))
		ead := service.ExposureAtDefaultPercentage(loan, reportingDate)
		ecl := service.MarginalECL(loan.Balance(), ead, pd, lgd)

		items = append(items, service.LoanProvision{
			Loan:      sl,
			Provision: ecl,
			PD:        pd,
			LGD:       lgd,
			EAD:       ead,
		})
	}
	if len(staged) > 0 && len(items) == 0 {
		return dto.CalculationResponse{}, fmt.Errorf(
			"%w: none of the %d staged loans appear in the supplied snapshot",
			ErrMissingStagingData, len(staged),
		)
	}

	// 4. Aggregate into the stage summaries.
	labels := make([]string, 0, 3)
	for _, s := range valueobject.ECLStages() {
		labels = append(labels, s.String())
	}
	summary := uc.aggregator.Summarize(labels, valueobject.ECLStage3.String(), items, true)

	// 5. Persist the calculation result.
	result := model.NewCalculationResult(
		req.PortfolioID, latest.ID(),
		valueobject.ProvisioningModelECL,
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

	uc.logger.InfoContext(ctx, "ecl calculation completed",
		"portfolio_id", req.PortfolioID,
		"result_id", result.ID(),
		"total_provision", summary.TotalProvision,
		"provision_percentage", summary.ProvisionPercentage,
	)

	return calculationResponse(result), nil
}

// calculationResponse maps a CalculationResult to its boundary DTO.
func calculationResponse(result model.CalculationResult) dto.CalculationResponse {
	summary := result.Summary()
	return dto.CalculationResponse{
		ResultID:            result.ID(),
		PortfolioID:         result.PortfolioID(),
		CalculationType:     result.Model().String(),
		ReportingDate:       result.ReportingDate(),
		Buckets:             summary.Buckets,
		TotalLoans:          summary.TotalLoans,
		SkippedNoBalance:    summary.SkippedNoBalance,
		TotalBalance:        summary.TotalBalance,
		TotalProvision:      summary.TotalProvision,
		ProvisionPercentage: summary.ProvisionPercentage,
		AvgPD:               summary.AvgPD,
		AvgLGD:              summary.AvgLGD,
		AvgEAD:              summary.AvgEAD,
	}
}
