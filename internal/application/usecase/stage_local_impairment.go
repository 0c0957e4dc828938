package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/application/dto"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/event"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/port"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/observability"
)

// StageLocalImpairmentUseCase classifies a portfolio snapshot into the five
// local-regulator impairment categories.
type StageLocalImpairmentUseCase struct {
	classifier  *service.Classifier
	stagingRepo port.StagingResultRepository
	publisher   port.EventPublisher
	logger      *slog.Logger
	batchSize   int
}

// NewStageLocalImpairmentUseCase wires dependencies.
func NewStageLocalImpairmentUseCase(
	classifier *service.Classifier,
	stagingRepo port.StagingResultRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	batchSize int,
) *StageLocalImpairmentUseCase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &StageLocalImpairmentUseCase{
		classifier:  classifier,
		stagingRepo: stagingRepo,
		publisher:   publisher,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Execute runs a local impairment staging pass over the snapshot.
func (uc *StageLocalImpairmentUseCase) Execute(ctx context.Context, req dto.StageLocalImpairmentRequest) (dto.StagingResponse, error) {
	now := time.Now().UTC()

	// 1. Validate configuration (ranges and rates) before producing anything.
	buckets, err := req.Config.Parse()
	if err != nil {
		return dto.StagingResponse{}, fmt.Errorf("parse impairment config: %w", err)
	}

	// 2. Classify in bounded batches. Loans without NDIA take the derived
	// days past due inside the classifier.
	staged := make([]model.StagedLoan, 0, len(req.Loans))
	counts := make(map[string]int)
	for start := 0; start < len(req.Loans); start += uc.batchSize {
		end := min(start+uc.batchSize, len(req.Loans))
		batchStaged, batchCounts := uc.classifier.StageLocalImpairment(req.Loans[start:end], buckets)
		staged = append(staged, batchStaged...)
		for label, n := range batchCounts {
			counts[label] += n
		}
		uc.logger.DebugContext(ctx, "staged batch",
			"portfolio_id", req.PortfolioID,
			"staging_type", "local_impairment",
			"processed", end,
			"total", len(req.Loans),
		)
	}

	// 3. Persist the immutable result.
	result := model.NewLocalImpairmentStagingResult(req.PortfolioID, staged, counts, req.Config, now)
	if err := uc.stagingRepo.Save(ctx, result); err != nil {
		return dto.StagingResponse{}, fmt.Errorf("save staging result: %w", err)
	}

	// 4. Publish completion.
	evt := event.NewStagingCompleted(result.ID(), req.PortfolioID, result.Model().String(), len(staged), counts)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return dto.StagingResponse{}, fmt.Errorf("publish events: %w", err)
	}

	observability.StagingRunsTotal.WithLabelValues(result.Model().String()).Inc()
	observability.LoansStagedTotal.WithLabelValues(result.Model().String()).Add(float64(len(staged)))

	uc.logger.InfoContext(ctx, "local impairment staging completed",
		"portfolio_id", req.PortfolioID,
		"result_id", result.ID(),
		"total_loans", len(staged),
	)

	return dto.StagingResponse{
		ResultID:     result.ID(),
		PortfolioID:  req.PortfolioID,
		StagingType:  result.Model().String(),
		TotalLoans:   len(staged),
		BucketCounts: counts,
		Loans:        staged,
		CreatedAt:    result.CreatedAt(),
	}, nil
}
