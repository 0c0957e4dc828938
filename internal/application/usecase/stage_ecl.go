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

const defaultBatchSize = 1000

// StageECLUseCase classifies a portfolio snapshot into the three ECL stages
// and persists the run as a new immutable staging result.
type StageECLUseCase struct {
	classifier  *service.Classifier
	stagingRepo port.StagingResultRepository
	publisher   port.EventPublisher
	logger      *slog.Logger
	batchSize   int
}

// NewStageECLUseCase wires dependencies. batchSize bounds how many loans
// are classified per iteration; values <= 0 take the default.
func NewStageECLUseCase(
	classifier *service.Classifier,
	stagingRepo port.StagingResultRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	batchSize int,
) *StageECLUseCase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &StageECLUseCase{
		classifier:  classifier,
		stagingRepo: stagingRepo,
		publisher:   publisher,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Execute runs an ECL staging pass over the snapshot.
func (uc *StageECLUseCase) Execute(ctx context.Context, req dto.StageECLRequest) (dto.StagingResponse, error) {
	now := time.Now().UTC()

	// 1. Validate the configuration before any result is produced.
	buckets, err := req.Config.Parse()
	if err != nil {
		return dto.StagingResponse{}, fmt.Errorf("parse staging config: %w", err)
	}

	// 2. Classify in bounded batches so large snapshots can be interleaved
	// with other work by the host scheduler.
	staged := make([]model.StagedLoan, 0, len(req.Loans))
	counts := make(map[string]int)
	for start := 0; start < len(req.Loans); start += uc.batchSize {
		end := min(start+uc.batchSize, len(req.Loans))
		batchStaged, batchCounts := uc.classifier.StageECL(req.Loans[start:end], buckets)
		staged = append(staged, batchStaged...)
		for label, n := range batchCounts {
			counts[label] += n
		}
		uc.logger.DebugContext(ctx, "staged batch",
			"portfolio_id", req.PortfolioID,
			"staging_type", "ecl",
			"processed", end,
			"total", len(req.Loans),
		)
	}

	// 3. Persist the immutable result.
	result := model.NewECLStagingResult(req.PortfolioID, staged, counts, req.Config, now)
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

	uc.logger.InfoContext(ctx, "ecl staging completed",
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
