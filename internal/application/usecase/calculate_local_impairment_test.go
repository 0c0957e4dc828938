package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/application/dto"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/application/usecase"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

func newCalculateLocal(stagingRepo *mockStagingResultRepository, calcRepo *mockCalculationResultRepository, publisher *mockEventPublisher) *usecase.CalculateLocalImpairmentUseCase {
	return usecase.NewCalculateLocalImpairmentUseCase(
		service.NewClassifier(testLogger()),
		service.NewAggregator(testLogger()),
		stagingRepo, calcRepo, publisher, testLogger(),
	)
}

func localStagingResult(loans []model.StagedLoan, counts map[string]int) model.StagingResult {
	return model.NewLocalImpairmentStagingResult("port-1", loans, counts, localConfig(), time.Now().UTC())
}

func repoReturning(result model.StagingResult) *mockStagingResultRepository {
	return &mockStagingResultRepository{
		findLatestFunc: func(ctx context.Context, _ string, m valueobject.ProvisioningModel) (model.StagingResult, error) {
			return result, nil
		},
	}
}

func TestCalculateLocalImpairment_Execute(t *testing.T) {
	reportingDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("fails when no staging exists", func(t *testing.T) {
		uc := newCalculateLocal(&mockStagingResultRepository{}, &mockCalculationResultRepository{}, &mockEventPublisher{})
		_, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{PortfolioID: "port-1"})
		require.ErrorIs(t, err, usecase.ErrMissingStagingData)
	})

	t.Run("applies the stored category rates", func(t *testing.T) {
		staged := []model.StagedLoan{
			{LoanID: "L1", Stage: "Current", Balance: decimal.NewNullDecimal(decimal.NewFromInt(10000))},
			{LoanID: "L2", Stage: "OLEM", Balance: decimal.NewNullDecimal(decimal.NewFromInt(10000))},
			{LoanID: "L3", Stage: "Loss", Balance: decimal.NewNullDecimal(decimal.NewFromInt(5000))},
		}
		latest := localStagingResult(staged, map[string]int{"Current": 1, "OLEM": 1, "Loss": 1})
		calcRepo := &mockCalculationResultRepository{}
		publisher := &mockEventPublisher{}
		uc := newCalculateLocal(repoReturning(latest), calcRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{
			PortfolioID:   "port-1",
			ReportingDate: reportingDate,
		})

		require.NoError(t, err)
		assert.Equal(t, "local_impairment", resp.CalculationType)

		current, ok := findBucket(resp.Buckets, "Current")
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(100).Equal(current.TotalProvision), "got %s", current.TotalProvision)

		olem, _ := findBucket(resp.Buckets, "OLEM")
		assert.True(t, decimal.NewFromInt(500).Equal(olem.TotalProvision))

		loss, _ := findBucket(resp.Buckets, "Loss")
		assert.True(t, decimal.NewFromInt(5000).Equal(loss.TotalProvision))

		// 5600 / 25000 = 22.4%
		assert.True(t, decimal.NewFromInt(5600).Equal(resp.TotalProvision))
		assert.True(t, decimal.NewFromFloat(22.4).Equal(resp.ProvisionPercentage), "got %s", resp.ProvisionPercentage)
		// Component averages stay zero on the fixed-rate path.
		assert.True(t, resp.AvgPD.IsZero())

		require.Len(t, calcRepo.savedResults, 1)
		assert.Equal(t, latest.ID(), calcRepo.savedResults[0].StagingResultID())
		require.Len(t, publisher.publishedEvents, 1)
	})

	t.Run("unknown stage labels take the Loss rate and bucket", func(t *testing.T) {
		staged := []model.StagedLoan{
			{LoanID: "L1", Stage: "Watchlist", Balance: decimal.NewNullDecimal(decimal.NewFromInt(2000))},
		}
		latest := localStagingResult(staged, map[string]int{"Watchlist": 1})
		uc := newCalculateLocal(repoReturning(latest), &mockCalculationResultRepository{}, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{
			PortfolioID:   "port-1",
			ReportingDate: reportingDate,
		})

		require.NoError(t, err)
		loss, ok := findBucket(resp.Buckets, "Loss")
		require.True(t, ok)
		assert.Equal(t, 1, loss.Count)
		assert.True(t, decimal.NewFromInt(2000).Equal(loss.TotalProvision))
	})

	t.Run("reconstructs staging from the snapshot when detail is gone", func(t *testing.T) {
		summaryOnly := model.ReconstructStagingResult(
			"staging-1", "port-1",
			valueobject.ProvisioningModelLocalImpairment,
			nil, map[string]int{"OLEM": 1},
			model.ECLStagingConfig{}, localConfig(),
			time.Now().UTC(),
		)
		uc := newCalculateLocal(repoReturning(summaryOnly), &mockCalculationResultRepository{}, &mockEventPublisher{})

		loan := model.LoanSnapshot{
			LoanID:             "L1",
			NDIA:               intPtr(60),
			OutstandingBalance: decimal.NewNullDecimal(decimal.NewFromInt(10000)),
		}
		resp, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{
			PortfolioID:   "port-1",
			ReportingDate: reportingDate,
			Loans:         []model.LoanSnapshot{loan},
		})

		require.NoError(t, err)
		olem, ok := findBucket(resp.Buckets, "OLEM")
		require.True(t, ok)
		assert.Equal(t, 1, olem.Count)
		assert.True(t, decimal.NewFromInt(500).Equal(olem.TotalProvision))
	})

	t.Run("reconstruction matches a run with stored detail", func(t *testing.T) {
		loans := []model.LoanSnapshot{
			snapshotLoan("L1", 10, 4000),
			snapshotLoan("L2", 100, 6000),
			snapshotLoan("L3", 500, 2500),
		}
		buckets, err := localConfig().Parse()
		require.NoError(t, err)
		staged, counts := service.NewClassifier(testLogger()).StageLocalImpairment(loans, buckets)

		withDetail := localStagingResult(staged, counts)
		summaryOnly := model.ReconstructStagingResult(
			withDetail.ID(), "port-1",
			valueobject.ProvisioningModelLocalImpairment,
			nil, counts,
			model.ECLStagingConfig{}, localConfig(),
			withDetail.CreatedAt(),
		)

		run := func(latest model.StagingResult) dto.CalculationResponse {
			uc := newCalculateLocal(repoReturning(latest), &mockCalculationResultRepository{}, &mockEventPublisher{})
			resp, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{
				PortfolioID:   "port-1",
				ReportingDate: reportingDate,
				Loans:         loans,
			})
			require.NoError(t, err)
			return resp
		}

		fromDetail, fromSnapshot := run(withDetail), run(summaryOnly)
		assert.True(t, fromDetail.TotalProvision.Equal(fromSnapshot.TotalProvision))
		assert.True(t, fromDetail.TotalBalance.Equal(fromSnapshot.TotalBalance))
		assert.Equal(t, fromDetail.Buckets, fromSnapshot.Buckets)
	})

	t.Run("fails when detail is gone and no snapshot is supplied", func(t *testing.T) {
		summaryOnly := model.ReconstructStagingResult(
			"staging-1", "port-1",
			valueobject.ProvisioningModelLocalImpairment,
			nil, map[string]int{"Current": 2},
			model.ECLStagingConfig{}, localConfig(),
			time.Now().UTC(),
		)
		uc := newCalculateLocal(repoReturning(summaryOnly), &mockCalculationResultRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{PortfolioID: "port-1"})
		require.ErrorIs(t, err, usecase.ErrMissingStagingData)
	})

	t.Run("loans without a balance carry no provision and are counted", func(t *testing.T) {
		staged := []model.StagedLoan{
			{LoanID: "L1", Stage: "Current", Balance: decimal.NewNullDecimal(decimal.NewFromInt(10000))},
			{LoanID: "L2", Stage: "Current"}, // no balance
		}
		latest := localStagingResult(staged, map[string]int{"Current": 2})
		uc := newCalculateLocal(repoReturning(latest), &mockCalculationResultRepository{}, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.CalculateLocalImpairmentRequest{
			PortfolioID:   "port-1",
			ReportingDate: reportingDate,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalLoans)
		assert.Equal(t, 1, resp.SkippedNoBalance)
		assert.True(t, decimal.NewFromInt(100).Equal(resp.TotalProvision))
	})
}
