package service_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
)

func intPtr(n int) *int { return &n }

func eclBuckets(t *testing.T) []model.ECLBucket {
	t.Helper()
	cfg := model.ECLStagingConfig{
		Stage1: model.BucketConfig{DaysRange: "0-120"},
		Stage2: model.BucketConfig{DaysRange: "121-240"},
		Stage3: model.BucketConfig{DaysRange: "241+"},
	}
	buckets, err := cfg.Parse()
	require.NoError(t, err)
	return buckets
}

func impairmentBuckets(t *testing.T) []model.ImpairmentBucket {
	t.Helper()
	cfg := model.LocalImpairmentConfig{
		Current:     model.CategoryConfig{DaysRange: "0-30", Rate: decimal.NewFromInt(1)},
		OLEM:        model.CategoryConfig{DaysRange: "31-90", Rate: decimal.NewFromInt(5)},
		Substandard: model.CategoryConfig{DaysRange: "91-180", Rate: decimal.NewFromInt(25)},
		Doubtful:    model.CategoryConfig{DaysRange: "181-365", Rate: decimal.NewFromInt(50)},
		Loss:        model.CategoryConfig{DaysRange: "366+", Rate: decimal.NewFromInt(100)},
	}
	buckets, err := cfg.Parse()
	require.NoError(t, err)
	return buckets
}

func TestClassifier_StageECL(t *testing.T) {
	classifier := service.NewClassifier(testLogger())

	t.Run("boundary values stage inclusively", func(t *testing.T) {
		loans := []model.LoanSnapshot{
			{LoanID: "L1", NDIA: intPtr(0)},
			{LoanID: "L2", NDIA: intPtr(120)},
			{LoanID: "L3", NDIA: intPtr(121)},
			{LoanID: "L4", NDIA: intPtr(240)},
			{LoanID: "L5", NDIA: intPtr(241)},
			{LoanID: "L6", NDIA: intPtr(10000)},
		}
		staged, counts := classifier.StageECL(loans, eclBuckets(t))

		require.Len(t, staged, 6)
		assert.Equal(t, "Stage 1", staged[0].Stage)
		assert.Equal(t, "Stage 1", staged[1].Stage)
		assert.Equal(t, "Stage 2", staged[2].Stage)
		assert.Equal(t, "Stage 2", staged[3].Stage)
		assert.Equal(t, "Stage 3", staged[4].Stage)
		assert.Equal(t, "Stage 3", staged[5].Stage)
		assert.Equal(t, map[string]int{"Stage 1": 2, "Stage 2": 2, "Stage 3": 2}, counts)
	})

	t.Run("mid-range arrears land in the second stage", func(t *testing.T) {
		cfg := model.ECLStagingConfig{
			Stage1: model.BucketConfig{DaysRange: "0-30"},
			Stage2: model.BucketConfig{DaysRange: "31-90"},
			Stage3: model.BucketConfig{DaysRange: "91+"},
		}
		buckets, err := cfg.Parse()
		require.NoError(t, err)

		staged, _ := classifier.StageECL([]model.LoanSnapshot{{LoanID: "L1", NDIA: intPtr(45)}}, buckets)
		assert.Equal(t, "Stage 2", staged[0].Stage)
	})

	t.Run("first matching bucket wins on overlap", func(t *testing.T) {
		cfg := model.ECLStagingConfig{
			Stage1: model.BucketConfig{DaysRange: "0-200"},
			Stage2: model.BucketConfig{DaysRange: "100-240"},
			Stage3: model.BucketConfig{DaysRange: "241+"},
		}
		buckets, err := cfg.Parse()
		require.NoError(t, err)

		staged, _ := classifier.StageECL([]model.LoanSnapshot{{LoanID: "L1", NDIA: intPtr(150)}}, buckets)
		assert.Equal(t, "Stage 1", staged[0].Stage)
	})

	t.Run("gaps fall to the worst stage", func(t *testing.T) {
		cfg := model.ECLStagingConfig{
			Stage1: model.BucketConfig{DaysRange: "0-100"},
			Stage2: model.BucketConfig{DaysRange: "200-300"},
			Stage3: model.BucketConfig{DaysRange: "400+"},
		}
		buckets, err := cfg.Parse()
		require.NoError(t, err)

		staged, counts := classifier.StageECL([]model.LoanSnapshot{{LoanID: "L1", NDIA: intPtr(150)}}, buckets)
		assert.Equal(t, "Stage 3", staged[0].Stage)
		assert.Equal(t, 1, counts["Stage 3"])
	})

	t.Run("no-match fallthrough warns with loan context", func(t *testing.T) {
		var buf bytes.Buffer
		logged := service.NewClassifier(slog.New(slog.NewTextHandler(&buf, nil)))
		cfg := model.ECLStagingConfig{
			Stage1: model.BucketConfig{DaysRange: "0-100"},
			Stage2: model.BucketConfig{DaysRange: "200-300"},
			Stage3: model.BucketConfig{DaysRange: "400+"},
		}
		buckets, err := cfg.Parse()
		require.NoError(t, err)

		staged, _ := logged.StageECL([]model.LoanSnapshot{{LoanID: "L9", NDIA: intPtr(150)}}, buckets)
		assert.Equal(t, "Stage 3", staged[0].Stage)

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "matched no configured range")
		assert.Contains(t, out, "loan_id=L9")
		assert.Contains(t, out, "ndia=150")
		assert.Contains(t, out, `terminal="Stage 3"`)
	})

	t.Run("missing ndia counts as zero days, arrears are ignored", func(t *testing.T) {
		loans := []model.LoanSnapshot{{
			LoanID:             "L1",
			MonthlyInstallment: decimal.NewFromInt(1000),
			AccumulatedArrears: decimal.NewFromInt(9000), // would be 270 days if derived
		}}
		staged, _ := classifier.StageECL(loans, eclBuckets(t))
		assert.Equal(t, "Stage 1", staged[0].Stage)
		assert.Equal(t, 0.0, staged[0].NDIA)
	})

	t.Run("negative ndia matches nothing and falls to the worst stage", func(t *testing.T) {
		staged, _ := classifier.StageECL([]model.LoanSnapshot{{LoanID: "L1", NDIA: intPtr(-5)}}, eclBuckets(t))
		assert.Equal(t, "Stage 3", staged[0].Stage)
		assert.Equal(t, -5.0, staged[0].NDIA)
	})

	t.Run("loans without a balance are staged with an invalid balance", func(t *testing.T) {
		staged, counts := classifier.StageECL([]model.LoanSnapshot{{LoanID: "L1", NDIA: intPtr(10)}}, eclBuckets(t))
		require.Len(t, staged, 1)
		assert.False(t, staged[0].Balance.Valid)
		assert.Equal(t, 1, counts["Stage 1"])
	})

	t.Run("output preserves input order", func(t *testing.T) {
		loans := []model.LoanSnapshot{
			{LoanID: "L3", NDIA: intPtr(300)},
			{LoanID: "L1", NDIA: intPtr(0)},
			{LoanID: "L2", NDIA: intPtr(130)},
		}
		staged, _ := classifier.StageECL(loans, eclBuckets(t))
		assert.Equal(t, "L3", staged[0].LoanID)
		assert.Equal(t, "L1", staged[1].LoanID)
		assert.Equal(t, "L2", staged[2].LoanID)
	})
}

func TestClassifier_StageLocalImpairment(t *testing.T) {
	classifier := service.NewClassifier(testLogger())

	t.Run("stages across the five categories", func(t *testing.T) {
		loans := []model.LoanSnapshot{
			{LoanID: "L1", NDIA: intPtr(0)},
			{LoanID: "L2", NDIA: intPtr(45)},
			{LoanID: "L3", NDIA: intPtr(120)},
			{LoanID: "L4", NDIA: intPtr(200)},
			{LoanID: "L5", NDIA: intPtr(366)},
		}
		staged, counts := classifier.StageLocalImpairment(loans, impairmentBuckets(t))

		assert.Equal(t, "Current", staged[0].Stage)
		assert.Equal(t, "OLEM", staged[1].Stage)
		assert.Equal(t, "Substandard", staged[2].Stage)
		assert.Equal(t, "Doubtful", staged[3].Stage)
		assert.Equal(t, "Loss", staged[4].Stage)
		assert.Equal(t, 5, len(counts))
	})

	t.Run("derives days past due from arrears when ndia is missing", func(t *testing.T) {
		loans := []model.LoanSnapshot{{
			LoanID:             "L1",
			MonthlyInstallment: decimal.NewFromInt(1000),
			AccumulatedArrears: decimal.NewFromInt(2000), // 2 months -> 60 days
		}}
		staged, _ := classifier.StageLocalImpairment(loans, impairmentBuckets(t))
		assert.Equal(t, "OLEM", staged[0].Stage)
		assert.Equal(t, 60.0, staged[0].NDIA)
	})

	t.Run("derived aging on a bucket boundary stays in that bucket", func(t *testing.T) {
		loans := []model.LoanSnapshot{{
			LoanID:             "L1",
			MonthlyInstallment: decimal.NewFromInt(100),
			AccumulatedArrears: decimal.NewFromInt(300), // 3 months -> exactly 90 days
		}}
		staged, _ := classifier.StageLocalImpairment(loans, impairmentBuckets(t))
		assert.Equal(t, "OLEM", staged[0].Stage)
		assert.Equal(t, 90.0, staged[0].NDIA)
	})

	t.Run("no match falls to Loss", func(t *testing.T) {
		staged, counts := classifier.StageLocalImpairment(
			[]model.LoanSnapshot{{LoanID: "L1", NDIA: intPtr(-30)}},
			impairmentBuckets(t),
		)
		assert.Equal(t, "Loss", staged[0].Stage)
		assert.Equal(t, 1, counts["Loss"])
	})
}
