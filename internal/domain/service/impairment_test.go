package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
)

func TestDaysPastDue(t *testing.T) {
	t.Run("ndia takes precedence over arrears", func(t *testing.T) {
		loan := model.LoanSnapshot{
			NDIA:               intPtr(45),
			MonthlyInstallment: decimal.NewFromInt(1000),
			AccumulatedArrears: decimal.NewFromInt(9000),
		}
		assert.Equal(t, 45.0, service.DaysPastDue(loan))
	})

	t.Run("negative ndia is returned as-is", func(t *testing.T) {
		loan := model.LoanSnapshot{NDIA: intPtr(-10)}
		assert.Equal(t, -10.0, service.DaysPastDue(loan))
	})

	t.Run("derives from arrears at thirty days per month", func(t *testing.T) {
		loan := model.LoanSnapshot{
			MonthlyInstallment: decimal.NewFromInt(1000),
			AccumulatedArrears: decimal.NewFromInt(2000),
		}
		assert.Equal(t, 60.0, service.DaysPastDue(loan))
	})

	t.Run("rounds the derived day count", func(t *testing.T) {
		loan := model.LoanSnapshot{
			MonthlyInstallment: decimal.NewFromInt(900),
			AccumulatedArrears: decimal.NewFromInt(1000), // 1.111 months -> 33.33 days
		}
		assert.Equal(t, 33.0, service.DaysPastDue(loan))
	})

	t.Run("zero installment yields zero days", func(t *testing.T) {
		loan := model.LoanSnapshot{AccumulatedArrears: decimal.NewFromInt(5000)}
		assert.Equal(t, 0.0, service.DaysPastDue(loan))
	})
}

func TestCategoryProvision(t *testing.T) {
	t.Run("balance times rate", func(t *testing.T) {
		got := service.CategoryProvision(decimal.NewFromInt(10000), decimal.NewFromFloat(0.05))
		assert.True(t, decimal.NewFromInt(500).Equal(got))
	})

	t.Run("zero rate yields zero provision", func(t *testing.T) {
		got := service.CategoryProvision(decimal.NewFromInt(10000), decimal.Zero)
		assert.True(t, got.IsZero())
	})

	t.Run("never negative", func(t *testing.T) {
		got := service.CategoryProvision(decimal.NewFromInt(-100), decimal.NewFromFloat(0.05))
		assert.True(t, got.IsZero())
	})
}
