package usecase_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/event"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/port"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func localConfig() model.LocalImpairmentConfig {
	return model.LocalImpairmentConfig{
		Current:     model.CategoryConfig{DaysRange: "0-30", Rate: decimal.NewFromInt(1)},
		OLEM:        model.CategoryConfig{DaysRange: "31-90", Rate: decimal.NewFromInt(5)},
		Substandard: model.CategoryConfig{DaysRange: "91-180", Rate: decimal.NewFromInt(25)},
		Doubtful:    model.CategoryConfig{DaysRange: "181-365", Rate: decimal.NewFromInt(50)},
		Loss:        model.CategoryConfig{DaysRange: "366+", Rate: decimal.NewFromInt(100)},
	}
}

type mockStagingResultRepository struct {
	saveFunc       func(ctx context.Context, result model.StagingResult) error
	findLatestFunc func(ctx context.Context, portfolioID string, m valueobject.ProvisioningModel) (model.StagingResult, error)
	savedResults   []model.StagingResult
}

func (m *mockStagingResultRepository) Save(ctx context.Context, result model.StagingResult) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, result); err != nil {
			return err
		}
	}
	m.savedResults = append(m.savedResults, result)
	return nil
}

func (m *mockStagingResultRepository) FindLatest(ctx context.Context, portfolioID string, pm valueobject.ProvisioningModel) (model.StagingResult, error) {
	if m.findLatestFunc != nil {
		return m.findLatestFunc(ctx, portfolioID, pm)
	}
	return model.StagingResult{}, port.ErrNotFound
}

type mockCalculationResultRepository struct {
	saveFunc     func(ctx context.Context, result model.CalculationResult) error
	savedResults []model.CalculationResult
}

func (m *mockCalculationResultRepository) Save(ctx context.Context, result model.CalculationResult) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, result); err != nil {
			return err
		}
	}
	m.savedResults = append(m.savedResults, result)
	return nil
}

func (m *mockCalculationResultRepository) FindLatest(ctx context.Context, portfolioID string, pm valueobject.ProvisioningModel) (model.CalculationResult, error) {
	return model.CalculationResult{}, port.ErrNotFound
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, events...); err != nil {
			return err
		}
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}
