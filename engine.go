// Package provisioning wires the loan-loss provisioning use cases into a
// ready-to-use engine: staging and calculation under the three-stage ECL
// model and the five-category local impairment model.
package provisioning

import (
	"log/slog"
	"net/http"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/application/usecase"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/port"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/service"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/infrastructure/config"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/infrastructure/kafka"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/infrastructure/memory"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/infrastructure/messaging"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/observability"
)

// Engine exposes the four provisioning use cases behind one wired facade.
// Zero-value options take the defaults: in-memory result stores, a Kafka
// event publisher built from the configuration, and a per-run PD estimator
// derived from each portfolio snapshot.
type Engine struct {
	StageECL                 *usecase.StageECLUseCase
	StageLocalImpairment     *usecase.StageLocalImpairmentUseCase
	CalculateECL             *usecase.CalculateECLUseCase
	CalculateLocalImpairment *usecase.CalculateLocalImpairmentUseCase

	logger   *slog.Logger
	producer *kafka.Producer // nil when the publisher was supplied
}

// Option overrides one of the engine's default dependencies.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	publisher   port.EventPublisher
	stagingRepo port.StagingResultRepository
	calcRepo    port.CalculationResultRepository
	estimator   service.PDEstimator
}

// WithLogger supplies a logger instead of one built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPublisher supplies an event publisher instead of the Kafka default.
func WithPublisher(p port.EventPublisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithStagingRepository supplies a staging result store.
func WithStagingRepository(r port.StagingResultRepository) Option {
	return func(o *options) { o.stagingRepo = r }
}

// WithCalculationRepository supplies a calculation result store.
func WithCalculationRepository(r port.CalculationResultRepository) Option {
	return func(o *options) { o.calcRepo = r }
}

// WithPDEstimator pins the probability-of-default estimator for all ECL
// calculations, e.g. a trained model.
func WithPDEstimator(e service.PDEstimator) Option {
	return func(o *options) { o.estimator = e }
}

// New builds an engine from the configuration.
func New(cfg config.Config, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = observability.InitLogger(cfg.LogLevel, cfg.LogFormat)
	}

	var producer *kafka.Producer
	publisher := o.publisher
	if publisher == nil {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
	}

	stagingRepo := o.stagingRepo
	if stagingRepo == nil {
		stagingRepo = memory.NewStagingResultStore()
	}
	calcRepo := o.calcRepo
	if calcRepo == nil {
		calcRepo = memory.NewCalculationResultStore()
	}

	classifier := service.NewClassifier(logger)
	aggregator := service.NewAggregator(logger)

	return &Engine{
		StageECL:                 usecase.NewStageECLUseCase(classifier, stagingRepo, publisher, logger, cfg.BatchSize),
		StageLocalImpairment:     usecase.NewStageLocalImpairmentUseCase(classifier, stagingRepo, publisher, logger, cfg.BatchSize),
		CalculateECL:             usecase.NewCalculateECLUseCase(classifier, aggregator, stagingRepo, calcRepo, publisher, o.estimator, logger),
		CalculateLocalImpairment: usecase.NewCalculateLocalImpairmentUseCase(classifier, aggregator, stagingRepo, calcRepo, publisher, logger),

		logger:   logger,
		producer: producer,
	}
}

// MetricsHandler serves the engine's Prometheus metrics.
func (e *Engine) MetricsHandler() http.Handler {
	return observability.MetricsHandler()
}

// Close releases the engine's owned resources. Dependencies supplied through
// options are the caller's to close.
func (e *Engine) Close() error {
	if e.producer != nil {
		return e.producer.Close()
	}
	return nil
}
