package memory

import (
	"context"
	"sync"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/port"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// How results are ultimately persisted is the surrounding system's concern;
// these stores carry the staging -> calculation handoff in-process and back
// the repository ports in tests.

// ---------------------------------------------------------------------------
// StagingResultStore
// ---------------------------------------------------------------------------

// StagingResultStore is an append-only in-memory implementation of
// port.StagingResultRepository. Safe for concurrent use.
type StagingResultStore struct {
	mu      sync.RWMutex
	results map[string][]model.StagingResult
}

// NewStagingResultStore creates an empty store.
func NewStagingResultStore() *StagingResultStore {
	return &StagingResultStore{results: make(map[string][]model.StagingResult)}
}

// Save appends a staging result.
func (s *StagingResultStore) Save(_ context.Context, result model.StagingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := result.PortfolioID() + "/" + result.Model().String()
	s.results[key] = append(s.results[key], result)
	return nil
}

// FindLatest returns the most recent result by creation time; insertion
// order breaks ties.
func (s *StagingResultStore) FindLatest(_ context.Context, portfolioID string, m valueobject.ProvisioningModel) (model.StagingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.results[portfolioID+"/"+m.String()]
	if len(results) == 0 {
		return model.StagingResult{}, port.ErrNotFound
	}

	latest := results[0]
	for _, r := range results[1:] {
		if !r.CreatedAt().Before(latest.CreatedAt()) {
			latest = r
		}
	}
	return latest, nil
}

// ---------------------------------------------------------------------------
// CalculationResultStore
// ---------------------------------------------------------------------------

// CalculationResultStore is an append-only in-memory implementation of
// port.CalculationResultRepository. Safe for concurrent use.
type CalculationResultStore struct {
	mu      sync.RWMutex
	results map[string][]model.CalculationResult
}

// NewCalculationResultStore creates an empty store.
func NewCalculationResultStore() *CalculationResultStore {
	return &CalculationResultStore{results: make(map[string][]model.CalculationResult)}
}

// Save appends a calculation result.
func (s *CalculationResultStore) Save(_ context.Context, result model.CalculationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := result.PortfolioID() + "/" + result.Model().String()
	s.results[key] = append(s.results[key], result)
	return nil
}

// FindLatest returns the most recent result by creation time.
func (s *CalculationResultStore) FindLatest(_ context.Context, portfolioID string, m valueobject.ProvisioningModel) (model.CalculationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.results[portfolioID+"/"+m.String()]
	if len(results) == 0 {
		return model.CalculationResult{}, port.ErrNotFound
	}

	latest := results[0]
	for _, r := range results[1:] {
		if !r.CreatedAt().Before(latest.CreatedAt()) {
			latest = r
		}
	}
	return latest, nil
}
