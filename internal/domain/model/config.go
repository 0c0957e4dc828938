package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ErrInvalidConfiguration is returned when a staging or impairment
// configuration is structurally unusable: a bucket is missing, a rate is
// negative or above 100%, or a range fails to parse.
var ErrInvalidConfiguration = errors.New("invalid configuration")

var oneHundred = decimal.NewFromInt(100)

// ---------------------------------------------------------------------------
// ECL staging configuration (3 buckets)
// ---------------------------------------------------------------------------

// BucketConfig carries the raw days-range string for one ECL stage.
type BucketConfig struct {
	DaysRange string `json:"days_range"`
}

// ECLStagingConfig holds the three stage buckets exactly as supplied by the
// caller. Ranges need not be contiguous or exhaustive; any loan matching no
// range falls into Stage 3.
type ECLStagingConfig struct {
	Stage1 BucketConfig `json:"stage_1"`
	Stage2 BucketConfig `json:"stage_2"`
	Stage3 BucketConfig `json:"stage_3"`
}

// ECLBucket pairs a stage label with its parsed range.
type ECLBucket struct {
	Stage valueobject.ECLStage
	Range valueobject.DaysRange
}

// Parse validates the configuration and parses each bucket's days range
// once. Buckets are returned in evaluation order.
func (c ECLStagingConfig) Parse() ([]ECLBucket, error) {
	raw := []struct {
		name  string
		stage valueobject.ECLStage
		cfg   BucketConfig
	}{
		{"stage_1", valueobject.ECLStage1, c.Stage1},
		{"stage_2", valueobject.ECLStage2, c.Stage2},
		{"stage_3", valueobject.ECLStage3, c.Stage3},
	}

	buckets := make([]ECLBucket, 0, len(raw))
	for _, b := range raw {
		if b.cfg.DaysRange == "" {
			return nil, fmt.Errorf("%w: bucket %q is missing a days range", ErrInvalidConfiguration, b.name)
		}
		r, err := valueobject.ParseDaysRange(b.cfg.DaysRange)
		if err != nil {
			return nil, fmt.Errorf("%w: bucket %q: %w", ErrInvalidConfiguration, b.name, err)
		}
		buckets = append(buckets, ECLBucket{Stage: b.stage, Range: r})
	}
	return buckets, nil
}

// ---------------------------------------------------------------------------
// Local impairment configuration (5 categories)
// ---------------------------------------------------------------------------

// CategoryConfig carries the raw days-range string and the provision rate
// (a percentage, 0-100) for one impairment category.
type CategoryConfig struct {
	DaysRange string          `json:"days_range"`
	Rate      decimal.Decimal `json:"rate"`
}

// LocalImpairmentConfig holds the five category buckets. Any loan matching
// no range falls into Loss.
type LocalImpairmentConfig struct {
	Current     CategoryConfig `json:"current"`
	OLEM        CategoryConfig `json:"olem"`
	Substandard CategoryConfig `json:"substandard"`
	Doubtful    CategoryConfig `json:"doubtful"`
	Loss        CategoryConfig `json:"loss"`
}

// ImpairmentBucket pairs a category label with its parsed range and the
// provision rate converted to a fraction.
type ImpairmentBucket struct {
	Category valueobject.ImpairmentCategory
	Range    valueobject.DaysRange
	Rate     decimal.Decimal // fraction, e.g. 0.01 for a 1% rate
}

// Parse validates the configuration, parses each range once and converts
// the percentage rates to fractions. Buckets are returned in evaluation
// order.
func (c LocalImpairmentConfig) Parse() ([]ImpairmentBucket, error) {
	raw := []struct {
		name     string
		category valueobject.ImpairmentCategory
		cfg      CategoryConfig
	}{
		{"current", valueobject.CategoryCurrent, c.Current},
		{"olem", valueobject.CategoryOLEM, c.OLEM},
		{"substandard", valueobject.CategorySubstandard, c.Substandard},
		{"doubtful", valueobject.CategoryDoubtful, c.Doubtful},
		{"loss", valueobject.CategoryLoss, c.Loss},
	}

	buckets := make([]ImpairmentBucket, 0, len(raw))
	for _, b := range raw {
		if b.cfg.DaysRange == "" {
			return nil, fmt.Errorf("%w: category %q is missing a days range", ErrInvalidConfiguration, b.name)
		}
		r, err := valueobject.ParseDaysRange(b.cfg.DaysRange)
		if err != nil {
			return nil, fmt.Errorf("%w: category %q: %w", ErrInvalidConfiguration, b.name, err)
		}
		if b.cfg.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: category %q has a negative rate %s", ErrInvalidConfiguration, b.name, b.cfg.Rate)
		}
		if b.cfg.Rate.GreaterThan(oneHundred) {
			return nil, fmt.Errorf("%w: category %q rate %s exceeds 100%%", ErrInvalidConfiguration, b.name, b.cfg.Rate)
		}
		buckets = append(buckets, ImpairmentBucket{
			Category: b.category,
			Range:    r,
			Rate:     b.cfg.Rate.Div(oneHundred),
		})
	}
	return buckets, nil
}
