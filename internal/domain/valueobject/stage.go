package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ECLStage – immutable value object
// ---------------------------------------------------------------------------

// ECLStage is one of the three IFRS 9 risk buckets.
type ECLStage struct {
	value string
}

const (
	eclStage1 = "Stage 1"
	eclStage2 = "Stage 2"
	eclStage3 = "Stage 3"
)

var (
	ECLStage1 = ECLStage{value: eclStage1}
	ECLStage2 = ECLStage{value: eclStage2}
	ECLStage3 = ECLStage{value: eclStage3}
)

var validECLStages = map[string]ECLStage{
	eclStage1: ECLStage1,
	eclStage2: ECLStage2,
	eclStage3: ECLStage3,
}

// ECLStages returns the stages in evaluation order, least to most severe.
func ECLStages() []ECLStage {
	return []ECLStage{ECLStage1, ECLStage2, ECLStage3}
}

// NewECLStage creates an ECLStage from a raw string.
func NewECLStage(s string) (ECLStage, error) {
	v, ok := validECLStages[s]
	if !ok {
		return ECLStage{}, fmt.Errorf("invalid ECL stage: %q", s)
	}
	return v, nil
}

// String returns the stage label.
func (s ECLStage) String() string { return s.value }

// IsZero reports whether the stage has not been initialised.
func (s ECLStage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s ECLStage) Equal(other ECLStage) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ImpairmentCategory – immutable value object
// ---------------------------------------------------------------------------

// ImpairmentCategory is one of the five local-regulator impairment buckets.
type ImpairmentCategory struct {
	value string
}

const (
	categoryCurrent     = "Current"
	categoryOLEM        = "OLEM"
	categorySubstandard = "Substandard"
	categoryDoubtful    = "Doubtful"
	categoryLoss        = "Loss"
)

var (
	CategoryCurrent     = ImpairmentCategory{value: categoryCurrent}
	CategoryOLEM        = ImpairmentCategory{value: categoryOLEM}
	CategorySubstandard = ImpairmentCategory{value: categorySubstandard}
	CategoryDoubtful    = ImpairmentCategory{value: categoryDoubtful}
	CategoryLoss        = ImpairmentCategory{value: categoryLoss}
)

var validImpairmentCategories = map[string]ImpairmentCategory{
	categoryCurrent:     CategoryCurrent,
	categoryOLEM:        CategoryOLEM,
	categorySubstandard: CategorySubstandard,
	categoryDoubtful:    CategoryDoubtful,
	categoryLoss:        CategoryLoss,
}

// ImpairmentCategories returns the categories in evaluation order, least to
// most severe.
func ImpairmentCategories() []ImpairmentCategory {
	return []ImpairmentCategory{
		CategoryCurrent,
		CategoryOLEM,
		CategorySubstandard,
		CategoryDoubtful,
		CategoryLoss,
	}
}

// NewImpairmentCategory creates an ImpairmentCategory from a raw string.
func NewImpairmentCategory(s string) (ImpairmentCategory, error) {
	v, ok := validImpairmentCategories[s]
	if !ok {
		return ImpairmentCategory{}, fmt.Errorf("invalid impairment category: %q", s)
	}
	return v, nil
}

// String returns the category label.
func (c ImpairmentCategory) String() string { return c.value }

// IsZero reports whether the category has not been initialised.
func (c ImpairmentCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories carry the same value.
func (c ImpairmentCategory) Equal(other ImpairmentCategory) bool {
	return c.value == other.value
}

// ---------------------------------------------------------------------------
// CollateralKind – immutable value object
// ---------------------------------------------------------------------------

// CollateralKind distinguishes cash from non-cash security.
type CollateralKind struct {
	value string
}

const (
	collateralCash    = "cash"
	collateralNonCash = "non-cash"
)

var (
	CollateralCash    = CollateralKind{value: collateralCash}
	CollateralNonCash = CollateralKind{value: collateralNonCash}
)

// NewCollateralKind creates a CollateralKind from a raw string. Anything
// other than "cash" is treated as non-cash.
func NewCollateralKind(s string) CollateralKind {
	if s == collateralCash {
		return CollateralCash
	}
	return CollateralNonCash
}

// String returns the kind label.
func (k CollateralKind) String() string { return k.value }

// Equal returns true when both kinds match.
func (k CollateralKind) Equal(other CollateralKind) bool { return k.value == other.value }
