package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ProvisioningModel – immutable value object
// ---------------------------------------------------------------------------

// ProvisioningModel identifies which regulatory regime a staging run or
// calculation belongs to.
type ProvisioningModel struct {
	value string
}

const (
	modelECL             = "ecl"
	modelLocalImpairment = "local_impairment"
)

var (
	ProvisioningModelECL             = ProvisioningModel{value: modelECL}
	ProvisioningModelLocalImpairment = ProvisioningModel{value: modelLocalImpairment}
)

var validProvisioningModels = map[string]ProvisioningModel{
	modelECL:             ProvisioningModelECL,
	modelLocalImpairment: ProvisioningModelLocalImpairment,
}

// NewProvisioningModel creates a ProvisioningModel from a raw string.
func NewProvisioningModel(s string) (ProvisioningModel, error) {
	v, ok := validProvisioningModels[s]
	if !ok {
		return ProvisioningModel{}, fmt.Errorf("invalid provisioning model: %q", s)
	}
	return v, nil
}

// String returns the model identifier.
func (m ProvisioningModel) String() string { return m.value }

// IsZero reports whether the model has not been initialised.
func (m ProvisioningModel) IsZero() bool { return m.value == "" }

// Equal returns true when both models match.
func (m ProvisioningModel) Equal(other ProvisioningModel) bool {
	return m.value == other.value
}
