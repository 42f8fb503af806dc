package estimate

import "fmt"

// ModelName identifies one of the available energy models.
type ModelName string

const (
	// ModelTokenVolume is the fitted token-volume model: energy directly
	// from token counts, one formula per profile.
	ModelTokenVolume ModelName = "token-volume"

	// ModelComputeTime is the compute-time-then-power model: time from the
	// declared throughput, energy from the hardware power draw.
	ModelComputeTime ModelName = "compute-time"
)

// DefaultModel is the model used by the daily aggregation path when the
// caller does not pick one.
const DefaultModel = ModelTokenVolume

// CallEstimate is the result of estimating one call: compute time, energy
// in both units, and carbon.
type CallEstimate struct {
	ComputeTimeSeconds float64 `json:"time_s"`
	EnergyJoules       float64 `json:"energy_j"`
	EnergyKWh          float64 `json:"energy_kwh"`
	CO2Grams           float64 `json:"co2_g"`
}

// EnergyModel estimates compute time, energy and carbon for a single call
// of a profile. Both formula sets implement it; callers choose by name, the
// engine never silently picks one over the other.
type EnergyModel interface {
	Name() ModelName
	EstimateCall(p Profile, tokensIn, tokensOut float64, params Params) (CallEstimate, error)
}

// ModelFor resolves an energy model by name. The empty string resolves to
// DefaultModel; anything else outside the known set is rejected.
func ModelFor(name ModelName) (EnergyModel, error) {
	switch name {
	case "", DefaultModel:
		return TokenVolumeModel{}, nil
	case ModelComputeTime:
		return ComputeTimeModel{}, nil
	}
	return nil, fmt.Errorf("%w: unknown energy model %q", ErrInvalidInput, string(name))
}

// validateTokens rejects negative token counts before any formula runs.
func validateTokens(tokensIn, tokensOut float64) error {
	if tokensIn < 0 {
		return fmt.Errorf("%w: tokens_in %g is negative", ErrInvalidInput, tokensIn)
	}
	if tokensOut < 0 {
		return fmt.Errorf("%w: tokens_out %g is negative", ErrInvalidInput, tokensOut)
	}
	return nil
}
