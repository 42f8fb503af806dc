package estimate

import "fmt"

// TokenVolumeModel is the fitted token-volume formula set. It produces
// energy in joules directly from the call's token counts:
//
//   - translation: E = (tokensIn² + tokensOut) × TranslationEnergyCoef
//   - completion, chatbot: E = tokensIn²/60 + 3650.5625
//
// The quadratic-in-input term models attention-cost scaling; the additive
// constant of the completion fit absorbs an average output contribution, so
// tokensOut does not vary that formula. Compute time is derived from the
// energy by dividing out the server's inference power, the algebraic inverse
// of the compute-time model's power × time product.
type TokenVolumeModel struct{}

// Name returns ModelTokenVolume.
func (TokenVolumeModel) Name() ModelName { return ModelTokenVolume }

// EstimateCall computes time, energy and carbon for one call of the profile.
func (TokenVolumeModel) EstimateCall(p Profile, tokensIn, tokensOut float64, params Params) (CallEstimate, error) {
	if err := validateTokens(tokensIn, tokensOut); err != nil {
		return CallEstimate{}, err
	}

	var energyJ float64
	switch p {
	case ProfileTranslation:
		energyJ = (tokensIn*tokensIn + tokensOut) * TranslationEnergyCoef
	case ProfileCompletion, ProfileChatbot:
		energyJ = tokensIn*tokensIn/CompletionEnergyDivisor + CompletionEnergyBaselineJ
	default:
		return CallEstimate{}, fmt.Errorf("%w: %q", ErrInvalidProfile, string(p))
	}

	power := params.Hardware.InferencePowerWatts()
	if power <= 0 {
		return CallEstimate{}, fmt.Errorf("%w: inference power %g W, cannot derive compute time", ErrDivisionHazard, power)
	}

	energyKWh := JoulesToKWh(energyJ)

	return CallEstimate{
		ComputeTimeSeconds: energyJ / power,
		EnergyJoules:       energyJ,
		EnergyKWh:          energyKWh,
		CO2Grams:           CO2Grams(energyKWh, params.Carbon.IntensityGramsPerKWh),
	}, nil
}
