package estimate

import "fmt"

// Request accumulates the raw input contributions of one inference request
// as an ordered sequence of token counts, plus a separate output-size scalar.
// Contributions are recorded in tokens; AddTopic and AddPrompt convert from
// characters at the shared 4 chars/token rule.
type Request struct {
	inputs       []float64
	outputTokens float64
}

// AddTopic appends one topic of the given size in characters.
func (r *Request) AddTopic(chars int) {
	r.inputs = append(r.inputs, CharsToTokens(chars))
}

// AddPrompt appends one prompt of the given size in characters.
func (r *Request) AddPrompt(chars int) {
	r.inputs = append(r.inputs, CharsToTokens(chars))
}

// AddInputTokens appends a raw input contribution already in tokens.
func (r *Request) AddInputTokens(tokens float64) {
	r.inputs = append(r.inputs, tokens)
}

// SetOutputTokens records the expected output size in tokens.
func (r *Request) SetOutputTokens(tokens float64) {
	r.outputTokens = tokens
}

// InputSize returns the total accumulated input size in tokens.
func (r *Request) InputSize() float64 {
	var total float64
	for _, in := range r.inputs {
		total += in
	}
	return total
}

// OutputSize returns the recorded output size in tokens.
func (r *Request) OutputSize() float64 {
	return r.outputTokens
}

// validate rejects negative contributions before any formula runs.
func (r *Request) validate() error {
	for _, in := range r.inputs {
		if in < 0 {
			return fmt.Errorf("%w: input contribution %g is negative", ErrInvalidInput, in)
		}
	}
	if r.outputTokens < 0 {
		return fmt.Errorf("%w: output size %g is negative", ErrInvalidInput, r.outputTokens)
	}
	return nil
}

// ComputeTimeModel is the compute-time-then-power formula set. Time first:
//
//	T = inputSize² / (tokensPerHour/3600) + outputSize / (tokensPerHour/3600)
//
// The quadratic exponent applies to the full input size. This is a declared
// methodological simplification of the merged sizing methodology and is
// carried forward as-is; downstream figures depend on it.
//
// Then energy from the hardware power draw over that time, scaled by the
// infrastructure multiplier:
//
//	E_inference = P_gpu×η_gpu×T + P_cpu×η_cpu×T
//	E_total     = E_inference × PUE × utilization
type ComputeTimeModel struct{}

// Name returns ModelComputeTime.
func (ComputeTimeModel) Name() ModelName { return ModelComputeTime }

// EstimateCall computes time, energy and carbon for a call whose input and
// output sizes are already known in tokens.
func (m ComputeTimeModel) EstimateCall(_ Profile, tokensIn, tokensOut float64, params Params) (CallEstimate, error) {
	if err := validateTokens(tokensIn, tokensOut); err != nil {
		return CallEstimate{}, err
	}
	req := &Request{}
	req.AddInputTokens(tokensIn)
	req.SetOutputTokens(tokensOut)
	return m.EstimateRequest(req, params)
}

// ComputeTimeSeconds returns the estimated compute time of the request under
// the declared throughput.
func (ComputeTimeModel) ComputeTimeSeconds(req *Request, params Params) (float64, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}
	if params.Hardware.TokensPerHour <= 0 {
		return 0, fmt.Errorf("%w: tokens_per_hour %g must be positive", ErrDivisionHazard, params.Hardware.TokensPerHour)
	}

	tokensPerSecond := params.Hardware.TokensPerHour / SecondsPerHour
	inputSize := req.InputSize()
	return inputSize*inputSize/tokensPerSecond + req.OutputSize()/tokensPerSecond, nil
}

// EstimateRequest runs the full request path: time, inference energy,
// infrastructure multiplier, carbon.
func (m ComputeTimeModel) EstimateRequest(req *Request, params Params) (CallEstimate, error) {
	seconds, err := m.ComputeTimeSeconds(req, params)
	if err != nil {
		return CallEstimate{}, err
	}

	hw := params.Hardware
	inferenceJ := hw.GPUPowerWatts*hw.GPUTimeShare()*seconds + hw.CPUPowerWatts*hw.CPUTimeShare*seconds
	totalJ := inferenceJ * params.Region.Multiplier()
	totalKWh := JoulesToKWh(totalJ)

	return CallEstimate{
		ComputeTimeSeconds: seconds,
		EnergyJoules:       totalJ,
		EnergyKWh:          totalKWh,
		CO2Grams:           CO2Grams(totalKWh, params.Carbon.IntensityGramsPerKWh),
	}, nil
}

// EstimateRequest is the single-request entry point. A request built from
// the caller's own topic/prompt sizes runs through the compute-time model;
// when no sizes are given the profile's representative call is used instead.
// The profile must be known even when sizes are explicit, so a typo never
// silently estimates the wrong interaction kind.
func EstimateRequest(profile string, params Params, topics, prompts []int, outputTokens float64) (CallEstimate, error) {
	p, err := ParseProfile(profile)
	if err != nil {
		return CallEstimate{}, err
	}
	if err := params.Validate(); err != nil {
		return CallEstimate{}, err
	}
	if outputTokens < 0 {
		return CallEstimate{}, fmt.Errorf("%w: output_tokens %g is negative", ErrInvalidInput, outputTokens)
	}

	req := &Request{}
	if len(topics) == 0 && len(prompts) == 0 {
		tokensIn, tokensOut, err := p.Tokens(params.Simulation)
		if err != nil {
			return CallEstimate{}, err
		}
		req.AddInputTokens(tokensIn)
		if outputTokens == 0 {
			outputTokens = tokensOut
		}
	} else {
		for _, chars := range topics {
			if chars < 0 {
				return CallEstimate{}, fmt.Errorf("%w: topic size %d is negative", ErrInvalidInput, chars)
			}
			req.AddTopic(chars)
		}
		for _, chars := range prompts {
			if chars < 0 {
				return CallEstimate{}, fmt.Errorf("%w: prompt size %d is negative", ErrInvalidInput, chars)
			}
			req.AddPrompt(chars)
		}
	}
	req.SetOutputTokens(outputTokens)

	return ComputeTimeModel{}.EstimateRequest(req, params)
}
