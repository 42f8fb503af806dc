package estimate

import "fmt"

// SimulationParams holds the assumptions converting real-world content sizes
// into token counts for one representative call of each profile.
type SimulationParams struct {
	// TopicSizeChars is the size of one topic (documentation page) in characters.
	TopicSizeChars int `json:"topic_size_chars"`

	// PromptSizeChars is the size of one user prompt in characters.
	PromptSizeChars int `json:"prompt_size_chars"`

	// ChatbotAvgTopics is the average number of topics pulled into a
	// chatbot session's context.
	ChatbotAvgTopics int `json:"chatbot_avg_topics"`

	// ChatbotAvgPrompts is the average number of prompts (turns) per
	// chatbot session.
	ChatbotAvgPrompts int `json:"chatbot_avg_prompts"`

	// OutputTokensAvg is the average completion/chatbot output in tokens.
	OutputTokensAvg int `json:"output_tokens_avg"`
}

// CarbonParams holds the regional grid emission factor.
type CarbonParams struct {
	// IntensityGramsPerKWh is the grid carbon intensity in g CO2e per kWh.
	IntensityGramsPerKWh float64 `json:"carbon_intensity_g_per_kwh"`
}

// HardwareParams holds the physical compute parameters of the inference
// server and the declared model throughput.
type HardwareParams struct {
	// GPUPowerWatts is the GPU board power draw.
	GPUPowerWatts float64 `json:"power_gpu_watts"`

	// CPUPowerWatts is the CPU package power draw.
	CPUPowerWatts float64 `json:"power_cpu_watts"`

	// CPUTimeShare is the fraction of inference compute time attributed to
	// the CPU; the GPU share is the complement.
	CPUTimeShare float64 `json:"cpu_time_share"`

	// TokensPerHour is the declared model throughput.
	TokensPerHour float64 `json:"tokens_per_hour"`
}

// GPUTimeShare returns the fraction of compute time attributed to the GPU.
func (h HardwareParams) GPUTimeShare() float64 {
	return 1.0 - h.CPUTimeShare
}

// InferencePowerWatts is the utilization-weighted power draw of the server:
// GPU power over its time share plus CPU power over its time share.
func (h HardwareParams) InferencePowerWatts() float64 {
	return h.GPUPowerWatts*h.GPUTimeShare() + h.CPUPowerWatts*h.CPUTimeShare
}

// RegionParams holds the datacenter efficiency context.
type RegionParams struct {
	// PUE is the Power Usage Effectiveness of the datacenter (>= 1).
	PUE float64 `json:"pue"`

	// UtilizationRate is the infrastructure utilization multiplier applied
	// together with PUE.
	UtilizationRate float64 `json:"utilization_rate"`
}

// Multiplier is the infrastructure overhead applied to inference energy.
func (r RegionParams) Multiplier() float64 {
	return r.PUE * r.UtilizationRate
}

// Params is the full parameter set for one computation. Loaded once per
// request by the calling layer and passed by value; the engine never mutates
// or caches it.
type Params struct {
	Simulation SimulationParams `json:"simulation"`
	Carbon     CarbonParams     `json:"carbon"`
	Hardware   HardwareParams   `json:"hardware"`
	Region     RegionParams     `json:"region"`
}

// DefaultParams returns the documented default parameter set.
func DefaultParams() Params {
	return Params{
		Simulation: SimulationParams{
			TopicSizeChars:    DefaultTopicSizeChars,
			PromptSizeChars:   DefaultPromptSizeChars,
			ChatbotAvgTopics:  DefaultChatbotAvgTopics,
			ChatbotAvgPrompts: DefaultChatbotAvgPrompts,
			OutputTokensAvg:   DefaultOutputTokensAvg,
		},
		Carbon: CarbonParams{
			IntensityGramsPerKWh: DefaultCarbonIntensity,
		},
		Hardware: HardwareParams{
			GPUPowerWatts: DefaultGPUPowerWatts,
			CPUPowerWatts: DefaultCPUPowerWatts,
			CPUTimeShare:  DefaultCPUTimeShare,
			TokensPerHour: DefaultTokensPerHour,
		},
		Region: RegionParams{
			PUE:             DefaultPUE,
			UtilizationRate: DefaultUtilizationRate,
		},
	}
}

// Validate checks every parameter invariant once so the formulas never have
// to re-validate. Division hazards (zero throughput) are rejected here,
// before any formula can divide by them.
func (p Params) Validate() error {
	if p.Simulation.TopicSizeChars < 0 {
		return fmt.Errorf("%w: topic_size_chars %d is negative", ErrInvalidInput, p.Simulation.TopicSizeChars)
	}
	if p.Simulation.PromptSizeChars < 0 {
		return fmt.Errorf("%w: prompt_size_chars %d is negative", ErrInvalidInput, p.Simulation.PromptSizeChars)
	}
	if p.Simulation.ChatbotAvgTopics < 0 {
		return fmt.Errorf("%w: chatbot_avg_topics %d is negative", ErrInvalidInput, p.Simulation.ChatbotAvgTopics)
	}
	if p.Simulation.ChatbotAvgPrompts < 0 {
		return fmt.Errorf("%w: chatbot_avg_prompts %d is negative", ErrInvalidInput, p.Simulation.ChatbotAvgPrompts)
	}
	if p.Simulation.OutputTokensAvg < 0 {
		return fmt.Errorf("%w: output_tokens_avg %d is negative", ErrInvalidInput, p.Simulation.OutputTokensAvg)
	}
	if p.Carbon.IntensityGramsPerKWh < 0 {
		return fmt.Errorf("%w: carbon_intensity_g_per_kwh %g is negative", ErrInvalidInput, p.Carbon.IntensityGramsPerKWh)
	}
	if p.Hardware.GPUPowerWatts < 0 {
		return fmt.Errorf("%w: power_gpu_watts %g is negative", ErrInvalidInput, p.Hardware.GPUPowerWatts)
	}
	if p.Hardware.CPUPowerWatts < 0 {
		return fmt.Errorf("%w: power_cpu_watts %g is negative", ErrInvalidInput, p.Hardware.CPUPowerWatts)
	}
	if p.Hardware.CPUTimeShare < 0 || p.Hardware.CPUTimeShare > 1 {
		return fmt.Errorf("%w: cpu_time_share %g outside [0, 1]", ErrInvalidInput, p.Hardware.CPUTimeShare)
	}
	if p.Hardware.TokensPerHour <= 0 {
		return fmt.Errorf("%w: tokens_per_hour %g must be positive", ErrDivisionHazard, p.Hardware.TokensPerHour)
	}
	if p.Region.PUE < 1 {
		return fmt.Errorf("%w: pue %g must be >= 1", ErrInvalidInput, p.Region.PUE)
	}
	if p.Region.UtilizationRate < 0 {
		return fmt.Errorf("%w: utilization_rate %g is negative", ErrInvalidInput, p.Region.UtilizationRate)
	}
	return nil
}
