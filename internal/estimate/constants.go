// Package estimate implements the energy and carbon estimation engine for
// generative-AI usage. It converts declared usage profiles (translation,
// completion, chatbot) and daily call counts into compute time, energy and
// CO2e figures using the fitted formulas of the merged sizing methodology.
//
// Everything here is a pure function of its inputs: parameters are passed by
// value, nothing is cached between calls, and identical inputs always produce
// identical output.
package estimate

const (
	// CharsPerToken is the fixed chars-to-tokens conversion ratio
	// (1 token ~= 4 characters).
	CharsPerToken = 4.0

	// TranslationEnergyCoef scales the translation fit
	// (tokensIn^2 + tokensOut) into joules. Empirically fitted.
	TranslationEnergyCoef = 10.7645

	// CompletionEnergyDivisor and CompletionEnergyBaselineJ parametrize the
	// completion fit E = tokensIn^2/divisor + baseline (joules). The baseline
	// absorbs an average output contribution of ~300 tokens. Chatbot calls
	// share this fit.
	CompletionEnergyDivisor   = 60.0
	CompletionEnergyBaselineJ = 3650.5625

	// JoulesPerKWh is the sole unit conversion used throughout:
	// 1 kWh = 3,600,000 J.
	JoulesPerKWh = 3_600_000.0

	// SecondsPerHour converts the declared tokens-per-hour model throughput
	// into tokens per second.
	SecondsPerHour = 3600.0
)

// Documented defaults for every tunable parameter. Configuration falls back
// to these values for any key it does not carry.
const (
	DefaultTopicSizeChars    = 2000
	DefaultPromptSizeChars   = 400
	DefaultChatbotAvgTopics  = 10
	DefaultChatbotAvgPrompts = 2
	DefaultOutputTokensAvg   = 300

	// DefaultCarbonIntensity is the grid emission factor in g CO2e per kWh
	// used when no region is requested.
	DefaultCarbonIntensity = 250.0

	// DefaultGPUPowerWatts and DefaultCPUPowerWatts are the board power draws
	// of the reference inference server.
	DefaultGPUPowerWatts = 700.0
	DefaultCPUPowerWatts = 70.0

	// DefaultCPUTimeShare is the fraction of inference compute time attributed
	// to the CPU; the GPU share is the complement.
	DefaultCPUTimeShare = 0.15

	// DefaultTokensPerHour is the declared model throughput (60 tokens/s).
	DefaultTokensPerHour = 216_000.0

	// DefaultPUE is the datacenter Power Usage Effectiveness.
	DefaultPUE = 1.3

	// DefaultUtilizationRate is the infrastructure utilization multiplier
	// applied together with PUE.
	DefaultUtilizationRate = 1.0
)
