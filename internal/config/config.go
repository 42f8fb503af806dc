// Package config loads the estimator's typed configuration: simulation
// assumptions, grid carbon intensity per region, hardware tiers, and the
// serving paths. Every field has a documented default, so a missing config
// file yields a fully usable configuration. Validation happens once here,
// never defensively at the formula sites.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/LaurealDente/env5001/internal/estimate"
)

// DefaultTierName is the hardware tier used when none is requested.
const DefaultTierName = "default"

// PathsConfig locates the external data the estimator reads.
type PathsConfig struct {
	// AnalyticsYAML is the daily usage dataset path.
	AnalyticsYAML string `koanf:"analytics_yaml"`
}

// SimulationConfig mirrors the engine's simulation assumptions.
type SimulationConfig struct {
	TopicSizeChars    int `koanf:"topic_size_chars"`
	PromptSizeChars   int `koanf:"prompt_size_chars"`
	ChatbotAvgTopics  int `koanf:"chatbot_avg_topics"`
	ChatbotAvgPrompts int `koanf:"chatbot_avg_prompts"`
	OutputTokensAvg   int `koanf:"output_tokens_avg"`
}

// CarbonConfig holds the default grid intensity and per-region overrides.
// Region identifiers are plain lowercase strings.
type CarbonConfig struct {
	// IntensityGramsPerKWh applies when no region is requested.
	IntensityGramsPerKWh float64 `koanf:"carbon_intensity_g_per_kwh"`

	// Regions overrides or extends the embedded region intensity table.
	Regions map[string]float64 `koanf:"regions"`
}

// HardwareTier is one named hardware/throughput profile.
type HardwareTier struct {
	GPUPowerWatts float64 `koanf:"power_gpu_watts"`
	CPUPowerWatts float64 `koanf:"power_cpu_watts"`
	CPUTimeShare  float64 `koanf:"cpu_time_share"`
	TokensPerHour float64 `koanf:"tokens_per_hour"`
}

// HardwareConfig holds the named hardware tiers and the tier picked when a
// request names none.
type HardwareConfig struct {
	DefaultTier string                  `koanf:"default_tier"`
	Tiers       map[string]HardwareTier `koanf:"tiers"`
}

// InfraConfig holds the datacenter efficiency context.
type InfraConfig struct {
	PUE             float64 `koanf:"pue"`
	UtilizationRate float64 `koanf:"utilization_rate"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	ListenAddr string `koanf:"listen"`
}

// Config is the full typed configuration.
type Config struct {
	Paths      PathsConfig      `koanf:"paths"`
	Simulation SimulationConfig `koanf:"simulation"`
	Carbon     CarbonConfig     `koanf:"carbon"`
	Hardware   HardwareConfig   `koanf:"hardware"`
	Infra      InfraConfig      `koanf:"infra"`
	Server     ServerConfig     `koanf:"server"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			AnalyticsYAML: "data/daily-analytics.yaml",
		},
		Simulation: SimulationConfig{
			TopicSizeChars:    estimate.DefaultTopicSizeChars,
			PromptSizeChars:   estimate.DefaultPromptSizeChars,
			ChatbotAvgTopics:  estimate.DefaultChatbotAvgTopics,
			ChatbotAvgPrompts: estimate.DefaultChatbotAvgPrompts,
			OutputTokensAvg:   estimate.DefaultOutputTokensAvg,
		},
		Carbon: CarbonConfig{
			IntensityGramsPerKWh: estimate.DefaultCarbonIntensity,
		},
		Hardware: HardwareConfig{
			DefaultTier: DefaultTierName,
			Tiers: map[string]HardwareTier{
				DefaultTierName: {
					GPUPowerWatts: estimate.DefaultGPUPowerWatts,
					CPUPowerWatts: estimate.DefaultCPUPowerWatts,
					CPUTimeShare:  estimate.DefaultCPUTimeShare,
					TokensPerHour: estimate.DefaultTokensPerHour,
				},
			},
		},
		Infra: InfraConfig{
			PUE:             estimate.DefaultPUE,
			UtilizationRate: estimate.DefaultUtilizationRate,
		},
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
	}
}

// Load reads the YAML configuration at path over the defaults. A missing
// file yields the full default configuration; an unreadable or unparsable
// file is fatal.
func Load(path string, logger zerolog.Logger) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("no config file, using defaults")
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: loading config %s: %v", estimate.ErrConfiguration, path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding config %s: %v", estimate.ErrConfiguration, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants once at load time.
func (c *Config) Validate() error {
	if c.Paths.AnalyticsYAML == "" {
		return fmt.Errorf("%w: paths.analytics_yaml is empty", estimate.ErrConfiguration)
	}
	if len(c.Hardware.Tiers) == 0 {
		return fmt.Errorf("%w: hardware.tiers is empty", estimate.ErrConfiguration)
	}
	if _, ok := c.Hardware.Tiers[c.Hardware.DefaultTier]; !ok {
		return fmt.Errorf("%w: hardware.default_tier %q not among tiers", estimate.ErrConfiguration, c.Hardware.DefaultTier)
	}
	for name, intensity := range c.Carbon.Regions {
		if name != strings.ToLower(name) {
			return fmt.Errorf("%w: region %q must be lowercase", estimate.ErrConfiguration, name)
		}
		if intensity < 0 {
			return fmt.Errorf("%w: carbon.regions[%s] %g is negative", estimate.ErrInvalidInput, name, intensity)
		}
	}

	// Exercise the full engine validation for every tier so a bad value
	// is reported here, not mid-computation.
	for name := range c.Hardware.Tiers {
		if _, err := c.EngineParams("", name); err != nil {
			return fmt.Errorf("tier %q: %w", name, err)
		}
	}
	return nil
}

// RegionIntensity resolves the carbon intensity for an explicitly named
// region: YAML overrides win over the embedded table, and an unknown region
// is rejected rather than defaulted.
func (c *Config) RegionIntensity(region string) (float64, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	if intensity, ok := c.Carbon.Regions[region]; ok {
		return intensity, nil
	}
	if intensity, ok := EmbeddedRegionIntensity(region); ok {
		return intensity, nil
	}
	return 0, fmt.Errorf("%w: %q", estimate.ErrUnknownRegion, region)
}

// EngineParams assembles the engine parameter set for one computation.
// An empty region keeps the configured default intensity; an empty tier
// resolves to the configured default tier. Explicitly named identifiers
// must exist.
func (c *Config) EngineParams(region, tier string) (estimate.Params, error) {
	intensity := c.Carbon.IntensityGramsPerKWh
	if region != "" {
		var err error
		intensity, err = c.RegionIntensity(region)
		if err != nil {
			return estimate.Params{}, err
		}
	}

	if tier == "" {
		tier = c.Hardware.DefaultTier
	}
	hw, ok := c.Hardware.Tiers[strings.ToLower(strings.TrimSpace(tier))]
	if !ok {
		return estimate.Params{}, fmt.Errorf("%w: %q", estimate.ErrUnknownTier, tier)
	}

	params := estimate.Params{
		Simulation: estimate.SimulationParams{
			TopicSizeChars:    c.Simulation.TopicSizeChars,
			PromptSizeChars:   c.Simulation.PromptSizeChars,
			ChatbotAvgTopics:  c.Simulation.ChatbotAvgTopics,
			ChatbotAvgPrompts: c.Simulation.ChatbotAvgPrompts,
			OutputTokensAvg:   c.Simulation.OutputTokensAvg,
		},
		Carbon: estimate.CarbonParams{IntensityGramsPerKWh: intensity},
		Hardware: estimate.HardwareParams{
			GPUPowerWatts: hw.GPUPowerWatts,
			CPUPowerWatts: hw.CPUPowerWatts,
			CPUTimeShare:  hw.CPUTimeShare,
			TokensPerHour: hw.TokensPerHour,
		},
		Region: estimate.RegionParams{
			PUE:             c.Infra.PUE,
			UtilizationRate: c.Infra.UtilizationRate,
		},
	}
	if err := params.Validate(); err != nil {
		return estimate.Params{}, err
	}
	return params, nil
}
