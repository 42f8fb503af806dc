package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, 2000, p.Simulation.TopicSizeChars)
	assert.Equal(t, 400, p.Simulation.PromptSizeChars)
	assert.Equal(t, 10, p.Simulation.ChatbotAvgTopics)
	assert.Equal(t, 2, p.Simulation.ChatbotAvgPrompts)
	assert.Equal(t, 300, p.Simulation.OutputTokensAvg)
	assert.Equal(t, 250.0, p.Carbon.IntensityGramsPerKWh)
	assert.Equal(t, 700.0, p.Hardware.GPUPowerWatts)
	assert.Equal(t, 70.0, p.Hardware.CPUPowerWatts)
	assert.Equal(t, 0.15, p.Hardware.CPUTimeShare)
	assert.Equal(t, 216_000.0, p.Hardware.TokensPerHour)
	assert.Equal(t, 1.3, p.Region.PUE)
	assert.Equal(t, 1.0, p.Region.UtilizationRate)

	require.NoError(t, p.Validate())
}

func TestHardwareParams_Shares(t *testing.T) {
	h := HardwareParams{GPUPowerWatts: 700, CPUPowerWatts: 70, CPUTimeShare: 0.15}

	assert.InDelta(t, 0.85, h.GPUTimeShare(), 1e-12)
	assert.InDelta(t, 605.5, h.InferencePowerWatts(), 1e-9)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"negative topic size", func(p *Params) { p.Simulation.TopicSizeChars = -1 }, ErrInvalidInput},
		{"negative prompt size", func(p *Params) { p.Simulation.PromptSizeChars = -1 }, ErrInvalidInput},
		{"negative avg topics", func(p *Params) { p.Simulation.ChatbotAvgTopics = -1 }, ErrInvalidInput},
		{"negative avg prompts", func(p *Params) { p.Simulation.ChatbotAvgPrompts = -1 }, ErrInvalidInput},
		{"negative output tokens", func(p *Params) { p.Simulation.OutputTokensAvg = -1 }, ErrInvalidInput},
		{"negative intensity", func(p *Params) { p.Carbon.IntensityGramsPerKWh = -1 }, ErrInvalidInput},
		{"negative gpu power", func(p *Params) { p.Hardware.GPUPowerWatts = -1 }, ErrInvalidInput},
		{"negative cpu power", func(p *Params) { p.Hardware.CPUPowerWatts = -1 }, ErrInvalidInput},
		{"cpu share above one", func(p *Params) { p.Hardware.CPUTimeShare = 1.1 }, ErrInvalidInput},
		{"cpu share negative", func(p *Params) { p.Hardware.CPUTimeShare = -0.1 }, ErrInvalidInput},
		{"zero throughput", func(p *Params) { p.Hardware.TokensPerHour = 0 }, ErrDivisionHazard},
		{"negative throughput", func(p *Params) { p.Hardware.TokensPerHour = -60 }, ErrDivisionHazard},
		{"pue below one", func(p *Params) { p.Region.PUE = 0.9 }, ErrInvalidInput},
		{"negative utilization", func(p *Params) { p.Region.UtilizationRate = -1 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.wantErr)
		})
	}
}

func TestJoulesToKWh(t *testing.T) {
	assert.Equal(t, 1.0, JoulesToKWh(3_600_000))
	assert.Equal(t, 0.15, JoulesToKWh(540_000))
	assert.Equal(t, 0.0, JoulesToKWh(0))
}

func TestCO2Grams(t *testing.T) {
	assert.Equal(t, 15.0, CO2Grams(0.15, 100))
	assert.Equal(t, 0.0, CO2Grams(0, 250))
	assert.Equal(t, 0.0, CO2Grams(1.5, 0))
}
