package estimate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeFixture(t *testing.T) []DayResult {
	t.Helper()

	days := []DayCounts{
		{Date: NewDate(2025, time.January, 6), Translations: 1},
		{Date: NewDate(2025, time.January, 7), Completions: 2},
		{Date: NewDate(2025, time.January, 8), Chatbots: 3},
		{Date: NewDate(2025, time.January, 9), Translations: 4},
	}
	results, err := ComputeDaily(days, DefaultParams(), TokenVolumeModel{})
	require.NoError(t, err)
	return results
}

func TestFilterRange_InclusiveBounds(t *testing.T) {
	days := rangeFixture(t)
	start := NewDate(2025, time.January, 7)
	end := NewDate(2025, time.January, 8)

	got := FilterRange(days, &start, &end)

	require.Len(t, got, 2)
	assert.Equal(t, "2025-01-07", got[0].Date.String())
	assert.Equal(t, "2025-01-08", got[1].Date.String())
}

func TestFilterRange_OpenBounds(t *testing.T) {
	days := rangeFixture(t)

	t.Run("no start", func(t *testing.T) {
		end := NewDate(2025, time.January, 7)
		got := FilterRange(days, nil, &end)
		require.Len(t, got, 2)
		assert.Equal(t, "2025-01-06", got[0].Date.String())
	})

	t.Run("no end", func(t *testing.T) {
		start := NewDate(2025, time.January, 8)
		got := FilterRange(days, &start, nil)
		require.Len(t, got, 2)
		assert.Equal(t, "2025-01-09", got[1].Date.String())
	})

	t.Run("unbounded is identity under Summarize", func(t *testing.T) {
		got := FilterRange(days, nil, nil)
		assert.Equal(t, Summarize(days), Summarize(got))
		assert.Equal(t, len(days), len(got))
	})
}

func TestFilterRange_DoesNotMutateInput(t *testing.T) {
	days := rangeFixture(t)
	before := make([]DayResult, len(days))
	copy(before, days)

	start := NewDate(2025, time.January, 8)
	_ = FilterRange(days, &start, nil)

	assert.Equal(t, before, days)
}

func TestFilterRange_EmptyWindow(t *testing.T) {
	days := rangeFixture(t)
	start := NewDate(2026, time.June, 1)

	got := FilterRange(days, &start, nil)

	assert.Empty(t, got)
	assert.Equal(t, RangeSummary{}, Summarize(got))
}

func TestSummarize_AddsDayTotals(t *testing.T) {
	days := rangeFixture(t)

	var want Totals
	for _, d := range days {
		want.Tokens += d.Totals.Tokens
		want.EnergyJ += d.Totals.EnergyJ
		want.EnergyKWh += d.Totals.EnergyKWh
		want.CO2Grams += d.Totals.CO2Grams
	}

	assert.Equal(t, want, Summarize(days))
}
