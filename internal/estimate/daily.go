package estimate

import "fmt"

// DayCounts is one observed data point: the number of calls per profile on
// one date, plus the optional session count carried through unchanged.
type DayCounts struct {
	Date         Date `json:"date"`
	Chatbots     int  `json:"chatbots"`
	Completions  int  `json:"completions"`
	Translations int  `json:"translations"`
	Sessions     int  `json:"sessions"`
}

// Count returns the call count for the given profile.
func (d DayCounts) Count(p Profile) int {
	switch p {
	case ProfileTranslation:
		return d.Translations
	case ProfileCompletion:
		return d.Completions
	case ProfileChatbot:
		return d.Chatbots
	}
	return 0
}

// ProfileMetrics is the computed result for one profile on one day. Per-call
// quantities are multiplied by the day's call count; totals scale linearly
// with it.
type ProfileMetrics struct {
	Count            int     `json:"count"`
	TokensInPerCall  float64 `json:"tokens_in_per_call"`
	TokensOutPerCall float64 `json:"tokens_out_per_call"`
	TokensTotal      float64 `json:"tokens_total"`
	EnergyJPerCall   float64 `json:"energy_j_per_call"`
	EnergyJTotal     float64 `json:"energy_j_total"`
	EnergyKWhTotal   float64 `json:"energy_kwh_total"`
	CO2GramsTotal    float64 `json:"co2_g_total"`
}

// Totals is a cumulative tokens/energy/carbon figure, used both per day and
// over a date range.
type Totals struct {
	Tokens    float64 `json:"tokens_total"`
	EnergyJ   float64 `json:"energy_j_total"`
	EnergyKWh float64 `json:"energy_kwh_total"`
	CO2Grams  float64 `json:"co2_g_total"`
}

func (t *Totals) add(o Totals) {
	t.Tokens += o.Tokens
	t.EnergyJ += o.EnergyJ
	t.EnergyKWh += o.EnergyKWh
	t.CO2Grams += o.CO2Grams
}

// RangeSummary is the cumulative total over a (possibly filtered) day
// sequence.
type RangeSummary = Totals

// DayResult is the aggregated result for one date. All three profiles are
// always present, zero-valued when the day had no calls of that kind.
type DayResult struct {
	Date     Date                       `json:"date"`
	Sessions int                        `json:"sessions"`
	Profiles map[Profile]ProfileMetrics `json:"profiles"`
	Totals   Totals                     `json:"totals"`
}

// profileMetrics estimates one profile's day: resolve the representative
// call, estimate it, scale by the day's count.
func profileMetrics(p Profile, count int, params Params, model EnergyModel) (ProfileMetrics, error) {
	if count < 0 {
		return ProfileMetrics{}, fmt.Errorf("%w: %s count %d is negative", ErrInvalidInput, p, count)
	}

	tokensIn, tokensOut, err := p.Tokens(params.Simulation)
	if err != nil {
		return ProfileMetrics{}, err
	}
	call, err := model.EstimateCall(p, tokensIn, tokensOut, params)
	if err != nil {
		return ProfileMetrics{}, err
	}

	n := float64(count)
	return ProfileMetrics{
		Count:            count,
		TokensInPerCall:  tokensIn,
		TokensOutPerCall: tokensOut,
		TokensTotal:      (tokensIn + tokensOut) * n,
		EnergyJPerCall:   call.EnergyJoules,
		EnergyJTotal:     call.EnergyJoules * n,
		EnergyKWhTotal:   call.EnergyKWh * n,
		CO2GramsTotal:    call.CO2Grams * n,
	}, nil
}

// ComputeDaily produces one DayResult per input day, in the input's
// (ascending) date order. Any estimation error aborts the whole computation
// rather than silently dropping a profile, which would understate totals.
// The computation is a pure function of its arguments: identical inputs
// always yield identical output.
func ComputeDaily(days []DayCounts, params Params, model EnergyModel) ([]DayResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if model == nil {
		model = TokenVolumeModel{}
	}

	results := make([]DayResult, 0, len(days))
	for _, day := range days {
		profiles := make(map[Profile]ProfileMetrics, len(Profiles))
		var totals Totals
		for _, p := range Profiles {
			m, err := profileMetrics(p, day.Count(p), params, model)
			if err != nil {
				return nil, fmt.Errorf("day %s: %w", day.Date, err)
			}
			profiles[p] = m
			totals.add(Totals{
				Tokens:    m.TokensTotal,
				EnergyJ:   m.EnergyJTotal,
				EnergyKWh: m.EnergyKWhTotal,
				CO2Grams:  m.CO2GramsTotal,
			})
		}
		results = append(results, DayResult{
			Date:     day.Date,
			Sessions: day.Sessions,
			Profiles: profiles,
			Totals:   totals,
		})
	}
	return results, nil
}
