// Package analytics reads the daily usage dataset: dated call counts per
// interaction profile, plus optional session counts. The YAML shape is the
// portal's export format, so parsing is deliberately defensive: entries that
// are not shaped like a count list are skipped with a warning rather than
// failing the whole load.
package analytics

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/LaurealDente/env5001/internal/estimate"
)

// Profile keys recognized in the genai section. Anything else is ignored.
const (
	keyChatbots     = "chatbots"
	keyCompletions  = "completions"
	keyTranslations = "translations"
	keySessions     = "sessions"
)

// Load reads and parses the analytics dataset at path.
func Load(path string, logger zerolog.Logger) ([]estimate.DayCounts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading analytics %s: %v", estimate.ErrConfiguration, path, err)
	}
	return Parse(raw, logger)
}

// Parse decodes the dataset and returns one DayCounts per date present, in
// ascending date order, every profile zero-filled when absent. Duplicate
// dates within a profile accumulate.
func Parse(raw []byte, logger zerolog.Logger) ([]estimate.DayCounts, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: analytics is not a mapping: %v", estimate.ErrConfiguration, err)
	}

	byDate := make(map[estimate.Date]*estimate.DayCounts)

	genai, err := section(doc, "genai")
	if err != nil {
		return nil, err
	}
	for key, value := range genai {
		switch key {
		case keyChatbots, keyCompletions, keyTranslations:
			if err := ingest(byDate, key, value, logger); err != nil {
				return nil, err
			}
		default:
			// Metadata (description and the like) and unknown profile
			// keys are not count lists.
			logger.Debug().Str("key", key).Msg("ignoring non-profile genai entry")
		}
	}

	session, err := section(doc, "session")
	if err != nil {
		return nil, err
	}
	if sessions, ok := session[keySessions]; ok {
		if err := ingest(byDate, keySessions, sessions, logger); err != nil {
			return nil, err
		}
	}

	days := make([]estimate.DayCounts, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date.Time) })
	return days, nil
}

// section returns the named top-level mapping, empty when absent. A present
// but non-mapping section is malformed configuration.
func section(doc map[string]any, name string) (map[string]any, error) {
	value, ok := doc[name]
	if !ok || value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: analytics section %q is not a mapping", estimate.ErrConfiguration, name)
	}
	return m, nil
}

// ingest accumulates one profile's count list into byDate. Non-list values
// and non-mapping items are skipped with a warning; a malformed date or a
// negative count inside a well-formed item is fatal.
func ingest(byDate map[estimate.Date]*estimate.DayCounts, key string, value any, logger zerolog.Logger) error {
	items, ok := value.([]any)
	if !ok {
		logger.Warn().Str("profile", key).Msg("skipping non-list analytics entry")
		return nil
	}

	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			logger.Warn().Str("profile", key).Msg("skipping malformed analytics item")
			continue
		}

		dateRaw, ok := entry["date"].(string)
		if !ok {
			return fmt.Errorf("%w: analytics item for %q has no date", estimate.ErrInvalidInput, key)
		}
		date, err := estimate.ParseDate(dateRaw)
		if err != nil {
			return err
		}

		count := 0
		if v, ok := entry["count"]; ok {
			count, ok = v.(int)
			if !ok {
				logger.Warn().Str("profile", key).Str("date", dateRaw).Msg("skipping analytics item with non-integer count")
				continue
			}
		}
		if count < 0 {
			return fmt.Errorf("%w: %s count %d on %s is negative", estimate.ErrInvalidInput, key, count, dateRaw)
		}

		day, ok := byDate[date]
		if !ok {
			day = &estimate.DayCounts{Date: date}
			byDate[date] = day
		}
		switch key {
		case keyChatbots:
			day.Chatbots += count
		case keyCompletions:
			day.Completions += count
		case keyTranslations:
			day.Translations += count
		case keySessions:
			day.Sessions += count
		}
	}
	return nil
}
