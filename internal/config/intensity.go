package config

import (
	_ "embed"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// CSV column indices for the region intensity table.
const (
	colRegion    = 0 // region
	colIntensity = 1 // intensity_g_per_kwh
)

//go:embed data/carbon-intensity.csv
var regionIntensityCSV string

var (
	regionIntensities    map[string]float64
	regionIntensityOnce  sync.Once
	regionIntensityLog   = zerolog.Nop()
	regionIntensityLogMu sync.Mutex
)

// SetLogger injects the logger used to report malformed rows while parsing
// the embedded region table. Call before the first lookup.
func SetLogger(logger zerolog.Logger) {
	regionIntensityLogMu.Lock()
	regionIntensityLog = logger
	regionIntensityLogMu.Unlock()
}

// parseRegionIntensities initializes the package-level region table by
// parsing the embedded CSV of grid carbon intensities.
func parseRegionIntensities() {
	regionIntensityLogMu.Lock()
	logger := regionIntensityLog
	regionIntensityLogMu.Unlock()

	regionIntensities = make(map[string]float64)

	reader := csv.NewReader(strings.NewReader(regionIntensityCSV))

	// Skip header row
	if _, err := reader.Read(); err != nil {
		logger.Error().Err(err).Msg("failed to read region intensity CSV header")
		return
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Msg("skipping malformed region intensity CSV row")
			continue
		}

		if len(record) <= colIntensity {
			continue
		}

		region := strings.ToLower(strings.TrimSpace(record[colRegion]))
		if region == "" {
			continue
		}

		intensity, err := strconv.ParseFloat(strings.TrimSpace(record[colIntensity]), 64)
		if err != nil || intensity < 0 {
			logger.Warn().Str("region", region).Msg("skipping region with invalid intensity")
			continue
		}

		regionIntensities[region] = intensity
	}
}

// EmbeddedRegionIntensity retrieves the grid carbon intensity in g CO2e/kWh
// for the given region from the embedded table. Returns the intensity and
// true if found, or 0 and false otherwise.
func EmbeddedRegionIntensity(region string) (float64, bool) {
	regionIntensityOnce.Do(parseRegionIntensities)
	intensity, ok := regionIntensities[region]
	return intensity, ok
}

// EmbeddedRegionCount reports the number of regions in the embedded table.
func EmbeddedRegionCount() int {
	regionIntensityOnce.Do(parseRegionIntensities)
	return len(regionIntensities)
}
