// Package main provides a tool to update the embedded regional grid carbon
// intensity table from the Our World in Data electricity dataset.
//
// The tool fetches the latest per-country carbon intensity figures and
// regenerates internal/config/data/carbon-intensity.csv.
//
// Usage:
//
//	go run ./tools/update-carbon-intensity [--dry-run] [--validate]
//
// Flags:
//
//	--dry-run   Print the generated CSV without writing to file
//	--validate  Validate the fetched values are within expected range
//	--output    Path to carbon-intensity.csv (default: ./internal/config/data/carbon-intensity.csv)
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// OWID grapher export of grid carbon intensity (g CO2e per kWh).
	owidIntensityURL = "https://ourworldindata.org/grapher/carbon-intensity-electricity.csv"

	// Valid range for grid intensity (g CO2e per kWh). Near-zero grids
	// exist (Iceland, Norway); nothing should exceed 2000.
	minValidIntensity = 0.0
	maxValidIntensity = 2000.0
)

// regionEntities maps our lowercase region identifiers to the OWID entity
// names carrying their figures.
var regionEntities = map[string]string{
	"australia":   "Australia",
	"brazil":      "Brazil",
	"canada":      "Canada",
	"china":       "China",
	"france":      "France",
	"germany":     "Germany",
	"india":       "India",
	"ireland":     "Ireland",
	"italy":       "Italy",
	"japan":       "Japan",
	"netherlands": "Netherlands",
	"norway":      "Norway",
	"poland":      "Poland",
	"singapore":   "Singapore",
	"south-korea": "South Korea",
	"spain":       "Spain",
	"sweden":      "Sweden",
	"switzerland": "Switzerland",
	"uk":          "United Kingdom",
	"usa":         "United States",
	"world":       "World",
}

// regionIntensity is one region's latest figure.
type regionIntensity struct {
	Region    string
	Intensity float64
	Year      int
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Print the generated CSV without writing to file")
	validate := flag.Bool("validate", true, "Validate fetched values are within expected range")
	output := flag.String("output", "./internal/config/data/carbon-intensity.csv", "Path to carbon-intensity.csv")
	flag.Parse()

	fmt.Println("Fetching grid carbon intensity figures...")
	fmt.Printf("Source: %s\n", owidIntensityURL)

	intensities, err := fetchIntensities()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching intensities: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		if err := validateIntensities(intensities); err != nil {
			fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Validation passed")
	}

	content := generateCSV(intensities)

	if *dryRun {
		fmt.Println("\n--- Dry run output ---")
		fmt.Println(content)
		return
	}

	if err := os.WriteFile(*output, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Updated %s with %d regions\n", *output, len(intensities))
	fmt.Println("Run 'go test ./internal/config/...' to verify the changes")
}

// fetchIntensities downloads the OWID dataset and keeps, for every mapped
// region, the most recent year's figure.
func fetchIntensities() ([]regionIntensity, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(owidIntensityURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intensities: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("unexpected header shape: %v", header)
	}

	entityToRegion := make(map[string]string, len(regionEntities))
	for region, entity := range regionEntities {
		entityToRegion[entity] = region
	}

	latest := make(map[string]regionIntensity)
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if len(record) < 4 {
			continue
		}

		region, ok := entityToRegion[strings.TrimSpace(record[0])]
		if !ok {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			continue
		}
		intensity, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			continue
		}

		if current, ok := latest[region]; !ok || year > current.Year {
			latest[region] = regionIntensity{Region: region, Intensity: intensity, Year: year}
		}
	}

	if len(latest) == 0 {
		return nil, fmt.Errorf("no mapped regions found in dataset")
	}

	intensities := make([]regionIntensity, 0, len(latest))
	for _, ri := range latest {
		intensities = append(intensities, ri)
	}
	return intensities, nil
}

// validateIntensities checks that all figures are within the expected range.
func validateIntensities(intensities []regionIntensity) error {
	var problems []string

	for _, ri := range intensities {
		if ri.Intensity < minValidIntensity || ri.Intensity > maxValidIntensity {
			problems = append(problems, fmt.Sprintf(
				"%s: intensity %.2f is outside valid range [%.0f, %.0f]",
				ri.Region, ri.Intensity, minValidIntensity, maxValidIntensity,
			))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// generateCSV renders the embedded table, sorted by region for consistent
// diffs.
func generateCSV(intensities []regionIntensity) string {
	sort.Slice(intensities, func(i, j int) bool {
		return intensities[i].Region < intensities[j].Region
	})

	var out strings.Builder
	out.WriteString("region,intensity_g_per_kwh\n")
	for _, ri := range intensities {
		out.WriteString(fmt.Sprintf("%s,%.0f\n", ri.Region, ri.Intensity))
	}
	return out.String()
}
