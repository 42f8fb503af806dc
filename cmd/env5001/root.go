package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/LaurealDente/env5001/internal/analytics"
	"github.com/LaurealDente/env5001/internal/config"
	"github.com/LaurealDente/env5001/internal/estimate"
)

const (
	configFlag   = "config"
	regionFlag   = "region"
	tierFlag     = "tier"
	modelFlag    = "model"
	logLevelFlag = "log-level"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:            "env5001",
		Usage:           "Estimate compute time, energy and CO2 of generative-AI usage",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configFlag,
				Value: "config.yaml",
				Usage: "Path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:  regionFlag,
				Usage: "Region for the grid carbon intensity (default: configured intensity)",
			},
			&cli.StringFlag{
				Name:  tierFlag,
				Usage: "Hardware tier (default: configured default tier)",
			},
			&cli.StringFlag{
				Name:  modelFlag,
				Value: string(estimate.DefaultModel),
				Usage: "Energy model: token-volume or compute-time",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Value: "warn",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			summaryCommand(),
			dailyCommand(),
			rangeCommand(),
			estimateCommand(),
		},
	}
}

func buildLogger(cmd *cli.Command) zerolog.Logger {
	level, err := zerolog.ParseLevel(cmd.String(logLevelFlag))
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	config.SetLogger(logger)
	return logger
}

// computeDays loads the configuration and dataset, then runs the daily
// aggregation under the command's region/tier/model flags.
func computeDays(cmd *cli.Command) (*config.Config, []estimate.DayResult, error) {
	logger := buildLogger(cmd)

	cfg, err := config.Load(cmd.String(configFlag), logger)
	if err != nil {
		return nil, nil, err
	}
	days, err := analytics.Load(cfg.Paths.AnalyticsYAML, logger)
	if err != nil {
		return nil, nil, err
	}
	params, err := cfg.EngineParams(cmd.String(regionFlag), cmd.String(tierFlag))
	if err != nil {
		return nil, nil, err
	}
	model, err := estimate.ModelFor(estimate.ModelName(cmd.String(modelFlag)))
	if err != nil {
		return nil, nil, err
	}

	results, err := estimate.ComputeDaily(days, params, model)
	if err != nil {
		return nil, nil, err
	}
	return cfg, results, nil
}

// parseSizes converts repeatable character-size flags into ints.
func parseSizes(flag string, raw []string) ([]int, error) {
	sizes := make([]int, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", flag, s, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Cumulative totals over the whole dataset",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, results, err := computeDays(cmd)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"config": map[string]any{
					"topic_size_chars":           cfg.Simulation.TopicSizeChars,
					"prompt_size_chars":          cfg.Simulation.PromptSizeChars,
					"chatbot_avg_topics":         cfg.Simulation.ChatbotAvgTopics,
					"chatbot_avg_prompts":        cfg.Simulation.ChatbotAvgPrompts,
					"output_tokens_avg":          cfg.Simulation.OutputTokensAvg,
					"carbon_intensity_g_per_kwh": cfg.Carbon.IntensityGramsPerKWh,
					"analytics_yaml":             cfg.Paths.AnalyticsYAML,
				},
				"summary": estimate.Summarize(results),
			})
		},
	}
}

func dailyCommand() *cli.Command {
	return &cli.Command{
		Name:      "daily",
		Usage:     "Metrics for one date",
		ArgsUsage: "YYYY-MM-DD",
		Action: func(_ context.Context, cmd *cli.Command) error {
			date, err := estimate.ParseDate(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			_, results, err := computeDays(cmd)
			if err != nil {
				return err
			}
			for _, day := range results {
				if day.Date.Equal(date.Time) {
					return printJSON(day)
				}
			}
			return fmt.Errorf("no data for date %s", date)
		},
	}
}

func rangeCommand() *cli.Command {
	return &cli.Command{
		Name:      "range",
		Usage:     "Filtered days and cumulative totals over an inclusive date window",
		ArgsUsage: "[START] [END]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			var start, end *estimate.Date
			if raw := cmd.Args().Get(0); raw != "" {
				d, err := estimate.ParseDate(raw)
				if err != nil {
					return err
				}
				start = &d
			}
			if raw := cmd.Args().Get(1); raw != "" {
				d, err := estimate.ParseDate(raw)
				if err != nil {
					return err
				}
				end = &d
			}

			_, results, err := computeDays(cmd)
			if err != nil {
				return err
			}
			filtered := estimate.FilterRange(results, start, end)
			return printJSON(map[string]any{
				"range":   map[string]string{"start": cmd.Args().Get(0), "end": cmd.Args().Get(1)},
				"summary": estimate.Summarize(filtered),
				"days":    filtered,
			})
		},
	}
}

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate one request through the compute-time model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "profile",
				Usage:    "Interaction profile: translation, completion or chatbot",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "topic",
				Usage: "Topic size in characters (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "prompt",
				Usage: "Prompt size in characters (repeatable)",
			},
			&cli.StringFlag{
				Name:  "output-tokens",
				Usage: "Expected output size in tokens",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			logger := buildLogger(cmd)

			cfg, err := config.Load(cmd.String(configFlag), logger)
			if err != nil {
				return err
			}
			params, err := cfg.EngineParams(cmd.String(regionFlag), cmd.String(tierFlag))
			if err != nil {
				return err
			}

			topics, err := parseSizes("topic", cmd.StringSlice("topic"))
			if err != nil {
				return err
			}
			prompts, err := parseSizes("prompt", cmd.StringSlice("prompt"))
			if err != nil {
				return err
			}
			var outputTokens float64
			if raw := cmd.String("output-tokens"); raw != "" {
				outputTokens, err = strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("invalid --output-tokens %q: %w", raw, err)
				}
			}

			call, err := estimate.EstimateRequest(
				cmd.String("profile"),
				params,
				topics,
				prompts,
				outputTokens,
			)
			if err != nil {
				return err
			}
			return printJSON(call)
		},
	}
}
