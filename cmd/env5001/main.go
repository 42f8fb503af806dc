// The env5001 binary queries the energy estimator from the command line and
// prints JSON results to stdout.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := rootCommand().Run(context.Background(), os.Args); err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
