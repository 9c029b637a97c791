// Command bowling runs the scoring HTTP server and a few offline helpers
// (score a line of marks, simulate a bowler, import a scoresheet).
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/xtding233/bowling-backend/internal/config"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	// .env is read before flags so BOWLING_ENV and friends can live there.
	dotenv := os.Getenv("BOWLING_DOTENV")
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := config.LoadDotEnv(dotenv); err != nil {
		log.Warn().Err(err).Str("file", dotenv).Msg("could not read .env")
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("bowling")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "bowling",
		Usage: "ten-pin frame scoring engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config",
				Usage:   "directory holding default.yaml and <env>.yaml",
				EnvVars: []string{"BOWLING_CONFIG_DIR"},
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "config layer to merge over default.yaml (e.g. dev)",
				EnvVars: []string{"BOWLING_ENV"},
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:      "score",
				Usage:     "score a line of marks and print the frame table",
				ArgsUsage: `"X 7/ 9- ..."`,
				Action:    scoreLine,
			},
			{
				Name:  "simulate",
				Usage: "Monte Carlo final-score distribution for a bowler profile",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "trials", Usage: "games to bowl"},
					&cli.Uint64Flag{Name: "seed", Usage: "seed for reproducible runs"},
					&cli.Float64Flag{Name: "strike", Usage: "probability of a strike on a full rack"},
					&cli.Float64Flag{Name: "spare", Usage: "probability of converting a spare"},
				},
				Action: simulate,
			},
			{
				Name:      "sheet",
				Usage:     "import a CSV or XLSX scoresheet and print every entry",
				ArgsUsage: "<file>",
				Action:    importSheet,
			},
		},
	}
}

// loadSettings reads the layered config named by the global flags and
// applies its log level.
func loadSettings(c *cli.Context) (*config.Loader, config.Settings, error) {
	loader := config.NewLoader(c.String("config"))
	settings, err := loader.Load(c.String("env"), os.Getenv)
	if err != nil {
		return nil, config.Settings{}, err
	}
	zerolog.SetGlobalLevel(settings.LogLevel)
	return loader, settings, nil
}
