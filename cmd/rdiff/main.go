/*
rdiff is a command-line implementation of the rdiff package functionality: comparing files,
writing signatures and deltas, and applying deltas.
*/
package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/Redundancy/go-rdiff/config"
	"github.com/Redundancy/go-rdiff/logging"
	"github.com/urfave/cli/v2"
)

var app *cli.App = &cli.App{
	Name:  "rdiff",
	Usage: "Compare files, build signatures and deltas, patch files",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML configuration file",
			EnvVars: []string{"RDIFF_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "trace, debug, info, warn, error or disabled",
			EnvVars: []string{"RDIFF_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "console or json",
			EnvVars: []string{"RDIFF_LOG_FORMAT"},
		},
		&cli.BoolFlag{
			Name:  "profile",
			Usage: "enable HTTP profiling",
		},
		&cli.IntFlag{
			Name:  "profilePort",
			Value: 6060,
			Usage: "The port to serve profiling on",
		},
	},
	Before: setup,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loads the configuration and the logger for the commands
func setup(c *cli.Context) error {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return cli.Exit(err, 1)
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, c.App.ErrWriter)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if c.Bool("profile") {
		port := fmt.Sprint(c.Int("profilePort"))

		go func() {
			logger.Info().Str("port", port).Msg("serving profiles")
			logger.Err(http.ListenAndServe("localhost:"+port, nil)).Msg("profiling stopped")
		}()
	}

	c.App.Metadata = map[string]interface{}{
		configKey: cfg,
		loggerKey: logger,
	}

	return nil
}
