package main

import (
	"fmt"
	"strconv"

	rdiff "github.com/Redundancy/go-rdiff"
	"github.com/Redundancy/go-rdiff/config"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	configKey = "config"
	loggerKey = "logger"
)

// the configuration loaded by setup, with the chunk-size flag of the command applied
func configFrom(c *cli.Context) *config.Config {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		cfg = config.Default()
	}

	if c.IsSet("chunk-size") {
		copied := *cfg
		copied.ChunkSize = c.Int("chunk-size")
		cfg = &copied
	}

	return cfg
}

func loggerFrom(c *cli.Context) zerolog.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

func differFrom(c *cli.Context) *rdiff.Differ {
	return rdiff.NewDiffer(configFrom(c), loggerFrom(c))
}

func checkArgs(c *cli.Context, usage string, min, max int) error {
	if l := c.Args().Len(); l < min || l > max {
		return cli.Exit(
			fmt.Sprintf("Usage is \"%v\" (invalid number of arguments)", usage),
			1,
		)
	}
	return nil
}

func parseChunkSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &config.ConfigError{Field: "chunk_size", Err: err}
	}
	return n, nil
}

// errors from the library are reported on stderr and exit with 1
func exitOnError(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(err, 1)
}

var chunkSizeFlag = &cli.IntFlag{
	Name:    "chunk-size",
	Aliases: []string{"b"},
	Usage:   "The chunk size to split the original into (default from the configuration)",
	EnvVars: []string{"RDIFF_CHUNK_SIZE"},
}
