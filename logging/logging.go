/*
Package logging builds the zerolog.Logger used by the rdiff tool.
Library packages take a zerolog.Logger and default to zerolog.Nop.
*/
package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at level, as human readable console output or as json lines
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "log level %q", level)
	}

	switch format {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
		}
	default:
		return zerolog.Nop(), errors.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
