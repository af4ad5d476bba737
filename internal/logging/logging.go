package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the CLI logger. Unknown level strings fall back to info.
func New(level string) *zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	return &logger
}
