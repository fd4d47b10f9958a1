package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// viper keys the root command binds its persistent flags to.
const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a plain console logger for output emitted before
// flags and config are parsed.
func InitDefault() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
}

// Init configures the global logger from the bound viper keys.
// A nil writer means stderr.
func Init(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(LevelKey)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if viper.GetString(FormatKey) != "json" {
		out = zerolog.ConsoleWriter{
			Out:     w,
			NoColor: viper.GetBool(NoColorKey),
		}
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}
