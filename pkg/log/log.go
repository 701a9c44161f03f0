// Package log provides the Zerolog-based console logger shared by the CLI,
// the vault and the HTTP service.
package log

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var pkgLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// SetLevel adjusts the global minimum level. Unknown names leave the level
// untouched.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		Warn().Str("level", level).Msg("unknown log level, keeping current")
		return
	}
	pkgLogger = pkgLogger.Level(lvl)
}

// Quiet silences all output; used by CLI commands whose stdout is the
// payload itself.
func Quiet() {
	pkgLogger = zerolog.Nop()
}

func Debug() *zerolog.Event { return pkgLogger.Debug() }
func Info() *zerolog.Event  { return pkgLogger.Info() }
func Warn() *zerolog.Event  { return pkgLogger.Warn() }
func Error() *zerolog.Event { return pkgLogger.Error() }
func Fatal() *zerolog.Event { return pkgLogger.Fatal() }

// Printf sends an info-level event. Arguments are handled in the manner of
// fmt.Printf.
func Printf(format string, v ...interface{}) {
	pkgLogger.Info().CallerSkipFrame(1).Msgf(format, v...)
}

// Print sends an info-level event. Arguments are handled in the manner of
// fmt.Print.
func Print(v ...interface{}) {
	pkgLogger.Info().CallerSkipFrame(1).Msg(fmt.Sprint(v...))
}

func Fatalf(format string, v ...any) {
	pkgLogger.Fatal().Msgf(format, v...)
}
