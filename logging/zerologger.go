package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field names shared by every logger in the server.
const (
	TableIDKey    string = "tableID"
	DealNumKey    string = "dealNo"
	SeatKey       string = "seat"
	PlayerNameKey string = "playerName"
	EventTypeKey  string = "eventType"
	PhaseKey      string = "phase"
	CallKey       string = "call"
	CardKey       string = "card"
	ScriptKey     string = "script"
)

// ConsoleWriter returns a human readable writer. Colors are off when colorize is false.
func ConsoleWriter(out io.Writer, colorize bool) io.Writer {
	if out == nil {
		out = os.Stdout
	}
	return zerolog.ConsoleWriter{Out: out, NoColor: !colorize, TimeFormat: time.RFC3339}
}

// GetZeroLogger creates a named logger writing to out.
func GetZeroLogger(name string, out io.Writer, colorize bool) *zerolog.Logger {
	logger := zerolog.New(ConsoleWriter(out, colorize)).With().Timestamp().Str("logger", name).Logger()
	return &logger
}

// Setup points the global logger at out and sets the global level.
// Unknown level names fall back to info.
func Setup(level string, out io.Writer, colorize bool) zerolog.Level {
	log.Logger = zerolog.New(ConsoleWriter(out, colorize)).With().Timestamp().Logger()
	return SetGlobalLevel(level)
}

func SetGlobalLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
	return l
}

// TableLogger tags every entry with the table and deal.
func TableLogger(base zerolog.Logger, tableID string, dealNum int) zerolog.Logger {
	return base.With().Str(TableIDKey, tableID).Int(DealNumKey, dealNum).Logger()
}
