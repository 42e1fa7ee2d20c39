package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type bridgeEnvironment struct {
	LogLevel         string
	ColorizeLog      string
	SessionDeals     string
	BotActionPauseMs string
	TurnTimeLimitSec string
	EventLog         string
}

// Env is a helper object for accessing environment variables.
var Env = &bridgeEnvironment{
	LogLevel:         "LOG_LEVEL",
	ColorizeLog:      "COLORIZE_LOG",
	SessionDeals:     "SESSION_DEALS",
	BotActionPauseMs: "BOT_ACTION_PAUSE_MS",
	TurnTimeLimitSec: "TURN_TIME_LIMIT_SEC",
	EventLog:         "EVENT_LOG",
}

// LoadDotEnv reads the given files (".env" when none) into the environment.
// Variables already set are left alone and missing files are skipped.
func (b *bridgeEnvironment) LoadDotEnv(filenames ...string) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, f := range filenames {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			environmentLogger.Warn().Err(err).Str("file", f).Msg("Could not load env file")
		}
	}
}

func (b *bridgeEnvironment) GetLogLevel() string {
	level := os.Getenv(b.LogLevel)
	if level == "" {
		return "info"
	}
	return level
}

func (b *bridgeEnvironment) ShouldColorizeLog() bool {
	v := strings.ToLower(os.Getenv(b.ColorizeLog))
	return v == "" || v == "1" || v == "true"
}

// GetSessionDeals is the number of deals to play before a session ends. Zero means no limit.
func (b *bridgeEnvironment) GetSessionDeals() int {
	return b.getNonNegativeInt(b.SessionDeals, 4)
}

func (b *bridgeEnvironment) GetBotActionPause() time.Duration {
	return time.Duration(b.getNonNegativeInt(b.BotActionPauseMs, 0)) * time.Millisecond
}

func (b *bridgeEnvironment) GetTurnTimeLimit() time.Duration {
	return time.Duration(b.getNonNegativeInt(b.TurnTimeLimitSec, 30)) * time.Second
}

func (b *bridgeEnvironment) GetEventLog() string {
	return os.Getenv(b.EventLog)
}

func (b *bridgeEnvironment) getNonNegativeInt(name string, defaultValue int) int {
	s := os.Getenv(name)
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		msg := fmt.Sprintf("Invalid value %s for %s", s, name)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return n
}
