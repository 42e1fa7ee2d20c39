package main

import (
	"io"
	"sync"
	"time"

	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var eventLogger = log.With().Str("logger_name", "main::eventlog").Logger()

// eventLog writes one JSON object per table event.
// The table delivers events to a listener one at a time, so no locking is needed.
type eventLog struct {
	enc *jsoniter.Encoder

	ended     chan struct{}
	endedOnce sync.Once
}

func newEventLog(out io.Writer) *eventLog {
	return &eventLog{
		enc:   jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out),
		ended: make(chan struct{}),
	}
}

func (l *eventLog) listen(e game.Event) {
	if err := l.enc.Encode(e); err != nil {
		eventLogger.Error().Err(err).Str(logging.EventTypeKey, string(e.Type)).Msg("Could not write event")
	}
	if e.Type == game.SessionHasEnded {
		l.endedOnce.Do(func() { close(l.ended) })
	}
}

// waitSessionEnd blocks until the session end has been written or the timeout passes.
// Closing the table drops undelivered events, so callers wait here first.
func (l *eventLog) waitSessionEnd(timeout time.Duration) bool {
	select {
	case <-l.ended:
		return true
	case <-time.After(timeout):
		return false
	}
}
