package test

import (
	"fmt"
	"sync"
	"time"

	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var testPlayerLogger = log.With().Str("logger_name", "test::testplayer").Logger()

// TestPlayer is seated by the test driver, which makes its calls and plays.
// The observer also records every table event.
type TestPlayer struct {
	playerInfo   GamePlayer
	seat         game.Seat
	testObserver bool

	mu         sync.Mutex
	bidPrompts int
	playPrompt int
	dummyPlays int
	events     []game.Event
}

func NewTestPlayer(playerInfo GamePlayer) *TestPlayer {
	return &TestPlayer{
		playerInfo: playerInfo,
	}
}

func NewTestPlayerAsObserver(playerInfo GamePlayer) *TestPlayer {
	return &TestPlayer{
		playerInfo:   playerInfo,
		testObserver: true,
	}
}

func (t *TestPlayer) Name() string {
	return t.playerInfo.Name
}

func (t *TestPlayer) PlaceBid() {
	t.mu.Lock()
	t.bidPrompts++
	t.mu.Unlock()
}

func (t *TestPlayer) Play() {
	t.mu.Lock()
	t.playPrompt++
	t.mu.Unlock()
}

func (t *TestPlayer) PlayForDummy() {
	t.mu.Lock()
	t.dummyPlays++
	t.mu.Unlock()
}

func (t *TestPlayer) PlaceBidNow(time.Time)     { t.PlaceBid() }
func (t *TestPlayer) PlayNow(time.Time)         { t.Play() }
func (t *TestPlayer) PlayForDummyNow(time.Time) { t.PlayForDummy() }

// Prompts returns how often the table asked for a call, a card and a card from dummy.
func (t *TestPlayer) Prompts() (int, int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bidPrompts, t.playPrompt, t.dummyPlays
}

func (t *TestPlayer) onEvent(e game.Event) {
	if !t.testObserver {
		return
	}
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()

	if testPlayerLogger.Trace().Enabled() {
		jsonb, err := jsoniter.Marshal(e)
		if err != nil {
			testPlayerLogger.Error().Err(err).Msg("Could not encode event")
			return
		}
		testPlayerLogger.Trace().
			Str(logging.PlayerNameKey, t.playerInfo.Name).
			Str(logging.EventTypeKey, string(e.Type)).
			Msg(fmt.Sprintf("EVENT Json: %s", string(jsonb)))
	}
}

// Events returns the recorded events matching the type and deal. A zero deal matches any deal.
func (t *TestPlayer) Events(et game.EventType, dealNum int) []game.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ret []game.Event
	for _, e := range t.events {
		if e.Type == et && (dealNum == 0 || e.DealNum == dealNum) {
			ret = append(ret, e)
		}
	}
	return ret
}

// WaitFor polls until an event of the type arrives for the deal.
func (t *TestPlayer) WaitFor(et game.EventType, dealNum int, timeout time.Duration) (game.Event, bool) {
	deadline := time.Now().Add(timeout)
	for {
		if events := t.Events(et, dealNum); len(events) > 0 {
			return events[len(events)-1], true
		}
		if time.Now().After(deadline) {
			return game.Event{}, false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Trace encodes the recorded events as a JSON array.
func (t *TestPlayer) Trace() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return jsoniter.MarshalIndent(t.events, "", "  ")
}
