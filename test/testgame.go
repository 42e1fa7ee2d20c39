package test

import (
	"fmt"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	"bridgeit.com/server/util"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var testTableLogger = log.With().Str("logger_name", "test::testtable").Logger()

// TestTable drives a table from the players' side. Every call and play
// is made synchronously by the driver.
type TestTable struct {
	table    *game.Table
	players  map[game.Seat]*TestPlayer
	observer *TestPlayer
	decks    []*cards.Deck
}

func NewTestTable(config TableConfig, decks []*cards.Deck) *TestTable {
	t := &TestTable{
		players: make(map[game.Seat]*TestPlayer),
		decks:   decks,
	}
	t.table = game.NewTable(game.TableConfig{
		MaxDeals:   config.MaxDeals,
		DeckSource: t.deckFor,
		Metrics:    util.NewTableMetrics(prometheus.NewRegistry()),
	})
	t.observer = NewTestPlayerAsObserver(GamePlayer{Name: "GameScript"})
	t.table.Subscribe(t.observer.onEvent)
	return t
}

// deckFor runs under the table lock and must not call back into the table.
func (t *TestTable) deckFor(dealNum int) *cards.Deck {
	if dealNum < 1 || dealNum > len(t.decks) {
		return nil
	}
	return t.decks[dealNum-1]
}

// Seat sits the players down in order and checks any expected seat.
func (t *TestTable) Seat(players []GamePlayer) error {
	for _, info := range players {
		testPlayer := NewTestPlayer(info)
		seat, err := t.table.SitDown(testPlayer)
		if err != nil {
			return errors.Wrapf(err, "seating %s", info.Name)
		}
		if info.Seat != "" {
			expected, err := game.ParseSeat(info.Seat)
			if err != nil {
				return err
			}
			if expected != seat {
				return fmt.Errorf("%s expected seat %s, got %s", info.Name, expected, seat)
			}
		}
		testPlayer.seat = seat
		t.players[seat] = testPlayer
		testTableLogger.Debug().Str(logging.PlayerNameKey, info.Name).Str(logging.SeatKey, seat.String()).Msg("Seated")
	}
	return nil
}

func (t *TestTable) Observer() *TestPlayer {
	return t.observer
}

func (t *TestTable) Close() {
	t.table.Close()
}

func (t *TestTable) makeCall(seat game.Seat, text string) error {
	call, err := game.ParseCall(seat, text)
	if err != nil {
		return err
	}
	return t.table.MakeCall(t.players[seat], call)
}

// playCard plays from the seat on turn. Declarer plays for dummy.
func (t *TestTable) playCard(card cards.Card) error {
	hot := t.table.HotSeat()
	if hot == t.table.Dummy() {
		hot = t.table.Declarer()
	}
	return t.table.PlayCard(t.players[hot], card)
}

// firstLegalCard returns the first card the seat on turn may play.
func (t *TestTable) firstLegalCard() (cards.Card, error) {
	hot := t.table.HotSeat()
	var hand []cards.Card
	if hot == t.table.Dummy() {
		hand = t.table.DummiesCards()
	} else {
		var err error
		if hand, err = t.table.GetHand(t.players[hot]); err != nil {
			return cards.Card{}, err
		}
	}
	trick := t.table.CurrentTrick()
	for _, c := range hand {
		if trick == nil || trick.IsLegalPlay(c, hand) {
			return c, nil
		}
	}
	return cards.Card{}, fmt.Errorf("%s has no legal card", hot)
}
