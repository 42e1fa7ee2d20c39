package game

import (
	"bridgeit.com/server/cards"
	jsoniter "github.com/json-iterator/go"
)

const cardsPerTrick = 4

// Play is one card played to a trick.
type Play struct {
	Card cards.Card `json:"card"`
	Seat Seat       `json:"seat"`
}

// Trick collects up to four plays. The winner is kept up to date as cards are added.
type Trick struct {
	trump  cards.Suit
	led    cards.Suit
	plays  []Play
	winner int
}

func NewTrick(trump cards.Suit) *Trick {
	return &Trick{trump: trump, plays: make([]Play, 0, cardsPerTrick)}
}

func (t *Trick) AddCard(card cards.Card, seat Seat) error {
	if t.Done() {
		return ErrTrickDone
	}
	for _, p := range t.plays {
		if p.Card == card {
			return ErrCardInTrick
		}
	}
	if t.IsEmpty() {
		t.led = card.Suit
	}
	t.plays = append(t.plays, Play{Card: card, Seat: seat})

	t.winner = 0
	for i := 1; i < len(t.plays); i++ {
		if t.plays[i].Card.Beats(t.plays[t.winner].Card, t.trump) {
			t.winner = i
		}
	}
	return nil
}

// IsLegalPlay: anyone may lead, otherwise follow the led suit unless void in it.
func (t *Trick) IsLegalPlay(card cards.Card, hand []cards.Card) bool {
	if t.Done() {
		return false
	}
	if t.IsEmpty() || card.Suit == t.led {
		return true
	}
	return cards.VoidOf(hand, t.led)
}

// Winner fails with ErrTrickNotDone until four cards have been played.
func (t *Trick) Winner() (Seat, error) {
	if !t.Done() {
		return SeatNone, ErrTrickNotDone
	}
	return t.plays[t.winner].Seat, nil
}

// WinningPlay is the play currently holding the trick.
func (t *Trick) WinningPlay() (Play, bool) {
	if t.IsEmpty() {
		return Play{}, false
	}
	return t.plays[t.winner], true
}

func (t *Trick) Done() bool {
	return len(t.plays) == cardsPerTrick
}

func (t *Trick) IsEmpty() bool {
	return len(t.plays) == 0
}

func (t *Trick) Trump() cards.Suit {
	return t.trump
}

// Led is SuitNone until the first card is played.
func (t *Trick) Led() cards.Suit {
	return t.led
}

func (t *Trick) Leader() Seat {
	if t.IsEmpty() {
		return SeatNone
	}
	return t.plays[0].Seat
}

func (t *Trick) Plays() []Play {
	ret := make([]Play, len(t.plays))
	copy(ret, t.plays)
	return ret
}

func (t *Trick) Cards() []cards.Card {
	ret := make([]cards.Card, len(t.plays))
	for i, p := range t.plays {
		ret[i] = p.Card
	}
	return ret
}

func (t *Trick) Clone() *Trick {
	c := *t
	c.plays = t.Plays()
	return &c
}

type trickJSON struct {
	Trump  cards.Suit `json:"trump"`
	Led    cards.Suit `json:"led,omitempty"`
	Plays  []Play     `json:"plays"`
	Winner Seat       `json:"winner,omitempty"`
}

func (t *Trick) MarshalJSON() ([]byte, error) {
	v := trickJSON{Trump: t.trump, Led: t.led, Plays: t.Plays()}
	if w, err := t.Winner(); err == nil {
		v.Winner = w
	}
	return jsoniter.Marshal(v)
}
