package game

import (
	"fmt"
	"strconv"
	"strings"

	"bridgeit.com/server/cards"
	"github.com/pkg/errors"
)

const (
	MinBidTricks = 1
	MaxBidTricks = 7
)

// Bid is a contract offer: a number of tricks over book and a strain.
type Bid struct {
	Tricks int        `json:"tricks"`
	Suit   cards.Suit `json:"suit"`
}

func NewBid(tricks int, suit cards.Suit) (Bid, error) {
	if tricks < MinBidTricks || tricks > MaxBidTricks {
		return Bid{}, errors.Errorf("a bid must be for %d to %d tricks, got %d", MinBidTricks, MaxBidTricks, tricks)
	}
	if !suit.IsValid() {
		return Bid{}, errors.Errorf("invalid bid suit %d", suit)
	}
	return Bid{Tricks: tricks, Suit: suit}, nil
}

// ParseBid reads "<1-7><suit>", e.g. 3H, 7NT, 2 spades.
func ParseBid(s string) (Bid, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Bid{}, errors.New("empty bid")
	}
	tricks, err := strconv.Atoi(text[:1])
	if err != nil {
		return Bid{}, errors.Errorf("invalid bid %q", s)
	}
	suit, err := cards.ParseSuit(text[1:])
	if err != nil {
		return Bid{}, errors.Wrapf(err, "bid %q", s)
	}
	return NewBid(tricks, suit)
}

// Beats reports whether b outranks other: more tricks, or the same tricks in a higher strain.
func (b Bid) Beats(other Bid) bool {
	if b.Tricks != other.Tricks {
		return b.Tricks > other.Tricks
	}
	return b.Suit > other.Suit
}

// IsSufficient reports whether b may follow the last bid of the auction. Any bid may open.
func (b Bid) IsSufficient(last *Bid) bool {
	return last == nil || b.Beats(*last)
}

func (b Bid) String() string {
	return fmt.Sprintf("%d%s", b.Tricks, b.Suit)
}

func (b Bid) Glyph() string {
	return fmt.Sprintf("%d%s", b.Tricks, b.Suit.Glyph())
}
