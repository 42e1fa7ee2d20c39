package cards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Suit is ordered Clubs < Diamonds < Hearts < Spades < NoTrump.
// NoTrump only appears in bids and contracts, never on a card.
type Suit int8

const (
	SuitNone Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
	NoTrump
)

// Suits lists the four card suits from lowest to highest.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

var (
	suitLetters = map[Suit]string{
		Clubs:    "C",
		Diamonds: "D",
		Hearts:   "H",
		Spades:   "S",
		NoTrump:  "NT",
	}
	suitNames = map[Suit]string{
		Clubs:    "Clubs",
		Diamonds: "Diamonds",
		Hearts:   "Hearts",
		Spades:   "Spades",
		NoTrump:  "No Trump",
	}
	prettySuits = map[Suit]string{
		Clubs:    "♣",
		Diamonds: "♦",
		Hearts:   "♥",
		Spades:   "♠",
		NoTrump:  "NT",
	}
	textToSuit = map[string]Suit{
		"C":        Clubs,
		"CLUBS":    Clubs,
		"CLUB":     Clubs,
		"D":        Diamonds,
		"DIAMONDS": Diamonds,
		"DIAMOND":  Diamonds,
		"H":        Hearts,
		"HEARTS":   Hearts,
		"HEART":    Hearts,
		"S":        Spades,
		"SPADES":   Spades,
		"SPADE":    Spades,
		"NT":       NoTrump,
		"N":        NoTrump,
		"NOTRUMP":  NoTrump,
		"NO TRUMP": NoTrump,
		"NONE":     NoTrump,
	}
)

func (s Suit) IsValid() bool {
	return s >= Clubs && s <= NoTrump
}

// IsCardSuit reports whether s can be carried by a card.
func (s Suit) IsCardSuit() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) IsMajor() bool {
	return s == Hearts || s == Spades
}

func (s Suit) IsMinor() bool {
	return s == Clubs || s == Diamonds
}

func (s Suit) String() string {
	if l, ok := suitLetters[s]; ok {
		return l
	}
	return "-"
}

func (s Suit) Name() string {
	if n, ok := suitNames[s]; ok {
		return n
	}
	return "None"
}

func (s Suit) Glyph() string {
	if g, ok := prettySuits[s]; ok {
		return g
	}
	return "-"
}

func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	suit, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = suit
	return nil
}

// ParseSuit accepts a suit letter, a full name, or NT/No Trump/None.
func ParseSuit(s string) (Suit, error) {
	key := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if suit, ok := textToSuit[key]; ok {
		return suit, nil
	}
	if suit, ok := glyphToSuit(key); ok {
		return suit, nil
	}
	return SuitNone, errors.Errorf("invalid suit %q", s)
}

func glyphToSuit(s string) (Suit, bool) {
	for suit, g := range prettySuits {
		if g == s {
			return suit, true
		}
	}
	return SuitNone, false
}

// Rank runs from Two (2) to Ace (14).
type Rank int8

const (
	RankNone Rank = 0
	Two      Rank = iota + 1
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = map[Rank]string{
	Two:   "Two",
	Three: "Three",
	Four:  "Four",
	Five:  "Five",
	Six:   "Six",
	Seven: "Seven",
	Eight: "Eight",
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Ace:   "Ace",
}

var textToRank = map[string]Rank{
	"J": Jack,
	"Q": Queen,
	"K": King,
	"A": Ace,
	"T": Ten,
}

func init() {
	for r, name := range rankNames {
		textToRank[strings.ToUpper(name)] = r
		if r <= Ten {
			textToRank[strconv.Itoa(int(r))] = r
		}
	}
}

func (r Rank) IsValid() bool {
	return r >= Two && r <= Ace
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r.IsValid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

func (r Rank) Name() string {
	if n, ok := rankNames[r]; ok {
		return n
	}
	return "None"
}

// ParseRank accepts a numeral (2-10), a letter (T, J, Q, K, A) or a name (Two..Ace).
func ParseRank(s string) (Rank, error) {
	if r, ok := textToRank[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return RankNone, errors.Errorf("invalid rank %q", s)
}

// Card is an immutable playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.IsValid() {
		return Card{}, errors.Errorf("invalid rank %d", rank)
	}
	if !suit.IsCardSuit() {
		return Card{}, errors.Errorf("a card cannot carry suit %s", suit.Name())
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustCard is NewCard for literals known to be valid.
func MustCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCard reads "<rank> <suit>" (A S, 10 H, Queen Hearts) or the compact form (AS, 10H, TH).
func ParseCard(s string) (Card, error) {
	fields := strings.Fields(s)
	var rankText, suitText string
	switch len(fields) {
	case 0:
		return Card{}, errors.New("empty card text")
	case 1:
		f := fields[0]
		runes := []rune(f)
		if len(runes) < 2 {
			return Card{}, errors.Errorf("invalid card %q", s)
		}
		rankText, suitText = string(runes[:len(runes)-1]), string(runes[len(runes)-1])
	default:
		rankText, suitText = fields[0], strings.Join(fields[1:], " ")
		if strings.EqualFold(fields[1], "of") && len(fields) > 2 {
			suitText = strings.Join(fields[2:], " ")
		}
	}
	rank, err := ParseRank(rankText)
	if err != nil {
		return Card{}, errors.Wrapf(err, "card %q", s)
	}
	suit, err := ParseSuit(suitText)
	if err != nil {
		return Card{}, errors.Wrapf(err, "card %q", s)
	}
	return NewCard(rank, suit)
}

// Beats reports whether c wins over other given the trump suit.
// Cards of different suits where neither is trump do not beat each other.
func (c Card) Beats(other Card, trump Suit) bool {
	if c.Suit == trump && other.Suit != trump {
		return true
	}
	return c.Suit == other.Suit && c.Rank > other.Rank
}

func (c Card) IsZero() bool {
	return c == Card{}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) Glyph() string {
	return c.Rank.String() + c.Suit.Glyph()
}

func (c Card) LongString() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit.Name())
}

func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	card, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = card
	return nil
}
