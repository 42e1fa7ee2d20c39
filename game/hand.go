package game

import (
	"bridgeit.com/server/cards"
	"github.com/pkg/errors"
)

const HandSize = 13

// Hand is owned by the Table. Players only ever see copies of its cards.
type Hand struct {
	cards []cards.Card
}

func NewHand(cs []cards.Card) (*Hand, error) {
	if len(cs) != HandSize {
		return nil, errors.Errorf("a hand needs %d cards, got %d", HandSize, len(cs))
	}
	for i, c := range cs {
		if !c.Rank.IsValid() || !c.Suit.IsCardSuit() {
			return nil, errors.Errorf("invalid card %v in hand", c)
		}
		if cards.Contains(cs[:i], c) {
			return nil, errors.Errorf("card %s appears twice in hand", c)
		}
	}
	h := &Hand{cards: make([]cards.Card, len(cs))}
	copy(h.cards, cs)
	return h, nil
}

func (h *Hand) Cards() []cards.Card {
	ret := make([]cards.Card, len(h.cards))
	copy(ret, h.cards)
	return ret
}

func (h *Hand) Len() int {
	return len(h.cards)
}

func (h *Hand) Contains(card cards.Card) bool {
	return cards.Contains(h.cards, card)
}

func (h *Hand) VoidOf(suit cards.Suit) bool {
	return cards.VoidOf(h.cards, suit)
}

func (h *Hand) remove(card cards.Card) bool {
	for i, c := range h.cards {
		if c == card {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}
