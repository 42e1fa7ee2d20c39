package game

import (
	"bridgeit.com/server/cards"
	"github.com/pkg/errors"
)

// StackedDeck orders a deck so that dealing one card at a time clockwise,
// starting left of dealer, gives each seat the listed hand.
func StackedDeck(dealer Seat, hands map[Seat][]cards.Card) (*cards.Deck, error) {
	if !dealer.IsValid() {
		return nil, errors.Errorf("invalid dealer %v", dealer)
	}
	for _, s := range Seats {
		if len(hands[s]) != HandSize {
			return nil, errors.Errorf("%s needs %d cards, got %d", s, HandSize, len(hands[s]))
		}
	}
	order := make([]cards.Card, 0, cards.DeckSize)
	for i := 0; i < HandSize; i++ {
		seat := dealer.Next()
		for j := 0; j < len(Seats); j++ {
			order = append(order, hands[seat][i])
			seat = seat.Next()
		}
	}
	return cards.NewDeckFromCards(order)
}
