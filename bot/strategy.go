package bot

import (
	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
)

const (
	openingPoints = 13
	openingLength = 6
)

// chooseCall opens the auction with one of the longest suit on a good hand
// and passes otherwise. Passing is always legal, so the call never fails.
func chooseCall(seat game.Seat, hand []cards.Card, auction []game.Call) game.Call {
	if game.LastBid(auction) != nil {
		return game.NewPass(seat)
	}
	longest := cards.LongestSuit(hand)
	if cards.HighCardPoints(hand) >= openingPoints || cards.LengthOf(hand, longest) >= openingLength {
		return game.NewBidCall(seat, game.Bid{Tricks: 1, Suit: longest})
	}
	return game.NewPass(seat)
}

// chooseCard follows with the highest card of the led suit, else ruffs with
// the highest trump, else plays the first card held.
func chooseCard(hand []cards.Card, trick *game.Trick) (cards.Card, bool) {
	if len(hand) == 0 {
		return cards.Card{}, false
	}
	if trick == nil || trick.IsEmpty() {
		return hand[0], true
	}
	if c, ok := cards.HighestInSuit(hand, trick.Led()); ok {
		return c, true
	}
	if trump := trick.Trump(); trump.IsCardSuit() {
		if c, ok := cards.HighestInSuit(hand, trump); ok {
			return c, true
		}
	}
	return hand[0], true
}
