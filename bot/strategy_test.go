package bot

import (
	"testing"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(t *testing.T, strs ...string) []cards.Card {
	t.Helper()
	cs, err := cards.ParseCards(strs)
	require.NoError(t, err)
	return cs
}

func TestChooseCall(t *testing.T) {
	strong := hand(t, "AS", "KS", "QS", "JS", "AH", "KH", "2D", "3D", "4D", "5C", "6C", "7C", "8C")
	weak := hand(t, "2S", "3S", "4S", "5H", "6H", "7H", "8D", "9D", "TD", "2C", "3C", "4C", "5C")
	long := hand(t, "2H", "3H", "4H", "5H", "6H", "7H", "8D", "9D", "TD", "2C", "3C", "4C", "5S")

	c := chooseCall(game.North, strong, nil)
	require.True(t, c.IsBid())
	assert.Equal(t, "1S", c.String())
	assert.Equal(t, game.North, c.Bidder)

	assert.True(t, chooseCall(game.North, weak, nil).IsPass())
	assert.Equal(t, "1H", chooseCall(game.North, long, nil).String())

	opened := []game.Call{game.NewBidCall(game.East, game.Bid{Tricks: 1, Suit: cards.Clubs})}
	assert.True(t, chooseCall(game.South, strong, opened).IsPass())
}

func TestChooseCard(t *testing.T) {
	h := hand(t, "2S", "QS", "5H", "KD")

	c, ok := chooseCard(h, game.NewTrick(cards.Hearts))
	require.True(t, ok)
	assert.Equal(t, cards.MustCard("2S"), c)

	trick := game.NewTrick(cards.Hearts)
	require.NoError(t, trick.AddCard(cards.MustCard("3S"), game.West))
	c, _ = chooseCard(h, trick)
	assert.Equal(t, cards.MustCard("QS"), c)

	trick = game.NewTrick(cards.Hearts)
	require.NoError(t, trick.AddCard(cards.MustCard("3C"), game.West))
	c, _ = chooseCard(h, trick)
	assert.Equal(t, cards.MustCard("5H"), c)

	trick = game.NewTrick(cards.NoTrump)
	require.NoError(t, trick.AddCard(cards.MustCard("3C"), game.West))
	c, _ = chooseCard(h, trick)
	assert.Equal(t, cards.MustCard("2S"), c)

	_, ok = chooseCard(nil, trick)
	assert.False(t, ok)
}
