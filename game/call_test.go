package game

import (
	"testing"

	"bridgeit.com/server/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatRotation(t *testing.T) {
	assert.Equal(t, East, North.Next())
	assert.Equal(t, South, East.Next())
	assert.Equal(t, West, South.Next())
	assert.Equal(t, North, West.Next())
	assert.Equal(t, West, North.Previous())
	assert.Equal(t, South, West.Previous())
	assert.Equal(t, South, North.Partner())
	assert.Equal(t, West, East.Partner())
	assert.Equal(t, NorthSouth, South.Side())
	assert.Equal(t, EastWest, West.Side())
	assert.Equal(t, SeatNone, SeatNone.Next())
	assert.Equal(t, EastWest, NorthSouth.Opponents())
}

func TestParseSeat(t *testing.T) {
	for text, expected := range map[string]Seat{"N": North, "east": East, "South": South, "w": West, "none": SeatNone} {
		s, err := ParseSeat(text)
		require.NoError(t, err, text)
		assert.Equal(t, expected, s, text)
	}
	_, err := ParseSeat("Q")
	assert.Error(t, err)
}

func TestNewBid(t *testing.T) {
	_, err := NewBid(0, cards.Spades)
	assert.Error(t, err)
	_, err = NewBid(8, cards.Spades)
	assert.Error(t, err)
	_, err = NewBid(3, cards.SuitNone)
	assert.Error(t, err)
	b, err := NewBid(7, cards.NoTrump)
	require.NoError(t, err)
	assert.Equal(t, "7NT", b.String())
}

func TestBidBeats(t *testing.T) {
	oneClub := Bid{1, cards.Clubs}
	oneNT := Bid{1, cards.NoTrump}
	twoClubs := Bid{2, cards.Clubs}
	oneSpade := Bid{1, cards.Spades}

	assert.True(t, oneNT.Beats(oneSpade))
	assert.True(t, oneSpade.Beats(oneClub))
	assert.True(t, twoClubs.Beats(oneNT))
	assert.False(t, oneNT.Beats(twoClubs))
	assert.False(t, oneClub.Beats(oneClub))
	assert.True(t, oneClub.IsSufficient(nil))
	assert.False(t, oneClub.IsSufficient(&oneSpade))
}

func TestParseCall(t *testing.T) {
	testCases := []struct {
		text     string
		expected Call
	}{
		{"P", NewPass(North)},
		{"pass", NewPass(North)},
		{"D", NewDouble(North)},
		{"Double", NewDouble(North)},
		{"r", NewRedouble(North)},
		{"REDOUBLE", NewRedouble(North)},
		{"3H", NewBidCall(North, Bid{3, cards.Hearts})},
		{"7nt", NewBidCall(North, Bid{7, cards.NoTrump})},
		{"1 spades", NewBidCall(North, Bid{1, cards.Spades})},
	}
	for _, tc := range testCases {
		c, err := ParseCall(North, tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.expected, c, tc.text)
	}
}

func TestParseCallRejectsPrefixesAndBadBids(t *testing.T) {
	for _, text := range []string{"", "PA", "DOUB", "REDO", "8S", "0H", "3X", "X"} {
		_, err := ParseCall(North, text)
		assert.Error(t, err, text)
	}
	_, err := ParseCall(SeatNone, "P")
	assert.Error(t, err)
}

func TestCallStringRoundTrip(t *testing.T) {
	calls := []Call{NewPass(East), NewDouble(East), NewRedouble(East)}
	for tricks := MinBidTricks; tricks <= MaxBidTricks; tricks++ {
		for suit := cards.Clubs; suit <= cards.NoTrump; suit++ {
			calls = append(calls, NewBidCall(East, Bid{tricks, suit}))
		}
	}
	for _, c := range calls {
		parsed, err := ParseCall(East, c.String())
		require.NoError(t, err, c.String())
		assert.Equal(t, c.Type, parsed.Type)
		assert.Equal(t, c.Bid, parsed.Bid)
	}
}

func TestNewCallValidation(t *testing.T) {
	bid := Bid{2, cards.Hearts}
	_, err := NewCall(North, Pass, &bid)
	assert.Error(t, err)
	_, err = NewCall(North, BidCall, nil)
	assert.Error(t, err)
	_, err = NewCall(North, CallNone, nil)
	assert.Error(t, err)
	c, err := NewCall(North, BidCall, &bid)
	require.NoError(t, err)
	assert.True(t, c.IsBid())
}

func TestContract(t *testing.T) {
	_, err := NewContract(Bid{3, cards.Hearts}, 3)
	assert.Error(t, err)
	c, err := NewContract(Bid{3, cards.Hearts}, 2)
	require.NoError(t, err)
	assert.Equal(t, "3HXX", c.String())
	assert.True(t, c.IsRedoubled())
}
