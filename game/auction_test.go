package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// auction parses calls starting with the given seat and rotating clockwise.
func auction(t *testing.T, first Seat, texts ...string) []Call {
	t.Helper()
	calls := make([]Call, 0, len(texts))
	seat := first
	for _, text := range texts {
		c, err := ParseCall(seat, text)
		require.NoError(t, err)
		calls = append(calls, c)
		seat = seat.Next()
	}
	return calls
}

func TestAreLastFourPasses(t *testing.T) {
	assert.False(t, AreLastFourPasses(nil))
	assert.False(t, AreLastFourPasses(auction(t, South, "P", "P", "P")))
	assert.True(t, AreLastFourPasses(auction(t, South, "P", "P", "P", "P")))
	assert.False(t, AreLastFourPasses(auction(t, South, "1C", "P", "P", "P")))
}

func TestHasBidAndLastThreeArePasses(t *testing.T) {
	assert.False(t, HasBidAndLastThreeArePasses(auction(t, South, "P", "P", "P")))
	assert.False(t, HasBidAndLastThreeArePasses(auction(t, South, "1C", "P", "P")))
	assert.True(t, HasBidAndLastThreeArePasses(auction(t, South, "1C", "P", "P", "P")))
	assert.True(t, HasBidAndLastThreeArePasses(auction(t, South, "P", "1C", "D", "P", "P", "P")))
	assert.False(t, HasBidAndLastThreeArePasses(auction(t, South, "1C", "P", "P", "1H")))
}

func TestIsDoubleValidNow(t *testing.T) {
	testCases := []struct {
		calls    []string
		expected bool
	}{
		{calls: nil, expected: false},
		{calls: []string{"P"}, expected: false},
		{calls: []string{"1S"}, expected: true},
		{calls: []string{"P", "1S"}, expected: true},
		{calls: []string{"1S", "P"}, expected: false},
		{calls: []string{"1S", "P", "P"}, expected: true},
		{calls: []string{"P", "P", "1S"}, expected: true},
		{calls: []string{"1S", "D"}, expected: false},
		{calls: []string{"1S", "D", "P"}, expected: false},
		{calls: []string{"1S", "P", "P", "P"}, expected: false},
		{calls: []string{"1S", "P", "2S", "P"}, expected: false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, IsDoubleValidNow(auction(t, North, tc.calls...)), "%v", tc.calls)
	}
}

func TestIsRedoubleValidNow(t *testing.T) {
	testCases := []struct {
		calls    []string
		expected bool
	}{
		{calls: nil, expected: false},
		{calls: []string{"1S"}, expected: false},
		{calls: []string{"1S", "D"}, expected: true},
		{calls: []string{"P", "1S", "D"}, expected: true},
		{calls: []string{"1S", "D", "P"}, expected: false},
		{calls: []string{"1S", "D", "P", "P"}, expected: true},
		{calls: []string{"1S", "D", "R"}, expected: false},
		{calls: []string{"1S", "P", "P"}, expected: false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, IsRedoubleValidNow(auction(t, North, tc.calls...)), "%v", tc.calls)
	}
}

func TestDoubles(t *testing.T) {
	assert.Equal(t, 0, Doubles(nil))
	assert.Equal(t, 0, Doubles(auction(t, North, "1S", "P")))
	assert.Equal(t, 1, Doubles(auction(t, North, "1S", "D", "P")))
	assert.Equal(t, 2, Doubles(auction(t, North, "1S", "D", "R", "P")))
	// a new bid wipes out earlier doubles
	assert.Equal(t, 0, Doubles(auction(t, North, "1S", "D", "R", "2C")))
}

func TestLastBidAndBidder(t *testing.T) {
	assert.Nil(t, LastBid(auction(t, North, "P", "P")))
	assert.Equal(t, SeatNone, LastBidder(nil))

	calls := auction(t, North, "1S", "2H", "P", "P")
	require.NotNil(t, LastBid(calls))
	assert.Equal(t, "2H", LastBid(calls).String())
	assert.Equal(t, East, LastBidder(calls))
}

func TestDeclarerIsFirstToNameTheStrain(t *testing.T) {
	// South dealt and passed, North opened 1S, South raised
	calls := auction(t, South, "P", "P", "1S", "P", "2S", "P", "P", "P")
	assert.Equal(t, North, Declarer(calls))

	// East named hearts first, West ends up playing it
	calls = auction(t, North, "1C", "1H", "P", "2H", "3C", "P", "P", "3H", "P", "P", "P")
	assert.Equal(t, East, Declarer(calls))

	// the opponents' earlier bid of the same strain does not count
	calls = auction(t, North, "1H", "P", "P", "2H", "P", "P", "P")
	assert.Equal(t, West, Declarer(calls))

	assert.Equal(t, SeatNone, Declarer(auction(t, North, "P", "P", "P", "P")))
}

func TestCheckCall(t *testing.T) {
	calls := auction(t, North, "1S")

	err := CheckCall(calls, NewBidCall(East, Bid{Tricks: 1, Suit: 1}))
	require.Error(t, err)
	assert.Equal(t, ReasonInsufficientBid, RejectionReason(err))
	assert.Equal(t, "New bid must be higher than previous bid.", err.Error())

	err = CheckCall(calls, NewRedouble(East))
	assert.Equal(t, ReasonIllegalRedouble, RejectionReason(err))
	assert.Equal(t, "Cannot redouble without a prior bid having been doubled by opponent.", err.Error())

	err = CheckCall(nil, NewDouble(North))
	assert.Equal(t, ReasonIllegalDouble, RejectionReason(err))
	assert.Equal(t, "Cannot double without a prior bid by opponent.", err.Error())

	assert.NoError(t, CheckCall(calls, NewDouble(East)))
	assert.NoError(t, CheckCall(calls, NewPass(East)))
	assert.NoError(t, CheckCall(calls, NewBidCall(East, Bid{Tricks: 1, Suit: 5})))

	err = CheckCall(calls, Call{Bidder: East, Type: BidCall, Bid: &Bid{Tricks: 9, Suit: 5}})
	assert.Equal(t, ReasonInvalidCall, RejectionReason(err))
	err = CheckCall(calls, Call{Bidder: East, Type: Pass, Bid: &Bid{Tricks: 2, Suit: 1}})
	assert.Equal(t, ReasonInvalidCall, RejectionReason(err))
}
