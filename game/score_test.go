package game

import (
	"testing"

	"bridgeit.com/server/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		name       string
		bid        Bid
		doubles    int
		tricks     int
		vulnerable bool

		made            bool
		contractScore   int
		overtrickPoints int
		levelBonus      int
		insult          int
		penalties       int
	}{
		{name: "3H exactly", bid: Bid{3, cards.Hearts}, tricks: 9,
			made: true, contractScore: 90, levelBonus: 50},
		{name: "3H plus three", bid: Bid{3, cards.Hearts}, tricks: 12,
			made: true, contractScore: 90, overtrickPoints: 90, levelBonus: 50},
		{name: "2C part score", bid: Bid{2, cards.Clubs}, tricks: 8,
			made: true, contractScore: 40, levelBonus: 50},
		{name: "1NT", bid: Bid{1, cards.NoTrump}, tricks: 7,
			made: true, contractScore: 40, levelBonus: 50},
		{name: "3NT game", bid: Bid{3, cards.NoTrump}, tricks: 9,
			made: true, contractScore: 100, levelBonus: 300},
		{name: "4S game vulnerable", bid: Bid{4, cards.Spades}, tricks: 10, vulnerable: true,
			made: true, contractScore: 120, levelBonus: 500},
		{name: "5D game", bid: Bid{5, cards.Diamonds}, tricks: 11,
			made: true, contractScore: 100, levelBonus: 300},
		{name: "2H doubled into game", bid: Bid{2, cards.Hearts}, doubles: 1, tricks: 8,
			made: true, contractScore: 120, levelBonus: 300, insult: 50},
		{name: "1C redoubled plus one vulnerable", bid: Bid{1, cards.Clubs}, doubles: 2, tricks: 8, vulnerable: true,
			made: true, contractScore: 80, overtrickPoints: 400, levelBonus: 50, insult: 100},
		{name: "2S doubled plus two", bid: Bid{2, cards.Spades}, doubles: 1, tricks: 10,
			made: true, contractScore: 120, overtrickPoints: 200, levelBonus: 300, insult: 50},
		{name: "6H small slam", bid: Bid{6, cards.Hearts}, tricks: 12,
			made: true, contractScore: 180, levelBonus: 800},
		{name: "7NT grand slam vulnerable", bid: Bid{7, cards.NoTrump}, tricks: 13, vulnerable: true,
			made: true, contractScore: 220, levelBonus: 2000},
		{name: "4S down two", bid: Bid{4, cards.Spades}, tricks: 8,
			penalties: 100},
		{name: "4S down two vulnerable", bid: Bid{4, cards.Spades}, tricks: 8, vulnerable: true,
			penalties: 200},
		{name: "3NT doubled down four", bid: Bid{3, cards.NoTrump}, doubles: 1, tricks: 5,
			penalties: 800},
		{name: "3NT doubled down three vulnerable", bid: Bid{3, cards.NoTrump}, doubles: 1, tricks: 6, vulnerable: true,
			penalties: 800},
		{name: "1S redoubled down one", bid: Bid{1, cards.Spades}, doubles: 2, tricks: 6,
			penalties: 200},
		{name: "1NT doubled down seven", bid: Bid{1, cards.NoTrump}, doubles: 1, tricks: 0,
			penalties: 1700},
	}
	for _, tc := range testCases {
		contract, err := NewContract(tc.bid, tc.doubles)
		require.NoError(t, err, tc.name)
		s, err := NewScore(North, contract, tc.tricks, tc.vulnerable)
		require.NoError(t, err, tc.name)

		assert.Equal(t, tc.made, s.Made, tc.name)
		assert.Equal(t, tc.contractScore, s.ContractScore, tc.name)
		assert.Equal(t, tc.overtrickPoints, s.OvertrickPoints, tc.name)
		assert.Equal(t, tc.levelBonus, s.LevelBonus, tc.name)
		assert.Equal(t, tc.insult, s.Insult, tc.name)
		assert.Equal(t, tc.penalties, s.Penalties, tc.name)
		if s.Made {
			assert.Equal(t, NorthSouth, s.Winners(), tc.name)
			assert.Zero(t, s.DefenderPoints(), tc.name)
		} else {
			assert.Equal(t, EastWest, s.Winners(), tc.name)
			assert.Zero(t, s.DeclarerPoints(), tc.name)
		}
	}
}

func TestScoreRejectsBadInput(t *testing.T) {
	contract := Contract{Bid: Bid{1, cards.Clubs}}
	_, err := NewScore(SeatNone, contract, 7, false)
	assert.Error(t, err)
	_, err = NewScore(North, contract, 14, false)
	assert.Error(t, err)
	_, err = ScoreTricks(North, contract, nil, false)
	assert.Error(t, err)
}

func TestScoreString(t *testing.T) {
	s, err := NewScore(East, Contract{Bid: Bid{3, cards.Hearts}}, 9, false)
	require.NoError(t, err)
	assert.Equal(t,
		"East-West declared 3H by East (not vulnerable), took 9 tricks: made exactly.\n"+
			"Contract 90, overtricks 0, bonus 50, insult 0. East-West scores 140.",
		s.String())

	s, err = NewScore(South, Contract{Bid: Bid{4, cards.Spades}, Doubles: 1}, 8, true)
	require.NoError(t, err)
	assert.Equal(t, "down 2", s.Result())
	assert.Contains(t, s.String(), "East-West scores 500.")
}

func TestVulnerability(t *testing.T) {
	assert.False(t, IsVulnerable(1, NorthSouth))
	assert.False(t, IsVulnerable(1, EastWest))
	assert.True(t, IsVulnerable(2, NorthSouth))
	assert.False(t, IsVulnerable(2, EastWest))
	assert.True(t, IsVulnerable(3, EastWest))
	assert.True(t, IsVulnerable(4, NorthSouth))
	assert.True(t, IsVulnerable(4, EastWest))
	assert.False(t, IsVulnerable(17, NorthSouth))
	assert.False(t, IsVulnerable(0, NorthSouth))
}
