package game

import (
	"github.com/pkg/errors"
)

// Contract is the final bid of an auction and its doubling state.
type Contract struct {
	Bid     Bid `json:"bid"`
	Doubles int `json:"doubles"`
}

func NewContract(bid Bid, doubles int) (Contract, error) {
	if _, err := NewBid(bid.Tricks, bid.Suit); err != nil {
		return Contract{}, err
	}
	if doubles < 0 || doubles > 2 {
		return Contract{}, errors.Errorf("doubles must be 0, 1 or 2, got %d", doubles)
	}
	return Contract{Bid: bid, Doubles: doubles}, nil
}

// contractFromAuction returns nil when nobody has bid.
func contractFromAuction(calls []Call) *Contract {
	bid := LastBid(calls)
	if bid == nil {
		return nil
	}
	return &Contract{Bid: *bid, Doubles: Doubles(calls)}
}

func (c Contract) IsDoubled() bool {
	return c.Doubles == 1
}

func (c Contract) IsRedoubled() bool {
	return c.Doubles == 2
}

func (c Contract) String() string {
	switch c.Doubles {
	case 1:
		return c.Bid.String() + "X"
	case 2:
		return c.Bid.String() + "XX"
	}
	return c.Bid.String()
}
