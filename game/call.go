package game

import (
	"strings"

	"github.com/pkg/errors"
)

type CallType int8

const (
	CallNone CallType = iota
	Pass
	Double
	Redouble
	BidCall
)

var callTypeNames = map[CallType]string{
	Pass:     "Pass",
	Double:   "Double",
	Redouble: "Redouble",
	BidCall:  "Bid",
}

var textToCallType = map[string]CallType{
	"P":        Pass,
	"PASS":     Pass,
	"D":        Double,
	"DOUBLE":   Double,
	"R":        Redouble,
	"REDOUBLE": Redouble,
}

func (c CallType) String() string {
	if n, ok := callTypeNames[c]; ok {
		return n
	}
	return "None"
}

func (c CallType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Call is one utterance in the auction. Bid is set iff Type is BidCall.
type Call struct {
	Bidder Seat     `json:"bidder"`
	Type   CallType `json:"type"`
	Bid    *Bid     `json:"bid,omitempty"`
}

func NewPass(bidder Seat) Call {
	return Call{Bidder: bidder, Type: Pass}
}

func NewDouble(bidder Seat) Call {
	return Call{Bidder: bidder, Type: Double}
}

func NewRedouble(bidder Seat) Call {
	return Call{Bidder: bidder, Type: Redouble}
}

func NewBidCall(bidder Seat, bid Bid) Call {
	return Call{Bidder: bidder, Type: BidCall, Bid: &bid}
}

// NewCall builds a call, enforcing that a bid is present only for BidCall.
func NewCall(bidder Seat, callType CallType, bid *Bid) (Call, error) {
	if !bidder.IsValid() {
		return Call{}, errors.New("a call needs a bidder")
	}
	switch callType {
	case Pass, Double, Redouble:
		if bid != nil {
			return Call{}, errors.Errorf("%s cannot carry a bid", callType)
		}
		return Call{Bidder: bidder, Type: callType}, nil
	case BidCall:
		if bid == nil {
			return Call{}, errors.New("a bid call needs a bid")
		}
		if _, err := NewBid(bid.Tricks, bid.Suit); err != nil {
			return Call{}, err
		}
		return NewBidCall(bidder, *bid), nil
	}
	return Call{}, errors.Errorf("invalid call type %d", callType)
}

// ParseCall reads P/PASS, D/DOUBLE, R/REDOUBLE (case-insensitive) or a bid such as 3H or 7NT.
func ParseCall(bidder Seat, s string) (Call, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	if callType, ok := textToCallType[text]; ok {
		return NewCall(bidder, callType, nil)
	}
	bid, err := ParseBid(text)
	if err != nil {
		return Call{}, errors.Wrapf(err, "invalid call %q", s)
	}
	return NewCall(bidder, BidCall, &bid)
}

func (c Call) IsPass() bool {
	return c.Type == Pass
}

func (c Call) IsBid() bool {
	return c.Type == BidCall && c.Bid != nil
}

// String is accepted back by ParseCall.
func (c Call) String() string {
	if c.IsBid() {
		return c.Bid.String()
	}
	return c.Type.String()
}

func (c Call) Glyph() string {
	if c.IsBid() {
		return c.Bid.Glyph()
	}
	return c.Type.String()
}
