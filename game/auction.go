package game

// Functions over the ordered calls of an auction, oldest first.

// AreLastFourPasses is true when the last four calls are all passes.
func AreLastFourPasses(calls []Call) bool {
	return lastAllPasses(calls, 4)
}

// HasBidAndLastThreeArePasses is true when somebody has bid and the last three calls are passes.
func HasBidAndLastThreeArePasses(calls []Call) bool {
	return LastBidCall(calls) != nil && lastAllPasses(calls, 3)
}

func lastAllPasses(calls []Call, n int) bool {
	if len(calls) < n {
		return false
	}
	for _, c := range calls[len(calls)-n:] {
		if !c.IsPass() {
			return false
		}
	}
	return true
}

// lastCallTypes returns the types of up to n trailing calls, oldest first.
func lastCallTypes(calls []Call, n int) []CallType {
	if len(calls) < n {
		n = len(calls)
	}
	types := make([]CallType, n)
	for i, c := range calls[len(calls)-n:] {
		types[i] = c.Type
	}
	return types
}

// IsDoubleValidNow reports whether the next caller may double: the last bid was
// made by an opponent and only passes followed it.
func IsDoubleValidNow(calls []Call) bool {
	last := lastCallTypes(calls, 3)
	switch len(last) {
	case 0:
		return false
	case 1:
		return last[0] == BidCall
	case 2:
		return last[1] == BidCall
	}
	return last[2] == BidCall ||
		(last[0] == BidCall && last[1] == Pass && last[2] == Pass)
}

// IsRedoubleValidNow reports whether the next caller may redouble: an opponent
// doubled the caller's side and only passes followed.
func IsRedoubleValidNow(calls []Call) bool {
	last := lastCallTypes(calls, 3)
	switch len(last) {
	case 0, 1:
		return false
	case 2:
		return last[0] == BidCall && last[1] == Double
	}
	return last[2] == Double ||
		(last[0] == Double && last[1] == Pass && last[2] == Pass)
}

// Doubles returns 2 when the current bid is redoubled, 1 when doubled, 0 otherwise.
func Doubles(calls []Call) int {
	for i := len(calls) - 1; i >= 0; i-- {
		switch calls[i].Type {
		case Redouble:
			return 2
		case Double:
			return 1
		case BidCall:
			return 0
		}
	}
	return 0
}

func LastBidCall(calls []Call) *Call {
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].IsBid() {
			c := calls[i]
			return &c
		}
	}
	return nil
}

func LastBid(calls []Call) *Bid {
	c := LastBidCall(calls)
	if c == nil {
		return nil
	}
	bid := *c.Bid
	return &bid
}

func LastBidder(calls []Call) Seat {
	c := LastBidCall(calls)
	if c == nil {
		return SeatNone
	}
	return c.Bidder
}

// Declarer is the first player of the side that won the auction to have bid the final strain.
func Declarer(calls []Call) Seat {
	last := LastBidCall(calls)
	if last == nil {
		return SeatNone
	}
	side := last.Bidder.Side()
	for _, c := range calls {
		if c.IsBid() && c.Bid.Suit == last.Bid.Suit && c.Bidder.Side() == side {
			return c.Bidder
		}
	}
	return last.Bidder
}

// CheckCall validates the call against the auction so far, ignoring turn order.
func CheckCall(calls []Call, call Call) error {
	if _, err := NewCall(call.Bidder, call.Type, call.Bid); err != nil {
		return newCallError(ReasonInvalidCall, "Invalid call: %s.", err)
	}
	switch call.Type {
	case Pass:
		return nil
	case Double:
		if !IsDoubleValidNow(calls) {
			return newCallError(ReasonIllegalDouble, "Cannot double without a prior bid by opponent.")
		}
	case Redouble:
		if !IsRedoubleValidNow(calls) {
			return newCallError(ReasonIllegalRedouble, "Cannot redouble without a prior bid having been doubled by opponent.")
		}
	case BidCall:
		if call.Bid == nil {
			return newCallError(ReasonInvalidCall, "A bid call needs a bid.")
		}
		if !call.Bid.IsSufficient(LastBid(calls)) {
			return newCallError(ReasonInsufficientBid, "New bid must be higher than previous bid.")
		}
	default:
		return newCallError(ReasonInvalidCall, "Unknown call.")
	}
	return nil
}
