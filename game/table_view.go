package game

import (
	"bridgeit.com/server/cards"
	"github.com/pkg/errors"
)

// Read-only accessors. Each returns a copy taken under the read lock.

func (t *Table) Phase() Phase {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.currentPhase()
}

func (t *Table) InSession() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.inSession
}

// GetHand returns the cards the player currently holds.
func (t *Table) GetHand(player Player) ([]cards.Card, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	seat, ok := t.seats[player]
	if !ok {
		return nil, errors.Wrapf(ErrNotSeated, "get hand")
	}
	hand, ok := t.hands[seat]
	if !ok {
		return []cards.Card{}, nil
	}
	return hand.Cards(), nil
}

// DummiesCards is empty until the opening lead has been made.
func (t *Table) DummiesCards() []cards.Card {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if !t.dummyExposed {
		return []cards.Card{}
	}
	return t.hands[t.dummy].Cards()
}

func (t *Table) CurrentTrick() *Trick {
	t.lock.RLock()
	defer t.lock.RUnlock()
	trick := t.currentTrick()
	if trick == nil {
		return nil
	}
	return trick.Clone()
}

// CardsOnTheTable are the plays to the trick in progress.
func (t *Table) CardsOnTheTable() []Play {
	t.lock.RLock()
	defer t.lock.RUnlock()
	trick := t.currentTrick()
	if trick == nil {
		return []Play{}
	}
	return trick.Plays()
}

// Tricks returns every trick of the current deal, including the one in progress.
func (t *Table) Tricks() []*Trick {
	t.lock.RLock()
	defer t.lock.RUnlock()
	ret := make([]*Trick, len(t.tricks))
	for i, trick := range t.tricks {
		ret[i] = trick.Clone()
	}
	return ret
}

// TricksWon counts finished tricks won by side in the current deal.
func (t *Table) TricksWon(side Side) int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	n := 0
	for _, trick := range t.tricks {
		if w, err := trick.Winner(); err == nil && w.Side() == side {
			n++
		}
	}
	return n
}

func (t *Table) LastThreeCalls() []Call {
	t.lock.RLock()
	defer t.lock.RUnlock()
	n := len(t.calls)
	if n > 3 {
		n = 3
	}
	ret := make([]Call, n)
	copy(ret, t.calls[len(t.calls)-n:])
	return ret
}

// CurrentCall is the most recent call of an auction in progress.
func (t *Table) CurrentCall() *Call {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if len(t.calls) == 0 {
		return nil
	}
	c := t.calls[len(t.calls)-1]
	return &c
}

// Auction returns every call of the current deal. It stays available during the play.
func (t *Table) Auction() []Call {
	t.lock.RLock()
	defer t.lock.RUnlock()
	ret := make([]Call, len(t.auction))
	copy(ret, t.auction)
	return ret
}

func (t *Table) Contract() *Contract {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if t.contract == nil {
		return nil
	}
	c := *t.contract
	return &c
}

func (t *Table) Dealer() Seat {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.dealer
}

func (t *Table) Declarer() Seat {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.declarer
}

func (t *Table) Dummy() Seat {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.dummy
}

// HotSeat is the seat expected to call or play next.
func (t *Table) HotSeat() Seat {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.hotSeat
}

func (t *Table) Trump() cards.Suit {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.trump
}

// DealNumber is 1-based within the session, counting thrown in deals.
func (t *Table) DealNumber() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.dealNum
}

func (t *Table) Vulnerable(side Side) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return IsVulnerable(t.dealNum, side)
}

func (t *Table) Totals() map[Side]int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.copyTotals()
}

func (t *Table) SeatOf(player Player) Seat {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.seats[player]
}

func (t *Table) PlayerAt(seat Seat) Player {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.players[seat]
}

func (t *Table) SeatedCount() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.players)
}

func (t *Table) AllowingBidFrom(seat Seat) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.currentPhase() == PhaseBidding && seat.IsValid() && t.hotSeat == seat
}

// AllowingCardFrom reports whether seat may play from its own hand.
func (t *Table) AllowingCardFrom(seat Seat) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.currentPhase() == PhasePlaying && seat.IsValid() && t.hotSeat == seat && seat != t.dummy
}

// AllowingCardFromDummyBy reports whether seat is declarer and dummy is on play.
func (t *Table) AllowingCardFromDummyBy(seat Seat) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.currentPhase() == PhasePlaying && seat.IsValid() && t.hotSeat == t.dummy && seat == t.declarer
}
