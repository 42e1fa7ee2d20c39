package game

import (
	"bridgeit.com/server/cards"
)

type EventType string

const (
	PlayerHasJoined      EventType = "PLAYER_HAS_JOINED"
	SessionHasBegun      EventType = "SESSION_HAS_BEGUN"
	DealHasBegun         EventType = "DEAL_HAS_BEGUN"
	CardsHaveBeenDealt   EventType = "CARDS_HAVE_BEEN_DEALT"
	DealHasBeenAbandoned EventType = "DEAL_HAS_BEEN_ABANDONED"
	CallHasBeenMade      EventType = "CALL_HAS_BEEN_MADE"
	BiddingIsComplete    EventType = "BIDDING_IS_COMPLETE"
	DummyHasExposedHand  EventType = "DUMMY_HAS_EXPOSED_HAND"
	CardHasBeenPlayed    EventType = "CARD_HAS_BEEN_PLAYED"
	TrickHasBeenWon      EventType = "TRICK_HAS_BEEN_WON"
	DealHasBeenWon       EventType = "DEAL_HAS_BEEN_WON"
	SessionHasEnded      EventType = "SESSION_HAS_ENDED"
	PlayerHasQuit        EventType = "PLAYER_HAS_QUIT"
)

// AllEventTypes in the order they occur over a session.
var AllEventTypes = []EventType{
	PlayerHasJoined,
	SessionHasBegun,
	DealHasBegun,
	CardsHaveBeenDealt,
	DealHasBeenAbandoned,
	CallHasBeenMade,
	BiddingIsComplete,
	DummyHasExposedHand,
	CardHasBeenPlayed,
	TrickHasBeenWon,
	DealHasBeenWon,
	SessionHasEnded,
	PlayerHasQuit,
}

// Event is an immutable notification of a committed table change.
// Only the fields relevant to the event type are set.
type Event struct {
	Type    EventType `json:"type"`
	Seq     uint64    `json:"seq"`
	TableID string    `json:"tableId"`
	DealNum int       `json:"dealNum,omitempty"`

	// Seat is the joining, quitting, calling or playing seat.
	Seat       Seat         `json:"seat,omitempty"`
	PlayerName string       `json:"playerName,omitempty"`
	Dealer     Seat         `json:"dealer,omitempty"`
	Call       *Call        `json:"call,omitempty"`
	Declarer   Seat         `json:"declarer,omitempty"`
	Dummy      Seat         `json:"dummy,omitempty"`
	Contract   *Contract    `json:"contract,omitempty"`
	Card       *cards.Card  `json:"card,omitempty"`
	Cards      []cards.Card `json:"cards,omitempty"`
	Trick      *Trick       `json:"trick,omitempty"`
	Winner     Seat         `json:"winner,omitempty"`
	Score      *Score       `json:"score,omitempty"`
	Winners    Side         `json:"winners,omitempty"`
	Totals     map[Side]int `json:"totals,omitempty"`
}

// Listener receives events on a goroutine owned by its subscription.
type Listener func(Event)
