package game

import (
	"time"
)

// Player is a participant seated at a Table.
//
// The table prompts the player whose turn it is through PlaceBid, Play and
// PlayForDummy. Prompts arrive on a goroutine owned by the table for that
// player, never on the goroutine that made the triggering call, and the player
// answers by calling MakeCall or PlayCard. The timed variants are for the
// player's own use when it wants to act within a deadline; the table never
// calls them.
type Player interface {
	Name() string

	PlaceBid()
	Play()
	PlayForDummy()

	PlaceBidNow(deadline time.Time)
	PlayNow(deadline time.Time)
	PlayForDummyNow(deadline time.Time)
}
