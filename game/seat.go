package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Seat positions around the table, clockwise from North.
type Seat int8

const (
	SeatNone Seat = iota
	North
	East
	South
	West
)

// Seats in clockwise order.
var Seats = []Seat{North, East, South, West}

// SeatingOrder is the order in which open seats are handed out by SitDown.
var SeatingOrder = []Seat{South, West, North, East}

var seatNames = map[Seat]string{
	North: "North",
	East:  "East",
	South: "South",
	West:  "West",
}

func (s Seat) IsValid() bool {
	return s >= North && s <= West
}

// Next is the seat to the left, which acts after s.
func (s Seat) Next() Seat {
	if !s.IsValid() {
		return SeatNone
	}
	return Seat(int(s)%4 + 1)
}

// Previous is the seat to the right, which acted before s.
func (s Seat) Previous() Seat {
	if !s.IsValid() {
		return SeatNone
	}
	return Seat((int(s)+2)%4 + 1)
}

func (s Seat) Partner() Seat {
	if !s.IsValid() {
		return SeatNone
	}
	return Seat((int(s)+1)%4 + 1)
}

func (s Seat) Side() Side {
	switch s {
	case North, South:
		return NorthSouth
	case East, West:
		return EastWest
	}
	return SideNone
}

func (s Seat) String() string {
	if n, ok := seatNames[s]; ok {
		return n
	}
	return "None"
}

func (s Seat) Letter() string {
	if !s.IsValid() {
		return "-"
	}
	return s.String()[:1]
}

func (s Seat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Seat) UnmarshalText(b []byte) error {
	seat, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = seat
	return nil
}

// ParseSeat accepts a seat name or its first letter.
func ParseSeat(s string) (Seat, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for seat, name := range seatNames {
		upper := strings.ToUpper(name)
		if key == upper || key == upper[:1] {
			return seat, nil
		}
	}
	if key == "NONE" || key == "" {
		return SeatNone, nil
	}
	return SeatNone, errors.Errorf("invalid seat %q", s)
}

// Side is a partnership.
type Side int8

const (
	SideNone Side = iota
	NorthSouth
	EastWest
)

var Sides = []Side{NorthSouth, EastWest}

func (s Side) Opponents() Side {
	switch s {
	case NorthSouth:
		return EastWest
	case EastWest:
		return NorthSouth
	}
	return SideNone
}

func (s Side) String() string {
	switch s {
	case NorthSouth:
		return "North-South"
	case EastWest:
		return "East-West"
	}
	return "None"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
