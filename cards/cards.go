package cards

import (
	"fmt"
	"sort"
	"strings"
)

var highCardPoints = map[Rank]int{
	Ace:   4,
	King:  3,
	Queen: 2,
	Jack:  1,
}

func Contains(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// OfSuit returns the cards of the given suit, keeping their order.
func OfSuit(cards []Card, suit Suit) []Card {
	var ret []Card
	for _, c := range cards {
		if c.Suit == suit {
			ret = append(ret, c)
		}
	}
	return ret
}

func LengthOf(cards []Card, suit Suit) int {
	n := 0
	for _, c := range cards {
		if c.Suit == suit {
			n++
		}
	}
	return n
}

func VoidOf(cards []Card, suit Suit) bool {
	return LengthOf(cards, suit) == 0
}

// HighestInSuit returns the highest ranked card of suit, if any.
func HighestInSuit(cards []Card, suit Suit) (Card, bool) {
	var best Card
	found := false
	for _, c := range cards {
		if c.Suit != suit {
			continue
		}
		if !found || c.Rank > best.Rank {
			best = c
			found = true
		}
	}
	return best, found
}

// LowestInSuit returns the lowest ranked card of suit, if any.
func LowestInSuit(cards []Card, suit Suit) (Card, bool) {
	var best Card
	found := false
	for _, c := range cards {
		if c.Suit != suit {
			continue
		}
		if !found || c.Rank < best.Rank {
			best = c
			found = true
		}
	}
	return best, found
}

// HighCardPoints counts A=4, K=3, Q=2, J=1.
func HighCardPoints(cards []Card) int {
	points := 0
	for _, c := range cards {
		points += highCardPoints[c.Rank]
	}
	return points
}

// LongestSuit returns the suit with the most cards. Ties go to the higher suit.
func LongestSuit(cards []Card) Suit {
	longest := SuitNone
	length := 0
	for i := len(Suits) - 1; i >= 0; i-- {
		n := LengthOf(cards, Suits[i])
		if n > length {
			longest = Suits[i]
			length = n
		}
	}
	return longest
}

// Sorted returns a copy ordered by suit (spades first) then by descending rank.
func Sorted(cards []Card) []Card {
	ret := make([]Card, len(cards))
	copy(ret, cards)
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Suit != ret[j].Suit {
			return ret[i].Suit > ret[j].Suit
		}
		return ret[i].Rank > ret[j].Rank
	})
	return ret
}

func CardsToString(cards []Card) string {
	strs := make([]string, len(cards))
	for i, c := range cards {
		strs[i] = c.String()
	}
	return "[" + strings.Join(strs, ",") + "]"
}

func ParseCards(strs []string) ([]Card, error) {
	ret := make([]Card, len(strs))
	for i, s := range strs {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

// PrintFormat renders one line per suit, spades first, e.g. "♠ A K 4".
func PrintFormat(cards []Card) string {
	var b strings.Builder
	for i := len(Suits) - 1; i >= 0; i-- {
		suit := Suits[i]
		fmt.Fprintf(&b, "%s", suit.Glyph())
		for _, c := range Sorted(OfSuit(cards, suit)) {
			fmt.Fprintf(&b, " %s", c.Rank)
		}
		if i > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
