package game

import (
	"fmt"
	"strings"

	"bridgeit.com/server/cards"
	"github.com/pkg/errors"
)

const (
	bookTricks   = 6
	gameScore    = 100
	partScore    = 50
	tricksInDeal = 13
)

// Score is the result of one played deal from the declaring side's point of view.
type Score struct {
	Declarer   Seat     `json:"declarer"`
	Contract   Contract `json:"contract"`
	Vulnerable bool     `json:"vulnerable"`

	// DeclarerTricks counts all tricks won by the declaring side.
	DeclarerTricks int `json:"declarerTricks"`
	// TricksTaken is DeclarerTricks over book, negative when fewer than six.
	TricksTaken    int  `json:"tricksTaken"`
	TricksDefeated int  `json:"tricksDefeated"`
	Made           bool `json:"made"`

	ContractScore   int `json:"contractScore"`
	OvertrickPoints int `json:"overtrickPoints"`
	LevelBonus      int `json:"levelBonus"`
	Insult          int `json:"insult"`
	Penalties       int `json:"penalties"`
}

// NewScore scores a contract given the tricks the declaring side won.
func NewScore(declarer Seat, contract Contract, declarerTricks int, vulnerable bool) (*Score, error) {
	if !declarer.IsValid() {
		return nil, errors.New("score needs a declarer")
	}
	if declarerTricks < 0 || declarerTricks > tricksInDeal {
		return nil, errors.Errorf("declarer tricks must be between 0 and %d, got %d", tricksInDeal, declarerTricks)
	}
	s := &Score{
		Declarer:       declarer,
		Contract:       contract,
		Vulnerable:     vulnerable,
		DeclarerTricks: declarerTricks,
		TricksTaken:    declarerTricks - bookTricks,
	}
	level := contract.Bid.Tricks
	s.Made = s.TricksTaken >= level
	if s.Made {
		s.ContractScore = s.contractPoints(level)
		s.OvertrickPoints = s.overtrickPoints(s.TricksTaken - level)
		s.LevelBonus = s.levelBonus(level)
		s.Insult = 50 * contract.Doubles
	} else {
		s.TricksDefeated = level - s.TricksTaken
		s.Penalties = s.penalties(s.TricksDefeated)
	}
	return s, nil
}

// ScoreTricks scores a finished deal from its thirteen tricks.
func ScoreTricks(declarer Seat, contract Contract, tricks []*Trick, vulnerable bool) (*Score, error) {
	if len(tricks) != tricksInDeal {
		return nil, errors.Errorf("a deal has %d tricks, got %d", tricksInDeal, len(tricks))
	}
	won := 0
	for _, t := range tricks {
		w, err := t.Winner()
		if err != nil {
			return nil, err
		}
		if w.Side() == declarer.Side() {
			won++
		}
	}
	return NewScore(declarer, contract, won, vulnerable)
}

func (s *Score) doubler() int {
	switch s.Contract.Doubles {
	case 1:
		return 2
	case 2:
		return 4
	}
	return 1
}

func trickValue(suit cards.Suit) int {
	if suit.IsMinor() {
		return 20
	}
	return 30
}

func (s *Score) contractPoints(level int) int {
	suit := s.Contract.Bid.Suit
	points := trickValue(suit) * level
	if suit == cards.NoTrump {
		points += 10
	}
	return points * s.doubler()
}

func (s *Score) overtrickPoints(overtricks int) int {
	if overtricks <= 0 {
		return 0
	}
	per := trickValue(s.Contract.Bid.Suit)
	if s.Contract.Doubles > 0 {
		per = 100 * s.Contract.Doubles
		if s.Vulnerable {
			per *= 2
		}
	}
	return per * overtricks
}

func (s *Score) levelBonus(level int) int {
	bonus := partScore
	if s.ContractScore >= gameScore {
		bonus = s.vul(300, 500)
	}
	switch level {
	case 6:
		bonus += s.vul(500, 750)
	case 7:
		bonus += s.vul(1000, 1500)
	}
	return bonus
}

func (s *Score) penalties(undertricks int) int {
	if s.Contract.Doubles == 0 {
		return undertricks * s.vul(50, 100)
	}
	points := 0
	for i := 1; i <= undertricks; i++ {
		switch {
		case i == 1:
			points += s.vul(100, 200)
		case i <= 3:
			points += s.vul(200, 300)
		default:
			points += 300
		}
	}
	if s.Contract.Doubles == 2 {
		points *= 2
	}
	return points
}

func (s *Score) vul(notVulnerable, vulnerable int) int {
	if s.Vulnerable {
		return vulnerable
	}
	return notVulnerable
}

func (s *Score) DeclarerSide() Side {
	return s.Declarer.Side()
}

// DeclarerPoints is zero when the contract fails.
func (s *Score) DeclarerPoints() int {
	return s.ContractScore + s.OvertrickPoints + s.LevelBonus + s.Insult
}

func (s *Score) DefenderPoints() int {
	return s.Penalties
}

// Winners is the side that scored on this deal.
func (s *Score) Winners() Side {
	if s.Made {
		return s.DeclarerSide()
	}
	return s.DeclarerSide().Opponents()
}

func (s *Score) Result() string {
	switch {
	case !s.Made:
		return fmt.Sprintf("down %d", s.TricksDefeated)
	case s.TricksTaken == s.Contract.Bid.Tricks:
		return "made exactly"
	}
	return fmt.Sprintf("made with %d overtricks", s.TricksTaken-s.Contract.Bid.Tricks)
}

func (s *Score) String() string {
	var b strings.Builder
	vul := "not vulnerable"
	if s.Vulnerable {
		vul = "vulnerable"
	}
	fmt.Fprintf(&b, "%s declared %s by %s (%s), took %d tricks: %s.\n",
		s.DeclarerSide(), s.Contract.String(), s.Declarer, vul, s.DeclarerTricks, s.Result())
	if s.Made {
		fmt.Fprintf(&b, "Contract %d, overtricks %d, bonus %d, insult %d. %s scores %d.",
			s.ContractScore, s.OvertrickPoints, s.LevelBonus, s.Insult, s.DeclarerSide(), s.DeclarerPoints())
	} else {
		fmt.Fprintf(&b, "Defeated by %d, penalties %d. %s scores %d.",
			s.TricksDefeated, s.Penalties, s.DeclarerSide().Opponents(), s.DefenderPoints())
	}
	return b.String()
}

// boardVulnerability is the sixteen board duplicate cycle.
var boardVulnerability = [16]Side{
	SideNone, NorthSouth, EastWest, sideBoth,
	NorthSouth, EastWest, sideBoth, SideNone,
	EastWest, sideBoth, SideNone, NorthSouth,
	sideBoth, SideNone, NorthSouth, EastWest,
}

const sideBoth Side = -1

// IsVulnerable reports whether side is vulnerable on the given deal (1-based) of a session.
func IsVulnerable(dealNum int, side Side) bool {
	if dealNum < 1 {
		return false
	}
	v := boardVulnerability[(dealNum-1)%len(boardVulnerability)]
	return v == sideBoth || (v != SideNone && v == side)
}
