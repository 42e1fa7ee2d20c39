package test

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

/*
table:
  max-deals: 1
  wait: 2
*/
type TableConfig struct {
	MaxDeals int `yaml:"max-deals"`
	// Wait is the number of seconds to wait for table events.
	Wait int `yaml:"wait"`
}

/*
players:
  - name: sam
    seat: South
  - name: wes
*/
type GamePlayer struct {
	Name string `yaml:"name"`
	Seat string `yaml:"seat"`
}

/*
setup:
  dealer: North
  # either whole suits per seat
  suits:
    North: S
    East: H
  # or explicit hands
  hands:
    North: [AS, KS, QS, ...]
*/
type DealSetup struct {
	Dealer string              `yaml:"dealer"`
	Suits  map[string]string   `yaml:"suits"`
	Hands  map[string][]string `yaml:"hands"`
}

// CallStep is one call in the auction. It is written either as the call
// itself ("1NT", "P") or as a mapping for a call the table must reject:
//
//	- {seat: South, call: D, reject: ILLEGAL_DOUBLE}
type CallStep struct {
	Seat   string `yaml:"seat"`
	Call   string `yaml:"call"`
	Reject string `yaml:"reject"`
}

func (c *CallStep) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Call = value.Value
		return nil
	}
	type plain CallStep
	var p plain
	if err := value.Decode(&p); err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*c = CallStep(p)
	return nil
}

/*
play:
  cards: [2C, 2S, 2H, AD]
  auto: true
*/
type PlaySetup struct {
	Cards []string `yaml:"cards"`
	// Auto plays the first legal card for every remaining turn.
	Auto bool `yaml:"auto"`
}

/*
verify:
  contract: 2S
  declarer: North
  dummy: South
  declarer-tricks: 10
  result: made with 2 overtricks
  declarer-points: 170
  totals:
    North-South: 170
    East-West: 0
*/
type DealVerification struct {
	Dealer         string         `yaml:"dealer"`
	ThrownIn       bool           `yaml:"thrown-in"`
	Contract       string         `yaml:"contract"`
	Declarer       string         `yaml:"declarer"`
	Dummy          string         `yaml:"dummy"`
	DeclarerTricks *int           `yaml:"declarer-tricks"`
	Result         string         `yaml:"result"`
	DeclarerPoints *int           `yaml:"declarer-points"`
	DefenderPoints *int           `yaml:"defender-points"`
	Totals         map[string]int `yaml:"totals"`
}

type Deal struct {
	Setup   DealSetup        `yaml:"setup"`
	Auction []CallStep       `yaml:"auction"`
	Play    PlaySetup        `yaml:"play"`
	Verify  DealVerification `yaml:"verify"`

	num        int
	gameScript *GameScript
}

/*
result:
  session-ended: true
  totals:
    North-South: 1510
    East-West: 0
*/
type SessionResult struct {
	SessionEnded bool           `yaml:"session-ended"`
	Totals       map[string]int `yaml:"totals"`
}

type GameScript struct {
	Disabled bool          `yaml:"disabled"`
	Name     string        `yaml:"name"`
	Table    TableConfig   `yaml:"table"`
	Players  []GamePlayer  `yaml:"players"`
	Deals    []Deal        `yaml:"deals"`
	Result   SessionResult `yaml:"result"`

	testTable *TestTable
	filename  string
	result    *ScriptTestResult
}
