package test

import (
	"fmt"
	"strings"
	"time"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
)

const defaultWait = 2 * time.Second

func (g *GameScript) run(t *TestDriver) error {
	decks, err := g.validate()
	if err != nil {
		g.result.addError(err)
		return err
	}

	err = g.configure(decks)
	if err != nil {
		g.result.addError(err)
		return err
	}
	defer g.testTable.Close()

	err = g.playDeals()
	if err != nil {
		return err
	}

	return g.verifySession()
}

// validate checks the script and builds a stacked deck for every deal that sets up hands.
func (g *GameScript) validate() ([]*cards.Deck, error) {
	if len(g.Players) != len(game.Seats) {
		return nil, fmt.Errorf("a table needs %d players, the script has %d", len(game.Seats), len(g.Players))
	}
	names := mapset.NewSet()
	for _, p := range g.Players {
		if !names.Add(p.Name) {
			return nil, fmt.Errorf("player %q is listed twice", p.Name)
		}
	}
	if len(g.Deals) == 0 {
		return nil, errors.New("the script has no deals")
	}

	decks := make([]*cards.Deck, 0, len(g.Deals))
	dealer := game.SeatNone
	for i := range g.Deals {
		deal := &g.Deals[i]
		if deal.Setup.Dealer != "" {
			seat, err := game.ParseSeat(deal.Setup.Dealer)
			if err != nil {
				return nil, errors.Wrapf(err, "deal %d", i+1)
			}
			dealer = seat
		} else if dealer == game.SeatNone {
			return nil, errors.New("the first deal must name a dealer")
		} else if i > 0 {
			dealer = dealer.Next()
		}
		deck, err := deal.Setup.deck(dealer)
		if err != nil {
			return nil, errors.Wrapf(err, "deal %d", i+1)
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

func (s *DealSetup) deck(dealer game.Seat) (*cards.Deck, error) {
	if len(s.Suits) == 0 && len(s.Hands) == 0 {
		return nil, nil
	}
	hands := make(map[game.Seat][]cards.Card)
	seen := mapset.NewSet()
	for name, suitName := range s.Suits {
		seat, err := game.ParseSeat(name)
		if err != nil {
			return nil, err
		}
		suit, err := cards.ParseSuit(suitName)
		if err != nil || !suit.IsCardSuit() {
			return nil, fmt.Errorf("%s: %q is not a suit", name, suitName)
		}
		if !seen.Add(seat) {
			return nil, fmt.Errorf("%s is set up twice", seat)
		}
		for r := cards.Two; r <= cards.Ace; r++ {
			hands[seat] = append(hands[seat], cards.Card{Rank: r, Suit: suit})
		}
	}
	for name, strs := range s.Hands {
		seat, err := game.ParseSeat(name)
		if err != nil {
			return nil, err
		}
		if !seen.Add(seat) {
			return nil, fmt.Errorf("%s is set up twice", seat)
		}
		hand, err := cards.ParseCards(strs)
		if err != nil {
			return nil, errors.Wrapf(err, "%s's hand", seat)
		}
		hands[seat] = hand
	}
	return game.StackedDeck(dealer, hands)
}

func (g *GameScript) configure(decks []*cards.Deck) error {
	g.testTable = NewTestTable(g.Table, decks)
	if err := g.testTable.Seat(g.Players); err != nil {
		return err
	}
	dealer, _ := game.ParseSeat(g.Deals[0].Setup.Dealer)
	return g.testTable.table.StartSession(dealer)
}

func (g *GameScript) wait() time.Duration {
	if g.Table.Wait > 0 {
		return time.Duration(g.Table.Wait) * time.Second
	}
	return defaultWait
}

func (g *GameScript) playDeals() error {
	for i := range g.Deals {
		deal := &g.Deals[i]
		deal.num = i + 1
		deal.gameScript = g
		if err := deal.run(); err != nil {
			g.result.addError(err)
			return err
		}
	}
	if g.Table.MaxDeals == 0 {
		return g.testTable.table.EndSession()
	}
	return nil
}

func (d *Deal) run() error {
	tt := d.gameScript.testTable
	observer := tt.Observer()
	begun, ok := observer.WaitFor(game.DealHasBegun, d.num, d.gameScript.wait())
	if !ok {
		return fmt.Errorf("[deal %d] the deal did not begin", d.num)
	}
	if d.Verify.Dealer != "" && begun.Dealer.String() != d.Verify.Dealer {
		return fmt.Errorf("[deal %d] expected dealer %s, actual %s", d.num, d.Verify.Dealer, begun.Dealer)
	}

	err := d.bid(begun.Dealer)
	if err != nil {
		return err
	}

	if d.Verify.ThrownIn {
		if _, ok := observer.WaitFor(game.DealHasBeenAbandoned, d.num, d.gameScript.wait()); !ok {
			return fmt.Errorf("[deal %d] expected the deal to be thrown in", d.num)
		}
		return nil
	}

	err = d.play()
	if err != nil {
		return err
	}
	return d.verify()
}

func (d *Deal) bid(dealer game.Seat) error {
	tt := d.gameScript.testTable
	seat := dealer
	for _, step := range d.Auction {
		caller := seat
		if step.Seat != "" {
			s, err := game.ParseSeat(step.Seat)
			if err != nil {
				return errors.Wrapf(err, "[deal %d auction]", d.num)
			}
			caller = s
		}
		err := tt.makeCall(caller, step.Call)
		if step.Reject != "" {
			if err == nil {
				return fmt.Errorf("[deal %d auction] %s %s was accepted, expected %s", d.num, caller, step.Call, step.Reject)
			}
			if reason := game.RejectionReason(err).String(); reason != step.Reject {
				return fmt.Errorf("[deal %d auction] %s %s rejected with %s (%s), expected %s",
					d.num, caller, step.Call, reason, err, step.Reject)
			}
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "[deal %d auction] %s %s", d.num, caller, step.Call)
		}
		seat = caller.Next()
	}
	return nil
}

func (d *Deal) play() error {
	tt := d.gameScript.testTable
	if !tt.table.InSession() || tt.table.Phase() != game.PhasePlaying {
		return fmt.Errorf("[deal %d] expected play to begin, phase is %s", d.num, tt.table.Phase())
	}
	for _, str := range d.Play.Cards {
		card, err := cards.ParseCard(str)
		if err != nil {
			return errors.Wrapf(err, "[deal %d play]", d.num)
		}
		hot := tt.table.HotSeat()
		if err := tt.playCard(card); err != nil {
			return errors.Wrapf(err, "[deal %d play] %s plays %s", d.num, hot, card)
		}
	}
	if !d.Play.Auto {
		return nil
	}
	for tt.table.DealNumber() == d.num && tt.table.Phase() == game.PhasePlaying {
		card, err := tt.firstLegalCard()
		if err != nil {
			return errors.Wrapf(err, "[deal %d play]", d.num)
		}
		if err := tt.playCard(card); err != nil {
			return errors.Wrapf(err, "[deal %d play] %s", d.num, card)
		}
	}
	return nil
}

func (d *Deal) verify() error {
	observer := d.gameScript.testTable.Observer()
	verify := d.Verify
	var failures []string

	// Events arrive in order, so everything before the score has been seen once it arrives.
	won, ok := observer.WaitFor(game.DealHasBeenWon, d.num, d.gameScript.wait())
	if !ok {
		return fmt.Errorf("[deal %d verify] the deal was not scored", d.num)
	}

	if complete := observer.Events(game.BiddingIsComplete, d.num); len(complete) == 1 {
		e := complete[0]
		if verify.Contract != "" && e.Contract.String() != verify.Contract {
			failures = append(failures, fmt.Sprintf("contract: expected %s actual %s", verify.Contract, e.Contract))
		}
		if verify.Declarer != "" && e.Declarer.String() != verify.Declarer {
			failures = append(failures, fmt.Sprintf("declarer: expected %s actual %s", verify.Declarer, e.Declarer))
		}
		if verify.Dummy != "" && e.Dummy.String() != verify.Dummy {
			failures = append(failures, fmt.Sprintf("dummy: expected %s actual %s", verify.Dummy, e.Dummy))
		}
	} else {
		failures = append(failures, "the auction did not complete")
	}

	score := won.Score
	if verify.DeclarerTricks != nil && score.DeclarerTricks != *verify.DeclarerTricks {
		failures = append(failures, fmt.Sprintf("declarer tricks: expected %d actual %d", *verify.DeclarerTricks, score.DeclarerTricks))
	}
	if verify.Result != "" && score.Result() != verify.Result {
		failures = append(failures, fmt.Sprintf("result: expected %q actual %q", verify.Result, score.Result()))
	}
	if verify.DeclarerPoints != nil && score.DeclarerPoints() != *verify.DeclarerPoints {
		failures = append(failures, fmt.Sprintf("declarer points: expected %d actual %d", *verify.DeclarerPoints, score.DeclarerPoints()))
	}
	if verify.DefenderPoints != nil && score.DefenderPoints() != *verify.DefenderPoints {
		failures = append(failures, fmt.Sprintf("defender points: expected %d actual %d", *verify.DefenderPoints, score.DefenderPoints()))
	}
	failures = append(failures, compareTotals(verify.Totals, won.Totals)...)

	if len(failures) > 0 {
		return fmt.Errorf("[deal %d verify] %s", d.num, strings.Join(failures, "; "))
	}
	testDriverLogger.Debug().
		Str(logging.ScriptKey, d.gameScript.filename).
		Int(logging.DealNumKey, d.num).
		Msg("Deal verified")
	return nil
}

func (g *GameScript) verifySession() error {
	observer := g.testTable.Observer()
	ended, ok := observer.WaitFor(game.SessionHasEnded, 0, g.wait())
	if g.Result.SessionEnded && !ok {
		e := errors.New("[result] the session did not end")
		g.result.addError(e)
		return e
	}
	if !ok {
		return nil
	}
	if failures := compareTotals(g.Result.Totals, ended.Totals); len(failures) > 0 {
		e := fmt.Errorf("[result] %s", strings.Join(failures, "; "))
		g.result.addError(e)
		return e
	}
	return nil
}

func compareTotals(expected map[string]int, actual map[game.Side]int) []string {
	var failures []string
	for _, side := range game.Sides {
		want, ok := expected[side.String()]
		if !ok {
			continue
		}
		if actual[side] != want {
			failures = append(failures, fmt.Sprintf("%s total: expected %d actual %d", side, want, actual[side]))
		}
	}
	return failures
}
