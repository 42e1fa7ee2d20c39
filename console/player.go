package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

var consoleLogger = log.With().Str("logger_name", "console::player").Logger()

// ConsolePlayer is a human at a terminal. It reads one call or card per line.
type ConsolePlayer struct {
	ID   string
	name string

	out   io.Writer
	outMu sync.Mutex
	lines chan string

	// TimeLimit turns every prompt into a timed one. Zero waits forever.
	TimeLimit time.Duration

	mu    sync.Mutex
	table *game.Table
	sub   *game.Subscription
}

func NewConsolePlayer(name string, in io.Reader, out io.Writer) *ConsolePlayer {
	p := &ConsolePlayer{
		ID:    uuid.New().String(),
		name:  name,
		out:   out,
		lines: make(chan string),
	}
	go p.readLines(in)
	return p
}

func (p *ConsolePlayer) readLines(in io.Reader) {
	defer close(p.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p.lines <- line
	}
}

func (p *ConsolePlayer) Name() string {
	return p.name
}

func (p *ConsolePlayer) JoinTable(table *game.Table) (game.Seat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.table != nil {
		return game.SeatNone, errors.Errorf("%s is already at a table", p.name)
	}
	sub := table.Subscribe(p.onEvent)
	seat, err := table.SitDown(p)
	if err != nil {
		sub.Unsubscribe()
		return game.SeatNone, err
	}
	p.table, p.sub = table, sub
	p.printf("%s\n", pterm.LightCyan(fmt.Sprintf("Welcome %s, you are sitting %s.", p.name, seat)))
	return seat, nil
}

func (p *ConsolePlayer) Leave() {
	p.mu.Lock()
	table, sub := p.table, p.sub
	p.table, p.sub = nil, nil
	p.mu.Unlock()
	if table == nil {
		return
	}
	sub.Unsubscribe()
	table.Quit(p)
}

func (p *ConsolePlayer) PlaceBid()     { p.PlaceBidNow(p.deadline()) }
func (p *ConsolePlayer) Play()         { p.PlayNow(p.deadline()) }
func (p *ConsolePlayer) PlayForDummy() { p.PlayForDummyNow(p.deadline()) }

func (p *ConsolePlayer) deadline() time.Time {
	if p.TimeLimit <= 0 {
		return time.Time{}
	}
	return time.Now().Add(p.TimeLimit)
}

func (p *ConsolePlayer) currentTable() *game.Table {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table
}

func (p *ConsolePlayer) PlaceBidNow(deadline time.Time) {
	table := p.currentTable()
	if table == nil {
		return
	}
	seat := table.SeatOf(p)
	hand, err := table.GetHand(p)
	if err != nil {
		return
	}
	p.printf("%s\n", pterm.DefaultBox.WithTitle(seat.String()).Sprint(cards.PrintFormat(hand)))
	p.printf("Auction: %s\n", auctionText(table.Auction()))

	for table.AllowingBidFrom(seat) {
		line, ok := p.readLine("Your call (P, D, R or a bid such as 1S, 3NT): ", deadline)
		if !ok {
			p.printf("%s\n", pterm.LightRed("Time is up, passing."))
			p.report(table.MakeCall(p, game.NewPass(seat)))
			return
		}
		if line == "" {
			return
		}
		call, err := game.ParseCall(seat, line)
		if err != nil {
			p.printf("%s\n", pterm.LightRed(err.Error()))
			continue
		}
		if err := table.MakeCall(p, call); err != nil {
			p.printf("%s\n", pterm.LightRed(err.Error()))
			continue
		}
		return
	}
}

func (p *ConsolePlayer) PlayNow(deadline time.Time) {
	table := p.currentTable()
	if table == nil {
		return
	}
	seat := table.SeatOf(p)
	p.playLoop(table, seat, deadline, func() bool { return table.AllowingCardFrom(seat) }, func() []cards.Card {
		hand, _ := table.GetHand(p)
		return hand
	})
}

func (p *ConsolePlayer) PlayForDummyNow(deadline time.Time) {
	table := p.currentTable()
	if table == nil {
		return
	}
	seat := table.SeatOf(p)
	p.playLoop(table, table.Dummy(), deadline, func() bool { return table.AllowingCardFromDummyBy(seat) }, table.DummiesCards)
}

func (p *ConsolePlayer) playLoop(table *game.Table, from game.Seat, deadline time.Time, allowed func() bool, hand func() []cards.Card) {
	for allowed() {
		held := hand()
		p.printf("%s\n", pterm.DefaultBox.WithTitle(from.String()).Sprint(cards.PrintFormat(held)))
		p.printf("On the table: %s\n", playsText(table.CardsOnTheTable()))
		line, ok := p.readLine(fmt.Sprintf("Card to play from %s: ", from), deadline)
		if !ok {
			p.printf("%s\n", pterm.LightRed("Time is up, playing the first legal card."))
			p.report(playFirstLegal(table, p, held))
			return
		}
		if line == "" {
			return
		}
		card, err := cards.ParseCard(line)
		if err != nil {
			p.printf("%s\n", pterm.LightRed(err.Error()))
			continue
		}
		if err := table.PlayCard(p, card); err != nil {
			p.printf("%s\n", pterm.LightRed(err.Error()))
			continue
		}
		return
	}
}

func playFirstLegal(table *game.Table, p game.Player, held []cards.Card) error {
	trick := table.CurrentTrick()
	for _, c := range held {
		if trick == nil || trick.IsLegalPlay(c, held) {
			return table.PlayCard(p, c)
		}
	}
	return errors.New("no legal card to play")
}

// readLine returns ok=false when the deadline passes, and an empty line when input has ended.
func (p *ConsolePlayer) readLine(prompt string, deadline time.Time) (string, bool) {
	p.printf("%s", pterm.LightCyan(prompt))
	var timeout <-chan time.Time
	if !deadline.IsZero() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case line, open := <-p.lines:
		if !open {
			consoleLogger.Info().Str(logging.PlayerNameKey, p.name).Msg("Input closed")
			return "", true
		}
		return line, true
	case <-timeout:
		return "", false
	}
}

func (p *ConsolePlayer) report(err error) {
	if err != nil {
		p.printf("%s\n", pterm.LightRed(err.Error()))
	}
}

func (p *ConsolePlayer) onEvent(e game.Event) {
	switch e.Type {
	case game.PlayerHasJoined:
		p.printf("%s joined as %s.\n", e.PlayerName, e.Seat)
	case game.PlayerHasQuit:
		p.printf("%s (%s) left the table.\n", e.PlayerName, e.Seat)
	case game.DealHasBegun:
		p.printf("%s\n", pterm.Bold.Sprintf("Deal %d, dealer %s", e.DealNum, e.Dealer))
	case game.CallHasBeenMade:
		p.printf("%s: %s\n", e.Seat, e.Call.Glyph())
	case game.DealHasBeenAbandoned:
		p.printf("Deal %d abandoned.\n", e.DealNum)
	case game.BiddingIsComplete:
		p.printf("%s\n", pterm.LightGreen(fmt.Sprintf("Contract %s by %s. %s is dummy.", e.Contract, e.Declarer, e.Dummy)))
	case game.DummyHasExposedHand:
		p.printf("%s\n", pterm.DefaultBox.WithTitle("Dummy "+e.Seat.String()).Sprint(cards.PrintFormat(e.Cards)))
	case game.CardHasBeenPlayed:
		p.printf("%s plays %s\n", e.Seat, e.Card.Glyph())
	case game.TrickHasBeenWon:
		p.printf("%s wins the trick.\n", e.Winner)
	case game.DealHasBeenWon:
		p.printf("%s\n", pterm.LightGreen(e.Score.String()))
	case game.SessionHasEnded:
		p.printf("%s\n", pterm.Bold.Sprintf("Session over. North-South %d, East-West %d.",
			e.Totals[game.NorthSouth], e.Totals[game.EastWest]))
	}
}

func (p *ConsolePlayer) printf(format string, args ...interface{}) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func auctionText(calls []game.Call) string {
	if len(calls) == 0 {
		return "(none)"
	}
	strs := make([]string, len(calls))
	for i, c := range calls {
		strs[i] = c.Bidder.Letter() + ":" + c.Glyph()
	}
	return strings.Join(strs, " ")
}

func playsText(plays []game.Play) string {
	if len(plays) == 0 {
		return "(empty)"
	}
	strs := make([]string, len(plays))
	for i, pl := range plays {
		strs[i] = pl.Seat.Letter() + ":" + pl.Card.Glyph()
	}
	return strings.Join(strs, " ")
}
