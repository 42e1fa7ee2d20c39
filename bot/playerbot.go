package bot

import (
	"context"
	"sync"
	"time"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var botPlayerLogger = log.With().Str("logger_name", "bot::player").Logger()

// Config holds the configuration for a computer player.
type Config struct {
	Name string
	// ActionPause is the minimum time between two actions of this player.
	ActionPause time.Duration
	// StayAfterSession keeps the player seated when a session ends.
	StayAfterSession bool
}

// SimpleComputerPlayer plays on its own goroutine. It sleeps until the table
// prompts it or publishes an event, then checks whether it may act.
type SimpleComputerPlayer struct {
	ID     string
	config Config
	logger zerolog.Logger

	limiter *rate.Limiter
	ctx     context.Context
	cancel  context.CancelFunc
	wake    chan struct{}
	done    chan struct{}

	mu          sync.Mutex
	table       *game.Table
	sub         *game.Subscription
	deadline    time.Time
	sessionOver bool
	calls       int
	plays       int
}

func NewSimpleComputerPlayer(config Config) *SimpleComputerPlayer {
	id := uuid.New().String()
	if config.Name == "" {
		config.Name = "bot-" + id[:8]
	}
	limit := rate.Inf
	if config.ActionPause > 0 {
		limit = rate.Every(config.ActionPause)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SimpleComputerPlayer{
		ID:      id,
		config:  config,
		logger:  botPlayerLogger.With().Str(logging.PlayerNameKey, config.Name).Logger(),
		limiter: rate.NewLimiter(limit, 1),
		ctx:     ctx,
		cancel:  cancel,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *SimpleComputerPlayer) Name() string {
	return p.config.Name
}

func (p *SimpleComputerPlayer) PlaceBid()     { p.signal() }
func (p *SimpleComputerPlayer) Play()         { p.signal() }
func (p *SimpleComputerPlayer) PlayForDummy() { p.signal() }

func (p *SimpleComputerPlayer) PlaceBidNow(deadline time.Time) {
	p.setDeadline(deadline)
	p.signal()
}

func (p *SimpleComputerPlayer) PlayNow(deadline time.Time) {
	p.setDeadline(deadline)
	p.signal()
}

func (p *SimpleComputerPlayer) PlayForDummyNow(deadline time.Time) {
	p.setDeadline(deadline)
	p.signal()
}

// JoinTable subscribes to the table, takes a seat and starts the decision loop.
func (p *SimpleComputerPlayer) JoinTable(table *game.Table) (game.Seat, error) {
	p.mu.Lock()
	if p.table != nil {
		p.mu.Unlock()
		return game.SeatNone, errors.Errorf("%s is already at a table", p.config.Name)
	}
	p.table = table
	p.sub = table.Subscribe(p.onEvent)
	p.mu.Unlock()

	seat, err := table.SitDown(p)
	if err != nil {
		p.sub.Unsubscribe()
		p.mu.Lock()
		p.table = nil
		p.mu.Unlock()
		return game.SeatNone, errors.Wrapf(err, "%s could not sit down", p.config.Name)
	}
	p.logger.Info().Str(logging.SeatKey, seat.String()).Str(logging.TableIDKey, table.ID).Msg("Joined table")
	go p.run()
	return seat, nil
}

// Stop leaves the table and ends the decision loop.
func (p *SimpleComputerPlayer) Stop() {
	p.cancel()
}

// Done is closed once the player has left the table.
func (p *SimpleComputerPlayer) Done() <-chan struct{} {
	return p.done
}

// Stats returns the number of accepted calls and plays.
func (p *SimpleComputerPlayer) Stats() (calls int, plays int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls, p.plays
}

func (p *SimpleComputerPlayer) onEvent(e game.Event) {
	if e.Type == game.SessionHasEnded && !p.config.StayAfterSession {
		p.mu.Lock()
		p.sessionOver = true
		p.mu.Unlock()
	}
	p.signal()
}

func (p *SimpleComputerPlayer) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *SimpleComputerPlayer) setDeadline(deadline time.Time) {
	p.mu.Lock()
	p.deadline = deadline
	p.mu.Unlock()
}

func (p *SimpleComputerPlayer) run() {
	defer close(p.done)
	defer p.leave()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.wake:
		}
		p.mu.Lock()
		over := p.sessionOver
		p.mu.Unlock()
		if over {
			p.logger.Info().Msg("Session over, leaving the table")
			return
		}
		p.act()
	}
}

func (p *SimpleComputerPlayer) leave() {
	p.sub.Unsubscribe()
	p.table.Quit(p)
}

func (p *SimpleComputerPlayer) act() {
	table := p.table
	seat := table.SeatOf(p)
	switch {
	case table.AllowingBidFrom(seat):
		hand, err := table.GetHand(p)
		if err != nil {
			p.logger.Warn().Err(err).Msg("Could not read hand")
			return
		}
		call := chooseCall(seat, hand, table.Auction())
		p.pace()
		if err := table.MakeCall(p, call); err != nil {
			p.logger.Warn().Err(err).Str(logging.CallKey, call.String()).Msg("Call rejected")
			return
		}
		p.mu.Lock()
		p.calls++
		p.mu.Unlock()
		p.logger.Debug().Str(logging.SeatKey, seat.String()).Str(logging.CallKey, call.String()).Msg("Called")

	case table.AllowingCardFrom(seat):
		hand, err := table.GetHand(p)
		if err != nil {
			p.logger.Warn().Err(err).Msg("Could not read hand")
			return
		}
		p.playFrom(seat, hand)

	case table.AllowingCardFromDummyBy(seat):
		p.playFrom(table.Dummy(), table.DummiesCards())
	}
}

func (p *SimpleComputerPlayer) playFrom(from game.Seat, hand []cards.Card) {
	card, ok := chooseCard(hand, p.table.CurrentTrick())
	if !ok {
		return
	}
	p.pace()
	if err := p.table.PlayCard(p, card); err != nil {
		p.logger.Warn().Err(err).Str(logging.CardKey, card.String()).Msg("Play rejected")
		return
	}
	p.mu.Lock()
	p.plays++
	p.mu.Unlock()
	p.logger.Debug().Str(logging.SeatKey, from.String()).Str(logging.CardKey, card.String()).Msg("Played")
}

// pace waits for the action limiter, but never beyond a deadline given by a timed prompt.
func (p *SimpleComputerPlayer) pace() {
	p.mu.Lock()
	deadline := p.deadline
	p.deadline = time.Time{}
	p.mu.Unlock()

	ctx := p.ctx
	if !deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}
	if err := p.limiter.Wait(ctx); err != nil {
		p.logger.Debug().Err(err).Msg("Acting without pause")
	}
}
