package game

import (
	"sync"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/logging"
	"bridgeit.com/server/util"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var tableLogger = log.With().Str("logger_name", "game::table").Logger()

// Phase is the table's position in the session lifecycle.
type Phase string

const (
	PhaseEmpty        Phase = "empty"
	PhaseSeating      Phase = "seating"
	PhaseDealing      Phase = "dealing"
	PhaseBidding      Phase = "bidding"
	PhasePlaying      Phase = "playing"
	PhaseDealComplete Phase = "deal_complete"
	PhaseSessionEnded Phase = "session_ended"
)

const (
	evSit         = "sit"
	evEmptied     = "emptied"
	evStart       = "start"
	evDeal        = "deal"
	evThrowIn     = "throw_in"
	evAuctionDone = "auction_done"
	evLastTrick   = "last_trick"
	evNextDeal    = "next_deal"
	evEndSession  = "end_session"
	evReopen      = "reopen"
)

func newPhaseMachine(tableID string) *fsm.FSM {
	inSession := []string{string(PhaseDealing), string(PhaseBidding), string(PhasePlaying), string(PhaseDealComplete)}
	return fsm.NewFSM(
		string(PhaseEmpty),
		fsm.Events{
			{Name: evSit, Src: []string{string(PhaseEmpty), string(PhaseSeating)}, Dst: string(PhaseSeating)},
			{Name: evEmptied, Src: []string{string(PhaseSeating), string(PhaseSessionEnded)}, Dst: string(PhaseEmpty)},
			{Name: evStart, Src: []string{string(PhaseSeating), string(PhaseSessionEnded)}, Dst: string(PhaseDealing)},
			{Name: evDeal, Src: []string{string(PhaseDealing)}, Dst: string(PhaseBidding)},
			{Name: evThrowIn, Src: []string{string(PhaseBidding)}, Dst: string(PhaseDealing)},
			{Name: evAuctionDone, Src: []string{string(PhaseBidding)}, Dst: string(PhasePlaying)},
			{Name: evLastTrick, Src: []string{string(PhasePlaying)}, Dst: string(PhaseDealComplete)},
			{Name: evNextDeal, Src: []string{string(PhaseDealComplete)}, Dst: string(PhaseDealing)},
			{Name: evEndSession, Src: inSession, Dst: string(PhaseSessionEnded)},
			{Name: evReopen, Src: []string{string(PhaseSessionEnded)}, Dst: string(PhaseSeating)},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				tableLogger.Debug().
					Str(logging.TableIDKey, tableID).
					Str(logging.PhaseKey, e.Dst).
					Msgf("Phase %s -> %s on %s", e.Src, e.Dst, e.Event)
			},
		},
	)
}

// TableConfig holds the settings fixed for the lifetime of a Table.
type TableConfig struct {
	// MaxDeals is the number of deals to play out before the session ends. Zero means unlimited.
	MaxDeals int
	// DeckSource supplies the deck for each deal (1-based within the session).
	// A nil source or a nil deck means a freshly shuffled pack.
	DeckSource func(dealNum int) *cards.Deck
	Metrics    *util.TableMetrics
}

// Table is the bridge table state machine. It is safe for concurrent use.
//
// Every state changing operation runs under one lock from validation to
// commit. Events are published after commit and delivered asynchronously.
type Table struct {
	ID      string
	config  TableConfig
	metrics *util.TableMetrics

	lock     sync.RWMutex
	phase    *fsm.FSM
	notifier notifier
	seq      uint64

	players   map[Seat]Player
	seats     map[Player]Seat
	openSeats []Seat
	prompts   map[Seat]*mailbox

	inSession bool
	dealNum   int
	dealsWon  int
	totals    map[Side]int

	dealer       Seat
	declarer     Seat
	dummy        Seat
	hotSeat      Seat
	trump        cards.Suit
	contract     *Contract
	hands        map[Seat]*Hand
	calls        []Call
	auction      []Call
	tricks       []*Trick
	dummyExposed bool
}

func NewTable(config TableConfig) *Table {
	id := uuid.New().String()
	t := &Table{
		ID:        id,
		config:    config,
		metrics:   config.Metrics,
		phase:     newPhaseMachine(id),
		players:   make(map[Seat]Player),
		seats:     make(map[Player]Seat),
		openSeats: append([]Seat(nil), SeatingOrder...),
		prompts:   make(map[Seat]*mailbox),
		totals:    make(map[Side]int),
	}
	if t.metrics == nil {
		t.metrics = util.Metrics
	}
	t.resetDeal()
	return t
}

// Subscribe registers listener for the given event types, or for all events when none are given.
func (t *Table) Subscribe(listener Listener, types ...EventType) *Subscription {
	return t.notifier.add(listener, types...)
}

// Close stops all event and prompt delivery.
func (t *Table) Close() {
	t.notifier.closeAll()
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, box := range t.prompts {
		box.close()
	}
}

func (t *Table) SitDown(player Player) (Seat, error) {
	if player == nil {
		return SeatNone, ErrNilPlayer
	}
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.seats[player]; ok {
		return SeatNone, ErrAlreadySeated
	}
	if len(t.openSeats) == 0 || !t.phase.Can(evSit) {
		return SeatNone, ErrTableFull
	}

	seat := t.openSeats[0]
	t.openSeats = t.openSeats[1:]
	t.players[seat] = player
	t.seats[player] = seat
	t.prompts[seat] = newMailbox(t.ID + "/" + seat.String())
	t.fire(evSit)
	t.metrics.PlayerSeated()

	tableLogger.Info().
		Str(logging.TableIDKey, t.ID).
		Str(logging.PlayerNameKey, player.Name()).
		Str(logging.SeatKey, seat.String()).
		Msg("Player sat down")
	t.emit(Event{Type: PlayerHasJoined, Seat: seat, PlayerName: player.Name()})
	return seat, nil
}

// StartSession begins the first deal with the given dealer. All four seats must be filled.
func (t *Table) StartSession(dealer Seat) error {
	if !dealer.IsValid() {
		return errors.Errorf("invalid dealer %v", dealer)
	}
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.inSession {
		return ErrSessionInProgress
	}
	if len(t.players) != len(Seats) {
		return ErrTableNotFull
	}

	t.inSession = true
	t.dealNum = 0
	t.dealsWon = 0
	t.totals = make(map[Side]int)
	t.resetDeal()

	tableLogger.Info().Str(logging.TableIDKey, t.ID).Str("dealer", dealer.String()).Msg("Session starting")
	t.emit(Event{Type: SessionHasBegun, Dealer: dealer})
	t.fire(evStart)
	t.startDeal(dealer)
	return nil
}

// EndSession abandons any deal in progress and ends the session.
func (t *Table) EndSession() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.inSession {
		return ErrNoSession
	}
	t.abandonDealInProgress()
	t.endSession()
	return nil
}

func (t *Table) MakeCall(player Player, call Call) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	seat, ok := t.seats[player]
	if !ok {
		return t.reject(newCallError(ReasonNotSeated, "Player is not seated at the table."))
	}
	if t.currentPhase() != PhaseBidding && t.contract == nil {
		return t.reject(newCallError(ReasonNotYourTurn, "There is no auction in progress."))
	}
	if seat != t.hotSeat {
		return t.reject(newCallError(ReasonNotYourTurn, "It is %s's turn, not %s's.", t.hotSeat, seat))
	}
	if call.Bidder != seat {
		return t.reject(newCallError(ReasonWrongBidder, "The call is from %s but %s is calling.", call.Bidder, seat))
	}
	if t.contract != nil {
		return t.reject(newCallError(ReasonContractEstablished, "The auction is over; the contract is %s.", t.contract))
	}
	if err := CheckCall(t.calls, call); err != nil {
		return t.reject(err)
	}

	t.calls = append(t.calls, call)
	t.auction = append(t.auction, call)
	t.metrics.CallMade()
	tableLogger.Debug().
		Str(logging.TableIDKey, t.ID).
		Int(logging.DealNumKey, t.dealNum).
		Str(logging.SeatKey, seat.String()).
		Str(logging.CallKey, call.String()).
		Msg("Call made")
	c := call
	t.emit(Event{Type: CallHasBeenMade, Seat: seat, Call: &c})

	switch {
	case AreLastFourPasses(t.calls):
		t.throwIn()
	case HasBidAndLastThreeArePasses(t.calls):
		t.completeAuction()
	default:
		t.hotSeat = t.hotSeat.Next()
		t.promptBid(t.hotSeat)
	}
	return nil
}

func (t *Table) PlayCard(player Player, card cards.Card) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	seat, ok := t.seats[player]
	if !ok {
		return t.reject(newPlayError(ReasonNotSeated, "Player is not seated at the table."))
	}
	if t.currentPhase() != PhasePlaying || t.contract == nil || len(t.tricks) == 0 {
		return t.reject(newPlayError(ReasonBiddingNotDone, "Cards cannot be played until the auction is complete."))
	}
	if seat == t.dummy {
		return t.reject(newPlayError(ReasonDummyCannotPlay, "Dummy does not play. %s plays dummy's cards.", t.declarer))
	}
	if seat != t.hotSeat && !(t.hotSeat == t.dummy && seat == t.declarer) {
		return t.reject(newPlayError(ReasonNotYourTurn, "It is %s's turn to play.", t.hotSeat))
	}
	hand := t.hands[t.hotSeat]
	if hand.Len() == 0 {
		return t.reject(newPlayError(ReasonNoCards, "%s has no cards left.", t.hotSeat))
	}
	if !hand.Contains(card) {
		return t.reject(newPlayError(ReasonNotYourCard, "%s does not hold the %s.", t.hotSeat, card.LongString()))
	}
	trick := t.currentTrick()
	if trick.Done() {
		return t.reject(newPlayError(ReasonTrickFinished, "The current trick is finished."))
	}
	if !trick.IsLegalPlay(card, hand.Cards()) {
		return t.reject(newPlayError(ReasonMustFollowSuit, "%s were led. You can and must follow suit.", trick.Led().Name()))
	}

	playedFrom := t.hotSeat
	hand.remove(card)
	if err := trick.AddCard(card, playedFrom); err != nil {
		panic(errors.Wrapf(err, "table %s: adding validated card %s", t.ID, card))
	}
	t.metrics.CardPlayed()
	tableLogger.Debug().
		Str(logging.TableIDKey, t.ID).
		Int(logging.DealNumKey, t.dealNum).
		Str(logging.SeatKey, playedFrom.String()).
		Str(logging.CardKey, card.String()).
		Msg("Card played")
	c := card
	t.emit(Event{Type: CardHasBeenPlayed, Seat: playedFrom, Card: &c, Trick: trick.Clone()})

	if len(t.tricks) == 1 && len(trick.plays) == 1 {
		t.dummyExposed = true
		t.emit(Event{Type: DummyHasExposedHand, Seat: t.dummy, Cards: t.hands[t.dummy].Cards()})
	}

	if !trick.Done() {
		t.hotSeat = t.hotSeat.Next()
		t.promptPlay()
		return nil
	}

	winner, err := trick.Winner()
	if err != nil {
		panic(errors.Wrapf(err, "table %s: winner of a finished trick", t.ID))
	}
	t.emit(Event{Type: TrickHasBeenWon, Winner: winner, Trick: trick.Clone()})
	if len(t.tricks) == tricksInDeal {
		t.finishDeal()
		return nil
	}
	t.tricks = append(t.tricks, NewTrick(t.trump))
	t.hotSeat = winner
	t.promptPlay()
	return nil
}

// Quit frees the player's seat. A session in progress ends. Quitting when not seated does nothing.
func (t *Table) Quit(player Player) {
	t.lock.Lock()
	defer t.lock.Unlock()

	seat, ok := t.seats[player]
	if !ok {
		return
	}
	delete(t.seats, player)
	delete(t.players, seat)
	t.openSeats = append(t.openSeats, seat)
	if box, ok := t.prompts[seat]; ok {
		box.close()
		delete(t.prompts, seat)
	}
	t.metrics.PlayerLeft()

	tableLogger.Info().
		Str(logging.TableIDKey, t.ID).
		Str(logging.PlayerNameKey, player.Name()).
		Str(logging.SeatKey, seat.String()).
		Msg("Player quit")
	t.emit(Event{Type: PlayerHasQuit, Seat: seat, PlayerName: player.Name()})

	if t.inSession {
		t.abandonDealInProgress()
		t.endSession()
	}
	if t.currentPhase() == PhaseSessionEnded {
		t.fire(evReopen)
	}
	if len(t.players) == 0 {
		t.fire(evEmptied)
	}
}

// startDeal deals a new hand. The table must be in the dealing phase.
func (t *Table) startDeal(dealer Seat) {
	deck := t.newDeck(t.dealNum + 1)

	t.resetDeal()
	t.dealNum++
	t.dealer = dealer
	t.hotSeat = dealer
	t.metrics.DealStarted()

	dealLogger := logging.TableLogger(tableLogger, t.ID, t.dealNum)
	dealLogger.Debug().Str("dealer", dealer.String()).Msg("Deal starting")
	t.emit(Event{Type: DealHasBegun, Dealer: dealer})

	dealt := make(map[Seat][]cards.Card)
	seat := dealer.Next()
	for _, c := range deck.Draw(cards.DeckSize) {
		dealt[seat] = append(dealt[seat], c)
		seat = seat.Next()
	}
	for _, s := range Seats {
		hand, err := NewHand(dealt[s])
		if err != nil {
			panic(errors.Wrapf(err, "table %s: dealing to %s", t.ID, s))
		}
		t.hands[s] = hand
	}

	t.emit(Event{Type: CardsHaveBeenDealt, Dealer: dealer})
	t.fire(evDeal)
	t.promptBid(dealer)
}

// newDeck copies the source deck for dealNum, so a source may hand out the same deck every deal.
// A source deck that is not a full pack is replaced by a shuffled one.
func (t *Table) newDeck(dealNum int) *cards.Deck {
	if t.config.DeckSource == nil {
		return cards.NewDeck(nil)
	}
	source := t.config.DeckSource(dealNum)
	if source == nil {
		return cards.NewDeck(nil)
	}
	deck, err := cards.NewDeckFromCards(source.Cards())
	if err != nil {
		tableLogger.Error().Err(err).
			Str(logging.TableIDKey, t.ID).
			Int(logging.DealNumKey, dealNum).
			Msg("Deck source returned an unusable deck, shuffling a new one")
		return cards.NewDeck(nil)
	}
	return deck
}

func (t *Table) resetDeal() {
	t.dealer = SeatNone
	t.declarer = SeatNone
	t.dummy = SeatNone
	t.hotSeat = SeatNone
	t.trump = cards.SuitNone
	t.contract = nil
	t.hands = make(map[Seat]*Hand)
	t.calls = nil
	t.auction = nil
	t.tricks = nil
	t.dummyExposed = false
}

// throwIn redeals after four passes.
func (t *Table) throwIn() {
	dealer := t.dealer
	t.metrics.DealAbandoned()
	t.emit(Event{Type: DealHasBeenAbandoned, Dealer: dealer})
	t.fire(evThrowIn)
	t.startDeal(dealer.Next())
}

func (t *Table) completeAuction() {
	t.contract = contractFromAuction(t.calls)
	t.declarer = Declarer(t.calls)
	t.trump = t.contract.Bid.Suit
	t.hotSeat = t.declarer.Next()
	t.dummy = t.declarer.Partner()

	tableLogger.Debug().
		Str(logging.TableIDKey, t.ID).
		Int(logging.DealNumKey, t.dealNum).
		Str("contract", t.contract.String()).
		Str("declarer", t.declarer.String()).
		Msg("Auction complete")
	contract := *t.contract
	t.emit(Event{Type: BiddingIsComplete, Declarer: t.declarer, Dummy: t.dummy, Contract: &contract})

	t.calls = nil
	t.tricks = []*Trick{NewTrick(t.trump)}
	t.fire(evAuctionDone)
	t.promptPlay()
}

func (t *Table) finishDeal() {
	t.fire(evLastTrick)
	vulnerable := IsVulnerable(t.dealNum, t.declarer.Side())
	score, err := ScoreTricks(t.declarer, *t.contract, t.tricks, vulnerable)
	if err != nil {
		panic(errors.Wrapf(err, "table %s: scoring deal %d", t.ID, t.dealNum))
	}
	if score.Made {
		t.totals[score.DeclarerSide()] += score.DeclarerPoints()
	} else {
		t.totals[score.Winners()] += score.DefenderPoints()
	}
	t.dealsWon++
	t.metrics.DealWon()

	dealLogger := logging.TableLogger(tableLogger, t.ID, t.dealNum)
	dealLogger.Info().
		Str("contract", t.contract.String()).
		Str("result", score.Result()).
		Msg("Deal scored")
	contract := *t.contract
	t.emit(Event{
		Type:     DealHasBeenWon,
		Declarer: t.declarer,
		Contract: &contract,
		Score:    score,
		Winners:  score.Winners(),
		Totals:   t.copyTotals(),
	})

	if t.config.MaxDeals > 0 && t.dealsWon >= t.config.MaxDeals {
		t.endSession()
		return
	}
	t.fire(evNextDeal)
	t.startDeal(t.dealer.Next())
}

func (t *Table) abandonDealInProgress() {
	switch t.currentPhase() {
	case PhaseBidding, PhasePlaying:
		t.metrics.DealAbandoned()
		t.emit(Event{Type: DealHasBeenAbandoned, Dealer: t.dealer})
	}
}

func (t *Table) endSession() {
	totals := t.copyTotals()
	winners := SideNone
	if totals[NorthSouth] > totals[EastWest] {
		winners = NorthSouth
	} else if totals[EastWest] > totals[NorthSouth] {
		winners = EastWest
	}
	t.metrics.SessionEnded()
	tableLogger.Info().
		Str(logging.TableIDKey, t.ID).
		Int("northSouth", totals[NorthSouth]).
		Int("eastWest", totals[EastWest]).
		Msg("Session ended")
	t.emit(Event{Type: SessionHasEnded, Winners: winners, Totals: totals})

	t.inSession = false
	t.resetDeal()
	t.fire(evEndSession)
}

func (t *Table) copyTotals() map[Side]int {
	ret := make(map[Side]int, len(Sides))
	for _, s := range Sides {
		ret[s] = t.totals[s]
	}
	return ret
}

func (t *Table) currentTrick() *Trick {
	if len(t.tricks) == 0 {
		return nil
	}
	return t.tricks[len(t.tricks)-1]
}

func (t *Table) currentPhase() Phase {
	return Phase(t.phase.Current())
}

func (t *Table) promptBid(seat Seat) {
	player, box := t.players[seat], t.prompts[seat]
	if player == nil || box == nil {
		return
	}
	box.post(player.PlaceBid)
}

// promptPlay asks the hot seat to play, or declarer when dummy is on play.
func (t *Table) promptPlay() {
	if t.hotSeat == t.dummy {
		if player, box := t.players[t.declarer], t.prompts[t.declarer]; player != nil && box != nil {
			box.post(player.PlayForDummy)
		}
		return
	}
	if player, box := t.players[t.hotSeat], t.prompts[t.hotSeat]; player != nil && box != nil {
		box.post(player.Play)
	}
}

func (t *Table) emit(e Event) {
	t.seq++
	e.Seq = t.seq
	e.TableID = t.ID
	if e.DealNum == 0 {
		e.DealNum = t.dealNum
	}
	t.notifier.publish(e)
}

func (t *Table) fire(event string) {
	err := t.phase.Event(event)
	if err == nil {
		return
	}
	if _, ok := err.(fsm.NoTransitionError); ok {
		return
	}
	panic(errors.Wrapf(err, "table %s: phase event %s", t.ID, event))
}

func (t *Table) reject(err error) error {
	reason := RejectionReason(err)
	t.metrics.Rejected(reason.String())
	tableLogger.Info().
		Str(logging.TableIDKey, t.ID).
		Int(logging.DealNumKey, t.dealNum).
		Str("reason", reason.String()).
		Msg(err.Error())
	return err
}
