package bot

import (
	"sync"
	"testing"
	"time"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	"bridgeit.com/server/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	mu     sync.Mutex
	events []game.Event
}

func (l *eventLog) listen(e game.Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) ofType(et game.EventType) []game.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ret []game.Event
	for _, e := range l.events {
		if e.Type == et {
			ret = append(ret, e)
		}
	}
	return ret
}

func suitHands() map[game.Seat][]cards.Card {
	suits := map[game.Seat]cards.Suit{
		game.North: cards.Spades,
		game.East:  cards.Hearts,
		game.South: cards.Diamonds,
		game.West:  cards.Clubs,
	}
	hands := make(map[game.Seat][]cards.Card)
	for seat, suit := range suits {
		for r := cards.Two; r <= cards.Ace; r++ {
			hands[seat] = append(hands[seat], cards.Card{Rank: r, Suit: suit})
		}
	}
	return hands
}

func seatBots(t *testing.T, table *game.Table, config Config) []*SimpleComputerPlayer {
	var bots []*SimpleComputerPlayer
	for i := 0; i < 4; i++ {
		b := NewSimpleComputerPlayer(config)
		_, err := b.JoinTable(table)
		require.NoError(t, err)
		bots = append(bots, b)
	}
	return bots
}

func waitDone(t *testing.T, bots []*SimpleComputerPlayer, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for _, b := range bots {
		select {
		case <-b.Done():
		case <-deadline:
			t.Fatalf("%s did not leave the table in time", b.Name())
		}
	}
}

func TestBotsPlayStackedDeal(t *testing.T) {
	deck, err := game.StackedDeck(game.South, suitHands())
	require.NoError(t, err)
	table := game.NewTable(game.TableConfig{
		MaxDeals:   1,
		DeckSource: func(int) *cards.Deck { return deck },
		Metrics:    util.NewTableMetrics(prometheus.NewRegistry()),
	})
	defer table.Close()
	log := &eventLog{}
	table.Subscribe(log.listen)

	bots := seatBots(t, table, Config{})
	require.NoError(t, table.StartSession(game.South))
	waitDone(t, bots, 5*time.Second)

	complete := log.ofType(game.BiddingIsComplete)
	require.Len(t, complete, 1)
	assert.Equal(t, "1D", complete[0].Contract.String())
	assert.Equal(t, game.South, complete[0].Declarer)

	require.Eventually(t, func() bool { return len(log.ofType(game.SessionHasEnded)) == 1 }, time.Second, 5*time.Millisecond)
	won := log.ofType(game.DealHasBeenWon)
	require.Len(t, won, 1)
	assert.Equal(t, 13, won[0].Score.DeclarerTricks)
	assert.Equal(t, 190, won[0].Score.DeclarerPoints())
	assert.Equal(t, 190, log.ofType(game.SessionHasEnded)[0].Totals[game.NorthSouth])

	plays := 0
	for _, b := range bots {
		_, n := b.Stats()
		plays += n
	}
	assert.Equal(t, 52, plays)
	assert.Equal(t, game.PhaseEmpty, table.Phase())
}

func TestBotsFinishRandomSession(t *testing.T) {
	table := game.NewTable(game.TableConfig{
		MaxDeals: 2,
		Metrics:  util.NewTableMetrics(prometheus.NewRegistry()),
	})
	defer table.Close()
	log := &eventLog{}
	table.Subscribe(log.listen)

	bots := seatBots(t, table, Config{})
	require.NoError(t, table.StartSession(game.North))
	waitDone(t, bots, 20*time.Second)

	require.Eventually(t, func() bool { return len(log.ofType(game.SessionHasEnded)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, log.ofType(game.DealHasBeenWon), 2)
	assert.Len(t, log.ofType(game.TrickHasBeenWon), 26)
}

func TestStopLeavesTable(t *testing.T) {
	table := game.NewTable(game.TableConfig{Metrics: util.NewTableMetrics(prometheus.NewRegistry())})
	defer table.Close()
	b := NewSimpleComputerPlayer(Config{Name: "quitter"})
	seat, err := b.JoinTable(table)
	require.NoError(t, err)
	assert.Equal(t, game.South, seat)
	assert.Equal(t, "quitter", b.Name())

	_, err = b.JoinTable(table)
	assert.Error(t, err)

	b.Stop()
	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.Equal(t, 0, table.SeatedCount())
}

func TestPacedBotRespectsDeadline(t *testing.T) {
	b := NewSimpleComputerPlayer(Config{ActionPause: time.Hour})
	defer b.Stop()
	b.pace()

	b.PlaceBidNow(time.Now().Add(20 * time.Millisecond))
	start := time.Now()
	b.pace()
	assert.Less(t, int64(time.Since(start)), int64(time.Second))
}
