package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierPreservesOrderPerSubscriber(t *testing.T) {
	var n notifier
	var mu sync.Mutex
	var got []uint64
	n.add(func(e Event) {
		mu.Lock()
		got = append(got, e.Seq)
		mu.Unlock()
	})

	for i := uint64(1); i <= 500; i++ {
		n.publish(Event{Type: CallHasBeenMade, Seq: i})
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 500
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i, seq := range got {
		assert.Equal(t, uint64(i+1), seq)
	}
	n.closeAll()
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	var n notifier
	release := make(chan struct{})
	n.add(func(e Event) { <-release })

	fast := make(chan Event, 10)
	n.add(func(e Event) { fast <- e })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			n.publish(Event{Type: CardHasBeenPlayed})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	for i := 0; i < 10; i++ {
		select {
		case <-fast:
		case <-time.After(time.Second):
			t.Fatal("fast subscriber starved by a slow one")
		}
	}
	close(release)
	n.closeAll()
}

func TestSubscriptionFilterAndUnsubscribe(t *testing.T) {
	var n notifier
	got := make(chan Event, 10)
	sub := n.add(func(e Event) { got <- e }, TrickHasBeenWon)

	n.publish(Event{Type: CardHasBeenPlayed})
	n.publish(Event{Type: TrickHasBeenWon, Seq: 2})

	select {
	case e := <-got:
		assert.Equal(t, TrickHasBeenWon, e.Type)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	sub.Unsubscribe()
	assert.Empty(t, n.snapshot())
	n.publish(Event{Type: TrickHasBeenWon, Seq: 3})
	select {
	case e := <-got:
		t.Fatalf("unexpected event after unsubscribe: %v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPanickingListenerKeepsMailboxAlive(t *testing.T) {
	var n notifier
	got := make(chan uint64, 2)
	n.add(func(e Event) {
		if e.Seq == 1 {
			panic("boom")
		}
		got <- e.Seq
	})
	n.publish(Event{Seq: 1})
	n.publish(Event{Seq: 2})
	select {
	case seq := <-got:
		assert.Equal(t, uint64(2), seq)
	case <-time.After(time.Second):
		t.Fatal("mailbox stopped after a panic")
	}
	n.closeAll()
}
