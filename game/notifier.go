package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var notifierLogger = log.With().Str("logger_name", "game::notifier").Logger()

// mailbox runs posted functions one at a time, in order, on its own goroutine.
// Posting never blocks.
type mailbox struct {
	name      string
	mu        sync.Mutex
	pending   []func()
	closed    bool
	signal    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newMailbox(name string) *mailbox {
	m := &mailbox{
		name:   name,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *mailbox) post(fn func()) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.pending = append(m.pending, fn)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *mailbox) run() {
	for {
		select {
		case <-m.done:
			return
		case <-m.signal:
		}
		for {
			m.mu.Lock()
			batch := m.pending
			m.pending = nil
			m.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, fn := range batch {
				select {
				case <-m.done:
					return
				default:
				}
				m.invoke(fn)
			}
		}
	}
}

func (m *mailbox) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			notifierLogger.Error().Str("mailbox", m.name).Msgf("listener panicked: %v", r)
		}
	}()
	fn()
}

// close drops anything not yet delivered.
func (m *mailbox) close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.pending = nil
		m.mu.Unlock()
		close(m.done)
	})
}

// Subscription is a registered Listener. Events reach it in commit order.
type Subscription struct {
	id       string
	types    map[EventType]bool
	listener Listener
	box      *mailbox
	notifier *notifier
}

func (s *Subscription) wants(t EventType) bool {
	return len(s.types) == 0 || s.types[t]
}

// Unsubscribe stops delivery. Events already queued but not yet delivered are dropped.
func (s *Subscription) Unsubscribe() {
	s.notifier.remove(s)
}

// notifier is the table's publish-subscribe registry.
type notifier struct {
	mu   sync.Mutex
	subs []*Subscription
}

func (n *notifier) add(listener Listener, types ...EventType) *Subscription {
	sub := &Subscription{
		id:       uuid.New().String(),
		types:    make(map[EventType]bool),
		listener: listener,
		notifier: n,
	}
	for _, t := range types {
		sub.types[t] = true
	}
	sub.box = newMailbox(sub.id)

	n.mu.Lock()
	n.subs = append(n.subs, sub)
	n.mu.Unlock()
	return sub
}

func (n *notifier) remove(sub *Subscription) {
	n.mu.Lock()
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			break
		}
	}
	n.mu.Unlock()
	sub.box.close()
}

func (n *notifier) snapshot() []*Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	ret := make([]*Subscription, len(n.subs))
	copy(ret, n.subs)
	return ret
}

// publish queues the event for every interested subscriber and returns immediately.
func (n *notifier) publish(e Event) {
	for _, sub := range n.snapshot() {
		if !sub.wants(e.Type) {
			continue
		}
		listener := sub.listener
		sub.box.post(func() { listener(e) })
	}
}

func (n *notifier) closeAll() {
	for _, sub := range n.snapshot() {
		n.remove(sub)
	}
}
