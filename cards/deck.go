package cards

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
)

const DeckSize = 52

// shuffleSwaps is the number of random pairwise swaps per shuffle.
const shuffleSwaps = 4 * DeckSize

var fullDeck []Card

func init() {
	fullDeck = initializeFullCards()
}

type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a shuffled deck. A nil source seeds from crypto/rand.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.Shuffle()
	return deck
}

func NewDeckNoShuffle() *Deck {
	deck := &Deck{}
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)
	return deck
}

// NewDeckFromCards builds a deck in the given order. The cards must be the 52 distinct cards of a pack.
func NewDeckFromCards(cards []Card) (*Deck, error) {
	if len(cards) != DeckSize {
		return nil, errors.Errorf("a deck needs %d cards, got %d", DeckSize, len(cards))
	}
	seen := mapset.NewSet()
	for _, c := range cards {
		if !c.Rank.IsValid() || !c.Suit.IsCardSuit() {
			return nil, errors.Errorf("invalid card %v", c)
		}
		if !seen.Add(c) {
			return nil, errors.Errorf("card %s appears more than once", c)
		}
	}
	deck := &Deck{cards: make([]Card, DeckSize)}
	copy(deck.cards, cards)
	return deck, nil
}

// Shuffle restores the full pack and mixes it with random pairwise swaps.
func (deck *Deck) Shuffle() *Deck {
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)

	if deck.randGen == nil {
		deck.randGen = rand.New(newSeed())
	}
	for i := 0; i < shuffleSwaps; i++ {
		a := deck.randGen.Intn(DeckSize)
		b := deck.randGen.Intn(DeckSize)
		deck.cards[a], deck.cards[b] = deck.cards[b], deck.cards[a]
	}
	return deck
}

func (deck *Deck) Draw(n int) []Card {
	if n > len(deck.cards) {
		n = len(deck.cards)
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

func (deck *Deck) Len() int {
	return len(deck.cards)
}

// Cards returns a copy of the remaining cards in deal order.
func (deck *Deck) Cards() []Card {
	ret := make([]Card, len(deck.cards))
	copy(ret, deck.cards)
	return ret
}

func initializeFullCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}
