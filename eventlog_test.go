package main

import (
	"bufio"
	"bytes"
	"testing"
	"time"

	"bridgeit.com/server/cards"
	"bridgeit.com/server/game"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := newEventLog(&buf)

	call := game.NewBidCall(game.North, game.Bid{Tricks: 3, Suit: cards.NoTrump})
	card := cards.MustCard("QH")
	l.listen(game.Event{Type: game.CallHasBeenMade, Seq: 7, DealNum: 1, Seat: game.North, Call: &call})
	l.listen(game.Event{Type: game.CardHasBeenPlayed, Seq: 8, DealNum: 1, Seat: game.East, Card: &card})

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var m map[string]interface{}
		require.NoError(t, jsoniter.Unmarshal(scanner.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "CALL_HAS_BEEN_MADE", lines[0]["type"])
	assert.Equal(t, "North", lines[0]["seat"])
	assert.Equal(t, "CARD_HAS_BEEN_PLAYED", lines[1]["type"])
	assert.Equal(t, "QH", lines[1]["card"])
	assert.EqualValues(t, 8, lines[1]["seq"])
}

func TestEventLogSignalsSessionEnd(t *testing.T) {
	var buf bytes.Buffer
	l := newEventLog(&buf)

	l.listen(game.Event{Type: game.DealHasBeenWon, Seq: 1, DealNum: 1})
	assert.False(t, l.waitSessionEnd(10*time.Millisecond))

	l.listen(game.Event{Type: game.SessionHasEnded, Seq: 2, DealNum: 1})
	l.listen(game.Event{Type: game.SessionHasEnded, Seq: 3, DealNum: 1})
	assert.True(t, l.waitSessionEnd(time.Second))
	assert.Contains(t, buf.String(), `"SESSION_HAS_ENDED"`)
}
