package test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bridgeit.com/server/game"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGameScripts(t *testing.T) {
	files, err := ListGameScripts("game-scripts", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	driver := NewTestDriver()
	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			err := driver.RunGameScript(file)
			assert.NoError(t, err)
			result := driver.ScriptResult[file]
			assert.Empty(t, result.Failures)
			assert.True(t, result.Passed)
		})
	}
	assert.True(t, driver.ReportResult())
}

func TestListGameScriptsByName(t *testing.T) {
	files, err := ListGameScripts("game-scripts", "grand-slam-spades")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("game-scripts", "grand-slam-spades.yaml")}, files)

	_, err = ListGameScripts("no-such-dir", "")
	assert.Error(t, err)
}

func TestCallStepYAML(t *testing.T) {
	var steps []CallStep
	err := yaml.Unmarshal([]byte("[1NT, {seat: East, call: D, reject: ILLEGAL_DOUBLE}, P]"), &steps)
	require.NoError(t, err)
	assert.Equal(t, []CallStep{
		{Call: "1NT"},
		{Seat: "East", Call: "D", Reject: "ILLEGAL_DOUBLE"},
		{Call: "P"},
	}, steps)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(body), 0o644))
	return filename
}

func TestInvalidScriptsFail(t *testing.T) {
	scripts := map[string]string{
		"duplicate player": `
players: [{name: a}, {name: a}, {name: b}, {name: c}]
deals: [{setup: {dealer: North}}]
`,
		"no dealer": `
players: [{name: a}, {name: b}, {name: c}, {name: d}]
deals: [{auction: [P]}]
`,
		"seat set up twice": `
players: [{name: a}, {name: b}, {name: c}, {name: d}]
deals:
  - setup:
      dealer: North
      suits: {North: S, East: H, South: D, West: C}
      hands: {North: [AS]}
`,
		"wrong seat": `
players: [{name: a, seat: North}, {name: b}, {name: c}, {name: d}]
deals: [{setup: {dealer: North}}]
`,
		"illegal auction": `
players: [{name: a}, {name: b}, {name: c}, {name: d}]
deals: [{setup: {dealer: North}, auction: [D]}]
`,
	}
	for name, body := range scripts {
		body := body
		t.Run(name, func(t *testing.T) {
			driver := NewTestDriver()
			filename := writeScript(t, body)
			assert.Error(t, driver.RunGameScript(filename))
			assert.Len(t, driver.Failed(), 1)
		})
	}
}

func TestDisabledScriptIsSkipped(t *testing.T) {
	driver := NewTestDriver()
	filename := writeScript(t, "disabled: true\n")
	require.NoError(t, driver.RunGameScript(filename))
	assert.True(t, driver.ScriptResult[filename].Disabled)
	assert.Empty(t, driver.Failed())
}

func TestScriptWithOnlyThrowIns(t *testing.T) {
	driver := NewTestDriver()
	filename := writeScript(t, `
players: [{name: a}, {name: b}, {name: c}, {name: d}]
table: {max-deals: 1, wait: 1}
deals:
  - setup: {dealer: South}
    auction: [P, P, P, P]
    verify: {thrown-in: true}
  - auction: [P, P, P, P]
    verify: {thrown-in: true, dealer: West}
`)
	require.NoError(t, driver.RunGameScript(filename))
	assert.True(t, driver.ScriptResult[filename].Passed)
}

func TestObserverTrace(t *testing.T) {
	tt := NewTestTable(TableConfig{}, nil)
	defer tt.Close()
	require.NoError(t, tt.Seat([]GamePlayer{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}))
	require.NoError(t, tt.table.StartSession(game.South))
	seat := game.South
	for i := 0; i < 4; i++ {
		require.NoError(t, tt.makeCall(seat, "P"))
		seat = seat.Next()
	}
	_, ok := tt.Observer().WaitFor(game.DealHasBegun, 2, time.Second)
	require.True(t, ok)

	trace, err := tt.Observer().Trace()
	require.NoError(t, err)
	var events []map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(trace, &events))
	var types []string
	for _, e := range events {
		types = append(types, e["type"].(string))
	}
	assert.Contains(t, types, string(game.DealHasBeenAbandoned))
	assert.Equal(t, string(game.PlayerHasJoined), types[0])

	// South dealt the thrown-in deal; West deals the next one.
	require.Eventually(t, func() bool {
		bids, _, _ := tt.players[game.South].Prompts()
		return bids == 1
	}, time.Second, 5*time.Millisecond)
	_, plays, _ := tt.players[game.South].Prompts()
	assert.Equal(t, 0, plays)
}
