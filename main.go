package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bridgeit.com/server/bot"
	"bridgeit.com/server/console"
	"bridgeit.com/server/game"
	"bridgeit.com/server/logging"
	"bridgeit.com/server/test"
	"bridgeit.com/server/util"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

var mainLogger = log.With().Str("logger_name", "main::main").Logger()

func main() {
	util.Env.LoadDotEnv()
	logging.Setup(util.Env.GetLogLevel(), os.Stderr, util.Env.ShouldColorizeLog())

	var runGameScript = flag.String("game-script", "", "runs tests with game script files in this directory")
	var testName = flag.String("testname", "", "runs a specific test")
	var deals = flag.Int("deals", util.Env.GetSessionDeals(), "deals to play before the session ends (0 plays until interrupted)")
	var dealerName = flag.String("dealer", "South", "first dealer")
	var human = flag.String("human", "", "seat a console player with this name")
	var eventLogFile = flag.String("event-log", util.Env.GetEventLog(), "write table events as JSON lines to this file")
	var metricsAddr = flag.String("metrics-addr", "", "serve prometheus metrics on this address")
	flag.Parse()

	if *runGameScript != "" {
		if !test.RunGameScriptTests(*runGameScript, *testName) {
			os.Exit(1)
		}
		os.Exit(0)
	}

	dealer, err := game.ParseSeat(*dealerName)
	if err != nil || !dealer.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid dealer %q\n", *dealerName)
		os.Exit(2)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	if err := playSession(*deals, dealer, *human, *eventLogFile); err != nil {
		mainLogger.Error().Err(err).Msg("Session failed")
		os.Exit(1)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		mainLogger.Error().Err(err).Str("addr", addr).Msg("Metrics server stopped")
	}
}

func playSession(deals int, dealer game.Seat, human string, eventLogFile string) error {
	var events *eventLog
	if eventLogFile != "" {
		f, err := os.Create(eventLogFile)
		if err != nil {
			return err
		}
		// deferred first so the table is closed before the file
		defer f.Close()
		events = newEventLog(f)
	}

	table := game.NewTable(game.TableConfig{MaxDeals: deals})
	defer table.Close()
	if events != nil {
		table.Subscribe(events.listen)
	}

	ended := make(chan game.Event, 1)
	table.Subscribe(func(e game.Event) {
		select {
		case ended <- e:
		default:
		}
	}, game.SessionHasEnded)

	var player *console.ConsolePlayer
	if human != "" {
		player = console.NewConsolePlayer(human, os.Stdin, os.Stdout)
		player.TimeLimit = util.Env.GetTurnTimeLimit()
		if _, err := player.JoinTable(table); err != nil {
			return err
		}
		defer player.Leave()
	} else {
		table.Subscribe(printDealResult, game.DealHasBeenWon)
	}

	var bots []*bot.SimpleComputerPlayer
	for table.SeatedCount() < len(game.Seats) {
		b := bot.NewSimpleComputerPlayer(bot.Config{
			Name:        "bot-" + strconv.Itoa(len(bots)+1),
			ActionPause: util.Env.GetBotActionPause(),
		})
		if _, err := b.JoinTable(table); err != nil {
			return err
		}
		bots = append(bots, b)
	}
	defer func() {
		for _, b := range bots {
			b.Stop()
			<-b.Done()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := table.StartSession(dealer); err != nil {
		return err
	}
	select {
	case e := <-ended:
		printTotals(e.Totals)
	case <-ctx.Done():
		mainLogger.Info().Msg("Interrupted, ending the session")
		if err := table.EndSession(); err == nil {
			printTotals(table.Totals())
		}
	}
	if events != nil && !events.waitSessionEnd(time.Second) {
		mainLogger.Warn().Str("file", eventLogFile).Msg("Event log may be missing the session end")
	}
	return nil
}

func printDealResult(e game.Event) {
	pterm.Info.Println(fmt.Sprintf("Deal %d: %s", e.DealNum, e.Score.String()))
}

func printTotals(totals map[game.Side]int) {
	data := pterm.TableData{{"Side", "Points"}}
	for _, side := range game.Sides {
		data = append(data, []string{side.String(), strconv.Itoa(totals[side])})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		mainLogger.Error().Err(err).Msg("Could not print totals")
	}
}
