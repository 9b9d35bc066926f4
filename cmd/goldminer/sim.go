package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/progress"
	"github.com/vovakirdan/goldminer/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimNoSave   bool
	flagSimVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play headless",
	Long: `Run a session without a terminal UI. The engine drives itself and an
autopilot drops the hook at the most valuable item in reach, continuing
after every level. Progress is autosaved like a normal game, so sim runs
earn coins for the profile.

Examples:
  goldminer sim --duration 2m
  goldminer sim --seed 7 --no-save --verbose`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "How long to play")
	simCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not load or save the profile")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every level change")
}

func runSim(_ *cobra.Command, _ []string) {
	game, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level := log.InfoLevel
	if flagSimVerbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "goldminer-sim",
		Level:           level,
	})

	var store *storage.Store
	if !flagSimNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("Could not open database, running without persistence", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	var frames atomic.Int64
	var lastLevel atomic.Int64
	opts := []goldminer.Option{
		goldminer.WithFrameRate(flagFPS),
		goldminer.WithFrameHook(func(st goldminer.State) {
			frames.Add(1)
			if prev := lastLevel.Swap(int64(st.Level)); prev != int64(st.Level) {
				logger.Debug("Level", "level", st.Level, "score", st.Score, "target", st.TargetScore, "coins", st.Coins)
			}
		}),
	}
	if flagSeed != 0 {
		opts = append(opts, goldminer.WithSeed(uint64(flagSeed)))
	}

	// The surface is never shown, but Draw runs every frame like in play.
	surface := core.NewScreen(80, 24)
	sess, err := progress.Open(store, flagPlayer, surface, game, logger, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelRun := context.WithTimeout(ctx, flagSimDuration)
	defer cancelRun()

	sess.Engine.Start(ctx)
	if sess.Saver != nil {
		sess.Saver.Start()
	}

	pilot := goldminer.DefaultAutopilot()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	drops := 0
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if pilot.Step(sess.Engine) {
				drops++
			}
		}
	}

	if err := sess.Close(); err != nil {
		logger.Error("Could not save session", "error", err)
	}

	st := sess.Engine.State()
	fmt.Printf("Played %s: level %d, score %d, coins %d (%d commands, %d frames)\n",
		flagSimDuration, st.Level, st.Score, st.Coins, drops, frames.Load())
}
