package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/platform/tui"
	"github.com/vovakirdan/goldminer/internal/storage"
)

var flagNoSave bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Gold Miner",
	Long: `Start a game in this terminal. Every session starts at level 1 with the
coins and power-ups saved in your profile.

Controls:
  Space/Enter/Down  - Drop the hook (continue after a level ends)
  1-5               - Use bomb, magnet, time extend, double coins, speed boost
  P                 - Pause
  S                 - Open the shop
  ?                 - Help
  Q/Ctrl+C          - Quit and record the score

Difficulty options:
  easy   - Slower swing, faster reel
  normal - Default tuning
  hard   - Faster swing, slower reel, double level reward

Examples:
  goldminer play
  goldminer play --player alice
  goldminer play --difficulty hard
  goldminer play --config ./my-mine.yaml
  goldminer play --no-save`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Play without loading or saving the profile")
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	logger, closeLog := fileLogger()
	defer closeLog()

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open database, progress will not be saved: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	if err := tui.Run(store, game, cfg, flagPlayer, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if store != nil {
		if best, err := store.HighScore(flagPlayer); err == nil && best > 0 {
			fmt.Printf("Best score for %s: %d\n", flagPlayer, best)
		}
	}
}

// fileLogger logs next to the database so the alternate screen stays clean.
// Logging is dropped when the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	dir := filepath.Dir(expandHome(flagDBPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "goldminer.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "goldminer",
	})
	return logger, func() { f.Close() }
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
