// goldminer is a terminal Gold Miner game with persistent coins, a power-up
// shop and an SSH server for remote play.
//
// Usage:
//
//	goldminer play              - Play in this terminal
//	goldminer shop list         - Show power-ups and prices
//	goldminer shop buy <id>     - Buy power-ups with saved coins
//	goldminer scores            - Show high scores and recent sessions
//	goldminer serve             - Start SSH server for remote play
//	goldminer sim               - Let the autopilot play headless
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.goldminer/goldminer.db)
//	--player <name>      - Profile to play as (default: $USER)
//	--config <path>      - Custom tuning YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldminer/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "goldminer",
	Short: "Gold Miner - Swing, drop and reel in gold in your terminal",
	Long: `Gold Miner is a terminal arcade game. A hook swings above the mine;
drop it at the right moment to reel in gold and diamonds before the level
timer runs out. Coins and power-ups are saved between sessions.

Available commands:
  play     - Play in this terminal
  shop     - List or buy power-ups
  scores   - View high scores and sessions
  serve    - Start SSH server for remote play
  sim      - Headless autopilot run

Examples:
  goldminer play
  goldminer play --difficulty hard
  goldminer shop buy magnet --count 2
  goldminer serve --ssh :2222
  goldminer sim --duration 2m`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.goldminer/goldminer.db", "Path to the profile and scores database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player profile name")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// loadGameConfig resolves the tuning file and applies the difficulty preset.
func loadGameConfig() (config.GoldMinerConfig, error) {
	cfg, err := config.LoadGoldMiner(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyGoldMinerPreset(&cfg, preset)
	}
	return cfg, cfg.Validate()
}
