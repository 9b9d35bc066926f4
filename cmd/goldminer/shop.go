package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/goldminer/internal/shop"
	"github.com/vovakirdan/goldminer/internal/storage"
)

var flagBuyCount int

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List or buy power-ups",
	Long: `Power-ups are bought with coins earned by completing levels. Purchases
go straight to your saved profile and are available in the next game.
Inside a game, press S to open the shop without leaving the mine.`,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show power-ups, prices and what you own",
	Args:  cobra.NoArgs,
	Run:   runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Buy a power-up",
	Long: `Buy one or more units of a power-up with saved coins.

Examples:
  goldminer shop buy bomb
  goldminer shop buy time_extend --count 3`,
	Args: cobra.ExactArgs(1),
	Run:  runShopBuy,
}

func init() {
	shopBuyCmd.Flags().IntVar(&flagBuyCount, "count", 1, "Number of units to buy")

	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
}

// openShop opens the database and a shop priced from the loaded config.
func openShop() (*storage.Store, *shop.Shop) {
	game, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	return store, shop.New(store, game.PowerUps.Prices, logger)
}

func runShopList(_ *cobra.Command, _ []string) {
	store, sh := openShop()
	defer store.Close()

	profile, err := store.LoadProfile(flagPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Power-up shop - %s has %d coins\n", flagPlayer, profile.Coins)
	fmt.Println()

	fmt.Printf("  %-3s %-12s  %-14s  %5s  %5s  %s\n", "Key", "ID", "Name", "Price", "Owned", "Effect")
	fmt.Printf("  %-3s %-12s  %-14s  %5s  %5s  %s\n", "---", "--", "----", "-----", "-----", "------")
	for i, item := range sh.List() {
		fmt.Printf("  %-3d %-12s  %c %-12s  %5d  %5d  %s\n",
			i+1, item.ID, item.Icon, item.Name, item.Price, profile.Inventory[item.ID], item.Description)
	}

	fmt.Println()
	fmt.Println("Run 'goldminer shop buy <id>' to buy.")
}

func runShopBuy(_ *cobra.Command, args []string) {
	store, sh := openShop()
	defer store.Close()

	r, err := sh.Buy(flagPlayer, args[0], flagBuyCount)
	switch {
	case errors.Is(err, shop.ErrUnknownItem):
		fmt.Fprintf(os.Stderr, "Error: unknown power-up %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'goldminer shop list' to see what is for sale.")
		os.Exit(1)
	case errors.Is(err, storage.ErrInsufficientCoins):
		fmt.Fprintf(os.Stderr, "Not enough coins: %v\n", err)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bought %d x %s for %d coins. Balance: %d\n", r.Count, r.Item.Name, r.Cost, r.Balance)
}
