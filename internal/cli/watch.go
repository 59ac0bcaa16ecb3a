package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weatherdeck/internal/config"
	"github.com/i474232898/weatherdeck/internal/weather"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the city watchlist",
}

var watchAddCmd = &cobra.Command{
	Use:   "add <city>",
	Short: "Add a city to the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		vm, err := buildViewModel(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := vm.AddToWatchlist(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Println("watchlist:", strings.Join(vm.Watchlist(), ", "))
		return nil
	},
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove <city>",
	Short: "Remove a city from the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		vm, err := buildViewModel(cfg)
		if err != nil {
			return err
		}

		vm.RemoveFromWatchlist(strings.Join(args, " "))
		fmt.Println("watchlist:", strings.Join(vm.Watchlist(), ", "))
		return nil
	},
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch and show current weather for every watched city",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		vm, err := buildViewModel(cfg)
		if err != nil {
			return err
		}

		cities := vm.Watchlist()
		if len(cities) == 0 {
			fmt.Println("watchlist is empty")
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result := vm.RefreshWatchlist(ctx)
		unit := vm.Unit()
		sym := weather.Symbol(unit)

		// Display order follows the watchlist, not fetch completion.
		for _, city := range cities {
			entry, ok := result[city]
			if !ok || entry.Unavailable {
				fmt.Printf("  %-20s unavailable\n", city)
				continue
			}
			snap := entry.Snapshot
			fmt.Printf("  %-20s %6.1f%s  %s\n",
				fmt.Sprintf("%s, %s", snap.City, snap.Country),
				weather.Convert(snap.TempC, unit), sym, snap.Condition)
		}
		return nil
	},
}

func init() {
	watchCmd.AddCommand(watchAddCmd, watchRemoveCmd, watchStatusCmd)
	RootCmd.AddCommand(watchCmd)
}
