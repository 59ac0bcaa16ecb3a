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

var lookupUnit string

var lookupCmd = &cobra.Command{
	Use:   "lookup <city>",
	Short: "One-shot weather and 5-day forecast for a city",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runLookup(cfg, strings.Join(args, " "))
	},
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupUnit, "unit", "u", "", "Display unit: metric or imperial (default: saved preference)")
	RootCmd.AddCommand(lookupCmd)
}

func runLookup(cfg *config.AppConfig, city string) error {
	vm, err := buildViewModel(cfg)
	if err != nil {
		return err
	}
	if lookupUnit != "" {
		vm.SetUnit(weather.ParseUnit(lookupUnit))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := vm.LoadCity(ctx, city); err != nil {
		return err
	}

	unit := vm.Unit()
	sym := weather.Symbol(unit)
	snap, _ := vm.Current()

	fmt.Printf("%s, %s\n", snap.City, snap.Country)
	fmt.Printf("  %s  %.1f%s (feels like %.1f%s)\n",
		snap.Condition,
		weather.Convert(snap.TempC, unit), sym,
		weather.Convert(snap.FeelsLikeC, unit), sym)
	fmt.Printf("  humidity %.0f%%  pressure %.0f hPa  clouds %.0f%%  wind %.1f m/s\n",
		snap.Humidity, snap.Pressure, snap.Cloudiness, snap.WindSpeed)
	if vm.HeatAlert() {
		fmt.Println("  !! high temperature alert")
	}

	fmt.Println()
	for _, day := range vm.Forecast() {
		fmt.Printf("  %-9s %s  high %5.1f%s  low %5.1f%s  %s\n",
			day.Weekday,
			day.Date.Format("Jan 02"),
			weather.Convert(day.HighC, unit), sym,
			weather.Convert(day.LowC, unit), sym,
			day.Condition)
	}
	return nil
}
