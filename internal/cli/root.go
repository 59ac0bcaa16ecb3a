// Package cli wires the weatherdeck commands.
package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/i474232898/weatherdeck/internal/config"
	"github.com/i474232898/weatherdeck/internal/store"
	"github.com/i474232898/weatherdeck/internal/viewmodel"
	"github.com/i474232898/weatherdeck/internal/weather/providers"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "weatherdeck",
	Short: "Weather lookup, 5-day forecasts, and a multi-city watchlist",
	Long: `weatherdeck aggregates 3-hour forecast data into daily summaries and
tracks a watchlist of cities, refreshing them concurrently and tolerating
individual failures. Configuration comes from the environment (see .env):
OPENWEATHER_API_KEY is required for real lookups.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// buildViewModel assembles the provider chain and persistence for a session.
func buildViewModel(cfg *config.AppConfig) (*viewmodel.ViewModel, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	openweather := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	provider := providers.NewRateLimitedProvider(openweather, cfg.ProviderRPS, cfg.ProviderBurst)

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	return viewmodel.New(provider, fileStore), nil
}
