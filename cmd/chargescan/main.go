package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chargescan",
	Short: "Availability scraper for charging-station networks",
	Long: `chargescan fetches charging-station availability from network APIs,
spreading the identifiers over concurrent worker shards and writing the
results as JSON dumps and CSV tables.`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
