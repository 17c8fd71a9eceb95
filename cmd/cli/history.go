package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/diffwarden/internal/config"
	"github.com/sevigo/diffwarden/internal/db"
	"github.com/sevigo/diffwarden/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated reviews",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of reviews to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, cleanup, err := db.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open review history: %w", err)
	}
	defer cleanup()

	store := storage.NewStore(database.DB)
	reviews, err := store.RecentReviews(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(reviews) == 0 {
		dimColor.Println("No reviews recorded yet.")
		return nil
	}

	titleColor.Printf("Last %d review(s)\n\n", len(reviews))
	for _, r := range reviews {
		fmt.Printf("%s  %-20s  template=%-12s  model=%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Target, r.Template, r.ModelID)
		dimColor.Printf("    %s\n", firstLine(r.ReviewContent))
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if len(line) > 100 {
		line = line[:97] + "..."
	}
	return line
}
