package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/diffwarden/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the review cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number and size of cached reviews",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := cache.NewDirStore(cache.DirName)
		if err != nil {
			return fmt.Errorf("failed to open cache directory: %w", err)
		}
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		titleColor.Println("Review cache")
		fmt.Printf("  Directory: %s\n", stats.Dir)
		fmt.Printf("  Entries:   %d\n", stats.Entries)
		fmt.Printf("  Size:      %s\n", formatBytes(stats.TotalBytes))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached reviews",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := cache.NewDirStore(cache.DirName)
		if err != nil {
			return fmt.Errorf("failed to open cache directory: %w", err)
		}
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		successColor.Printf("Removed %d cached review(s).\n", stats.Entries)
		return nil
	},
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() { //nolint:gochecknoinits // Cobra command registration
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
