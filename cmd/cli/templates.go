package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/diffwarden/internal/llm"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available prompt templates",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		prompts, err := llm.NewPromptManager()
		if err != nil {
			return fmt.Errorf("failed to load prompt templates: %w", err)
		}
		titleColor.Println("Available templates")
		for _, name := range prompts.Names() {
			if name == llm.DefaultTemplate {
				fmt.Printf("  %s (default)\n", name)
				continue
			}
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(templatesCmd)
}
