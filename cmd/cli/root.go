package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var modelFlag string

var rootCmd = &cobra.Command{
	Use:   "diffwarden",
	Short: "diffwarden reviews git diffs with an AI model.",
	Long: `diffwarden retrieves a git diff (against a commit, a remote branch, or
the previous commit) and sends it to a generative-AI model for an
automated code review. Results are cached on disk so an unchanged diff
is never reviewed twice.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model identifier (overrides DW_MODEL_NAME)")

	if err := viper.BindPFlag("MODEL_NAME", rootCmd.PersistentFlags().Lookup("model")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("DW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
