package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/diffwarden/internal/config"
	"github.com/sevigo/diffwarden/internal/core"
	"github.com/sevigo/diffwarden/internal/report"
	"github.com/sevigo/diffwarden/internal/wire"
)

var (
	verbose       bool
	noCache       bool
	reviewOptions core.ReviewOptions
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a git diff with the configured AI model",
	Long: `Review a git diff with the configured AI model.

Without flags, the last commit is reviewed (the whole tree for a
repository with a single commit). Results are cached; re-running with an
unchanged diff and options returns the stored review.

Examples:
  diffwarden review
  diffwarden review --commit 1abc234
  diffwarden review --branch main --template security -o review.md
  diffwarden review --focus concurrency --ignore style --exclude "vendor/*"`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVar(&reviewOptions.Commit, "commit", "", "Review a specific commit")
	reviewCmd.Flags().StringVar(&reviewOptions.Branch, "branch", "", "Review HEAD against a remote branch")
	reviewCmd.Flags().BoolVar(&reviewOptions.Previous, "previous", false, "Review the previous commit (the default)")
	reviewCmd.Flags().StringVarP(&reviewOptions.Output, "output", "o", "", "Write the review to a file instead of stdout")
	reviewCmd.Flags().StringSliceVar(&reviewOptions.Exclude, "exclude", nil, "Pathspec patterns excluded from the diff")
	reviewCmd.Flags().StringSliceVar(&reviewOptions.Focus, "focus", nil, "Areas the review should focus on")
	reviewCmd.Flags().StringSliceVar(&reviewOptions.Ignore, "ignore", nil, "Areas the review should not comment on")
	reviewCmd.Flags().StringVar(&reviewOptions.Template, "template", "", "Prompt template name (see 'diffwarden templates')")
	reviewCmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the review cache for this run")
	reviewCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output with timing information")
	reviewCmd.MarkFlagsMutuallyExclusive("commit", "branch", "previous")
	rootCmd.AddCommand(reviewCmd)
}

// stepTimer tracks timing for verbose output
type stepTimer struct {
	stepNum    int
	totalSteps int
	start      time.Time
	verbose    bool
}

func newStepTimer(totalSteps int, verbose bool) *stepTimer {
	return &stepTimer{totalSteps: totalSteps, verbose: verbose}
}

func (t *stepTimer) step(name string) {
	t.stepNum++
	t.start = time.Now()
	if t.verbose {
		titleColor.Printf("Step %d/%d: %s...\n", t.stepNum, t.totalSteps, name)
	}
}

func (t *stepTimer) done(details ...string) {
	if t.verbose {
		elapsed := time.Since(t.start).Round(time.Millisecond)
		successColor.Printf("  done (%s)\n", elapsed)
		for _, d := range details {
			dimColor.Printf("    %s\n", d)
		}
	}
}

func runReview(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	timer := newStepTimer(4, verbose)

	timer.step("Initializing")
	appInstance, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w\n\nTip: check your .env file and DW_* environment variables", err)
	}
	defer cleanup()

	opts := reviewOptions
	repoCfg, err := config.LoadRepoConfig(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		appInstance.Logger.Warn("failed to load .diffwarden.yml, using defaults", "error", err)
		repoCfg = core.DefaultRepoConfig()
	}
	repoCfg.ApplyTo(&opts)

	if opts.Template != "" && !appInstance.Prompts.Has(opts.Template) {
		warnColor.Printf("Unknown template %q, using the default one.\n", opts.Template)
	}
	timer.done()

	timer.step("Collecting diff")
	diff, err := appInstance.Git.Diff(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to collect diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		timer.done()
		warnColor.Println("Nothing to review: the selected diff is empty.")
		return nil
	}
	timer.done(fmt.Sprintf("target %s, %d bytes", opts.Target(), len(diff)))

	key := appInstance.Cache.DeriveKey(diff, opts)
	cached := false
	var review string
	if !noCache {
		if hit, ok := appInstance.Cache.Get(key, opts); ok {
			review = hit
			cached = true
			dimColor.Println("Using cached review.")
		}
	}

	if !cached {
		timer.step("Generating review")
		review, err = appInstance.Reviewer.Review(ctx, diff, opts, repoCfg)
		if err != nil {
			return fmt.Errorf("failed to generate review: %w\n\nTip: check that the configured LLM service is reachable", err)
		}
		timer.done()

		if !noCache {
			appInstance.Cache.Put(key, review, opts)
		}
		if err := appInstance.History.SaveReview(ctx, &core.Review{
			Target:        opts.Target(),
			Template:      opts.Template,
			ModelID:       appInstance.Cfg.AI.ModelName,
			CacheKey:      key,
			ReviewContent: review,
		}); err != nil {
			appInstance.Logger.Warn("failed to record review history", "error", err)
		}
	}

	timer.step("Writing output")
	if opts.Output != "" {
		if err := report.WriteFile(opts.Output, review); err != nil {
			return err
		}
		timer.done()
		successColor.Printf("Review written to %s\n", opts.Output)
		return nil
	}
	timer.done()

	fmt.Println(report.Header(opts.Target(), appInstance.Cfg.AI.ModelName, cached))
	fmt.Print(report.Render(review))
	return nil
}
