// Package gitdiff retrieves diff text from the local repository by
// shelling out to the git binary, using go-git to inspect history before
// choosing the comparison range.
package gitdiff

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/sevigo/diffwarden/internal/core"
)

// emptyTreeHash is git's well-known empty tree object. Diffing a root
// commit against it yields the full content of that commit.
const emptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Client retrieves diffs from the repository in the working directory.
type Client struct {
	logger *slog.Logger
}

// NewClient returns a new Client instance.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger}
}

// Diff returns the diff text selected by opts: a specific commit against
// its first parent, the current HEAD against a remote branch, or the
// default last-commit comparison. A repository without commits produces
// an empty diff, not an error.
func (c *Client) Diff(ctx context.Context, opts core.ReviewOptions) (string, error) {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	switch {
	case opts.Commit != "":
		return c.commitDiff(ctx, repo, opts)
	case opts.Branch != "":
		return c.branchDiff(ctx, opts)
	default:
		return c.previousDiff(ctx, repo, opts)
	}
}

func (c *Client) commitDiff(ctx context.Context, repo *git.Repository, opts core.ReviewOptions) (string, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(opts.Commit))
	if err != nil {
		return "", fmt.Errorf("resolving commit %s: %w", opts.Commit, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", hash, err)
	}

	base := emptyTreeHash
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return "", fmt.Errorf("reading parent of %s: %w", hash, err)
		}
		base = parent.Hash.String()
	}

	c.logger.Debug("diffing commit against parent", "commit", commit.Hash.String(), "base", base)
	return c.run(ctx, diffArgs([]string{base, commit.Hash.String()}, opts.Exclude))
}

func (c *Client) branchDiff(ctx context.Context, opts core.ReviewOptions) (string, error) {
	ref := opts.Branch
	if !strings.Contains(ref, "/") {
		ref = "origin/" + ref
	}

	c.logger.Debug("diffing HEAD against remote branch", "ref", ref)
	return c.run(ctx, diffArgs([]string{ref + "...HEAD"}, opts.Exclude))
}

func (c *Client) previousDiff(ctx context.Context, repo *git.Repository, opts core.ReviewOptions) (string, error) {
	head, err := repo.Head()
	if err != nil {
		// A repository with no commits has nothing to review.
		c.logger.Info("repository has no commits yet")
		return "", nil
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("reading HEAD commit: %w", err)
	}

	base := emptyTreeHash
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return "", fmt.Errorf("reading parent of HEAD: %w", err)
		}
		base = parent.Hash.String()
	}

	c.logger.Debug("diffing last commit", "head", commit.Hash.String(), "base", base)
	return c.run(ctx, diffArgs([]string{base, commit.Hash.String()}, opts.Exclude))
}

// diffArgs assembles the git diff argument list, turning exclude-path
// patterns into :(exclude) pathspecs so they apply in every mode.
func diffArgs(revs []string, exclude []string) []string {
	args := append([]string{"diff"}, revs...)
	if len(exclude) > 0 {
		args = append(args, "--")
		for _, pattern := range exclude {
			args = append(args, ":(exclude)"+pattern)
		}
	}
	return args
}

func (c *Client) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}
