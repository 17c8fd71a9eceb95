package core

// ReviewOptions describes a single review request as assembled from CLI
// flags and the repository config file. All fields are optional; when
// none of Commit, Branch, or Previous is set, the diff defaults to the
// last-commit comparison.
type ReviewOptions struct {
	// Commit is a commit id to review, diffed against its first parent.
	Commit string
	// Branch is a remote branch name to diff the current HEAD against.
	Branch string
	// Previous forces the default last-commit comparison.
	Previous bool
	// Output is an optional file path the review is written to.
	Output string
	// Exclude holds pathspec patterns removed from the diff.
	Exclude []string
	// Focus and Ignore steer the prompt toward or away from review areas.
	Focus  []string
	Ignore []string
	// Template names the prompt template. Empty means the default one.
	Template string
}

// Target returns a short human-readable description of what the request
// reviews, used for logging and the review history.
func (o ReviewOptions) Target() string {
	switch {
	case o.Commit != "":
		return "commit:" + o.Commit
	case o.Branch != "":
		return "branch:" + o.Branch
	default:
		return "previous"
	}
}
