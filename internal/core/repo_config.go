package core

// RepoConfig represents the structure of the .diffwarden.yml file, an
// optional per-repository file that provides defaults for review runs.
type RepoConfig struct {
	// Custom instructions appended to the LLM prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Pathspec patterns excluded from every diff.
	// Example: ["vendor/*", "*.lock"]
	Exclude []string `yaml:"exclude"`

	// Default focus and ignore areas when the CLI flags are not given.
	Focus  []string `yaml:"focus"`
	Ignore []string `yaml:"ignore"`

	// Default prompt template name.
	Template string `yaml:"template"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		Exclude:            []string{},
		Focus:              []string{},
		Ignore:             []string{},
	}
}

// ApplyTo fills unset fields of opts from the repo config defaults.
func (c *RepoConfig) ApplyTo(opts *ReviewOptions) {
	if len(opts.Exclude) == 0 {
		opts.Exclude = c.Exclude
	}
	if len(opts.Focus) == 0 {
		opts.Focus = c.Focus
	}
	if len(opts.Ignore) == 0 {
		opts.Ignore = c.Ignore
	}
	if opts.Template == "" {
		opts.Template = c.Template
	}
}
