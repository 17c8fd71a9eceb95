// Package cache stores completed reviews on disk, keyed by a fingerprint
// of the review request, so an unchanged diff is never sent to the model
// twice. The cache is best-effort: every failure inside it degrades to a
// miss and the caller recomputes.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"github.com/sevigo/diffwarden/internal/core"
)

// FormatVersion is bumped whenever the entry layout or key derivation
// changes, invalidating all previously written entries.
const FormatVersion = "1"

// DirName is the fixed cache location, relative to the working directory.
const DirName = ".diffwarden-cache"

// defaultTemplate is what an unset template name means during entry
// validation.
const defaultTemplate = "default"

// Entry is the persisted form of one cached review, together with the
// configuration it was produced under.
type Entry struct {
	Version  string   `json:"version"`
	ModelID  string   `json:"modelId"`
	Template string   `json:"template,omitempty"`
	Focus    []string `json:"focus,omitempty"`
	Ignore   []string `json:"ignore,omitempty"`
	Review   string   `json:"review"`
}

// Cache maps review requests to previously generated reviews. The model
// id is a plain constructor parameter rather than being read from the
// environment here, so the cache is testable without env manipulation.
type Cache struct {
	store   Store
	modelID string
	logger  *slog.Logger
}

// New creates a Cache on top of an arbitrary store.
func New(store Store, modelID string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, modelID: modelID, logger: logger}
}

// NewOnDisk creates a Cache backed by the fixed DirName directory in the
// current working directory, creating it if missing.
func NewOnDisk(modelID string, logger *slog.Logger) (*Cache, error) {
	store, err := NewDirStore(DirName)
	if err != nil {
		return nil, err
	}
	return New(store, modelID, logger), nil
}

// keyPayload is the canonical serialization hashed into a cache key.
// Struct field order fixes the JSON key order, so equal inputs always
// produce identical bytes. Focus and ignore are hashed in the order
// given; reordering them yields a different key.
type keyPayload struct {
	Diff     string   `json:"diff"`
	Template string   `json:"template,omitempty"`
	Focus    []string `json:"focus,omitempty"`
	Ignore   []string `json:"ignore,omitempty"`
	ModelID  string   `json:"modelId"`
	Version  string   `json:"version"`
}

// DeriveKey computes the cache key for a diff and its review options as
// a lowercase sha256 hex digest. Pure function of its inputs plus the
// cache's model id and FormatVersion.
func (c *Cache) DeriveKey(diff string, opts core.ReviewOptions) string {
	payload, err := json.Marshal(keyPayload{
		Diff:     diff,
		Template: opts.Template,
		Focus:    opts.Focus,
		Ignore:   opts.Ignore,
		ModelID:  c.modelID,
		Version:  FormatVersion,
	})
	if err != nil {
		// Marshaling strings and string slices cannot fail; keep the
		// signature error-free like the rest of the read path.
		c.logger.Warn("cache key serialization failed", "error", err)
		payload = []byte(diff)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached review for a key, or false on any miss. A
// missing file, an unparsable file, and a validation mismatch are all
// plain misses; nothing in the read path surfaces as an error.
func (c *Cache) Get(key string, opts core.ReviewOptions) (string, bool) {
	data, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("discarding unparsable cache entry", "key", key, "error", err)
		return "", false
	}
	if !c.valid(&entry, opts) {
		return "", false
	}
	return entry.Review, true
}

// Put stores a review under the given key, overwriting any previous
// entry. Write failures are logged and swallowed: a lost cache write
// only costs a recomputation later, never the review itself.
func (c *Cache) Put(key, review string, opts core.ReviewOptions) {
	entry := Entry{
		Version:  FormatVersion,
		ModelID:  c.modelID,
		Template: opts.Template,
		Focus:    opts.Focus,
		Ignore:   opts.Ignore,
		Review:   review,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("cache entry serialization failed", "key", key, "error", err)
		return
	}
	if err := c.store.Put(key, data); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// valid reports whether a stored entry still applies to the requesting
// options under the current format version and model id.
func (c *Cache) valid(entry *Entry, opts core.ReviewOptions) bool {
	if entry.Version != FormatVersion {
		return false
	}
	if entry.ModelID != c.modelID {
		return false
	}
	if templateOrDefault(entry.Template) != templateOrDefault(opts.Template) {
		return false
	}
	return sameList(entry.Focus, opts.Focus) && sameList(entry.Ignore, opts.Ignore)
}

func templateOrDefault(name string) string {
	if name == "" {
		return defaultTemplate
	}
	return name
}

// sameList compares two lists by their canonical serialization, keeping
// the comparison aligned with how DeriveKey hashes them. Order matters;
// nil and empty both serialize distinctly and consistently.
func sameList(a, b []string) bool {
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	return bytes.Equal(ja, jb)
}
