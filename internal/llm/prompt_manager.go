package llm

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// DefaultTemplate is the template used when no name is given or the
// named template cannot be found.
const DefaultTemplate = "default"

// PromptData carries the substitution values for a review prompt.
type PromptData struct {
	Diff         string
	Focus        []string
	Ignore       []string
	Instructions []string
}

// PromptManager loads the embedded prompt templates and renders review
// prompts from them.
type PromptManager struct {
	prompts map[string]*template.Template
}

// NewPromptManager parses all embedded prompt files. Each file
// prompts/<name>.prompt registers a template under <name>; the set must
// contain the default template.
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]*template.Template),
	}

	files, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		fileName := file.Name()
		name := strings.TrimSuffix(fileName, filepath.Ext(fileName))

		content, err := promptFiles.ReadFile("prompts/" + fileName)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt file %s: %w", fileName, err)
		}

		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("could not parse prompt template %s: %w", fileName, err)
		}
		pm.prompts[name] = tmpl
	}

	if _, ok := pm.prompts[DefaultTemplate]; !ok {
		return nil, fmt.Errorf("embedded prompts are missing the %q template", DefaultTemplate)
	}

	return pm, nil
}

// Get returns the named template, falling back to the default template
// when the name is empty or unknown.
func (pm *PromptManager) Get(name string) *template.Template {
	if tmpl, ok := pm.prompts[name]; ok {
		return tmpl
	}
	return pm.prompts[DefaultTemplate]
}

// Has reports whether a template with the given name is registered.
func (pm *PromptManager) Has(name string) bool {
	_, ok := pm.prompts[name]
	return ok
}

// Names lists the registered template names in sorted order.
func (pm *PromptManager) Names() []string {
	names := make([]string, 0, len(pm.prompts))
	for name := range pm.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render substitutes data into the named template.
func (pm *PromptManager) Render(name string, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := pm.Get(name).Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return buf.String(), nil
}
