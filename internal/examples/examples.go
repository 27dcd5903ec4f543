package examples

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	loadOnce sync.Once
	catalog  *Catalog
	loadErr  error
)

// parses a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for i, t := range c.Translations {
		if strings.TrimSpace(t.Trigger) == "" {
			return nil, fmt.Errorf("translation %d: trigger is required", i)
		}

		if t.Code == "" {
			return nil, fmt.Errorf("translation %q: code is required", t.Trigger)
		}
	}

	return &c, nil
}

// returns the embedded catalog. the file ships with the binary, so a parse
// failure is a build defect and panics
func Default() *Catalog {
	loadOnce.Do(func() {
		catalog, loadErr = Parse(catalogYAML)
	})

	if loadErr != nil {
		panic(loadErr)
	}

	return catalog
}

// example prompts offered to the user
func Prompts() []string {
	prompts := Default().Prompts
	out := make([]string, len(prompts))
	copy(out, prompts)

	return out
}

// finds the canned translation whose trigger words all occur in the prompt
func (c *Catalog) Lookup(prompt string) (string, bool) {
	normalized := strings.ToLower(prompt)

	for _, t := range c.Translations {
		if matchesTrigger(normalized, t.Trigger) {
			return t.Code, true
		}
	}

	return "", false
}

// returns the canned translation for the prompt, or the stub template
func (c *Catalog) Translate(prompt string) string {
	if code, ok := c.Lookup(prompt); ok {
		return code
	}

	return Fallback(prompt)
}

// stub served when no canned translation matches
func Fallback(prompt string) string {
	prompt = strings.TrimSpace(prompt)

	return fmt.Sprintf(`# Generated Python code for: %s
def solution():
    """
    %s
    """
    # Implementation would go here
    pass

# Example usage:
# solution()`, prompt, prompt)
}

func matchesTrigger(prompt, trigger string) bool {
	words := strings.Fields(strings.ToLower(trigger))
	if len(words) == 0 {
		return false
	}

	for _, w := range words {
		if !strings.Contains(prompt, w) {
			return false
		}
	}

	return true
}
