package llm

import (
	"context"
	"time"

	"codeberg.org/pyscribe/server/internal/examples"
)

const defaultFragmentRunes = 16

// serves canned translations from the example catalog; used when no
// upstream model is configured and in tests
type CatalogGenerator struct {
	catalog       *examples.Catalog
	fragmentRunes int
	interval      time.Duration
}

// interval is the pause between fragments; zero streams as fast as the client reads
func NewCatalogGenerator(catalog *examples.Catalog, interval time.Duration) *CatalogGenerator {
	if catalog == nil {
		catalog = examples.Default()
	}

	return &CatalogGenerator{
		catalog:       catalog,
		fragmentRunes: defaultFragmentRunes,
		interval:      interval,
	}
}

func (g *CatalogGenerator) Name() string {
	return "catalog"
}

func (g *CatalogGenerator) Stream(ctx context.Context, prompt string, emit func(fragment string) error) error {
	for _, fragment := range splitRunes(g.catalog.Translate(prompt), g.fragmentRunes) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := emit(fragment); err != nil {
			return err
		}

		if g.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(g.interval):
			}
		}
	}

	return nil
}

// splits s into pieces of at most n runes without breaking a UTF-8 sequence
func splitRunes(s string, n int) []string {
	if n <= 0 {
		return []string{s}
	}

	runes := []rune(s)
	parts := make([]string, 0, len(runes)/n+1)

	for start := 0; start < len(runes); start += n {
		end := min(start+n, len(runes))
		parts = append(parts, string(runes[start:end]))
	}

	return parts
}
