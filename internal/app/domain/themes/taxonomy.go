package themes

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

//go:embed taxonomy.json
var taxonomyJSON []byte

// Taxonomy is the versioned mapping from human themes to raw category tags,
// plus the auxiliary category sets the planner needs. It is loaded once and
// treated as immutable process-wide reference data, so taxonomy changes are
// data changes rather than scheduling-code changes.
type Taxonomy struct {
	Version               string              `json:"version"`
	Themes                map[string][]string `json:"themes"`
	Transit               []string            `json:"transit"`
	Lodging               []string            `json:"lodging"`
	Rentals               []string            `json:"rentals"`
	ChainNames            []string            `json:"chain_names"`
	LowInterestCategories []string            `json:"low_interest_categories"`
	NotabilityKeys        []string            `json:"notability_keys"`
}

var (
	defaultTaxonomy *Taxonomy
	taxonomyOnce    sync.Once
	taxonomyErr     error
)

// Default returns the embedded taxonomy, parsed once.
func Default() (*Taxonomy, error) {
	taxonomyOnce.Do(func() {
		t := &Taxonomy{}
		if err := json.Unmarshal(taxonomyJSON, t); err != nil {
			taxonomyErr = errors.Wrap(err, "parsing embedded taxonomy")
			return
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy, taxonomyErr
}

// CategoriesFor returns the category tag set for a theme name.
func (t *Taxonomy) CategoriesFor(theme string) ([]string, bool) {
	tags, ok := t.Themes[theme]
	return tags, ok
}
