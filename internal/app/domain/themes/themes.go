package themes

import (
	"fmt"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Filter applies the taxonomy to POI collections. All methods return fresh
// slices and never mutate the shared catalog, so the same base pool can be
// filtered repeatedly across requests.
type Filter struct {
	taxonomy *Taxonomy
	chains   ahocorasick.AhoCorasick
	logger   *zap.Logger
}

func NewFilter(taxonomy *Taxonomy, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return &Filter{
		taxonomy: taxonomy,
		chains:   builder.Build(taxonomy.ChainNames),
		logger:   logger,
	}
}

// ByTheme returns the POIs whose category belongs to the theme's tag set.
// Unknown themes fail fast with ErrUnknownTheme: intake validates theme
// names against the enum, so reaching this error means the taxonomy and the
// enum have drifted apart.
func (f *Filter) ByTheme(points []models.PointOfInterest, theme models.Theme) ([]models.PointOfInterest, error) {
	if theme == models.ThemeRandom {
		return f.random(points), nil
	}

	tags, ok := f.taxonomy.CategoriesFor(string(theme))
	if !ok {
		return nil, fmt.Errorf("%w: %q (taxonomy version %s)", models.ErrUnknownTheme, theme, f.taxonomy.Version)
	}

	wanted := toSet(tags)
	out := make([]models.PointOfInterest, 0, len(points))
	for _, p := range points {
		if wanted[p.Category] {
			out = append(out, p)
		}
	}

	f.logger.Debug("theme filter applied",
		zap.String("theme", string(theme)),
		zap.Int("in", len(points)),
		zap.Int("out", len(out)))
	return out, nil
}

// random keeps everything except configured chain/franchise venues and
// low-interest categories, so a surprise tour still lands on distinctive
// places.
func (f *Filter) random(points []models.PointOfInterest) []models.PointOfInterest {
	lowInterest := toSet(f.taxonomy.LowInterestCategories)
	out := make([]models.PointOfInterest, 0, len(points))
	for _, p := range points {
		if lowInterest[p.Category] {
			continue
		}
		if p.Name != "" && len(f.chains.FindAll(p.Name)) > 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Popular keeps POIs whose tag mapping has at least minTagCount entries.
// Richer metadata correlates with notability; a POI with no tags at all is
// excluded.
func (f *Filter) Popular(points []models.PointOfInterest, minTagCount int) []models.PointOfInterest {
	out := make([]models.PointOfInterest, 0, len(points))
	for _, p := range points {
		if p.Tags != nil && len(p.Tags) >= minTagCount {
			out = append(out, p)
		}
	}
	return out
}

// Interesting keeps POIs carrying at least one notability tag key
// (wikidata/wikipedia references, official names, opening hours and the
// like), mirroring the completeness heuristics of the source dataset.
func (f *Filter) Interesting(points []models.PointOfInterest) []models.PointOfInterest {
	out := make([]models.PointOfInterest, 0, len(points))
	for _, p := range points {
		for _, key := range f.taxonomy.NotabilityKeys {
			if _, ok := p.Tags[key]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ByCategories keeps POIs matching any of the given raw category tags. Used
// for the auxiliary lodging/rental/transit pools.
func (f *Filter) ByCategories(points []models.PointOfInterest, categories []string) []models.PointOfInterest {
	wanted := toSet(categories)
	out := make([]models.PointOfInterest, 0)
	for _, p := range points {
		if wanted[p.Category] {
			out = append(out, p)
		}
	}
	return out
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.TrimSpace(t)] = true
	}
	return set
}
