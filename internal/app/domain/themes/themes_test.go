package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

func testFilter(t *testing.T) *Filter {
	t.Helper()
	taxonomy, err := Default()
	require.NoError(t, err)
	return NewFilter(taxonomy, nil)
}

func poi(name, category string, tags map[string]string) models.PointOfInterest {
	return models.PointOfInterest{Name: name, Category: category, Tags: tags}
}

func TestDefaultTaxonomy(t *testing.T) {
	taxonomy, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "2024-11", taxonomy.Version)
	assert.Contains(t, taxonomy.Themes, "food")
	assert.Contains(t, taxonomy.Themes, "bar-crawl")
	assert.NotEmpty(t, taxonomy.Lodging)
	assert.NotEmpty(t, taxonomy.Rentals)
	assert.NotEmpty(t, taxonomy.ChainNames)
}

func TestFilterByTheme(t *testing.T) {
	filter := testFilter(t)
	pool := []models.PointOfInterest{
		poi("Cafe Medina", "cafe", nil),
		poi("Stanley Park", "park", nil),
		poi("Science World", "science", nil),
		poi("The Irish Heather", "pub", nil),
	}

	t.Run("it keeps only the theme's categories", func(t *testing.T) {
		got, err := filter.ByTheme(pool, models.ThemeFood)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "Cafe Medina", got[0].Name)
		assert.Equal(t, "The Irish Heather", got[1].Name)
	})

	t.Run("it is idempotent", func(t *testing.T) {
		once, err := filter.ByTheme(pool, models.ThemeFood)
		require.NoError(t, err)
		twice, err := filter.ByTheme(once, models.ThemeFood)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("it does not mutate the input pool", func(t *testing.T) {
		_, err := filter.ByTheme(pool, models.ThemeNature)
		require.NoError(t, err)
		assert.Len(t, pool, 4)
		assert.Equal(t, "Cafe Medina", pool[0].Name)
	})

	t.Run("it fails fast on a theme missing from the taxonomy", func(t *testing.T) {
		_, err := filter.ByTheme(pool, models.Theme("underwater-basket-weaving"))
		assert.ErrorIs(t, err, models.ErrUnknownTheme)
	})

	t.Run("it returns an empty slice when nothing matches", func(t *testing.T) {
		got, err := filter.ByTheme(pool, models.ThemeArt)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFilterRandomTheme(t *testing.T) {
	filter := testFilter(t)

	t.Run("it excludes chain venues case-insensitively", func(t *testing.T) {
		pool := []models.PointOfInterest{
			poi("McDonald's Robson", "restaurant", nil),
			poi("STARBUCKS Waterfront", "cafe", nil),
			poi("Salt Tasting Room", "restaurant", nil),
		}
		got, err := filter.ByTheme(pool, models.ThemeRandom)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Salt Tasting Room", got[0].Name)
	})

	t.Run("it excludes low-interest categories", func(t *testing.T) {
		pool := []models.PointOfInterest{
			poi("Generic Fries", "fast_food", nil),
			poi("Bao Down", "restaurant", nil),
		}
		got, err := filter.ByTheme(pool, models.ThemeRandom)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Bao Down", got[0].Name)
	})

	t.Run("it keeps other categories", func(t *testing.T) {
		pool := []models.PointOfInterest{
			poi("Museum of Anthropology", "museum", nil),
			poi("Bloedel Conservatory", "park", nil),
		}
		got, err := filter.ByTheme(pool, models.ThemeRandom)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestFilterPopular(t *testing.T) {
	filter := testFilter(t)
	pool := []models.PointOfInterest{
		poi("rich", "cafe", map[string]string{"a": "1", "b": "2", "c": "3"}),
		poi("sparse", "cafe", map[string]string{"a": "1"}),
		poi("bare", "cafe", nil),
	}

	t.Run("it keeps POIs at or above the tag threshold", func(t *testing.T) {
		got := filter.Popular(pool, 3)
		assert.Len(t, got, 1)
		assert.Equal(t, "rich", got[0].Name)
	})

	t.Run("it drops untagged POIs even at threshold zero", func(t *testing.T) {
		got := filter.Popular(pool, 0)
		assert.Len(t, got, 2)
	})
}

func TestFilterInteresting(t *testing.T) {
	filter := testFilter(t)
	pool := []models.PointOfInterest{
		poi("notable", "cafe", map[string]string{"opening_hours": "24/7"}),
		poi("anonymous", "cafe", map[string]string{"smoking": "no"}),
	}
	got := filter.Interesting(pool)
	assert.Len(t, got, 1)
	assert.Equal(t, "notable", got[0].Name)
}

func TestFilterByCategories(t *testing.T) {
	filter := testFilter(t)
	pool := []models.PointOfInterest{
		poi("Sylvia Hotel", "hotel", nil),
		poi("HI Vancouver", "hostel", nil),
		poi("Cafe Medina", "cafe", nil),
	}
	got := filter.ByCategories(pool, []string{"hotel", "hostel"})
	assert.Len(t, got, 2)
}
