package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Len(t, c.Breeds(), len(defaultBreeds))
	assert.Len(t, c.Feeds(), len(defaultFeeds))
	assert.Len(t, c.BreedsFor(models.CategoryCattle), 11)
	assert.Len(t, c.BreedsFor(models.CategorySheep), 10)
	assert.Len(t, c.BreedsFor(models.CategoryGoat), 7)

	corn, ok := c.Feed("corn")
	require.True(t, ok)
	assert.Equal(t, 88.0, corn.DryMatterPercent)
	assert.Equal(t, 9.2, corn.PricePerKg)
}

func TestResolveBreedFallsBackToFirst(t *testing.T) {
	c := Default()

	b, ok := c.ResolveBreed("angus")
	assert.True(t, ok)
	assert.Equal(t, "angus", b.ID)

	b, ok = c.ResolveBreed("unknown")
	assert.False(t, ok)
	assert.Equal(t, "holstein", b.ID)
}

func TestNewRejectsInvalidTables(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	_, err = New([]models.AnimalBreed{
		{ID: "a", Category: models.CategoryCattle},
		{ID: "a", Category: models.CategoryCattle},
	}, nil)
	assert.ErrorContains(t, err, "duplicate breed")

	_, err = New([]models.AnimalBreed{{ID: "a", Category: "llama"}}, nil)
	assert.Error(t, err)

	_, err = New([]models.AnimalBreed{{ID: "a", Category: models.CategoryGoat}}, []models.Feed{{ID: "x", DryMatterPercent: 120}})
	assert.ErrorContains(t, err, "out of range")
}

func TestNewRejectsNonFiniteOrNegativeQuantities(t *testing.T) {
	goat := []models.AnimalBreed{{ID: "a", Category: models.CategoryGoat}}
	valid := models.Feed{ID: "x", DryMatterPercent: 88, MetabolizableEnergy: 13, CrudeProtein: 9, PricePerKg: 9}

	_, err := New(goat, []models.Feed{valid})
	require.NoError(t, err)

	tests := map[string]struct {
		mutate func(f *models.Feed)
		want   string
	}{
		"nan dry matter":       {func(f *models.Feed) { f.DryMatterPercent = math.NaN() }, "dry matter"},
		"nan energy":           {func(f *models.Feed) { f.MetabolizableEnergy = math.NaN() }, "metabolizable_energy"},
		"infinite protein":     {func(f *models.Feed) { f.CrudeProtein = math.Inf(1) }, "crude_protein_percent"},
		"negative calcium":     {func(f *models.Feed) { f.Calcium = -0.1 }, "calcium_percent"},
		"nan phosphorus":       {func(f *models.Feed) { f.Phosphorus = math.NaN() }, "phosphorus_percent"},
		"negative magnesium":   {func(f *models.Feed) { f.Magnesium = -1 }, "magnesium_percent"},
		"infinite sodium":      {func(f *models.Feed) { f.Sodium = math.Inf(-1) }, "sodium_percent"},
		"negative bicarbonate": {func(f *models.Feed) { f.Bicarbonate = -72 }, "bicarbonate_percent"},
		"negative price":       {func(f *models.Feed) { f.PricePerKg = -5 }, "price_per_kg"},
		"nan price":            {func(f *models.Feed) { f.PricePerKg = math.NaN() }, "price_per_kg"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			_, err := New(goat, []models.Feed{f})
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err = New([]models.AnimalBreed{{ID: "a", Category: models.CategoryGoat, MaintenanceEnergy: math.NaN()}}, nil)
	assert.ErrorContains(t, err, "maintenance_energy")
	_, err = New([]models.AnimalBreed{{ID: "a", Category: models.CategoryGoat, MaintenanceProtein: -1}}, nil)
	assert.ErrorContains(t, err, "maintenance_protein")
}

func TestWithPricesProducesNewSnapshot(t *testing.T) {
	base := Default()

	refreshed := base.WithPrices(map[string]float64{
		"corn":   11.0,
		"barley": -3,
		"wheat":  0,
	}, "15 October 2026 06:00")

	corn, _ := refreshed.Feed("corn")
	assert.Equal(t, 11.0, corn.PricePerKg)

	barley, _ := refreshed.Feed("barley")
	assert.Equal(t, 8.5, barley.PricePerKg, "negative price keeps catalog price")

	oats, _ := refreshed.Feed("oats")
	assert.Equal(t, 8.8, oats.PricePerKg, "omitted id keeps catalog price")

	oldCorn, _ := base.Feed("corn")
	assert.Equal(t, 9.2, oldCorn.PricePerKg, "base snapshot untouched")
	assert.Empty(t, base.PriceSnapshotDate())
	assert.Equal(t, "15 October 2026 06:00", refreshed.PriceSnapshotDate())
}

func TestFeedsReturnsCopy(t *testing.T) {
	c := Default()
	feeds := c.Feeds()
	feeds[0].PricePerKg = 1000

	f, _ := c.Feed(feeds[0].ID)
	assert.NotEqual(t, 1000.0, f.PricePerKg)
}

func TestValidateProfile(t *testing.T) {
	c := Default()

	assert.NoError(t, c.ValidateProfile(models.AnimalProfile{Category: models.CategorySheep, BreedID: "dorper"}))
	assert.ErrorIs(t, c.ValidateProfile(models.AnimalProfile{Category: models.CategoryGoat, BreedID: "dorper"}), ErrBreedCategoryMismatch)
	assert.Error(t, c.ValidateProfile(models.AnimalProfile{Category: models.CategoryGoat, BreedID: "nope"}))
	assert.Error(t, c.ValidateProfile(models.AnimalProfile{Category: "horse", BreedID: "dorper"}))
}

func TestHolderPublish(t *testing.T) {
	base := Default()
	h := NewHolder(base)
	assert.Same(t, base, h.Current())

	next := base.WithPrices(map[string]float64{"corn": 10}, "today")
	h.Publish(next)
	assert.Same(t, next, h.Current())
	assert.Same(t, base, h.Base())

	h.Publish(nil)
	assert.Same(t, next, h.Current())
}

func TestParseOverlay(t *testing.T) {
	doc := []byte(`
feeds:
  - id: corn
    name: Corn (local)
    dry_matter_percent: 87
    metabolizable_energy: 13.4
    crude_protein_percent: 8.5
    price_per_kg: 10.1
  - id: pea
    name: Field pea
    group: protein
    dry_matter_percent: 89
    metabolizable_energy: 13.0
    crude_protein_percent: 23
    price_per_kg: 14
breeds:
  - id: kilis
    name: Kilis
    category: goat
    maintenance_energy: 0.44
    maintenance_protein: 1.15
`)

	c, err := Parse(doc)
	require.NoError(t, err)

	corn, ok := c.Feed("corn")
	require.True(t, ok)
	assert.Equal(t, "Corn (local)", corn.Name)
	assert.Equal(t, 10.1, corn.PricePerKg)
	assert.Equal(t, "corn", c.Feeds()[0].ID, "overridden feed keeps its position")

	_, ok = c.Feed("pea")
	assert.True(t, ok)

	kilis, ok := c.Breed("kilis")
	require.True(t, ok)
	assert.Equal(t, models.CategoryGoat, kilis.Category)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("feeds: [unterminated"))
	assert.Error(t, err)
}

func TestParseRejectsNonFiniteFeed(t *testing.T) {
	_, err := Parse([]byte(`
feeds:
  - id: corn
    name: Corn
    dry_matter_percent: .nan
    metabolizable_energy: 13.5
    price_per_kg: 9
`))
	assert.ErrorContains(t, err, "dry matter")

	_, err = Parse([]byte(`
feeds:
  - id: corn
    name: Corn
    dry_matter_percent: 88
    metabolizable_energy: 13.5
    price_per_kg: -5
`))
	assert.ErrorContains(t, err, "price_per_kg")
}
