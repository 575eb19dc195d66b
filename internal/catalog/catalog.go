// Package catalog holds the breed and feed reference tables. A Catalog value is
// never mutated after construction; price refreshes produce a new value.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

// ErrBreedCategoryMismatch indicates a profile references a breed from another category.
var ErrBreedCategoryMismatch = errors.New("breed does not belong to category")

// Catalog is an immutable snapshot of reference data.
type Catalog struct {
	breeds     []models.AnimalBreed
	feeds      []models.Feed
	breedIndex map[string]int
	feedIndex  map[string]int
	priceDate  string
}

// New validates and indexes the supplied tables. The slices are copied.
func New(breeds []models.AnimalBreed, feeds []models.Feed) (*Catalog, error) {
	if len(breeds) == 0 {
		return nil, errors.New("catalog requires at least one breed")
	}

	c := &Catalog{
		breeds:     append([]models.AnimalBreed(nil), breeds...),
		feeds:      append([]models.Feed(nil), feeds...),
		breedIndex: make(map[string]int, len(breeds)),
		feedIndex:  make(map[string]int, len(feeds)),
	}

	for i, b := range c.breeds {
		if b.ID == "" {
			return nil, fmt.Errorf("breed at position %d has no id", i)
		}
		if _, err := models.ParseCategory(string(b.Category)); err != nil {
			return nil, fmt.Errorf("breed %s: %w", b.ID, err)
		}
		if err := checkQuantities(map[string]float64{
			"maintenance_energy":  b.MaintenanceEnergy,
			"maintenance_protein": b.MaintenanceProtein,
		}); err != nil {
			return nil, fmt.Errorf("breed %s: %w", b.ID, err)
		}
		if _, dup := c.breedIndex[b.ID]; dup {
			return nil, fmt.Errorf("duplicate breed id %s", b.ID)
		}
		c.breedIndex[b.ID] = i
	}

	for i, f := range c.feeds {
		if f.ID == "" {
			return nil, fmt.Errorf("feed at position %d has no id", i)
		}
		if !(f.DryMatterPercent >= 0 && f.DryMatterPercent <= 100) {
			return nil, fmt.Errorf("feed %s: dry matter %.2f%% out of range", f.ID, f.DryMatterPercent)
		}
		if err := checkQuantities(map[string]float64{
			"metabolizable_energy":  f.MetabolizableEnergy,
			"crude_protein_percent": f.CrudeProtein,
			"calcium_percent":       f.Calcium,
			"phosphorus_percent":    f.Phosphorus,
			"magnesium_percent":     f.Magnesium,
			"sodium_percent":        f.Sodium,
			"bicarbonate_percent":   f.Bicarbonate,
			"price_per_kg":          f.PricePerKg,
		}); err != nil {
			return nil, fmt.Errorf("feed %s: %w", f.ID, err)
		}
		if _, dup := c.feedIndex[f.ID]; dup {
			return nil, fmt.Errorf("duplicate feed id %s", f.ID)
		}
		c.feedIndex[f.ID] = i
	}

	return c, nil
}

// checkQuantities requires every value to be finite and non-negative. Fields are
// checked in name order so the error is stable.
func checkQuantities(fields map[string]float64) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		v := fields[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%s must be a finite non-negative number, got %v", name, v)
		}
	}
	return nil
}

// Default returns the built-in reference tables.
func Default() *Catalog {
	c, err := New(defaultBreeds, defaultFeeds)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Breeds returns a copy of every breed in catalog order.
func (c *Catalog) Breeds() []models.AnimalBreed {
	return append([]models.AnimalBreed(nil), c.breeds...)
}

// BreedsFor returns the breeds of one category.
func (c *Catalog) BreedsFor(category models.Category) []models.AnimalBreed {
	var out []models.AnimalBreed
	for _, b := range c.breeds {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// Breed looks up a breed by id.
func (c *Catalog) Breed(id string) (models.AnimalBreed, bool) {
	i, ok := c.breedIndex[id]
	if !ok {
		return models.AnimalBreed{}, false
	}
	return c.breeds[i], true
}

// ResolveBreed looks up a breed and falls back to the first catalog breed.
// The boolean reports whether the requested id was found.
func (c *Catalog) ResolveBreed(id string) (models.AnimalBreed, bool) {
	if b, ok := c.Breed(id); ok {
		return b, true
	}
	return c.breeds[0], false
}

// Feeds returns a copy of every feed in catalog order.
func (c *Catalog) Feeds() []models.Feed {
	return append([]models.Feed(nil), c.feeds...)
}

// Feed looks up a feed by id.
func (c *Catalog) Feed(id string) (models.Feed, bool) {
	i, ok := c.feedIndex[id]
	if !ok {
		return models.Feed{}, false
	}
	return c.feeds[i], true
}

// PriceSnapshotDate is the formatted date of the market refresh this snapshot
// carries, or empty for catalog prices.
func (c *Catalog) PriceSnapshotDate() string {
	return c.priceDate
}

// WithPrices derives a new snapshot whose prices come from the map. Feeds missing
// from the map, or with a non-positive or non-finite price, keep this catalog's price.
func (c *Catalog) WithPrices(prices map[string]float64, snapshotDate string) *Catalog {
	next := &Catalog{
		breeds:     c.breeds,
		feeds:      make([]models.Feed, len(c.feeds)),
		breedIndex: c.breedIndex,
		feedIndex:  c.feedIndex,
		priceDate:  snapshotDate,
	}
	for i, f := range c.feeds {
		if p, ok := prices[f.ID]; ok && p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p) {
			f.PricePerKg = p
		}
		next.feeds[i] = f
	}
	return next
}

// ValidateProfile reports whether the profile's breed exists and belongs to its category.
func (c *Catalog) ValidateProfile(p models.AnimalProfile) error {
	if _, err := models.ParseCategory(string(p.Category)); err != nil {
		return err
	}
	b, ok := c.Breed(p.BreedID)
	if !ok {
		return fmt.Errorf("unknown breed %q", p.BreedID)
	}
	if b.Category != p.Category {
		return fmt.Errorf("%w: %s is %s, not %s", ErrBreedCategoryMismatch, b.ID, b.Category, p.Category)
	}
	return nil
}

// Holder publishes the current snapshot to concurrent readers.
type Holder struct {
	base    *Catalog
	current atomic.Pointer[Catalog]
}

// NewHolder starts with base as the current snapshot.
func NewHolder(base *Catalog) *Holder {
	h := &Holder{base: base}
	h.current.Store(base)
	return h
}

// Base is the catalog loaded at startup, before any price refresh.
func (h *Holder) Base() *Catalog { return h.base }

// Current is the latest published snapshot.
func (h *Holder) Current() *Catalog { return h.current.Load() }

// Publish replaces the current snapshot.
func (h *Holder) Publish(c *Catalog) {
	if c != nil {
		h.current.Store(c)
	}
}
