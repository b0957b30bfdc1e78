package menuboard

import (
	"context"
	"fmt"
)

// MenuStore persists the menu records of each brand.
type MenuStore interface {
	// Load returns the brand's stored records.
	// Returns ENOTFOUND if nothing has been stored for the brand and
	// EINVALID if the stored data cannot be decoded.
	Load(ctx context.Context, brand Brand) ([]*MenuRecord, error)

	// Save replaces the brand's stored records.
	Save(ctx context.Context, brand Brand, records []*MenuRecord) error
}

// Catalog holds the loaded menu records of every brand, keyed by brand.
type Catalog struct {
	brands  []Brand
	records map[Brand][]*MenuRecord
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[Brand][]*MenuRecord)}
}

// LoadCatalog loads each brand from store. A brand that fails to load gets an
// empty record list and contributes a warning; the others are unaffected.
func LoadCatalog(ctx context.Context, store MenuStore, brands []Brand) (*Catalog, []error) {
	c := NewCatalog()
	var warnings []error
	for _, b := range brands {
		records, err := store.Load(ctx, b)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", b, err))
			records = nil
		}
		c.Set(b, records)
	}
	return c, warnings
}

// Set replaces the records of brand b.
func (c *Catalog) Set(b Brand, records []*MenuRecord) {
	if _, ok := c.records[b]; !ok {
		c.brands = append(c.brands, b)
	}
	c.records[b] = records
}

// Brands returns the catalog's brands in load order.
func (c *Catalog) Brands() []Brand {
	return c.brands
}

// Records returns the records of brand b.
func (c *Catalog) Records(b Brand) []*MenuRecord {
	return c.records[b]
}

// All returns the records of every brand, brand by brand.
func (c *Catalog) All() []*MenuRecord {
	var all []*MenuRecord
	for _, b := range c.brands {
		all = append(all, c.records[b]...)
	}
	return all
}

// Categories returns the distinct non-empty categories of brand b in the
// order they first appear.
func (c *Catalog) Categories(b Brand) []string {
	var categories []string
	seen := make(map[string]bool)
	for _, r := range c.records[b] {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		categories = append(categories, r.Category)
	}
	return categories
}

// Filter returns the records of brand b in category. An empty category
// matches every record.
func (c *Catalog) Filter(b Brand, category string) []*MenuRecord {
	if category == "" {
		return c.records[b]
	}
	var out []*MenuRecord
	for _, r := range c.records[b] {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
