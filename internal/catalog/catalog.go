// Package catalog holds the clinic's service price list. The catalog is
// immutable for the process lifetime once loaded; appointments capture their
// cost at creation time and are never repriced when the catalog changes.
package catalog

import (
	"encoding/json"
	"fmt"
)

// DefaultCost is charged when a booking names a service the catalog does not
// recognize. Matches the price of a standard consultation.
const DefaultCost = 5000

// Catalog maps service names to their cost.
type Catalog struct {
	prices      map[string]int
	defaultCost int
}

// Default returns the clinic's standard price list. The keys are the literal
// service names so the catalog stays a leaf package; appointments declares the
// same strings as its closed service set.
func Default() *Catalog {
	return New(map[string]int{
		"Consulta Traumatología":  5000,
		"Estudio de Posturología": 8500,
		"Control":                 3000,
	}, DefaultCost)
}

// New builds a catalog from an explicit price map. The map is copied so later
// mutation by the caller cannot reach the catalog.
func New(prices map[string]int, defaultCost int) *Catalog {
	cp := make(map[string]int, len(prices))
	for k, v := range prices {
		cp[k] = v
	}
	if defaultCost <= 0 {
		defaultCost = DefaultCost
	}
	return &Catalog{prices: cp, defaultCost: defaultCost}
}

// Load parses a JSON object of service name to cost, falling back to the
// default price list when the payload is empty.
func Load(pricesJSON string, defaultCost int) (*Catalog, error) {
	if pricesJSON == "" {
		c := Default()
		if defaultCost > 0 {
			c.defaultCost = defaultCost
		}
		return c, nil
	}
	var prices map[string]int
	if err := json.Unmarshal([]byte(pricesJSON), &prices); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse prices: %w", err)
	}
	return New(prices, defaultCost), nil
}

// Cost returns the price for a service, or the fallback cost for services the
// catalog does not know.
func (c *Catalog) Cost(service string) int {
	if cost, ok := c.prices[service]; ok {
		return cost
	}
	return c.defaultCost
}

// Has reports whether the catalog recognizes the service.
func (c *Catalog) Has(service string) bool {
	_, ok := c.prices[service]
	return ok
}

// Prices returns a copy of the full price list for read-only display.
func (c *Catalog) Prices() map[string]int {
	cp := make(map[string]int, len(c.prices))
	for k, v := range c.prices {
		cp[k] = v
	}
	return cp
}
