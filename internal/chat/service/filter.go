package service

import (
	"strings"

	"seedstore_backend/internal/chat/repository"
	"seedstore_backend/internal/chat/transport"
)

// Filter keeps the products that satisfy every set field of c, in input
// order, and projects them to the chat view.
func Filter(products []repository.Product, c SearchCriteria) []transport.FilteredProductView {
	out := make([]transport.FilteredProductView, 0, len(products))
	for _, p := range products {
		if matches(p, c) {
			out = append(out, toFilteredView(p))
		}
	}
	return out
}

func matches(p repository.Product, c SearchCriteria) bool {
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.Country != nil {
		if p.Manufacturer == nil || p.Manufacturer.Country == nil ||
			!containsFold(*p.Manufacturer.Country, *c.Country) {
			return false
		}
	}
	if c.Category != nil {
		if p.Category == nil || !containsFold(p.Category.Name, *c.Category) {
			return false
		}
	}
	if c.ProductType != nil && !matchesProductType(p, *c.ProductType, c.ExactMatch) {
		return false
	}
	if c.Manufacturer != nil {
		if p.Manufacturer == nil || !containsFold(p.Manufacturer.Name, *c.Manufacturer) {
			return false
		}
	}
	return true
}

// matchesProductType checks the name, and the description too unless exact.
func matchesProductType(p repository.Product, productType string, exact bool) bool {
	if containsFold(p.Name, productType) {
		return true
	}
	if exact || p.Description == nil {
		return false
	}
	return containsFold(*p.Description, productType)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func toFilteredView(p repository.Product) transport.FilteredProductView {
	view := transport.FilteredProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
	if p.Manufacturer != nil {
		view.Manufacturer = &transport.ManufacturerView{
			Name:    p.Manufacturer.Name,
			Country: p.Manufacturer.Country,
		}
	}
	if p.Category != nil {
		view.Category = &transport.CategoryView{Name: p.Category.Name}
	}
	return view
}
