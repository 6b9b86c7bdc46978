package service

import (
	"strings"

	"recycle-sorter/domain"
)

// keywords are tested in this order; the first one found in the name wins.
var keywords = []struct {
	word     string
	category domain.Category
}{
	{"plastic", domain.Plastic},
	{"glass", domain.Glass},
	{"metal", domain.Metal},
	{"wood", domain.Wood},
}

// Classify maps an item to its material category. A material keyword in
// the name takes precedence over the weight; weight bands are half-open
// [low, high) with the top band unbounded.
//
// Classify never fails and has no side effects.
func Classify(name string, weight float64) domain.ClassifiedItem {
	category := categoryByWeight(weight)

	lower := strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(lower, k.word) {
			category = k.category
			break
		}
	}

	return domain.ClassifiedItem{
		Name:       name,
		Weight:     weight,
		Category:   category,
		Recyclable: category.Recyclable(),
	}
}

func categoryByWeight(weight float64) domain.Category {
	switch {
	case weight < GlassMinWeight:
		return domain.Plastic
	case weight < WoodMinWeight:
		return domain.Glass
	case weight < MetalMinWeight:
		return domain.Wood
	default:
		return domain.Metal
	}
}
