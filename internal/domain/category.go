package domain

import (
	"fmt"
	"strings"
)

// Category classifies event template items, packing items and bag items.
// The set is fixed; see Categories.
type Category string

const (
	CategoryAccessories Category = "Accessories"
	CategoryBags        Category = "Bags"
	CategoryClothing    Category = "Clothing"
	CategoryDocuments   Category = "Documents"
	CategoryElectronics Category = "Electronics"
	CategoryMakeup      Category = "Makeup"
	CategoryMeds        Category = "Meds"
	CategoryShoes       Category = "Shoes"
	CategoryToiletries  Category = "Toiletries"
	CategoryTravel      Category = "Travel"
	CategoryOther       Category = "Other"
)

// Categories is the full enumeration in display order.
var Categories = []Category{
	CategoryAccessories,
	CategoryBags,
	CategoryClothing,
	CategoryDocuments,
	CategoryElectronics,
	CategoryMakeup,
	CategoryMeds,
	CategoryShoes,
	CategoryToiletries,
	CategoryTravel,
	CategoryOther,
}

// ParseCategory maps user input onto the enumeration. Matching ignores case and
// surrounding whitespace; an empty string yields CategoryOther.
// Any other value is an ErrValidation.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// rank returns the position of c in Categories, or len(Categories) if unknown.
func (c Category) rank() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}
