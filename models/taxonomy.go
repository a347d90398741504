package models

import "strings"

// boxTaxonomy maps each wardrobe box to the clothing types it accepts.
// Keys and values are matched case-insensitively. A box not listed
// here only accepts the custom type.
var boxTaxonomy = map[string][]string{
	"pants":          {"Pant", "Trouser", "Jeans"},
	"shirts":         {"Shirt", "T-Shirt", "Kurta"},
	"shoes":          {"Shoe", "Sandal", "Sneaker"},
	"frocks":         {"Frock", "Maxi"},
	"shalwar kameez": {"Shalwar Kameez"},
	"jackets":        {"Jacket", "Coat", "Blazer"},
}

// CustomClothingType is accepted in every box.
const CustomClothingType = "custom"

// ClothingTypesForBox returns the clothing types a box accepts, or nil
// for an unknown box. The custom type is always accepted and is not
// included in the returned list.
func ClothingTypesForBox(box string) []string {
	types, ok := boxTaxonomy[strings.ToLower(strings.TrimSpace(box))]
	if !ok {
		return nil
	}
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// ClothingTypeAllowed reports whether a clothing type may be stored
// in the given box. A box outside the taxonomy accepts anything.
func ClothingTypeAllowed(box, clothingType string) bool {
	clothingType = strings.TrimSpace(clothingType)
	if strings.EqualFold(clothingType, CustomClothingType) {
		return true
	}
	types := ClothingTypesForBox(box)
	if types == nil {
		return true
	}
	for _, t := range types {
		if strings.EqualFold(t, clothingType) {
			return true
		}
	}
	return false
}
