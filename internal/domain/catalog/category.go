package catalog

import "strings"

// Category is the canonical product category enum.
// Storage always uses the English identifiers; the Spanish display names
// are a presentation concern handled by the single mapping below.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryAppliances  Category = "Appliances"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
	CategoryFood        Category = "Food"
	CategoryHome        Category = "Home"
	CategoryToys        Category = "Toys"
	CategoryHealth      Category = "Health"
	CategoryAutomotive  Category = "Automotive"
	CategoryGarden      Category = "Garden"
	CategoryOther       Category = "Other"
)

// AllCategories lists every valid category in display order.
var AllCategories = []Category{
	CategoryElectronics,
	CategoryAppliances,
	CategoryFurniture,
	CategoryClothing,
	CategorySports,
	CategoryBooks,
	CategoryFood,
	CategoryHome,
	CategoryToys,
	CategoryHealth,
	CategoryAutomotive,
	CategoryGarden,
	CategoryOther,
}

// displayNames maps each canonical category to its Spanish display name.
// The mapping is total and invertible; parse accepts either side.
var displayNames = map[Category]string{
	CategoryElectronics: "Electrónicos",
	CategoryAppliances:  "Electrodomésticos",
	CategoryFurniture:   "Muebles",
	CategoryClothing:    "Ropa",
	CategorySports:      "Deportes",
	CategoryBooks:       "Libros",
	CategoryFood:        "Comida",
	CategoryHome:        "Hogar",
	CategoryToys:        "Juguetes",
	CategoryHealth:      "Salud",
	CategoryAutomotive:  "Automotriz",
	CategoryGarden:      "Jardín",
	CategoryOther:       "Otros",
}

var displayLookup = func() map[string]Category {
	m := make(map[string]Category, len(displayNames))
	for cat, name := range displayNames {
		m[strings.ToLower(name)] = cat
	}
	return m
}()

// IsValid returns true if the category is one of the canonical values
func (c Category) IsValid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName returns the Spanish display name for the category
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return displayNames[CategoryOther]
}

// ParseCategory resolves a category from either its canonical identifier or
// its Spanish display name (case-insensitive). Unknown input maps to Other.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return CategoryOther
	}
	for _, cat := range AllCategories {
		if strings.EqualFold(string(cat), trimmed) {
			return cat
		}
	}
	if cat, ok := displayLookup[strings.ToLower(trimmed)]; ok {
		return cat
	}
	return CategoryOther
}
