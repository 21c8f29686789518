package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCategory = errors.New("model: invalid task category")

type Category string

const (
	CategoryPlumber        Category = "Plumber"
	CategoryElectrician    Category = "Electrician"
	CategoryKeyMaker       Category = "Key Maker"
	CategoryInspection     Category = "Property Inspection"
	CategoryWaterFilter    Category = "Water Filter Upgrade/Change"
	CategoryFridgeRepair   Category = "Fridge Repair"
	CategoryWashingMachine Category = "Washing Machine Repair"
	CategoryCarpenter      Category = "Carpenter"
	CategoryDeepCleaning   Category = "Deep Cleaning"
	CategoryPestControl    Category = "Pest Control"
)

var categoryOrder = []Category{
	CategoryPlumber,
	CategoryElectrician,
	CategoryKeyMaker,
	CategoryInspection,
	CategoryWaterFilter,
	CategoryFridgeRepair,
	CategoryWashingMachine,
	CategoryCarpenter,
	CategoryDeepCleaning,
	CategoryPestControl,
}

var categoryIcons = map[Category]string{
	CategoryPlumber:        "🔧",
	CategoryElectrician:    "⚡",
	CategoryKeyMaker:       "🔑",
	CategoryInspection:     "🔍",
	CategoryWaterFilter:    "💧",
	CategoryFridgeRepair:   "🧊",
	CategoryWashingMachine: "🧺",
	CategoryCarpenter:      "🪚",
	CategoryDeepCleaning:   "🧽",
	CategoryPestControl:    "🐜",
}

func init() {
	if err := checkCategoryIcons(categoryOrder, categoryIcons); err != nil {
		panic(err)
	}
}

// checkCategoryIcons requires the icon table to cover the enumeration exactly.
func checkCategoryIcons(order []Category, icons map[Category]string) error {
	for _, c := range order {
		if strings.TrimSpace(icons[c]) == "" {
			return fmt.Errorf("model: category %q has no icon", c)
		}
	}
	if len(icons) != len(order) {
		return fmt.Errorf("model: icon table has %d entries for %d categories", len(icons), len(order))
	}
	return nil
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

func (c Category) IsValid() bool {
	_, ok := categoryIcons[c]
	return ok
}

func (c Category) Icon() string {
	return categoryIcons[c]
}

func (c Category) String() string { return string(c) }

// ParseCategory matches a category by its display name, ignoring case and
// surrounding space.
func ParseCategory(raw string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range categoryOrder {
		if strings.ToLower(string(c)) == needle {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}
