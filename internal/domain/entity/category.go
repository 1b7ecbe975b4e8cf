// Package entity contains the core business objects of the project.
package entity

import "slices"

// Category represents the cuisine category a recipe is filed under.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryDessert   Category = "dessert"
	CategorySnack     Category = "snack"
	CategoryDrink     Category = "drink"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryDessert, CategorySnack, CategoryDrink:
		return true
	default:
		return false
	}
}

// Categories is a slice of Category for convenience.
type Categories []Category

// Contains checks if the categories slice contains a specific category.
func (cs Categories) Contains(category Category) bool {
	return slices.Contains(cs, category)
}

// AllCategories lists every valid category, in menu display order.
func AllCategories() Categories {
	return Categories{
		CategoryBreakfast,
		CategoryLunch,
		CategoryDinner,
		CategoryDessert,
		CategorySnack,
		CategoryDrink,
	}
}
