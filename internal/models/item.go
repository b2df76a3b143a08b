package models

import "time"

// Item categories accepted by the catalog.
const (
	CategorySnack    = "snack"
	CategoryMain     = "main"
	CategorySide     = "side"
	CategoryBeverage = "beverage"
)

// ValidItemCategory reports whether category is one of the catalog categories.
func ValidItemCategory(category string) bool {
	switch category {
	case CategorySnack, CategoryMain, CategorySide, CategoryBeverage:
		return true
	}
	return false
}

// Item is a single menu entry. Price is in PHP.
type Item struct {
	ID          string    `bson:"_id" json:"id" db:"id"`
	Name        string    `bson:"name" json:"name" db:"name"`
	Description string    `bson:"description" json:"description" db:"description"`
	Price       float64   `bson:"price" json:"price" db:"price"`
	Category    string    `bson:"category" json:"category" db:"category"`
	IsAvailable bool      `bson:"is_available" json:"is_available" db:"is_available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
