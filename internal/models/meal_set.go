package models

import "time"

// MealSet is a named bundle of items sold at one price. Items holds item ids
// in display order; they are not checked against the item catalog.
type MealSet struct {
	ID          string     `bson:"_id" json:"id" db:"id"`
	Name        string     `bson:"name" json:"name" db:"name"`
	Description string     `bson:"description" json:"description" db:"description"`
	Price       float64    `bson:"price" json:"price" db:"price"`
	Items       StringList `bson:"items" json:"items" db:"items"`
	IsAvailable bool       `bson:"is_available" json:"is_available" db:"is_available"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
