package models

import "time"

// Customer is a storefront customer. Email is looked up on order intake but
// is not unique.
type Customer struct {
	ID        string    `bson:"_id" json:"id" db:"id"`
	Name      string    `bson:"name" json:"name" db:"name"`
	Email     string    `bson:"email" json:"email" db:"email"`
	Phone     string    `bson:"phone" json:"phone" db:"phone"`
	CreatedAt time.Time `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
