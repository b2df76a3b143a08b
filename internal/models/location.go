package models

import "time"

const (
	LocationActive   = "active"
	LocationInactive = "inactive"
)

// Location is a delivery or event address. Order intake writes a new row for
// every order that carries an address.
type Location struct {
	ID        string    `bson:"_id" json:"id" db:"id"`
	Name      string    `bson:"name" json:"name" db:"name"`
	Address   string    `bson:"address" json:"address" db:"address"`
	Phone     string    `bson:"phone" json:"phone" db:"phone"`
	Status    string    `bson:"status" json:"status" db:"status"`
	Region    string    `bson:"region" json:"region" db:"region"`
	Province  string    `bson:"province" json:"province" db:"province"`
	City      string    `bson:"city" json:"city" db:"city"`
	CreatedAt time.Time `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
