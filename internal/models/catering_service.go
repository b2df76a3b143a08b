package models

import "time"

// CateringService is the admin view of an event order. Customer and location
// fields are copies taken when the row was written; they are not kept in sync
// with the customer, location, or order afterwards.
type CateringService struct {
	ID              string    `bson:"_id" json:"id" db:"id"`
	CustomerID      *string   `bson:"customer_id" json:"customer_id" db:"customer_id"`
	CustomerName    string    `bson:"customer_name" json:"customer_name" db:"customer_name"`
	EventType       string    `bson:"event_type" json:"event_type" db:"event_type"`
	EventDate       string    `bson:"event_date" json:"event_date" db:"event_date"`
	GuestCount      int       `bson:"guest_count" json:"guest_count" db:"guest_count"`
	Status          string    `bson:"status" json:"status" db:"status"`
	Location        string    `bson:"location" json:"location" db:"location"`
	LocationID      *string   `bson:"location_id" json:"location_id" db:"location_id"`
	SpecialRequests string    `bson:"special_requests" json:"special_requests" db:"special_requests"`
	OrderID         *string   `bson:"order_id" json:"order_id" db:"order_id"`
	PaymentMethod   string    `bson:"payment_method" json:"payment_method" db:"payment_method"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
