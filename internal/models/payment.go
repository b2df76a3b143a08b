package models

import "time"

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Payment records the intended payment for an order. Nothing here talks to a
// payment processor; status is edited by hand.
type Payment struct {
	ID             string    `bson:"_id" json:"id" db:"id"`
	OrderID        *string   `bson:"order_id" json:"order_id" db:"order_id"`
	Amount         float64   `bson:"amount" json:"amount" db:"amount"`
	PaymentMethod  string    `bson:"payment_method" json:"payment_method" db:"payment_method"`
	Status         string    `bson:"status" json:"status" db:"status"`
	TransactionRef string    `bson:"transaction_ref" json:"transaction_ref" db:"transaction_ref"`
	PaymentDate    string    `bson:"payment_date" json:"payment_date" db:"payment_date"`
	Notes          string    `bson:"notes" json:"notes" db:"notes"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
