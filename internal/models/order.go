package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order statuses. Updates may write any value; these are the ones the
// storefront and back office use.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

const (
	OrderTypeMealSet = "meal_set"
	OrderTypeCustom  = "custom"
)

// OrderLine represents a single item entry within an order.
type OrderLine struct {
	ItemID   string  `bson:"item_id" json:"item_id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// OrderLines is stored as a JSON document in relational backends.
type OrderLines []OrderLine

// Value implements driver.Valuer.
func (l OrderLines) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]OrderLine(l))
}

// Scan implements sql.Scanner.
func (l *OrderLines) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = OrderLines{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderLines", src)
	}
	var lines []OrderLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*l = lines
	return nil
}

// Order defines the persisted order record. Customer and address fields are
// display copies; CustomerID and LocationID may be nil when the matching
// side record could not be written.
type Order struct {
	ID                  string     `bson:"_id" json:"id" db:"id"`
	CustomerID          *string    `bson:"customer_id" json:"customer_id" db:"customer_id"`
	CustomerName        string     `bson:"customer_name" json:"customer_name" db:"customer_name"`
	CustomerEmail       string     `bson:"customer_email" json:"customer_email" db:"customer_email"`
	CustomerPhone       string     `bson:"customer_phone" json:"customer_phone" db:"customer_phone"`
	Items               OrderLines `bson:"items" json:"items" db:"items"`
	MealSetID           *string    `bson:"meal_set_id" json:"meal_set_id" db:"meal_set_id"`
	Quantity            int        `bson:"quantity" json:"quantity" db:"quantity"`
	TotalAmount         float64    `bson:"total_amount" json:"total_amount" db:"total_amount"`
	OrderType           string     `bson:"order_type" json:"order_type" db:"order_type"`
	Status              string     `bson:"status" json:"status" db:"status"`
	EventType           string     `bson:"event_type" json:"event_type" db:"event_type"`
	EventDate           string     `bson:"event_date" json:"event_date" db:"event_date"`
	OrderDate           string     `bson:"order_date" json:"order_date" db:"order_date"`
	DeliveryDate        string     `bson:"delivery_date" json:"delivery_date" db:"delivery_date"`
	DeliveryAddress     string     `bson:"delivery_address" json:"delivery_address" db:"delivery_address"`
	LocationID          *string    `bson:"location_id" json:"location_id" db:"location_id"`
	ContactPerson       string     `bson:"contact_person" json:"contact_person" db:"contact_person"`
	ContactNumber       string     `bson:"contact_number" json:"contact_number" db:"contact_number"`
	PaymentMethod       string     `bson:"payment_method" json:"payment_method" db:"payment_method"`
	SpecialInstructions string     `bson:"special_instructions" json:"special_instructions" db:"special_instructions"`
	CreatedAt           time.Time  `bson:"created_at" json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at" json:"updated_at" db:"updated_at"`
}
