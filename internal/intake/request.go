package intake

import (
	"fmt"
	"strings"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
)

// Request is one checkout as submitted by the storefront. TotalAmount is
// computed by the caller and stored as given.
type Request struct {
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	Items               []models.OrderLine
	MealSetID           string
	Quantity            int
	TotalAmount         float64
	OrderType           string
	EventType           string
	EventDate           string
	OrderDate           string
	DeliveryDate        string
	DeliveryAddress     string
	ContactPerson       string
	ContactNumber       string
	PaymentMethod       string
	SpecialInstructions string
}

// ValidationError reports a request the caller must fix and resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// hasEvent reports whether the order should also produce a catering service.
func (r Request) hasEvent() bool {
	return strings.TrimSpace(r.EventType) != "" && strings.TrimSpace(r.EventDate) != ""
}

// wantsPayment reports whether a payment row should be recorded.
func (r Request) wantsPayment() bool {
	return strings.TrimSpace(r.PaymentMethod) != "" && r.TotalAmount > 0
}

// normalize validates r and fills defaults. Email is kept byte for byte
// because customer lookup is an exact match.
func normalize(r Request) (Request, error) {
	if strings.TrimSpace(r.CustomerName) == "" {
		return r, ValidationError{Field: "customer_name", Reason: "is required"}
	}
	if strings.TrimSpace(r.CustomerEmail) == "" {
		return r, ValidationError{Field: "customer_email", Reason: "is required"}
	}
	if r.Quantity < 0 {
		return r, ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if r.TotalAmount < 0 {
		return r, ValidationError{Field: "total_amount", Reason: "must not be negative"}
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}

	r.MealSetID = strings.TrimSpace(r.MealSetID)
	r.OrderType = strings.TrimSpace(r.OrderType)
	switch r.OrderType {
	case "":
		if r.MealSetID != "" {
			r.OrderType = models.OrderTypeMealSet
		} else {
			r.OrderType = models.OrderTypeCustom
		}
	case models.OrderTypeMealSet, models.OrderTypeCustom:
	default:
		return r, ValidationError{Field: "order_type", Reason: "must be meal_set or custom"}
	}

	for i, line := range r.Items {
		if line.Quantity < 0 {
			return r, ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must not be negative"}
		}
	}
	if r.Items == nil {
		r.Items = []models.OrderLine{}
	}
	return r, nil
}
