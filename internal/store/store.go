// Package store defines the persistence contract shared by the mongo,
// postgres, and in-memory backends.
package store

import (
	"context"
	"errors"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
)

// ErrNotFound is returned when a lookup by id or email matches no row.
var ErrNotFound = errors.New("record not found")

// Create methods assign an id when the record has none and stamp
// created_at/updated_at. Update methods replace the stored record, keep its
// created_at, and return ErrNotFound when the id does not exist. Lists are
// ordered newest first.

type CustomerStore interface {
	CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	// FindCustomerByEmail returns the oldest customer whose email matches
	// exactly. Comparison is case-sensitive and untrimmed.
	FindCustomerByEmail(ctx context.Context, email string) (models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type ItemStore interface {
	CreateItem(ctx context.Context, it models.Item) (models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, it models.Item) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type MealSetStore interface {
	CreateMealSet(ctx context.Context, ms models.MealSet) (models.MealSet, error)
	GetMealSet(ctx context.Context, id string) (models.MealSet, error)
	ListMealSets(ctx context.Context) ([]models.MealSet, error)
	UpdateMealSet(ctx context.Context, ms models.MealSet) (models.MealSet, error)
	DeleteMealSet(ctx context.Context, id string) error
}

type LocationStore interface {
	CreateLocation(ctx context.Context, l models.Location) (models.Location, error)
	GetLocation(ctx context.Context, id string) (models.Location, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	UpdateLocation(ctx context.Context, l models.Location) (models.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o models.Order) (models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByCustomerEmail(ctx context.Context, email string) ([]models.Order, error)
	UpdateOrder(ctx context.Context, o models.Order) (models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type CateringServiceStore interface {
	CreateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error)
	GetCateringService(ctx context.Context, id string) (models.CateringService, error)
	ListCateringServices(ctx context.Context) ([]models.CateringService, error)
	UpdateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error)
	DeleteCateringService(ctx context.Context, id string) error
}

type PaymentStore interface {
	CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
	GetPayment(ctx context.Context, id string) (models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
	DeletePayment(ctx context.Context, id string) error
}

// Store is the full persistence surface used by handlers and order intake.
type Store interface {
	CustomerStore
	ItemStore
	MealSetStore
	LocationStore
	OrderStore
	CateringServiceStore
	PaymentStore

	// WithinTx runs fn against a Store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithinTx on a transaction-bound Store runs fn in place.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
