// Package storetest provides store wrappers for tests that need a backend to
// fail on demand.
package storetest

import (
	"context"
	"sync"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Operation names accepted by Faulty.FailOn.
const (
	OpFindCustomerByEmail   = "FindCustomerByEmail"
	OpCreateCustomer        = "CreateCustomer"
	OpCreateLocation        = "CreateLocation"
	OpCreateOrder           = "CreateOrder"
	OpCreateCateringService = "CreateCateringService"
	OpCreatePayment         = "CreatePayment"
	OpGetMealSet            = "GetMealSet"
	OpListOrders            = "ListOrders"
	OpPing                  = "Ping"
)

type faults struct {
	mu    sync.Mutex
	errs  map[string]error
	calls map[string]int
}

// Faulty wraps a Store and returns configured errors from selected
// operations. Transaction-bound stores handed out by WithinTx share the
// same fault set.
type Faulty struct {
	store.Store
	f *faults
}

func NewFaulty(inner store.Store) *Faulty {
	return &Faulty{Store: inner, f: &faults{errs: map[string]error{}, calls: map[string]int{}}}
}

// FailOn makes op return err until cleared with a nil err.
func (s *Faulty) FailOn(op string, err error) *Faulty {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if err == nil {
		delete(s.f.errs, op)
	} else {
		s.f.errs[op] = err
	}
	return s
}

// Calls reports how many times op was invoked, failed or not.
func (s *Faulty) Calls(op string) int {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return s.f.calls[op]
}

func (s *Faulty) check(op string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	s.f.calls[op]++
	return s.f.errs[op]
}

func (s *Faulty) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
		return fn(ctx, &Faulty{Store: tx, f: s.f})
	})
}

func (s *Faulty) Ping(ctx context.Context) error {
	if err := s.check(OpPing); err != nil {
		return err
	}
	return s.Store.Ping(ctx)
}

func (s *Faulty) FindCustomerByEmail(ctx context.Context, email string) (models.Customer, error) {
	if err := s.check(OpFindCustomerByEmail); err != nil {
		return models.Customer{}, err
	}
	return s.Store.FindCustomerByEmail(ctx, email)
}

func (s *Faulty) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := s.check(OpCreateCustomer); err != nil {
		return models.Customer{}, err
	}
	return s.Store.CreateCustomer(ctx, c)
}

func (s *Faulty) CreateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	if err := s.check(OpCreateLocation); err != nil {
		return models.Location{}, err
	}
	return s.Store.CreateLocation(ctx, l)
}

func (s *Faulty) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	if err := s.check(OpCreateOrder); err != nil {
		return models.Order{}, err
	}
	return s.Store.CreateOrder(ctx, o)
}

func (s *Faulty) CreateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error) {
	if err := s.check(OpCreateCateringService); err != nil {
		return models.CateringService{}, err
	}
	return s.Store.CreateCateringService(ctx, cs)
}

func (s *Faulty) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	if err := s.check(OpCreatePayment); err != nil {
		return models.Payment{}, err
	}
	return s.Store.CreatePayment(ctx, p)
}

func (s *Faulty) GetMealSet(ctx context.Context, id string) (models.MealSet, error) {
	if err := s.check(OpGetMealSet); err != nil {
		return models.MealSet{}, err
	}
	return s.Store.GetMealSet(ctx, id)
}

func (s *Faulty) ListOrders(ctx context.Context) ([]models.Order, error) {
	if err := s.check(OpListOrders); err != nil {
		return nil, err
	}
	return s.Store.ListOrders(ctx)
}
