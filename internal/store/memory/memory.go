// Package memory is an in-memory implementation of store.Store. It is safe
// for concurrent use and is intended for tests and local development.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

type row[T any] struct {
	seq   int64
	value T
}

type table[T any] map[string]row[T]

func (t table[T]) list(keep func(T) bool) []T {
	rows := make([]row[T], 0, len(t))
	for _, r := range t {
		if keep == nil || keep(r.value) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.value)
	}
	return out
}

type state struct {
	seq       int64
	customers table[models.Customer]
	items     table[models.Item]
	mealSets  table[models.MealSet]
	locations table[models.Location]
	orders    table[models.Order]
	catering  table[models.CateringService]
	payments  table[models.Payment]
}

func (s *state) clone() *state {
	return &state{
		seq:       s.seq,
		customers: maps.Clone(s.customers),
		items:     maps.Clone(s.items),
		mealSets:  maps.Clone(s.mealSets),
		locations: maps.Clone(s.locations),
		orders:    maps.Clone(s.orders),
		catering:  maps.Clone(s.catering),
		payments:  maps.Clone(s.payments),
	}
}

// Store keeps every table in process memory.
type Store struct {
	mu   *sync.RWMutex
	data *state
	inTx bool
	now  func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		mu: &sync.RWMutex{},
		data: &state{
			customers: table[models.Customer]{},
			items:     table[models.Item]{},
			mealSets:  table[models.MealSet]{},
			locations: table[models.Location]{},
			orders:    table[models.Order]{},
			catering:  table[models.CateringService]{},
			payments:  table[models.Payment]{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) nextSeq() int64 {
	s.data.seq++
	return s.data.seq
}

// WithinTx holds the write lock for the duration of fn and restores the
// previous state if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: s.data, inTx: true, now: s.now}
	if err := fn(ctx, tx); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func getRow[T any](t table[T], id string) (T, error) {
	r, ok := t[id]
	if !ok {
		var zero T
		return zero, store.ErrNotFound
	}
	return r.value, nil
}

func deleteRow[T any](t table[T], id string) error {
	if _, ok := t[id]; !ok {
		return store.ErrNotFound
	}
	delete(t, id)
	return nil
}

// Customers -------------------------------------------------------------------

func (s *Store) CreateCustomer(_ context.Context, c models.Customer) (models.Customer, error) {
	defer s.lock()()
	c.ID = newID(c.ID)
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.data.customers[c.ID] = row[models.Customer]{seq: s.nextSeq(), value: c}
	return c, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (models.Customer, error) {
	defer s.rlock()()
	return getRow(s.data.customers, id)
}

func (s *Store) FindCustomerByEmail(_ context.Context, email string) (models.Customer, error) {
	defer s.rlock()()
	matches := s.data.customers.list(func(c models.Customer) bool { return c.Email == email })
	if len(matches) == 0 {
		return models.Customer{}, store.ErrNotFound
	}
	return matches[len(matches)-1], nil
}

func (s *Store) ListCustomers(context.Context) ([]models.Customer, error) {
	defer s.rlock()()
	return s.data.customers.list(nil), nil
}

func (s *Store) UpdateCustomer(_ context.Context, c models.Customer) (models.Customer, error) {
	defer s.lock()()
	existing, ok := s.data.customers[c.ID]
	if !ok {
		return models.Customer{}, store.ErrNotFound
	}
	c.CreatedAt = existing.value.CreatedAt
	c.UpdatedAt = s.now()
	s.data.customers[c.ID] = row[models.Customer]{seq: existing.seq, value: c}
	return c, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.customers, id)
}

// Items -----------------------------------------------------------------------

func (s *Store) CreateItem(_ context.Context, it models.Item) (models.Item, error) {
	defer s.lock()()
	it.ID = newID(it.ID)
	it.CreatedAt = s.now()
	it.UpdatedAt = it.CreatedAt
	s.data.items[it.ID] = row[models.Item]{seq: s.nextSeq(), value: it}
	return it, nil
}

func (s *Store) GetItem(_ context.Context, id string) (models.Item, error) {
	defer s.rlock()()
	return getRow(s.data.items, id)
}

func (s *Store) ListItems(context.Context) ([]models.Item, error) {
	defer s.rlock()()
	return s.data.items.list(nil), nil
}

func (s *Store) UpdateItem(_ context.Context, it models.Item) (models.Item, error) {
	defer s.lock()()
	existing, ok := s.data.items[it.ID]
	if !ok {
		return models.Item{}, store.ErrNotFound
	}
	it.CreatedAt = existing.value.CreatedAt
	it.UpdatedAt = s.now()
	s.data.items[it.ID] = row[models.Item]{seq: existing.seq, value: it}
	return it, nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.items, id)
}

// Meal sets -------------------------------------------------------------------

func (s *Store) CreateMealSet(_ context.Context, ms models.MealSet) (models.MealSet, error) {
	defer s.lock()()
	ms.ID = newID(ms.ID)
	ms.CreatedAt = s.now()
	ms.UpdatedAt = ms.CreatedAt
	s.data.mealSets[ms.ID] = row[models.MealSet]{seq: s.nextSeq(), value: ms}
	return ms, nil
}

func (s *Store) GetMealSet(_ context.Context, id string) (models.MealSet, error) {
	defer s.rlock()()
	return getRow(s.data.mealSets, id)
}

func (s *Store) ListMealSets(context.Context) ([]models.MealSet, error) {
	defer s.rlock()()
	return s.data.mealSets.list(nil), nil
}

func (s *Store) UpdateMealSet(_ context.Context, ms models.MealSet) (models.MealSet, error) {
	defer s.lock()()
	existing, ok := s.data.mealSets[ms.ID]
	if !ok {
		return models.MealSet{}, store.ErrNotFound
	}
	ms.CreatedAt = existing.value.CreatedAt
	ms.UpdatedAt = s.now()
	s.data.mealSets[ms.ID] = row[models.MealSet]{seq: existing.seq, value: ms}
	return ms, nil
}

func (s *Store) DeleteMealSet(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.mealSets, id)
}

// Locations -------------------------------------------------------------------

func (s *Store) CreateLocation(_ context.Context, l models.Location) (models.Location, error) {
	defer s.lock()()
	l.ID = newID(l.ID)
	l.CreatedAt = s.now()
	l.UpdatedAt = l.CreatedAt
	s.data.locations[l.ID] = row[models.Location]{seq: s.nextSeq(), value: l}
	return l, nil
}

func (s *Store) GetLocation(_ context.Context, id string) (models.Location, error) {
	defer s.rlock()()
	return getRow(s.data.locations, id)
}

func (s *Store) ListLocations(context.Context) ([]models.Location, error) {
	defer s.rlock()()
	return s.data.locations.list(nil), nil
}

func (s *Store) UpdateLocation(_ context.Context, l models.Location) (models.Location, error) {
	defer s.lock()()
	existing, ok := s.data.locations[l.ID]
	if !ok {
		return models.Location{}, store.ErrNotFound
	}
	l.CreatedAt = existing.value.CreatedAt
	l.UpdatedAt = s.now()
	s.data.locations[l.ID] = row[models.Location]{seq: existing.seq, value: l}
	return l, nil
}

func (s *Store) DeleteLocation(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.locations, id)
}

// Orders ----------------------------------------------------------------------

func (s *Store) CreateOrder(_ context.Context, o models.Order) (models.Order, error) {
	defer s.lock()()
	o.ID = newID(o.ID)
	o.CreatedAt = s.now()
	o.UpdatedAt = o.CreatedAt
	s.data.orders[o.ID] = row[models.Order]{seq: s.nextSeq(), value: o}
	return o, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (models.Order, error) {
	defer s.rlock()()
	return getRow(s.data.orders, id)
}

func (s *Store) ListOrders(context.Context) ([]models.Order, error) {
	defer s.rlock()()
	return s.data.orders.list(nil), nil
}

func (s *Store) ListOrdersByCustomerEmail(_ context.Context, email string) ([]models.Order, error) {
	defer s.rlock()()
	return s.data.orders.list(func(o models.Order) bool { return o.CustomerEmail == email }), nil
}

func (s *Store) UpdateOrder(_ context.Context, o models.Order) (models.Order, error) {
	defer s.lock()()
	existing, ok := s.data.orders[o.ID]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	o.CreatedAt = existing.value.CreatedAt
	o.UpdatedAt = s.now()
	s.data.orders[o.ID] = row[models.Order]{seq: existing.seq, value: o}
	return o, nil
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.orders, id)
}

// Catering services -----------------------------------------------------------

func (s *Store) CreateCateringService(_ context.Context, cs models.CateringService) (models.CateringService, error) {
	defer s.lock()()
	cs.ID = newID(cs.ID)
	cs.CreatedAt = s.now()
	cs.UpdatedAt = cs.CreatedAt
	s.data.catering[cs.ID] = row[models.CateringService]{seq: s.nextSeq(), value: cs}
	return cs, nil
}

func (s *Store) GetCateringService(_ context.Context, id string) (models.CateringService, error) {
	defer s.rlock()()
	return getRow(s.data.catering, id)
}

func (s *Store) ListCateringServices(context.Context) ([]models.CateringService, error) {
	defer s.rlock()()
	return s.data.catering.list(nil), nil
}

func (s *Store) UpdateCateringService(_ context.Context, cs models.CateringService) (models.CateringService, error) {
	defer s.lock()()
	existing, ok := s.data.catering[cs.ID]
	if !ok {
		return models.CateringService{}, store.ErrNotFound
	}
	cs.CreatedAt = existing.value.CreatedAt
	cs.UpdatedAt = s.now()
	s.data.catering[cs.ID] = row[models.CateringService]{seq: existing.seq, value: cs}
	return cs, nil
}

func (s *Store) DeleteCateringService(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.catering, id)
}

// Payments --------------------------------------------------------------------

func (s *Store) CreatePayment(_ context.Context, p models.Payment) (models.Payment, error) {
	defer s.lock()()
	p.ID = newID(p.ID)
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.data.payments[p.ID] = row[models.Payment]{seq: s.nextSeq(), value: p}
	return p, nil
}

func (s *Store) GetPayment(_ context.Context, id string) (models.Payment, error) {
	defer s.rlock()()
	return getRow(s.data.payments, id)
}

func (s *Store) ListPayments(context.Context) ([]models.Payment, error) {
	defer s.rlock()()
	return s.data.payments.list(nil), nil
}

func (s *Store) UpdatePayment(_ context.Context, p models.Payment) (models.Payment, error) {
	defer s.lock()()
	existing, ok := s.data.payments[p.ID]
	if !ok {
		return models.Payment{}, store.ErrNotFound
	}
	p.CreatedAt = existing.value.CreatedAt
	p.UpdatedAt = s.now()
	s.data.payments[p.ID] = row[models.Payment]{seq: existing.seq, value: p}
	return p, nil
}

func (s *Store) DeletePayment(_ context.Context, id string) error {
	defer s.lock()()
	return deleteRow(s.data.payments, id)
}
