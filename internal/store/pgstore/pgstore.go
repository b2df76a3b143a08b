// Package pgstore implements store.Store on PostgreSQL via sqlx.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

const (
	customerColumns = "id, name, email, phone, created_at, updated_at"
	itemColumns     = "id, name, description, price, category, is_available, created_at, updated_at"
	mealSetColumns  = "id, name, description, price, items, is_available, created_at, updated_at"
	locationColumns = "id, name, address, phone, status, region, province, city, created_at, updated_at"
	orderColumns    = "id, customer_id, customer_name, customer_email, customer_phone, items, meal_set_id, " +
		"quantity, total_amount, order_type, status, event_type, event_date, order_date, delivery_date, " +
		"delivery_address, location_id, contact_person, contact_number, payment_method, special_instructions, " +
		"created_at, updated_at"
	cateringColumns = "id, customer_id, customer_name, event_type, event_date, guest_count, status, location, " +
		"location_id, special_requests, order_id, payment_method, created_at, updated_at"
	paymentColumns = "id, order_id, amount, payment_method, status, transaction_ref, payment_date, notes, " +
		"created_at, updated_at"
)

// Store implements store.Store backed by PostgreSQL.
type Store struct {
	db   *sqlx.DB
	q    sqlx.ExtContext
	inTx bool
	now  func() time.Time
}

var _ store.Store = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		q:   db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func columnList(cols string) []string {
	parts := strings.Split(cols, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (s *Store) get(ctx context.Context, dest any, table, cols, where string, args ...any) error {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIMIT 1", cols, table, where)
	err := sqlx.GetContext(ctx, s.q, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select from %s: %w", table, err)
	}
	return nil
}

func (s *Store) list(ctx context.Context, dest any, table, cols, where string, args ...any) error {
	query := fmt.Sprintf("SELECT %s FROM %s", cols, table)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at DESC, id DESC"
	if err := sqlx.SelectContext(ctx, s.q, dest, query, args...); err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, table, cols string, arg any) error {
	names := columnList(cols)
	binds := make([]string, len(names))
	for i, n := range names {
		binds[i] = ":" + n
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, strings.Join(binds, ", "))
	if _, err := sqlx.NamedExecContext(ctx, s.q, query, arg); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// update rewrites every column except id and created_at and returns the
// stored created_at.
func (s *Store) update(ctx context.Context, table, cols string, arg any) (time.Time, error) {
	sets := make([]string, 0)
	for _, n := range columnList(cols) {
		if n == "id" || n == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = :%s", n, n))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id RETURNING created_at", table, strings.Join(sets, ", "))

	rows, err := sqlx.NamedQueryContext(ctx, s.q, query, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("update %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return time.Time{}, fmt.Errorf("update %s: %w", table, err)
		}
		return time.Time{}, store.ErrNotFound
	}
	var createdAt time.Time
	if err := rows.Scan(&createdAt); err != nil {
		return time.Time{}, fmt.Errorf("update %s: %w", table, err)
	}
	return createdAt, nil
}

func (s *Store) delete(ctx context.Context, table, id string) error {
	res, err := s.q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// WithinTx runs fn inside a database transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(ctx, &Store{db: s.db, q: tx, inTx: true, now: s.now}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

// Customers -------------------------------------------------------------------

func (s *Store) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	c.ID = newID(c.ID)
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	if err := s.insert(ctx, "customers", customerColumns, c); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	err := s.get(ctx, &c, "customers", customerColumns, "id = $1", id)
	return c, err
}

func (s *Store) FindCustomerByEmail(ctx context.Context, email string) (models.Customer, error) {
	var c models.Customer
	err := s.get(ctx, &c, "customers", customerColumns, "email = $1 ORDER BY created_at ASC, id ASC", email)
	return c, err
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	out := []models.Customer{}
	err := s.list(ctx, &out, "customers", customerColumns, "")
	return out, err
}

func (s *Store) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	c.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "customers", customerColumns, c)
	if err != nil {
		return models.Customer{}, err
	}
	c.CreatedAt = createdAt
	return c, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return s.delete(ctx, "customers", id)
}

// Items -----------------------------------------------------------------------

func (s *Store) CreateItem(ctx context.Context, it models.Item) (models.Item, error) {
	it.ID = newID(it.ID)
	it.CreatedAt = s.now()
	it.UpdatedAt = it.CreatedAt
	if err := s.insert(ctx, "items", itemColumns, it); err != nil {
		return models.Item{}, err
	}
	return it, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (models.Item, error) {
	var it models.Item
	err := s.get(ctx, &it, "items", itemColumns, "id = $1", id)
	return it, err
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	out := []models.Item{}
	err := s.list(ctx, &out, "items", itemColumns, "")
	return out, err
}

func (s *Store) UpdateItem(ctx context.Context, it models.Item) (models.Item, error) {
	it.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "items", itemColumns, it)
	if err != nil {
		return models.Item{}, err
	}
	it.CreatedAt = createdAt
	return it, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.delete(ctx, "items", id)
}

// Meal sets -------------------------------------------------------------------

func (s *Store) CreateMealSet(ctx context.Context, ms models.MealSet) (models.MealSet, error) {
	ms.ID = newID(ms.ID)
	ms.CreatedAt = s.now()
	ms.UpdatedAt = ms.CreatedAt
	if err := s.insert(ctx, "meal_sets", mealSetColumns, ms); err != nil {
		return models.MealSet{}, err
	}
	return ms, nil
}

func (s *Store) GetMealSet(ctx context.Context, id string) (models.MealSet, error) {
	var ms models.MealSet
	err := s.get(ctx, &ms, "meal_sets", mealSetColumns, "id = $1", id)
	return ms, err
}

func (s *Store) ListMealSets(ctx context.Context) ([]models.MealSet, error) {
	out := []models.MealSet{}
	err := s.list(ctx, &out, "meal_sets", mealSetColumns, "")
	return out, err
}

func (s *Store) UpdateMealSet(ctx context.Context, ms models.MealSet) (models.MealSet, error) {
	ms.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "meal_sets", mealSetColumns, ms)
	if err != nil {
		return models.MealSet{}, err
	}
	ms.CreatedAt = createdAt
	return ms, nil
}

func (s *Store) DeleteMealSet(ctx context.Context, id string) error {
	return s.delete(ctx, "meal_sets", id)
}

// Locations -------------------------------------------------------------------

func (s *Store) CreateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	l.ID = newID(l.ID)
	l.CreatedAt = s.now()
	l.UpdatedAt = l.CreatedAt
	if err := s.insert(ctx, "locations", locationColumns, l); err != nil {
		return models.Location{}, err
	}
	return l, nil
}

func (s *Store) GetLocation(ctx context.Context, id string) (models.Location, error) {
	var l models.Location
	err := s.get(ctx, &l, "locations", locationColumns, "id = $1", id)
	return l, err
}

func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	out := []models.Location{}
	err := s.list(ctx, &out, "locations", locationColumns, "")
	return out, err
}

func (s *Store) UpdateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	l.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "locations", locationColumns, l)
	if err != nil {
		return models.Location{}, err
	}
	l.CreatedAt = createdAt
	return l, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	return s.delete(ctx, "locations", id)
}

// Orders ----------------------------------------------------------------------

func (s *Store) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = newID(o.ID)
	o.CreatedAt = s.now()
	o.UpdatedAt = o.CreatedAt
	if o.Items == nil {
		o.Items = models.OrderLines{}
	}
	if err := s.insert(ctx, "orders", orderColumns, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := s.get(ctx, &o, "orders", orderColumns, "id = $1", id)
	return o, err
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	err := s.list(ctx, &out, "orders", orderColumns, "")
	return out, err
}

func (s *Store) ListOrdersByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	out := []models.Order{}
	err := s.list(ctx, &out, "orders", orderColumns, "customer_email = $1", email)
	return out, err
}

func (s *Store) UpdateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	o.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "orders", orderColumns, o)
	if err != nil {
		return models.Order{}, err
	}
	o.CreatedAt = createdAt
	return o, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.delete(ctx, "orders", id)
}

// Catering services -----------------------------------------------------------

func (s *Store) CreateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error) {
	cs.ID = newID(cs.ID)
	cs.CreatedAt = s.now()
	cs.UpdatedAt = cs.CreatedAt
	if err := s.insert(ctx, "catering_services", cateringColumns, cs); err != nil {
		return models.CateringService{}, err
	}
	return cs, nil
}

func (s *Store) GetCateringService(ctx context.Context, id string) (models.CateringService, error) {
	var cs models.CateringService
	err := s.get(ctx, &cs, "catering_services", cateringColumns, "id = $1", id)
	return cs, err
}

func (s *Store) ListCateringServices(ctx context.Context) ([]models.CateringService, error) {
	out := []models.CateringService{}
	err := s.list(ctx, &out, "catering_services", cateringColumns, "")
	return out, err
}

func (s *Store) UpdateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error) {
	cs.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "catering_services", cateringColumns, cs)
	if err != nil {
		return models.CateringService{}, err
	}
	cs.CreatedAt = createdAt
	return cs, nil
}

func (s *Store) DeleteCateringService(ctx context.Context, id string) error {
	return s.delete(ctx, "catering_services", id)
}

// Payments --------------------------------------------------------------------

func (s *Store) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = newID(p.ID)
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	if err := s.insert(ctx, "payments", paymentColumns, p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (models.Payment, error) {
	var p models.Payment
	err := s.get(ctx, &p, "payments", paymentColumns, "id = $1", id)
	return p, err
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	out := []models.Payment{}
	err := s.list(ctx, &out, "payments", paymentColumns, "")
	return out, err
}

func (s *Store) UpdatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.UpdatedAt = s.now()
	createdAt, err := s.update(ctx, "payments", paymentColumns, p)
	if err != nil {
		return models.Payment{}, err
	}
	p.CreatedAt = createdAt
	return p, nil
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	return s.delete(ctx, "payments", id)
}
