// Package mongostore implements store.Store on MongoDB, one collection per
// record type.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Collection names.
const (
	Customers        = "customers"
	Items            = "items"
	MealSets         = "meal_sets"
	Locations        = "locations"
	Orders           = "orders"
	CateringServices = "catering_services"
	Payments         = "payments"
)

// Store is a MongoDB-backed store.Store.
type Store struct {
	db   *mongo.Database
	inTx bool
	now  func() time.Time
}

var _ store.Store = (*Store)(nil)

// New wraps an already connected database.
func New(db *mongo.Database) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func newID(id string) string {
	if id == "" {
		return primitive.NewObjectID().Hex()
	}
	return id
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

func insertDoc[T any](ctx context.Context, coll *mongo.Collection, doc T) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOneOptions) (T, error) {
	var out T
	err := coll.FindOne(ctx, filter, opts...).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, store.ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	return out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func replaceDoc[T any](ctx context.Context, coll *mongo.Collection, id string, doc T) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("replace in %s: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func deleteDoc(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// WithinTx runs fn inside a MongoDB transaction. Transactions need a replica
// set or sharded cluster.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	tx := &Store{db: s.db, inTx: true, now: s.now}
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx, tx)
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// Customers -------------------------------------------------------------------

func (s *Store) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	c.ID = newID(c.ID)
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	return c, insertDoc(ctx, s.coll(Customers), c)
}

func (s *Store) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return findOne[models.Customer](ctx, s.coll(Customers), bson.M{"_id": id})
}

func (s *Store) FindCustomerByEmail(ctx context.Context, email string) (models.Customer, error) {
	oldest := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return findOne[models.Customer](ctx, s.coll(Customers), bson.M{"email": email}, oldest)
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return findAll[models.Customer](ctx, s.coll(Customers), bson.M{})
}

func (s *Store) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	existing, err := s.GetCustomer(ctx, c.ID)
	if err != nil {
		return models.Customer{}, err
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now()
	return c, replaceDoc(ctx, s.coll(Customers), c.ID, c)
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(Customers), id)
}

// Items -----------------------------------------------------------------------

func (s *Store) CreateItem(ctx context.Context, it models.Item) (models.Item, error) {
	it.ID = newID(it.ID)
	it.CreatedAt = s.now()
	it.UpdatedAt = it.CreatedAt
	return it, insertDoc(ctx, s.coll(Items), it)
}

func (s *Store) GetItem(ctx context.Context, id string) (models.Item, error) {
	return findOne[models.Item](ctx, s.coll(Items), bson.M{"_id": id})
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	return findAll[models.Item](ctx, s.coll(Items), bson.M{})
}

func (s *Store) UpdateItem(ctx context.Context, it models.Item) (models.Item, error) {
	existing, err := s.GetItem(ctx, it.ID)
	if err != nil {
		return models.Item{}, err
	}
	it.CreatedAt = existing.CreatedAt
	it.UpdatedAt = s.now()
	return it, replaceDoc(ctx, s.coll(Items), it.ID, it)
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(Items), id)
}

// Meal sets -------------------------------------------------------------------

func (s *Store) CreateMealSet(ctx context.Context, ms models.MealSet) (models.MealSet, error) {
	ms.ID = newID(ms.ID)
	ms.CreatedAt = s.now()
	ms.UpdatedAt = ms.CreatedAt
	return ms, insertDoc(ctx, s.coll(MealSets), ms)
}

func (s *Store) GetMealSet(ctx context.Context, id string) (models.MealSet, error) {
	return findOne[models.MealSet](ctx, s.coll(MealSets), bson.M{"_id": id})
}

func (s *Store) ListMealSets(ctx context.Context) ([]models.MealSet, error) {
	return findAll[models.MealSet](ctx, s.coll(MealSets), bson.M{})
}

func (s *Store) UpdateMealSet(ctx context.Context, ms models.MealSet) (models.MealSet, error) {
	existing, err := s.GetMealSet(ctx, ms.ID)
	if err != nil {
		return models.MealSet{}, err
	}
	ms.CreatedAt = existing.CreatedAt
	ms.UpdatedAt = s.now()
	return ms, replaceDoc(ctx, s.coll(MealSets), ms.ID, ms)
}

func (s *Store) DeleteMealSet(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(MealSets), id)
}

// Locations -------------------------------------------------------------------

func (s *Store) CreateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	l.ID = newID(l.ID)
	l.CreatedAt = s.now()
	l.UpdatedAt = l.CreatedAt
	return l, insertDoc(ctx, s.coll(Locations), l)
}

func (s *Store) GetLocation(ctx context.Context, id string) (models.Location, error) {
	return findOne[models.Location](ctx, s.coll(Locations), bson.M{"_id": id})
}

func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	return findAll[models.Location](ctx, s.coll(Locations), bson.M{})
}

func (s *Store) UpdateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	existing, err := s.GetLocation(ctx, l.ID)
	if err != nil {
		return models.Location{}, err
	}
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = s.now()
	return l, replaceDoc(ctx, s.coll(Locations), l.ID, l)
}

func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(Locations), id)
}

// Orders ----------------------------------------------------------------------

func (s *Store) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	o.ID = newID(o.ID)
	o.CreatedAt = s.now()
	o.UpdatedAt = o.CreatedAt
	return o, insertDoc(ctx, s.coll(Orders), o)
}

func (s *Store) GetOrder(ctx context.Context, id string) (models.Order, error) {
	return findOne[models.Order](ctx, s.coll(Orders), bson.M{"_id": id})
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.coll(Orders), bson.M{})
}

func (s *Store) ListOrdersByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.coll(Orders), bson.M{"customer_email": email})
}

func (s *Store) UpdateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	existing, err := s.GetOrder(ctx, o.ID)
	if err != nil {
		return models.Order{}, err
	}
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = s.now()
	return o, replaceDoc(ctx, s.coll(Orders), o.ID, o)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(Orders), id)
}

// Catering services -----------------------------------------------------------

func (s *Store) CreateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error) {
	cs.ID = newID(cs.ID)
	cs.CreatedAt = s.now()
	cs.UpdatedAt = cs.CreatedAt
	return cs, insertDoc(ctx, s.coll(CateringServices), cs)
}

func (s *Store) GetCateringService(ctx context.Context, id string) (models.CateringService, error) {
	return findOne[models.CateringService](ctx, s.coll(CateringServices), bson.M{"_id": id})
}

func (s *Store) ListCateringServices(ctx context.Context) ([]models.CateringService, error) {
	return findAll[models.CateringService](ctx, s.coll(CateringServices), bson.M{})
}

func (s *Store) UpdateCateringService(ctx context.Context, cs models.CateringService) (models.CateringService, error) {
	existing, err := s.GetCateringService(ctx, cs.ID)
	if err != nil {
		return models.CateringService{}, err
	}
	cs.CreatedAt = existing.CreatedAt
	cs.UpdatedAt = s.now()
	return cs, replaceDoc(ctx, s.coll(CateringServices), cs.ID, cs)
}

func (s *Store) DeleteCateringService(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(CateringServices), id)
}

// Payments --------------------------------------------------------------------

func (s *Store) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = newID(p.ID)
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	return p, insertDoc(ctx, s.coll(Payments), p)
}

func (s *Store) GetPayment(ctx context.Context, id string) (models.Payment, error) {
	return findOne[models.Payment](ctx, s.coll(Payments), bson.M{"_id": id})
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, s.coll(Payments), bson.M{})
}

func (s *Store) UpdatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	existing, err := s.GetPayment(ctx, p.ID)
	if err != nil {
		return models.Payment{}, err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	return p, replaceDoc(ctx, s.coll(Payments), p.ID, p)
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.coll(Payments), id)
}
