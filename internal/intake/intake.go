// Package intake runs the checkout write chain: resolve the customer, record
// the delivery location, create the order, then record the catering service
// and payment that hang off it.
//
// By default only the order insert is fatal. Location, catering service, and
// payment writes are best effort: a failure is logged and counted,
// and the caller still receives the order. ModeAtomic instead runs the
// location, order, catering service, and payment writes in one transaction.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Mode selects how side-record failures are treated.
type Mode string

const (
	ModeBestEffort Mode = "best_effort"
	ModeAtomic     Mode = "atomic"
)

// ParseMode maps a configuration value to a Mode.
func ParseMode(v string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(v))) {
	case "", ModeBestEffort:
		return ModeBestEffort, nil
	case ModeAtomic:
		return ModeAtomic, nil
	}
	return "", fmt.Errorf("unknown order intake mode %q", v)
}

// Side record names used in logs and metrics.
const (
	RecordCustomer        = "customer"
	RecordLocation        = "location"
	RecordCateringService = "catering_service"
	RecordPayment         = "payment"
)

// ErrMealSetNotFound is returned when a meal-set order names an unknown set.
var ErrMealSetNotFound = errors.New("meal set not found")

// StepError reports the side record whose write aborted an atomic intake.
type StepError struct {
	Record string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("create %s: %v", e.Record, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Recorder receives intake outcomes, typically for metrics.
type Recorder interface {
	OrderPlaced(orderType string)
	SideRecordFailed(record string)
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced(string)      {}
func (nopRecorder) SideRecordFailed(string) {}

// Service places orders against a store.
type Service struct {
	store    store.Store
	mode     Mode
	log      *logrus.Entry
	recorder Recorder
	now      func() time.Time
}

type Option func(*Service)

func WithMode(m Mode) Option { return func(s *Service) { s.mode = m } }

func WithLogger(l *logrus.Entry) Option { return func(s *Service) { s.log = l } }

func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		mode:     ModeBestEffort,
		log:      logrus.NewEntry(logrus.StandardLogger()),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode reports the configured consistency mode.
func (s *Service) Mode() Mode { return s.mode }

// PlaceOrder runs the full chain for a storefront checkout.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (models.Order, error) {
	req, err := normalize(req)
	if err != nil {
		return models.Order{}, err
	}
	return s.place(ctx, req)
}

// PlaceMealSetOrder places an order for a single catalog meal set. The set's
// name and price become the order line, and the total falls back to
// price × quantity when the caller leaves it at zero.
func (s *Service) PlaceMealSetOrder(ctx context.Context, req Request) (models.Order, error) {
	if strings.TrimSpace(req.MealSetID) == "" {
		return models.Order{}, ValidationError{Field: "meal_set_id", Reason: "is required"}
	}
	req.OrderType = models.OrderTypeMealSet
	req, err := normalize(req)
	if err != nil {
		return models.Order{}, err
	}

	set, err := s.store.GetMealSet(ctx, req.MealSetID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Order{}, ErrMealSetNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("load meal set: %w", err)
	}

	req.Items = []models.OrderLine{{
		ItemID:   set.ID,
		Name:     set.Name,
		Price:    set.Price,
		Quantity: req.Quantity,
	}}
	if req.TotalAmount == 0 {
		req.TotalAmount = set.Price * float64(req.Quantity)
	}
	return s.place(ctx, req)
}

func (s *Service) place(ctx context.Context, req Request) (models.Order, error) {
	customerID := s.resolveCustomer(ctx, req)

	if s.mode != ModeAtomic {
		order, err := s.writeChain(ctx, s.store, req, customerID, false)
		if err != nil {
			return models.Order{}, err
		}
		s.orderPlaced(order, customerID)
		return order, nil
	}

	var order models.Order
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
		var err error
		order, err = s.writeChain(ctx, tx, req, customerID, true)
		return err
	})
	if err != nil {
		entry := s.log.WithError(err).WithField("customer_email", req.CustomerEmail)
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			s.recorder.SideRecordFailed(stepErr.Record)
			entry = entry.WithField("record", stepErr.Record)
		}
		entry.Error("order intake rolled back")
		return models.Order{}, err
	}
	s.orderPlaced(order, customerID)
	return order, nil
}

func (s *Service) orderPlaced(order models.Order, customerID *string) {
	s.recorder.OrderPlaced(order.OrderType)
	entry := s.log.WithFields(logrus.Fields{"order_id": order.ID, "order_type": order.OrderType})
	if customerID == nil {
		entry.Info("order created without customer")
		return
	}
	entry.WithField("customer_id", *customerID).Info("order created")
}

// resolveCustomer returns the id of the oldest customer with the exact email,
// creating one when none exists. Any store failure yields a nil id and the
// order is written without a customer reference.
func (s *Service) resolveCustomer(ctx context.Context, req Request) *string {
	existing, err := s.store.FindCustomerByEmail(ctx, req.CustomerEmail)
	if err == nil {
		return &existing.ID
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.sideFailure(RecordCustomer, "", err)
		return nil
	}

	created, err := s.store.CreateCustomer(ctx, models.Customer{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	})
	if err != nil {
		s.sideFailure(RecordCustomer, "", err)
		return nil
	}
	s.log.WithField("customer_id", created.ID).Info("customer created from order")
	return &created.ID
}

// writeChain performs the location, order, catering service, and payment
// writes. With strict set, the first failure is returned, side records as a
// *StepError; otherwise only an order failure is. Callers record success
// once the writes are durable.
func (s *Service) writeChain(ctx context.Context, st store.Store, req Request, customerID *string, strict bool) (models.Order, error) {
	locationID, err := s.recordLocation(ctx, st, req)
	if err != nil {
		if strict {
			return models.Order{}, &StepError{Record: RecordLocation, Err: err}
		}
		s.sideFailure(RecordLocation, "", err)
	}

	order, err := st.CreateOrder(ctx, s.buildOrder(req, customerID, locationID))
	if err != nil {
		s.log.WithError(err).WithField("customer_email", req.CustomerEmail).Error("order not created")
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	if req.hasEvent() {
		if _, err := st.CreateCateringService(ctx, buildCateringService(req, order)); err != nil {
			if strict {
				return models.Order{}, &StepError{Record: RecordCateringService, Err: err}
			}
			s.sideFailure(RecordCateringService, order.ID, err)
		}
	}

	if req.wantsPayment() {
		if _, err := st.CreatePayment(ctx, s.buildPayment(order)); err != nil {
			if strict {
				return models.Order{}, &StepError{Record: RecordPayment, Err: err}
			}
			s.sideFailure(RecordPayment, order.ID, err)
		}
	}

	return order, nil
}

// recordLocation inserts a new location for the delivery address. Repeated
// addresses produce repeated rows.
func (s *Service) recordLocation(ctx context.Context, st store.Store, req Request) (*string, error) {
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, nil
	}

	loc, err := st.CreateLocation(ctx, models.Location{
		Name:    firstNonBlank(req.ContactPerson, req.CustomerName),
		Address: address,
		Phone:   firstNonBlank(req.ContactNumber, req.CustomerPhone),
		Status:  models.LocationActive,
	})
	if err != nil {
		return nil, err
	}
	return &loc.ID, nil
}

func (s *Service) buildOrder(req Request, customerID, locationID *string) models.Order {
	orderDate := strings.TrimSpace(req.OrderDate)
	if orderDate == "" {
		orderDate = s.now().Format("2006-01-02")
	}
	deliveryDate := strings.TrimSpace(req.DeliveryDate)
	if deliveryDate == "" {
		deliveryDate = strings.TrimSpace(req.EventDate)
	}

	var mealSetID *string
	if req.MealSetID != "" {
		id := req.MealSetID
		mealSetID = &id
	}

	return models.Order{
		CustomerID:          customerID,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		Items:               models.OrderLines(req.Items),
		MealSetID:           mealSetID,
		Quantity:            req.Quantity,
		TotalAmount:         req.TotalAmount,
		OrderType:           req.OrderType,
		Status:              models.OrderPending,
		EventType:           strings.TrimSpace(req.EventType),
		EventDate:           strings.TrimSpace(req.EventDate),
		OrderDate:           orderDate,
		DeliveryDate:        deliveryDate,
		DeliveryAddress:     strings.TrimSpace(req.DeliveryAddress),
		LocationID:          locationID,
		ContactPerson:       req.ContactPerson,
		ContactNumber:       req.ContactNumber,
		PaymentMethod:       strings.TrimSpace(req.PaymentMethod),
		SpecialInstructions: req.SpecialInstructions,
	}
}

func buildCateringService(req Request, order models.Order) models.CateringService {
	orderID := order.ID
	return models.CateringService{
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		EventType:       order.EventType,
		EventDate:       order.EventDate,
		GuestCount:      order.Quantity,
		Status:          models.OrderPending,
		Location:        order.DeliveryAddress,
		LocationID:      order.LocationID,
		SpecialRequests: req.SpecialInstructions,
		OrderID:         &orderID,
		PaymentMethod:   order.PaymentMethod,
	}
}

// The transaction reference is bookkeeping only and is not guaranteed
// unique.
func (s *Service) buildPayment(order models.Order) models.Payment {
	orderID := order.ID
	return models.Payment{
		OrderID:        &orderID,
		Amount:         order.TotalAmount,
		PaymentMethod:  order.PaymentMethod,
		Status:         models.PaymentPending,
		TransactionRef: fmt.Sprintf("TXN-%s-%d", order.ID, order.CreatedAt.UnixMilli()),
		PaymentDate:    s.now().UTC().Format(time.RFC3339),
	}
}

func (s *Service) sideFailure(record, orderID string, err error) {
	s.recorder.SideRecordFailed(record)
	entry := s.log.WithError(err).WithField("record", record)
	if orderID != "" {
		entry = entry.WithField("order_id", orderID)
	}
	entry.Warn("side record not written")
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
