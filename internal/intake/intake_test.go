package intake

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/logging"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store/memory"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store/storetest"
)

var fixedNow = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

type countingRecorder struct {
	mu     sync.Mutex
	placed map[string]int
	failed map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{placed: map[string]int{}, failed: map[string]int{}}
}

func (r *countingRecorder) OrderPlaced(orderType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed[orderType]++
}

func (r *countingRecorder) SideRecordFailed(record string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[record]++
}

func newTestService(st store.Store, opts ...Option) *Service {
	base := []Option{WithLogger(logging.Discard()), WithClock(func() time.Time { return fixedNow })}
	return NewService(st, append(base, opts...)...)
}

func fullRequest() Request {
	return Request{
		CustomerName:    "A B",
		CustomerEmail:   "a@b.com",
		CustomerPhone:   "09170000000",
		Items:           []models.OrderLine{{ItemID: "item-1", Name: "Pancit", Price: 500, Quantity: 2}},
		TotalAmount:     1000,
		EventType:       "birthday",
		EventDate:       "2025-06-01",
		DeliveryAddress: "123 Main St",
		ContactPerson:   "A B",
		ContactNumber:   "09171234567",
		PaymentMethod:   "gcash",
	}
}

func TestPlaceOrderReusesExistingCustomer(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	existing, err := st.CreateCustomer(ctx, models.Customer{Name: "Old Name", Email: "a@b.com"})
	require.NoError(t, err)

	order, err := newTestService(st).PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)

	customers, err := st.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, existing.ID, *order.CustomerID)
	assert.Equal(t, "Old Name", customers[0].Name, "existing customer must not be modified")
}

func TestPlaceOrderCreatesCustomerForNewEmail(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	_, err := st.CreateCustomer(ctx, models.Customer{Name: "Other", Email: "A@B.com"})
	require.NoError(t, err)

	order, err := newTestService(st).PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)

	created, err := st.FindCustomerByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "A B", created.Name)
	assert.Equal(t, "09170000000", created.Phone)
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, created.ID, *order.CustomerID)

	customers, err := st.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestPlaceOrderProceedsWithoutCustomerOnFailure(t *testing.T) {
	ctx := context.Background()
	for _, op := range []string{storetest.OpFindCustomerByEmail, storetest.OpCreateCustomer} {
		t.Run(op, func(t *testing.T) {
			st := storetest.NewFaulty(memory.New()).FailOn(op, errors.New("boom"))
			rec := newCountingRecorder()

			order, err := newTestService(st, WithRecorder(rec)).PlaceOrder(ctx, fullRequest())
			require.NoError(t, err)
			assert.Nil(t, order.CustomerID)
			assert.Equal(t, 1, rec.failed[RecordCustomer])
		})
	}
}

func TestPlaceOrderSurvivesSideRecordFailures(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		op     string
		record string
	}{
		{storetest.OpCreateLocation, RecordLocation},
		{storetest.OpCreateCateringService, RecordCateringService},
		{storetest.OpCreatePayment, RecordPayment},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			mem := memory.New()
			st := storetest.NewFaulty(mem).FailOn(tc.op, errors.New("insert failed"))
			rec := newCountingRecorder()

			order, err := newTestService(st, WithRecorder(rec)).PlaceOrder(ctx, fullRequest())
			require.NoError(t, err)
			require.NotEmpty(t, order.ID)

			stored, err := mem.GetOrder(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, order.ID, stored.ID)
			assert.Equal(t, 1, rec.failed[tc.record])
			assert.Equal(t, 1, rec.placed[models.OrderTypeCustom])
		})
	}
}

func TestPlaceOrderLocationFailureLeavesNullLocation(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	st := storetest.NewFaulty(mem).FailOn(storetest.OpCreateLocation, errors.New("insert failed"))

	order, err := newTestService(st).PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)
	assert.Nil(t, order.LocationID)

	services, err := mem.ListCateringServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Nil(t, services[0].LocationID)
}

func TestPlaceOrderFailsWhenOrderInsertFails(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	st := storetest.NewFaulty(mem).FailOn(storetest.OpCreateOrder, errors.New("db down"))

	_, err := newTestService(st).PlaceOrder(ctx, fullRequest())
	require.Error(t, err)

	services, _ := mem.ListCateringServices(ctx)
	payments, _ := mem.ListPayments(ctx)
	assert.Empty(t, services)
	assert.Empty(t, payments)
	assert.Zero(t, st.Calls(storetest.OpCreateCateringService))
	assert.Zero(t, st.Calls(storetest.OpCreatePayment))
}

func TestCateringServiceRequiresEventTypeAndDate(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name      string
		eventType string
		eventDate string
		want      int
	}{
		{"both", "birthday", "2025-06-01", 1},
		{"no type", "", "2025-06-01", 0},
		{"no date", "birthday", "", 0},
		{"blank type", "   ", "2025-06-01", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := memory.New()
			req := fullRequest()
			req.EventType = tc.eventType
			req.EventDate = tc.eventDate

			order, err := newTestService(st).PlaceOrder(ctx, req)
			require.NoError(t, err)

			services, err := st.ListCateringServices(ctx)
			require.NoError(t, err)
			require.Len(t, services, tc.want)
			if tc.want == 1 {
				cs := services[0]
				require.NotNil(t, cs.OrderID)
				assert.Equal(t, order.ID, *cs.OrderID)
				assert.Equal(t, models.OrderPending, cs.Status)
				assert.Equal(t, 1, cs.GuestCount)
				assert.Equal(t, "123 Main St", cs.Location)
				assert.Equal(t, order.LocationID, cs.LocationID)
				assert.Equal(t, "gcash", cs.PaymentMethod)
			}
		})
	}
}

func TestPaymentRequiresMethodAndPositiveTotal(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		method string
		total  float64
		want   int
	}{
		{"method and total", "gcash", 1000, 1},
		{"zero total", "gcash", 0, 0},
		{"no method", "", 1000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := memory.New()
			req := fullRequest()
			req.PaymentMethod = tc.method
			req.TotalAmount = tc.total

			order, err := newTestService(st).PlaceOrder(ctx, req)
			require.NoError(t, err)

			payments, err := st.ListPayments(ctx)
			require.NoError(t, err)
			require.Len(t, payments, tc.want)
			if tc.want == 1 {
				p := payments[0]
				assert.Equal(t, models.PaymentPending, p.Status)
				assert.Equal(t, tc.total, p.Amount)
				require.NotNil(t, p.OrderID)
				assert.Equal(t, order.ID, *p.OrderID)
				assert.Equal(t, "TXN-"+order.ID+"-"+itoa(order.CreatedAt.UnixMilli()), p.TransactionRef)
				assert.Equal(t, fixedNow.Format(time.RFC3339), p.PaymentDate)
			}
		})
	}
}

func TestDeliveryDateFallsBackToEventDate(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	order, err := newTestService(st).PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", order.DeliveryDate)

	req := fullRequest()
	req.DeliveryDate = "2025-06-02"
	order, err = newTestService(st).PlaceOrder(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", order.DeliveryDate)
}

func TestOrderDefaults(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	order, err := newTestService(st).PlaceOrder(ctx, Request{CustomerName: "A B", CustomerEmail: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 1, order.Quantity)
	assert.Equal(t, "2025-05-20", order.OrderDate)
	assert.Equal(t, models.OrderTypeCustom, order.OrderType)
	assert.NotNil(t, order.Items)
	assert.Nil(t, order.LocationID)
	assert.Empty(t, order.DeliveryDate)

	locations, _ := st.ListLocations(ctx)
	services, _ := st.ListCateringServices(ctx)
	payments, _ := st.ListPayments(ctx)
	assert.Empty(t, locations)
	assert.Empty(t, services)
	assert.Empty(t, payments)
}

func TestOrderTypeInferredFromMealSet(t *testing.T) {
	req := Request{CustomerName: "A", CustomerEmail: "a@b.com", MealSetID: "set-1"}
	order, err := newTestService(memory.New()).PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.OrderTypeMealSet, order.OrderType)
	require.NotNil(t, order.MealSetID)
	assert.Equal(t, "set-1", *order.MealSetID)
}

func TestPlaceOrderValidation(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Request)
		field string
	}{
		{"missing name", func(r *Request) { r.CustomerName = " " }, "customer_name"},
		{"missing email", func(r *Request) { r.CustomerEmail = "" }, "customer_email"},
		{"negative quantity", func(r *Request) { r.Quantity = -1 }, "quantity"},
		{"negative total", func(r *Request) { r.TotalAmount = -5 }, "total_amount"},
		{"bad order type", func(r *Request) { r.OrderType = "buffet" }, "order_type"},
		{"negative line quantity", func(r *Request) { r.Items[0].Quantity = -2 }, "items[0].quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := memory.New()
			req := fullRequest()
			tc.mut(&req)

			_, err := newTestService(st).PlaceOrder(context.Background(), req)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)

			orders, _ := st.ListOrders(context.Background())
			customers, _ := st.ListCustomers(context.Background())
			assert.Empty(t, orders)
			assert.Empty(t, customers)
		})
	}
}

func TestDuplicateAddressCreatesTwoLocations(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := newTestService(st)

	first, err := svc.PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)

	locations, err := st.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 2)
	require.NotNil(t, first.LocationID)
	require.NotNil(t, second.LocationID)
	assert.NotEqual(t, *first.LocationID, *second.LocationID)
}

func TestLocationFallsBackToCustomerFields(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	req := fullRequest()
	req.ContactPerson = ""
	req.ContactNumber = ""

	order, err := newTestService(st).PlaceOrder(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, order.LocationID)

	loc, err := st.GetLocation(ctx, *order.LocationID)
	require.NoError(t, err)
	assert.Equal(t, "A B", loc.Name)
	assert.Equal(t, "09170000000", loc.Phone)
	assert.Equal(t, models.LocationActive, loc.Status)
}

func TestAtomicModeRollsBackOnSideFailure(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	st := storetest.NewFaulty(mem).FailOn(storetest.OpCreatePayment, errors.New("insert failed"))
	rec := newCountingRecorder()
	svc := newTestService(st, WithMode(ModeAtomic), WithRecorder(rec))

	_, err := svc.PlaceOrder(ctx, fullRequest())
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, RecordPayment, stepErr.Record)
	assert.Equal(t, 1, rec.failed[RecordPayment])
	assert.Empty(t, rec.placed)

	orders, _ := mem.ListOrders(ctx)
	locations, _ := mem.ListLocations(ctx)
	services, _ := mem.ListCateringServices(ctx)
	customers, _ := mem.ListCustomers(ctx)
	assert.Empty(t, orders)
	assert.Empty(t, locations)
	assert.Empty(t, services)
	assert.Len(t, customers, 1, "customer resolution is outside the transaction")
}

func TestAtomicModeCommitsFullChain(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	order, err := newTestService(st, WithMode(ModeAtomic)).PlaceOrder(ctx, fullRequest())
	require.NoError(t, err)

	_, err = st.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	services, _ := st.ListCateringServices(ctx)
	payments, _ := st.ListPayments(ctx)
	assert.Len(t, services, 1)
	assert.Len(t, payments, 1)
}

func TestPlaceMealSetOrder(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	set, err := st.CreateMealSet(ctx, models.MealSet{Name: "Fiesta Set", Price: 250, IsAvailable: true})
	require.NoError(t, err)

	req := Request{CustomerName: "A", CustomerEmail: "a@b.com", MealSetID: set.ID, Quantity: 4, PaymentMethod: "cash", OrderType: models.OrderTypeCustom}
	order, err := newTestService(st).PlaceMealSetOrder(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, models.OrderTypeMealSet, order.OrderType)
	assert.Equal(t, 1000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, models.OrderLine{ItemID: set.ID, Name: "Fiesta Set", Price: 250, Quantity: 4}, order.Items[0])

	payments, _ := st.ListPayments(ctx)
	require.Len(t, payments, 1)
	assert.Equal(t, 1000.0, payments[0].Amount)
}

func TestPlaceMealSetOrderKeepsCallerTotal(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	set, err := st.CreateMealSet(ctx, models.MealSet{Name: "Set", Price: 250})
	require.NoError(t, err)

	order, err := newTestService(st).PlaceMealSetOrder(ctx, Request{CustomerName: "A", CustomerEmail: "a@b.com", MealSetID: set.ID, TotalAmount: 199})
	require.NoError(t, err)
	assert.Equal(t, 199.0, order.TotalAmount)
	assert.Equal(t, 1, order.Quantity)
}

func TestPlaceMealSetOrderErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.New())

	_, err := svc.PlaceMealSetOrder(ctx, Request{CustomerName: "A", CustomerEmail: "a@b.com"})
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "meal_set_id", vErr.Field)

	_, err = svc.PlaceMealSetOrder(ctx, Request{CustomerName: "A", CustomerEmail: "a@b.com", MealSetID: "missing"})
	assert.ErrorIs(t, err, ErrMealSetNotFound)

	faulty := storetest.NewFaulty(memory.New()).FailOn(storetest.OpGetMealSet, errors.New("timeout"))
	_, err = newTestService(faulty).PlaceMealSetOrder(ctx, Request{CustomerName: "A", CustomerEmail: "a@b.com", MealSetID: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMealSetNotFound)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeBestEffort, m)

	m, err = ParseMode(" ATOMIC ")
	require.NoError(t, err)
	assert.Equal(t, ModeAtomic, m)

	_, err = ParseMode("saga")
	assert.Error(t, err)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
