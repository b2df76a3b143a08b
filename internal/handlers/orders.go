package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/access"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/intake"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/middleware"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

/* =========================
   REQUEST DTOs
========================= */

type orderLineRequest struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int     `json:"quantity" binding:"gte=0"`
}

// placeOrderRequest is the checkout body. Required customer fields are
// checked by intake so the meal-set variant can fill them from the token.
type placeOrderRequest struct {
	CustomerName        string             `json:"customer_name"`
	CustomerEmail       string             `json:"customer_email"`
	CustomerPhone       string             `json:"customer_phone"`
	Items               []orderLineRequest `json:"items" binding:"dive"`
	MealSetID           string             `json:"meal_set_id"`
	Quantity            int                `json:"quantity"`
	TotalAmount         float64            `json:"total_amount"`
	OrderType           string             `json:"order_type"`
	EventType           string             `json:"event_type"`
	EventDate           string             `json:"event_date"`
	OrderDate           string             `json:"order_date"`
	DeliveryDate        string             `json:"delivery_date"`
	DeliveryAddress     string             `json:"delivery_address"`
	ContactPerson       string             `json:"contact_person"`
	ContactNumber       string             `json:"contact_number"`
	PaymentMethod       string             `json:"payment_method"`
	SpecialInstructions string             `json:"special_instructions"`
}

func (r placeOrderRequest) toIntake() intake.Request {
	lines := make([]models.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, models.OrderLine{
			ItemID:   strings.TrimSpace(it.ItemID),
			Name:     strings.TrimSpace(it.Name),
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return intake.Request{
		CustomerName:        strings.TrimSpace(r.CustomerName),
		CustomerEmail:       r.CustomerEmail,
		CustomerPhone:       strings.TrimSpace(r.CustomerPhone),
		Items:               lines,
		MealSetID:           r.MealSetID,
		Quantity:            r.Quantity,
		TotalAmount:         r.TotalAmount,
		OrderType:           r.OrderType,
		EventType:           r.EventType,
		EventDate:           r.EventDate,
		OrderDate:           r.OrderDate,
		DeliveryDate:        r.DeliveryDate,
		DeliveryAddress:     r.DeliveryAddress,
		ContactPerson:       strings.TrimSpace(r.ContactPerson),
		ContactNumber:       strings.TrimSpace(r.ContactNumber),
		PaymentMethod:       r.PaymentMethod,
		SpecialInstructions: r.SpecialInstructions,
	}
}

type updateOrderRequest struct {
	CustomerID          *string             `json:"customer_id"`
	CustomerName        *string             `json:"customer_name"`
	CustomerEmail       *string             `json:"customer_email"`
	CustomerPhone       *string             `json:"customer_phone"`
	Items               *[]orderLineRequest `json:"items"`
	MealSetID           *string             `json:"meal_set_id"`
	Quantity            *int                `json:"quantity" binding:"omitempty,gte=0"`
	TotalAmount         *float64            `json:"total_amount" binding:"omitempty,gte=0"`
	OrderType           *string             `json:"order_type" binding:"omitempty,oneof=meal_set custom"`
	Status              *string             `json:"status"`
	EventType           *string             `json:"event_type"`
	EventDate           *string             `json:"event_date"`
	OrderDate           *string             `json:"order_date"`
	DeliveryDate        *string             `json:"delivery_date"`
	DeliveryAddress     *string             `json:"delivery_address"`
	LocationID          *string             `json:"location_id"`
	ContactPerson       *string             `json:"contact_person"`
	ContactNumber       *string             `json:"contact_number"`
	PaymentMethod       *string             `json:"payment_method"`
	SpecialInstructions *string             `json:"special_instructions"`
}

func applyOrderUpdate(o *models.Order, req updateOrderRequest) error {
	setOptionalID(&o.CustomerID, req.CustomerID)
	setString(&o.CustomerName, req.CustomerName)
	if req.CustomerEmail != nil {
		o.CustomerEmail = *req.CustomerEmail
	}
	setString(&o.CustomerPhone, req.CustomerPhone)
	if req.Items != nil {
		lines := make(models.OrderLines, 0, len(*req.Items))
		for _, it := range *req.Items {
			lines = append(lines, models.OrderLine{ItemID: it.ItemID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
		}
		o.Items = lines
	}
	setOptionalID(&o.MealSetID, req.MealSetID)
	if req.Quantity != nil {
		o.Quantity = *req.Quantity
	}
	if req.TotalAmount != nil {
		o.TotalAmount = *req.TotalAmount
	}
	setString(&o.OrderType, req.OrderType)
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		o.Status = strings.TrimSpace(*req.Status)
	}
	setString(&o.EventType, req.EventType)
	setString(&o.EventDate, req.EventDate)
	setString(&o.OrderDate, req.OrderDate)
	setString(&o.DeliveryDate, req.DeliveryDate)
	setString(&o.DeliveryAddress, req.DeliveryAddress)
	setOptionalID(&o.LocationID, req.LocationID)
	setString(&o.ContactPerson, req.ContactPerson)
	setString(&o.ContactNumber, req.ContactNumber)
	setString(&o.PaymentMethod, req.PaymentMethod)
	if req.SpecialInstructions != nil {
		o.SpecialInstructions = *req.SpecialInstructions
	}
	return nil
}

/* =========================
   ORDER INTAKE
========================= */

// PlaceOrder runs the checkout write chain and responds with the order.
func PlaceOrder(st store.Store, svc *intake.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureStore(c.Request.Context(), st); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		order, err := svc.PlaceOrder(ctx, req.toIntake())
		if err != nil {
			respondIntakeError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// PlaceMealSetOrder requires UserAuth. Missing customer email and name are
// taken from the token.
func PlaceMealSetOrder(st store.Store, svc *intake.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/meal-set-orders"
		defer handlePanic(c, route)

		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		if err := ensureStore(c.Request.Context(), st); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		in := req.toIntake()
		if strings.TrimSpace(in.CustomerEmail) == "" {
			in.CustomerEmail = identity.Email
		}
		if in.CustomerName == "" {
			in.CustomerName = firstNonEmpty(identity.Name, identity.Email)
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		order, err := svc.PlaceMealSetOrder(ctx, in)
		if err != nil {
			respondIntakeError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

/* =========================
   ORDER CRUD
========================= */

func ListOrders(st store.OrderStore) gin.HandlerFunc {
	return listHandler("GET /api/orders", st.ListOrders)
}

func GetOrder(st store.OrderStore) gin.HandlerFunc {
	return getHandler("GET /api/orders/:id", "order", st.GetOrder)
}

func UpdateOrder(st store.OrderStore) gin.HandlerFunc {
	return updateHandler("PUT /api/orders/:id", "order", st.GetOrder, applyOrderUpdate, st.UpdateOrder)
}

func DeleteOrder(st store.OrderStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/orders/:id", "order", st.DeleteOrder)
}

// MyOrders requires UserAuth. Admins see every order; everyone else sees
// orders placed with their token email.
func MyOrders(st store.OrderStore, policy *access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/my-orders"
		defer handlePanic(c, route)

		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		var (
			orders []models.Order
			err    error
		)
		if policy.IsAdmin(identity.Email) {
			orders, err = st.ListOrders(ctx)
		} else {
			orders, err = st.ListOrdersByCustomerEmail(ctx, identity.Email)
		}
		if err != nil {
			respondStoreError(c, route, "order", err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
