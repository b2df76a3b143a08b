package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Direct writes here bypass order intake; references are stored as given.

type createCateringServiceRequest struct {
	CustomerID      string `json:"customer_id"`
	CustomerName    string `json:"customer_name" binding:"required"`
	EventType       string `json:"event_type" binding:"required"`
	EventDate       string `json:"event_date"`
	GuestCount      int    `json:"guest_count" binding:"gte=0"`
	Status          string `json:"status"`
	Location        string `json:"location"`
	LocationID      string `json:"location_id"`
	SpecialRequests string `json:"special_requests"`
	OrderID         string `json:"order_id"`
	PaymentMethod   string `json:"payment_method"`
}

type updateCateringServiceRequest struct {
	CustomerID      *string `json:"customer_id"`
	CustomerName    *string `json:"customer_name"`
	EventType       *string `json:"event_type"`
	EventDate       *string `json:"event_date"`
	GuestCount      *int    `json:"guest_count" binding:"omitempty,gte=0"`
	Status          *string `json:"status"`
	Location        *string `json:"location"`
	LocationID      *string `json:"location_id"`
	SpecialRequests *string `json:"special_requests"`
	OrderID         *string `json:"order_id"`
	PaymentMethod   *string `json:"payment_method"`
}

func ListCateringServices(st store.CateringServiceStore) gin.HandlerFunc {
	return listHandler("GET /api/catering-services", st.ListCateringServices)
}

func GetCateringService(st store.CateringServiceStore) gin.HandlerFunc {
	return getHandler("GET /api/catering-services/:id", "catering service", st.GetCateringService)
}

func CreateCateringService(st store.CateringServiceStore) gin.HandlerFunc {
	return createHandler("POST /api/catering-services", "catering service", func(req createCateringServiceRequest) (models.CateringService, error) {
		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = models.OrderPending
		}
		return models.CateringService{
			CustomerID:      optionalID(req.CustomerID),
			CustomerName:    strings.TrimSpace(req.CustomerName),
			EventType:       strings.TrimSpace(req.EventType),
			EventDate:       strings.TrimSpace(req.EventDate),
			GuestCount:      req.GuestCount,
			Status:          status,
			Location:        strings.TrimSpace(req.Location),
			LocationID:      optionalID(req.LocationID),
			SpecialRequests: req.SpecialRequests,
			OrderID:         optionalID(req.OrderID),
			PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		}, nil
	}, st.CreateCateringService)
}

func UpdateCateringService(st store.CateringServiceStore) gin.HandlerFunc {
	return updateHandler("PUT /api/catering-services/:id", "catering service", st.GetCateringService, func(cs *models.CateringService, req updateCateringServiceRequest) error {
		setOptionalID(&cs.CustomerID, req.CustomerID)
		setString(&cs.CustomerName, req.CustomerName)
		setString(&cs.EventType, req.EventType)
		setString(&cs.EventDate, req.EventDate)
		if req.GuestCount != nil {
			cs.GuestCount = *req.GuestCount
		}
		if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
			cs.Status = strings.TrimSpace(*req.Status)
		}
		setString(&cs.Location, req.Location)
		setOptionalID(&cs.LocationID, req.LocationID)
		if req.SpecialRequests != nil {
			cs.SpecialRequests = *req.SpecialRequests
		}
		setOptionalID(&cs.OrderID, req.OrderID)
		setString(&cs.PaymentMethod, req.PaymentMethod)
		return nil
	}, st.UpdateCateringService)
}

func DeleteCateringService(st store.CateringServiceStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/catering-services/:id", "catering service", st.DeleteCateringService)
}
