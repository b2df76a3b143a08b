package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

type createPaymentRequest struct {
	OrderID        string   `json:"order_id"`
	Amount         *float64 `json:"amount" binding:"required,gte=0"`
	PaymentMethod  string   `json:"payment_method" binding:"required"`
	Status         string   `json:"status"`
	TransactionRef string   `json:"transaction_ref"`
	PaymentDate    string   `json:"payment_date"`
	Notes          string   `json:"notes"`
}

type updatePaymentRequest struct {
	OrderID        *string  `json:"order_id"`
	Amount         *float64 `json:"amount" binding:"omitempty,gte=0"`
	PaymentMethod  *string  `json:"payment_method"`
	Status         *string  `json:"status"`
	TransactionRef *string  `json:"transaction_ref"`
	PaymentDate    *string  `json:"payment_date"`
	Notes          *string  `json:"notes"`
}

func ListPayments(st store.PaymentStore) gin.HandlerFunc {
	return listHandler("GET /api/payments", st.ListPayments)
}

func GetPayment(st store.PaymentStore) gin.HandlerFunc {
	return getHandler("GET /api/payments/:id", "payment", st.GetPayment)
}

func CreatePayment(st store.PaymentStore) gin.HandlerFunc {
	return createHandler("POST /api/payments", "payment", func(req createPaymentRequest) (models.Payment, error) {
		status := strings.TrimSpace(req.Status)
		if status == "" {
			status = models.PaymentPending
		}
		return models.Payment{
			OrderID:        optionalID(req.OrderID),
			Amount:         *req.Amount,
			PaymentMethod:  strings.TrimSpace(req.PaymentMethod),
			Status:         status,
			TransactionRef: strings.TrimSpace(req.TransactionRef),
			PaymentDate:    strings.TrimSpace(req.PaymentDate),
			Notes:          req.Notes,
		}, nil
	}, st.CreatePayment)
}

func UpdatePayment(st store.PaymentStore) gin.HandlerFunc {
	return updateHandler("PUT /api/payments/:id", "payment", st.GetPayment, func(p *models.Payment, req updatePaymentRequest) error {
		setOptionalID(&p.OrderID, req.OrderID)
		if req.Amount != nil {
			p.Amount = *req.Amount
		}
		setString(&p.PaymentMethod, req.PaymentMethod)
		if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
			p.Status = strings.TrimSpace(*req.Status)
		}
		setString(&p.TransactionRef, req.TransactionRef)
		setString(&p.PaymentDate, req.PaymentDate)
		if req.Notes != nil {
			p.Notes = *req.Notes
		}
		return nil
	}, st.UpdatePayment)
}

func DeletePayment(st store.PaymentStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/payments/:id", "payment", st.DeletePayment)
}
