package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Email is stored byte for byte because order intake matches it exactly.
type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

type updateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type customerByEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

func ListCustomers(st store.CustomerStore) gin.HandlerFunc {
	return listHandler("GET /api/customers", st.ListCustomers)
}

func GetCustomer(st store.CustomerStore) gin.HandlerFunc {
	return getHandler("GET /api/customers/:id", "customer", st.GetCustomer)
}

func CreateCustomer(st store.CustomerStore) gin.HandlerFunc {
	return createHandler("POST /api/customers", "customer", func(req createCustomerRequest) (models.Customer, error) {
		return models.Customer{
			Name:  strings.TrimSpace(req.Name),
			Email: req.Email,
			Phone: strings.TrimSpace(req.Phone),
		}, nil
	}, st.CreateCustomer)
}

func UpdateCustomer(st store.CustomerStore) gin.HandlerFunc {
	return updateHandler("PUT /api/customers/:id", "customer", st.GetCustomer, func(c *models.Customer, req updateCustomerRequest) error {
		setString(&c.Name, req.Name)
		if req.Email != nil {
			c.Email = *req.Email
		}
		setString(&c.Phone, req.Phone)
		return nil
	}, st.UpdateCustomer)
}

func DeleteCustomer(st store.CustomerStore) gin.HandlerFunc {
	return deleteHandler("DELETE /api/customers/:id", "customer", st.DeleteCustomer)
}

// FindCustomerByEmail returns the oldest customer whose email matches the
// body exactly.
func FindCustomerByEmail(st store.CustomerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/customers/by-email"
		defer handlePanic(c, route)

		var req customerByEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := withTimeout(c)
		defer cancel()

		customer, err := st.FindCustomerByEmail(ctx, req.Email)
		if err != nil {
			respondStoreError(c, route, "customer", err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
