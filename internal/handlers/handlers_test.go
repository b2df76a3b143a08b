package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/intake"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/logging"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetLogger(logging.Discard())
	UseJSONFieldNames()
}

func serve(h gin.HandlerFunc, method, pattern, path, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, pattern, h)
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondIntakeErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{intake.ValidationError{Field: "customer_name", Reason: "is required"}, http.StatusBadRequest},
		{intake.ErrMealSetNotFound, http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondIntakeError(c, "test", tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.NotContains(t, w.Body.String(), "connection reset")
	}
}

func TestRespondStoreError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondStoreError(c, "test", "payment", store.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"payment not found"}`, w.Body.String())
}

func TestValidationDetailsUseJSONNames(t *testing.T) {
	w := serve(CreatePayment(memory.New()), http.MethodPost, "/payments", "/payments", `{"amount": -1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "amount must be at least 0")
	assert.Contains(t, w.Body.String(), "payment_method is required")

	w = serve(CreatePayment(memory.New()), http.MethodPost, "/payments", "/payments", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid body")
}

func TestListReturnsEmptyArray(t *testing.T) {
	w := serve(ListLocations(memory.New()), http.MethodGet, "/locations", "/locations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestApplyOrderUpdateOnlyTouchesGivenFields(t *testing.T) {
	customerID := "c1"
	order := models.Order{
		CustomerID:   &customerID,
		CustomerName: "A B",
		TotalAmount:  1000,
		Status:       models.OrderPending,
		Items:        models.OrderLines{{ItemID: "i1", Quantity: 1}},
	}
	status := "delivered"
	blank := ""
	require.NoError(t, applyOrderUpdate(&order, updateOrderRequest{Status: &status, CustomerID: &blank}))

	assert.Equal(t, models.OrderDelivered, order.Status)
	assert.Nil(t, order.CustomerID)
	assert.Equal(t, "A B", order.CustomerName)
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Len(t, order.Items, 1)
}

func TestUpdateMealSetReplacesItems(t *testing.T) {
	st := memory.New()
	set, err := st.CreateMealSet(context.Background(), models.MealSet{Name: "Set", Items: models.StringList{"a", "b"}})
	require.NoError(t, err)

	w := serve(UpdateMealSet(st), http.MethodPut, "/meal-sets/:id", "/meal-sets/"+set.ID, `{"items":["c"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := st.GetMealSet(context.Background(), set.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"c"}, got.Items)
	assert.Equal(t, "Set", got.Name)
}
