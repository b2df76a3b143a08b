package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

func TestStoreIntegration(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database(fmt.Sprintf("catering_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s := New(db)

	first, err := s.CreateCustomer(ctx, models.Customer{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = s.CreateCustomer(ctx, models.Customer{Name: "B", Email: "a@b.com"})
	require.NoError(t, err)

	found, err := s.FindCustomerByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	order, err := s.CreateOrder(ctx, models.Order{CustomerEmail: "a@b.com", Items: models.OrderLines{}, Status: models.OrderPending})
	require.NoError(t, err)

	order.Status = models.OrderConfirmed
	updated, err := s.UpdateOrder(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, updated.Status)

	mine, err := s.ListOrdersByCustomerEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, s.DeleteOrder(ctx, order.ID))
	_, err = s.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
