package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/models"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

func TestCustomerCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateCustomer(ctx, models.Customer{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Phone = "0917"
	updated, err := s.UpdateCustomer(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "0917", updated.Phone)

	require.NoError(t, s.DeleteCustomer(ctx, created.ID))
	_, err = s.GetCustomer(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteCustomer(ctx, created.ID), store.ErrNotFound)
}

func TestFindCustomerByEmailIsExactAndReturnsOldest(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.CreateCustomer(ctx, models.Customer{Name: "First", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = s.CreateCustomer(ctx, models.Customer{Name: "Second", Email: "a@b.com"})
	require.NoError(t, err)

	found, err := s.FindCustomerByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = s.FindCustomerByEmail(ctx, "A@B.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.FindCustomerByEmail(ctx, " a@b.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListOrdersNewestFirstAndByEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	o1, _ := s.CreateOrder(ctx, models.Order{CustomerEmail: "x@y.com"})
	o2, _ := s.CreateOrder(ctx, models.Order{CustomerEmail: "z@y.com"})
	o3, _ := s.CreateOrder(ctx, models.Order{CustomerEmail: "x@y.com"})

	all, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{o3.ID, o2.ID, o1.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := s.ListOrdersByCustomerEmail(ctx, "x@y.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, o3.ID, mine[0].ID)
	assert.Equal(t, o1.ID, mine[1].ID)
}

func TestUpdateMissingRowReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.UpdateItem(ctx, models.Item{ID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UpdatePayment(ctx, models.Payment{ID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
		if _, err := tx.CreateOrder(ctx, models.Order{CustomerName: "A"}); err != nil {
			return err
		}
		if _, err := tx.CreatePayment(ctx, models.Payment{Amount: 10}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	orders, _ := s.ListOrders(ctx)
	payments, _ := s.ListPayments(ctx)
	assert.Empty(t, orders)
	assert.Empty(t, payments)
}

func TestWithinTxCommits(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.WithinTx(ctx, func(ctx context.Context, tx store.Store) error {
		_, err := tx.CreateLocation(ctx, models.Location{Address: "123 Main St"})
		return err
	})
	require.NoError(t, err)

	locations, _ := s.ListLocations(ctx)
	assert.Len(t, locations, 1)
}
