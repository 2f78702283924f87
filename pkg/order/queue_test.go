package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeflow/pkg/logger"
	"storeflow/pkg/product"
)

type memRepo struct {
	orders   []Order
	products []product.Product
	failOn   string
}

func (r *memRepo) Orders() []Order { return append([]Order(nil), r.orders...) }

func (r *memRepo) Order(id int) (Order, bool) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func (r *memRepo) UpdateOrder(_ context.Context, o Order) error {
	if r.failOn == "order" {
		return errors.New("disk full")
	}
	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *memRepo) Products() []product.Product { return append([]product.Product(nil), r.products...) }

func (r *memRepo) UpdateProduct(_ context.Context, p product.Product) error {
	if r.failOn == "product" {
		return errors.New("disk full")
	}
	for i := range r.products {
		if r.products[i].Code == p.Code {
			r.products[i] = p
			return nil
		}
	}
	r.products = append(r.products, p)
	return nil
}

func (r *memRepo) stock(t *testing.T, code string) int {
	t.Helper()
	for _, p := range r.products {
		if p.Code == code {
			return p.Stock
		}
	}
	t.Fatalf("product %s not found", code)
	return 0
}

func (r *memRepo) status(t *testing.T, id int) Status {
	t.Helper()
	o, ok := r.Order(id)
	require.True(t, ok)
	return o.Status
}

func newFixture() (*memRepo, *Queue, *product.Cache) {
	repo := &memRepo{
		products: []product.Product{
			{Code: "A", Stock: 5},
			{Code: "B", Stock: 1},
		},
	}
	return repo, NewQueue(repo, logger.Nop()), product.NewCache(repo)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransition(StatusDone))
	assert.True(t, StatusProcessing.CanTransition(StatusCancelled))
	assert.False(t, StatusPending.CanTransition(StatusDone))
	assert.False(t, StatusDone.CanTransition(StatusProcessing))
	assert.False(t, StatusCancelled.CanTransition(StatusPending))
	assert.True(t, StatusDone.Terminal())
	assert.False(t, StatusProcessing.Terminal())

	st, err := ParseStatus("DONE")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, st)
	_, err = ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestItemQuantityClamps(t *testing.T) {
	assert.Equal(t, 1, Item{Qty: 0}.Quantity())
	assert.Equal(t, 1, Item{Qty: -3}.Quantity())
	assert.Equal(t, 4, Item{Qty: 4}.Quantity())
}

func TestLoadPendingOnce(t *testing.T) {
	repo, q, _ := newFixture()
	repo.orders = []Order{
		{ID: 3, Status: StatusPending},
		{ID: 1, Status: StatusDone},
		{ID: 2, Status: StatusPending},
	}

	q.LoadPending()
	assert.Equal(t, []int{3, 2}, q.Pending())

	repo.orders = append(repo.orders, Order{ID: 4, Status: StatusPending})
	q.LoadPending()
	assert.Equal(t, 2, q.Len())

	q.Enqueue(4)
	assert.Equal(t, []int{3, 2, 4}, q.Pending())

	q.Clear()
	assert.Zero(t, q.Len())
	q.LoadPending()
	assert.Equal(t, []int{3, 2, 4}, q.Pending())
}

func TestProcessNextEmptyQueue(t *testing.T) {
	repo, q, cache := newFixture()

	id, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Empty(t, repo.orders)
}

func TestProcessNextDone(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{{ID: 1, Status: StatusPending, Items: []Item{{Code: "A", Qty: 2}, {Code: "B", Qty: 1}}}}
	q.LoadPending()

	id, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, StatusDone, repo.status(t, 1))
	assert.Equal(t, 3, repo.stock(t, "A"))
	assert.Equal(t, 0, repo.stock(t, "B"))

	cached, _ := cache.Get("A")
	assert.Equal(t, 3, cached.Stock)
}

func TestProcessNextCancelsKeepingEarlierDecrements(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{{ID: 1, Status: StatusPending, Items: []Item{{Code: "A", Qty: 2}, {Code: "B", Qty: 2}}}}
	q.Enqueue(1)

	id, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, StatusCancelled, repo.status(t, 1))
	assert.Equal(t, 3, repo.stock(t, "A"), "first item stays decremented")
	assert.Equal(t, 1, repo.stock(t, "B"))
}

func TestProcessNextMissingProductCancels(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{{ID: 1, Status: StatusPending, Items: []Item{{Code: "GONE", Qty: 1}, {Code: "A", Qty: 1}}}}
	q.Enqueue(1)

	_, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, repo.status(t, 1))
	assert.Equal(t, 5, repo.stock(t, "A"))
}

func TestProcessNextMissingOrderIsDropped(t *testing.T) {
	_, q, cache := newFixture()
	q.Enqueue(42)

	id, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 42, id)
	assert.Zero(t, q.Len())
}

func TestProcessNextSkipsFinishedOrders(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{{ID: 1, Status: StatusDone, Items: []Item{{Code: "A", Qty: 1}}}}
	q.Enqueue(1)

	_, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 5, repo.stock(t, "A"))
}

func TestProcessNextClampsQuantity(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{{ID: 1, Status: StatusPending, Items: []Item{{Code: "A"}}}}
	q.Enqueue(1)

	_, ok, err := q.ProcessNext(context.Background(), cache)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, repo.stock(t, "A"))
}

func TestProcessNextPropagatesPersistenceErrors(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{{ID: 1, Status: StatusPending, Items: []Item{{Code: "A", Qty: 1}}}}
	repo.failOn = "product"
	q.Enqueue(1)

	_, ok, err := q.ProcessNext(context.Background(), cache)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestProcessBatch(t *testing.T) {
	repo, q, cache := newFixture()
	repo.orders = []Order{
		{ID: 1, Status: StatusPending, Items: []Item{{Code: "A", Qty: 1}}},
		{ID: 2, Status: StatusPending, Items: []Item{{Code: "B", Qty: 5}}},
		{ID: 3, Status: StatusPending, Items: []Item{{Code: "A", Qty: 1}}},
	}
	q.LoadPending()
	q.Enqueue(99)

	got, err := q.ProcessBatch(context.Background(), 2, cache)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, []int{3, 99}, q.Pending())

	got, err = q.ProcessBatch(context.Background(), 10, cache)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got)
	assert.Zero(t, q.Len())

	assert.Equal(t, StatusDone, repo.status(t, 1))
	assert.Equal(t, StatusCancelled, repo.status(t, 2))
	assert.Equal(t, 3, repo.stock(t, "A"))
}
