package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"storeflow/pkg/order"
)

// QuoteLine prices one order item at the current product price.
type QuoteLine struct {
	Item      order.Item
	Name      string
	Found     bool
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Quote is an order priced line by line.
type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

// CreateOrder stores a PENDING order and appends it to the queue. Every
// item must name an existing product with a positive quantity.
func (s *Service) CreateOrder(ctx context.Context, customer string, items []order.Item) (order.Order, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return order.Order{}, fmt.Errorf("create order: customer: %w", ErrMissingField)
	}
	if len(items) == 0 {
		return order.Order{}, fmt.Errorf("create order for %s: %w", customer, ErrEmptyOrder)
	}
	lines := make([]order.Item, 0, len(items))
	for _, it := range items {
		code := strings.TrimSpace(it.Code)
		if it.Qty < 1 {
			return order.Order{}, fmt.Errorf("create order item %s: %w", code, ErrInvalidQuantity)
		}
		if _, ok := s.cache.Get(code); !ok {
			return order.Order{}, fmt.Errorf("create order item %s: %w", code, ErrUnknownProduct)
		}
		lines = append(lines, order.Item{Code: code, Qty: it.Qty})
	}

	id, err := s.store.NextOrderID(ctx)
	if err != nil {
		return order.Order{}, err
	}
	o := order.Order{
		ID:           id,
		CustomerName: customer,
		Items:        lines,
		Status:       order.StatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.store.AddOrder(ctx, o); err != nil {
		return order.Order{}, err
	}
	s.queue.Enqueue(id)
	s.log.Info(ctx, "order created", "order_id", id, "items", len(lines))
	return o, nil
}

// Order returns the order with id.
func (s *Service) Order(id int) (order.Order, bool) {
	return s.store.Order(id)
}

// ProcessNext processes the order at the head of the queue.
func (s *Service) ProcessNext(ctx context.Context) (int, bool, error) {
	return s.queue.ProcessNext(ctx, s.cache)
}

// ProcessAll drains the queue and returns the processed order ids.
func (s *Service) ProcessAll(ctx context.Context) ([]int, error) {
	return s.queue.ProcessBatch(ctx, s.queue.Len(), s.cache)
}

// Orders lists orders with the given status, or all orders for "".
// Pending orders come oldest first, everything else newest first.
func (s *Service) Orders(status order.Status) []order.Order {
	var out []order.Order
	for _, o := range s.store.Orders() {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sortByCreated(out, status != order.StatusPending)
	return out
}

// OrdersByCustomer lists orders whose customer name contains query,
// ignoring case, newest first.
func (s *Service) OrdersByCustomer(query string) []order.Order {
	query = strings.TrimSpace(query)
	var out []order.Order
	for _, o := range s.store.Orders() {
		if contains(o.CustomerName, query) {
			out = append(out, o)
		}
	}
	sortByCreated(out, true)
	return out
}

func sortByCreated(orders []order.Order, newestFirst bool) {
	slices.SortStableFunc(orders, func(a, b order.Order) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if newestFirst {
			return -c
		}
		return c
	})
}

// DeleteOrder removes an order whatever its status. A queued id for it is
// dropped silently when processed.
func (s *Service) DeleteOrder(ctx context.Context, id int) (bool, error) {
	return s.store.DeleteOrder(ctx, id)
}

// Quote prices o with current product prices. Items whose product is gone
// are listed with Found false and a zero price.
func (s *Service) Quote(o order.Order) Quote {
	q := Quote{Total: decimal.Zero}
	for _, it := range o.Items {
		line := QuoteLine{Item: it, Name: it.Code, UnitPrice: decimal.Zero, Subtotal: decimal.Zero}
		if p, ok := s.cache.Get(it.Code); ok {
			line.Found = true
			line.Name = p.Name
			line.UnitPrice = p.Price
			line.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(it.Quantity())))
			q.Total = q.Total.Add(line.Subtotal)
		}
		q.Lines = append(q.Lines, line)
	}
	return q
}
