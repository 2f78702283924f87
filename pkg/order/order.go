// Package order models customer orders and their FIFO processing queue.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storeflow/pkg/product"
)

// Status is the processing state of an order.
type Status string

// Order states. DONE and CANCELLED are terminal.
const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

// ErrUnknownStatus is returned by ParseStatus for unrecognised values.
var ErrUnknownStatus = errors.New("unknown order status")

// ParseStatus validates s as a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusProcessing, StatusDone, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// CanTransition reports whether an order may move from s to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusDone || next == StatusCancelled
	}
	return false
}

// Item is one order line.
type Item struct {
	Code string
	Qty  int
}

// Quantity returns Qty, clamped to at least one.
func (i Item) Quantity() int {
	if i.Qty < 1 {
		return 1
	}
	return i.Qty
}

// Order represents a customer purchase order.
type Order struct {
	ID           int
	CustomerName string
	Items        []Item
	Status       Status
	CreatedAt    time.Time
}

// Repository is the persistence surface the queue works against.
type Repository interface {
	Orders() []Order
	Order(id int) (Order, bool)
	UpdateOrder(ctx context.Context, o Order) error
	UpdateProduct(ctx context.Context, p product.Product) error
}

// Catalog resolves products during processing and receives stock updates.
// *product.Cache satisfies it.
type Catalog interface {
	Get(code string) (product.Product, bool)
	Put(p product.Product)
}
