package order

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storeflow/pkg/logger"
	"storeflow/pkg/otel"
)

// Queue holds pending order ids in FIFO order.
//
// LoadPending scans the order collection once per Queue. Orders that become
// pending after that scan must be added with Enqueue by whoever creates them.
type Queue struct {
	repo   Repository
	log    *logger.Logger
	ids    []int
	loaded bool
}

// NewQueue returns an empty, unloaded queue.
func NewQueue(repo Repository, log *logger.Logger) *Queue {
	return &Queue{repo: repo, log: log}
}

// LoadPending enqueues every PENDING order in collection order. Only the
// first call has an effect.
func (q *Queue) LoadPending() {
	if q.loaded {
		return
	}
	for _, o := range q.repo.Orders() {
		if o.Status == StatusPending {
			q.ids = append(q.ids, o.ID)
		}
	}
	q.loaded = true
}

// Enqueue appends id to the tail without checking it.
func (q *Queue) Enqueue(id int) {
	q.ids = append(q.ids, id)
}

// Len returns the number of queued ids.
func (q *Queue) Len() int {
	return len(q.ids)
}

// Pending returns the queued ids, head first.
func (q *Queue) Pending() []int {
	return slices.Clone(q.ids)
}

// Clear empties the queue and lets LoadPending scan again.
func (q *Queue) Clear() {
	q.ids = nil
	q.loaded = false
}

// ProcessNext pops the head of the queue and processes that order. It
// reports the order id and true when the order reached DONE or CANCELLED.
// An empty queue, an order that no longer exists or one already in a
// terminal state yields false. Errors come only from persistence.
func (q *Queue) ProcessNext(ctx context.Context, catalog Catalog) (int, bool, error) {
	if len(q.ids) == 0 {
		return 0, false, nil
	}
	id := q.ids[0]
	q.ids = q.ids[1:]

	ok, err := q.process(ctx, id, catalog)
	if err != nil {
		return id, false, err
	}
	return id, ok, nil
}

// ProcessBatch calls ProcessNext up to n times, stopping early when the
// queue runs dry, and returns the ids that were processed.
func (q *Queue) ProcessBatch(ctx context.Context, n int, catalog Catalog) ([]int, error) {
	var processed []int
	for i := 0; i < n && len(q.ids) > 0; i++ {
		id, ok, err := q.ProcessNext(ctx, catalog)
		if err != nil {
			return processed, err
		}
		if ok {
			processed = append(processed, id)
		}
	}
	return processed, nil
}

// process runs the single-order protocol. Stock is checked and decremented
// item by item; a later cancellation does not restore earlier decrements.
func (q *Queue) process(ctx context.Context, id int, catalog Catalog) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "order.process", attribute.Int("order.id", id))
	defer span.End()

	o, ok := q.repo.Order(id)
	if !ok {
		q.log.Warn(ctx, "queued order vanished", "order_id", id)
		return false, nil
	}
	if o.Status.Terminal() {
		q.log.Warn(ctx, "queued order already finished", "order_id", id, "status", string(o.Status))
		return false, nil
	}

	o.Status = StatusProcessing
	if err := q.repo.UpdateOrder(ctx, o); err != nil {
		otel.RecordError(span, err)
		return false, fmt.Errorf("mark order %d processing: %w", id, err)
	}

	for _, item := range o.Items {
		qty := item.Quantity()
		p, found := catalog.Get(item.Code)
		if !found || p.Stock < qty {
			q.log.Info(ctx, "order cancelled", "order_id", id, "code", item.Code, "found", found, "requested", qty, "stock", p.Stock)
			return true, q.finish(ctx, o, StatusCancelled)
		}
		p.Stock -= qty
		if err := q.repo.UpdateProduct(ctx, p); err != nil {
			otel.RecordError(span, err)
			return false, fmt.Errorf("decrement stock of %s for order %d: %w", p.Code, id, err)
		}
		catalog.Put(p)
	}

	q.log.Info(ctx, "order done", "order_id", id, "items", len(o.Items))
	return true, q.finish(ctx, o, StatusDone)
}

func (q *Queue) finish(ctx context.Context, o Order, status Status) error {
	o.Status = status
	if err := q.repo.UpdateOrder(ctx, o); err != nil {
		return fmt.Errorf("mark order %d %s: %w", o.ID, status, err)
	}
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("order.status", string(status)))
	return nil
}
