// Package recent tracks the products each user or session viewed last.
package recent

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"storeflow/pkg/otel"
)

// DefaultCapacity is the stack size used when none is configured.
const DefaultCapacity = 5

// View is the persisted history of one identifier. Stack is ordered from
// the oldest view to the most recent one.
type View struct {
	Identifier string
	Stack      []string
	UpdatedAt  time.Time
}

// Repository persists views.
type Repository interface {
	RecentView(identifier string) (View, bool)
	UpdateRecentView(ctx context.Context, v View) error
}

// Tracker maintains bounded most-recently-used stacks of product codes.
// Every mutation reads the stored record, applies the change and writes the
// whole record back.
type Tracker struct {
	repo     Repository
	capacity int
	now      func() time.Time
}

// NewTracker returns a Tracker keeping at most capacity codes per
// identifier. A capacity below one selects DefaultCapacity.
func NewTracker(repo Repository, capacity int) *Tracker {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Tracker{repo: repo, capacity: capacity, now: time.Now}
}

// Capacity returns the maximum stack length.
func (t *Tracker) Capacity() int {
	return t.capacity
}

// Add records a view of code by identifier. A code already on the stack
// moves to the most recent end; the oldest entries are evicted past
// capacity. The record is created on first use.
func (t *Tracker) Add(ctx context.Context, identifier, code string) error {
	ctx, span := otel.AddSpan(ctx, "recent.add", attribute.String("recent.identifier", identifier))
	defer span.End()

	v, ok := t.repo.RecentView(identifier)
	if !ok {
		v = View{Identifier: identifier}
	}
	stack := slices.DeleteFunc(slices.Clone(v.Stack), func(c string) bool { return c == code })
	stack = append(stack, code)
	if over := len(stack) - t.capacity; over > 0 {
		stack = stack[over:]
	}
	v.Stack = stack
	return t.save(ctx, v)
}

// Recent returns the stack for identifier, most recent last. Unknown
// identifiers yield nil and create nothing.
func (t *Tracker) Recent(identifier string) []string {
	v, ok := t.repo.RecentView(identifier)
	if !ok {
		return nil
	}
	return slices.Clone(v.Stack)
}

// Remove deletes code from identifier's stack. It reports whether the code
// was present.
func (t *Tracker) Remove(ctx context.Context, identifier, code string) (bool, error) {
	v, ok := t.repo.RecentView(identifier)
	if !ok || !slices.Contains(v.Stack, code) {
		return false, nil
	}
	v.Stack = slices.DeleteFunc(slices.Clone(v.Stack), func(c string) bool { return c == code })
	return true, t.save(ctx, v)
}

// Clear empties identifier's stack, keeping the record. It reports false
// for identifiers with no record.
func (t *Tracker) Clear(ctx context.Context, identifier string) (bool, error) {
	v, ok := t.repo.RecentView(identifier)
	if !ok {
		return false, nil
	}
	v.Stack = []string{}
	return true, t.save(ctx, v)
}

func (t *Tracker) save(ctx context.Context, v View) error {
	v.UpdatedAt = t.now()
	if err := t.repo.UpdateRecentView(ctx, v); err != nil {
		return fmt.Errorf("save recent views of %q: %w", v.Identifier, err)
	}
	return nil
}
