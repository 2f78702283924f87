// Package inventory orchestrates the store and its caches for the
// interactive front end: product and category maintenance, order intake
// and processing, view histories and reporting.
package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"storeflow/pkg/category"
	"storeflow/pkg/logger"
	"storeflow/pkg/order"
	"storeflow/pkg/product"
	"storeflow/pkg/recent"
	"storeflow/pkg/store"
)

// NoCategory labels products without a (live) category.
const NoCategory = "No category"

// Validation errors.
var (
	ErrMissingField     = errors.New("required field is empty")
	ErrNegativeValue    = errors.New("price and stock must not be negative")
	ErrDuplicateProduct = errors.New("product code already exists")
	ErrUnknownProduct   = errors.New("unknown product")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrEmptyOrder       = errors.New("order has no items")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// Service owns the product cache, category tree, order queue and view
// tracker built over one Store. It is not safe for concurrent use.
type Service struct {
	store *store.Store
	cache *product.Cache
	tree  *category.Tree
	queue *order.Queue
	views *recent.Tracker
	log   *logger.Logger
	now   func() time.Time
}

// New wires the components over st. recentCapacity bounds every view
// history.
func New(st *store.Store, log *logger.Logger, recentCapacity int) *Service {
	return &Service{
		store: st,
		cache: product.NewCache(st),
		tree:  category.NewTree(st),
		queue: order.NewQueue(st, log),
		views: recent.NewTracker(st, recentCapacity),
		log:   log,
		now:   time.Now,
	}
}

// Cache returns the product cache.
func (s *Service) Cache() *product.Cache { return s.cache }

// Tree returns the category tree.
func (s *Service) Tree() *category.Tree { return s.tree }

// Queue returns the order queue.
func (s *Service) Queue() *order.Queue { return s.queue }

// Start preloads the product cache and queues every pending order.
func (s *Service) Start(ctx context.Context) {
	s.cache.Initialize()
	s.queue.LoadPending()
	s.log.Info(ctx, "services initialized",
		"cached_products", s.cache.Stats().Cached, "queued_orders", s.queue.Len())
}

// Summary is a snapshot of collection sizes and component state.
type Summary struct {
	Products    int
	Categories  int
	Orders      map[order.Status]int
	RecentViews int
	Queued      int
	Cache       product.Stats
}

// Status reports the current Summary.
func (s *Service) Status() Summary {
	sum := Summary{
		Products:    len(s.store.Products()),
		Categories:  len(s.store.Categories()),
		Orders:      make(map[order.Status]int),
		RecentViews: len(s.store.RecentViews()),
		Queued:      s.queue.Len(),
		Cache:       s.cache.Stats(),
	}
	for _, o := range s.store.Orders() {
		sum.Orders[o.Status]++
	}
	return sum
}

// contains reports whether query occurs in text ignoring case. An empty
// query matches nothing.
func contains(text, query string) bool {
	if query == "" {
		return false
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(text), fold.String(query))
}
