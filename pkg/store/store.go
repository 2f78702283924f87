// Package store keeps the whole inventory document in memory and rewrites
// it through a Backend after every mutation.
//
// The Store assumes it is the only writer of its document. Two processes
// sharing one file overwrite each other's changes; the last save wins.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"storeflow/pkg/category"
	"storeflow/pkg/logger"
	"storeflow/pkg/order"
	"storeflow/pkg/otel"
	"storeflow/pkg/product"
	"storeflow/pkg/recent"
)

// ErrNoDocument is returned by a Backend that has nothing stored yet.
var ErrNoDocument = errors.New("no document stored")

// ErrDuplicate is returned when adding an entity whose key is taken.
var ErrDuplicate = errors.New("duplicate key")

// Backend reads and writes the serialized document.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

var (
	_ category.Source   = (*Store)(nil)
	_ order.Repository  = (*Store)(nil)
	_ recent.Repository = (*Store)(nil)
)

// Store holds typed collections and persists them as a Document.
// It is not safe for concurrent use.
type Store struct {
	backend Backend
	log     *logger.Logger

	categories     []category.Category
	products       []product.Product
	orders         []order.Order
	views          []recent.View
	nextOrderID    int
	nextCategoryID int
}

// Open loads the document from backend. A missing document starts empty
// with both counters at 1.
func Open(ctx context.Context, backend Backend, log *logger.Logger) (*Store, error) {
	s := &Store{backend: backend, log: log}

	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoDocument):
		log.Info(ctx, "no document found, starting empty")
		if err := s.apply(emptyDocument()); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	before := [2]int{doc.NextCategoryID, doc.NextOrderID}
	if doc.normalize() {
		log.Warn(ctx, "id counters reconciled",
			"next_category_id_was", before[0], "next_category_id", doc.NextCategoryID,
			"next_order_id_was", before[1], "next_order_id", doc.NextOrderID)
	}
	if err := s.apply(doc); err != nil {
		return nil, err
	}
	log.Info(ctx, "document loaded",
		"categories", len(s.categories), "products", len(s.products),
		"orders", len(s.orders), "recent_views", len(s.views))
	return s, nil
}

func (s *Store) apply(doc Document) error {
	s.categories = make([]category.Category, 0, len(doc.Categories))
	for _, r := range doc.Categories {
		s.categories = append(s.categories, categoryFromRecord(r))
	}
	s.products = make([]product.Product, 0, len(doc.Products))
	for _, r := range doc.Products {
		p, err := productFromRecord(r)
		if err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		s.products = append(s.products, p)
	}
	s.orders = make([]order.Order, 0, len(doc.Orders))
	for _, r := range doc.Orders {
		o, err := orderFromRecord(r)
		if err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		s.orders = append(s.orders, o)
	}
	s.views = make([]recent.View, 0, len(doc.RecentViews))
	for _, r := range doc.RecentViews {
		v, err := recentViewFromRecord(r)
		if err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		s.views = append(s.views, v)
	}
	s.nextCategoryID = doc.NextCategoryID
	s.nextOrderID = doc.NextOrderID
	return nil
}

// Document returns the serializable form of the current state.
func (s *Store) Document() Document {
	doc := Document{
		Categories:     make([]CategoryRecord, 0, len(s.categories)),
		Products:       make([]ProductRecord, 0, len(s.products)),
		Orders:         make([]OrderRecord, 0, len(s.orders)),
		RecentViews:    make([]RecentViewRecord, 0, len(s.views)),
		NextOrderID:    s.nextOrderID,
		NextCategoryID: s.nextCategoryID,
	}
	for _, c := range s.categories {
		doc.Categories = append(doc.Categories, categoryToRecord(c))
	}
	for _, p := range s.products {
		doc.Products = append(doc.Products, productToRecord(p))
	}
	for _, o := range s.orders {
		doc.Orders = append(doc.Orders, orderToRecord(o))
	}
	for _, v := range s.views {
		doc.RecentViews = append(doc.RecentViews, recentViewToRecord(v))
	}
	return doc
}

func (s *Store) save(ctx context.Context, op string) error {
	ctx, span := otel.AddSpan(ctx, "store.save", attribute.String("store.op", op))
	defer span.End()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Document()); err != nil {
		otel.RecordError(span, err)
		return fmt.Errorf("%s: encode document: %w", op, err)
	}
	if err := s.backend.Save(ctx, buf.Bytes()); err != nil {
		otel.RecordError(span, err)
		return fmt.Errorf("%s: save document: %w", op, err)
	}
	s.log.Debug(ctx, "document saved", "op", op, "bytes", buf.Len())
	return nil
}

// Reset discards every collection, restarts both counters at 1 and saves.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.apply(emptyDocument()); err != nil {
		return err
	}
	return s.save(ctx, "reset")
}

// NextCategoryID hands out the next category id and persists the counter.
func (s *Store) NextCategoryID(ctx context.Context) (int, error) {
	id := s.nextCategoryID
	s.nextCategoryID++
	return id, s.save(ctx, "next category id")
}

// NextOrderID hands out the next order id and persists the counter.
func (s *Store) NextOrderID(ctx context.Context) (int, error) {
	id := s.nextOrderID
	s.nextOrderID++
	return id, s.save(ctx, "next order id")
}

func cloneCategory(c category.Category) category.Category {
	c.ParentID = cloneInt(c.ParentID)
	return c
}

func cloneProduct(p product.Product) product.Product {
	p.CategoryID = cloneInt(p.CategoryID)
	return p
}

func cloneOrder(o order.Order) order.Order {
	o.Items = slices.Clone(o.Items)
	return o
}

func cloneView(v recent.View) recent.View {
	v.Stack = slices.Clone(v.Stack)
	return v
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, clone(v))
	}
	return out
}
