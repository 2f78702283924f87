package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"storeflow/pkg/category"
	"storeflow/pkg/order"
	"storeflow/pkg/product"
	"storeflow/pkg/recent"
)

// naiveLayout matches timestamps written without a zone offset, such as
// 2024-05-01T10:30:00.123456. They are read as local time.
const naiveLayout = "2006-01-02T15:04:05.999999999"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func categoryToRecord(c category.Category) CategoryRecord {
	return CategoryRecord{ID: c.ID, Name: c.Name, ParentID: cloneInt(c.ParentID)}
}

func categoryFromRecord(r CategoryRecord) category.Category {
	return category.Category{ID: r.ID, Name: r.Name, ParentID: cloneInt(r.ParentID)}
}

func productToRecord(p product.Product) ProductRecord {
	return ProductRecord{
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.Number(p.Price.String()),
		Stock:       p.Stock,
		CategoryID:  cloneInt(p.CategoryID),
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func productFromRecord(r ProductRecord) (product.Product, error) {
	price := decimal.Zero
	if r.Price != "" {
		var err error
		if price, err = decimal.NewFromString(r.Price.String()); err != nil {
			return product.Product{}, fmt.Errorf("product %s price: %w", r.Code, err)
		}
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return product.Product{}, fmt.Errorf("product %s: %w", r.Code, err)
	}
	return product.Product{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Stock:       r.Stock,
		CategoryID:  cloneInt(r.CategoryID),
		CreatedAt:   created,
	}, nil
}

func orderToRecord(o order.Order) OrderRecord {
	items := make([]ItemRecord, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemRecord{Code: it.Code, Qty: it.Qty})
	}
	return OrderRecord{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Items:        items,
		Status:       string(o.Status),
		CreatedAt:    formatTime(o.CreatedAt),
	}
}

func orderFromRecord(r OrderRecord) (order.Order, error) {
	status := order.StatusPending
	if r.Status != "" {
		var err error
		if status, err = order.ParseStatus(r.Status); err != nil {
			return order.Order{}, fmt.Errorf("order %d: %w", r.ID, err)
		}
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %d: %w", r.ID, err)
	}
	items := make([]order.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, order.Item{Code: it.Code, Qty: it.Qty})
	}
	return order.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Items:        items,
		Status:       status,
		CreatedAt:    created,
	}, nil
}

func recentViewToRecord(v recent.View) RecentViewRecord {
	stack := slices.Clone(v.Stack)
	if stack == nil {
		stack = []string{}
	}
	return RecentViewRecord{Identifier: v.Identifier, Stack: stack, UpdatedAt: formatTime(v.UpdatedAt)}
}

func recentViewFromRecord(r RecentViewRecord) (recent.View, error) {
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return recent.View{}, fmt.Errorf("recent view %q: %w", r.Identifier, err)
	}
	stack := slices.Clone(r.Stack)
	if stack == nil {
		stack = []string{}
	}
	return recent.View{Identifier: r.Identifier, Stack: stack, UpdatedAt: updated}, nil
}
