package store

import "encoding/json"

// Document is the on-disk layout. Every collection is written in full on
// each save.
type Document struct {
	Categories     []CategoryRecord   `json:"categories"`
	Products       []ProductRecord    `json:"products"`
	Orders         []OrderRecord      `json:"orders"`
	RecentViews    []RecentViewRecord `json:"recent_views"`
	NextOrderID    int                `json:"next_order_id"`
	NextCategoryID int                `json:"next_category_id"`
}

// CategoryRecord is the stored form of a category.
type CategoryRecord struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id"`
}

// ProductRecord is the stored form of a product. Price accepts JSON
// numbers as well as numeric strings.
type ProductRecord struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	CategoryID  *int        `json:"category_id"`
	CreatedAt   string      `json:"created_at"`
}

// OrderRecord is the stored form of an order.
type OrderRecord struct {
	ID           int          `json:"id"`
	CustomerName string       `json:"customer_name"`
	Items        []ItemRecord `json:"items"`
	Status       string       `json:"status"`
	CreatedAt    string       `json:"created_at"`
}

// ItemRecord is one stored order line.
type ItemRecord struct {
	Code string `json:"code"`
	Qty  int    `json:"qty"`
}

// RecentViewRecord is the stored form of a recent view history.
type RecentViewRecord struct {
	Identifier string   `json:"identifier"`
	Stack      []string `json:"stack"`
	UpdatedAt  string   `json:"updated_at"`
}

// emptyDocument is what a missing file loads as.
func emptyDocument() Document {
	d := Document{}
	d.normalize()
	return d
}

// normalize fills absent collections and raises both id counters above
// the largest id already present. It reports whether a counter moved.
func (d *Document) normalize() bool {
	if d.Categories == nil {
		d.Categories = []CategoryRecord{}
	}
	if d.Products == nil {
		d.Products = []ProductRecord{}
	}
	if d.Orders == nil {
		d.Orders = []OrderRecord{}
	}
	if d.RecentViews == nil {
		d.RecentViews = []RecentViewRecord{}
	}

	maxCategory := 0
	for _, c := range d.Categories {
		maxCategory = max(maxCategory, c.ID)
	}
	maxOrder := 0
	for _, o := range d.Orders {
		maxOrder = max(maxOrder, o.ID)
	}
	nextCategory := max(d.NextCategoryID, maxCategory+1, 1)
	nextOrder := max(d.NextOrderID, maxOrder+1, 1)
	moved := nextCategory != d.NextCategoryID || nextOrder != d.NextOrderID
	d.NextCategoryID, d.NextOrderID = nextCategory, nextOrder
	return moved
}
