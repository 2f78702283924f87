package store

import (
	"context"
	"fmt"
	"slices"

	"storeflow/pkg/category"
	"storeflow/pkg/order"
	"storeflow/pkg/product"
	"storeflow/pkg/recent"
)

// Categories returns every category in collection order.
func (s *Store) Categories() []category.Category {
	return cloneAll(s.categories, cloneCategory)
}

// Category returns the category with the given id.
func (s *Store) Category(id int) (category.Category, bool) {
	i := slices.IndexFunc(s.categories, func(c category.Category) bool { return c.ID == id })
	if i < 0 {
		return category.Category{}, false
	}
	return cloneCategory(s.categories[i]), true
}

// AddCategory appends c. The category counter is raised past c.ID.
func (s *Store) AddCategory(ctx context.Context, c category.Category) error {
	if _, ok := s.Category(c.ID); ok {
		return fmt.Errorf("add category %d: %w", c.ID, ErrDuplicate)
	}
	s.categories = append(s.categories, cloneCategory(c))
	s.nextCategoryID = max(s.nextCategoryID, c.ID+1)
	return s.save(ctx, "add category")
}

// UpdateCategory replaces the category with c.ID, adding it if absent.
func (s *Store) UpdateCategory(ctx context.Context, c category.Category) error {
	i := slices.IndexFunc(s.categories, func(x category.Category) bool { return x.ID == c.ID })
	if i < 0 {
		return s.AddCategory(ctx, c)
	}
	s.categories[i] = cloneCategory(c)
	return s.save(ctx, "update category")
}

// DeleteCategory removes the category with id. Nothing is written when it
// does not exist.
func (s *Store) DeleteCategory(ctx context.Context, id int) (bool, error) {
	n := len(s.categories)
	s.categories = slices.DeleteFunc(s.categories, func(c category.Category) bool { return c.ID == id })
	if len(s.categories) == n {
		return false, nil
	}
	return true, s.save(ctx, "delete category")
}

// Products returns every product in collection order.
func (s *Store) Products() []product.Product {
	return cloneAll(s.products, cloneProduct)
}

// Product returns the product with the given code.
func (s *Store) Product(code string) (product.Product, bool) {
	i := slices.IndexFunc(s.products, func(p product.Product) bool { return p.Code == code })
	if i < 0 {
		return product.Product{}, false
	}
	return cloneProduct(s.products[i]), true
}

// AddProduct appends p.
func (s *Store) AddProduct(ctx context.Context, p product.Product) error {
	if _, ok := s.Product(p.Code); ok {
		return fmt.Errorf("add product %s: %w", p.Code, ErrDuplicate)
	}
	s.products = append(s.products, cloneProduct(p))
	return s.save(ctx, "add product")
}

// UpdateProduct replaces the product with p.Code, adding it if absent.
func (s *Store) UpdateProduct(ctx context.Context, p product.Product) error {
	i := slices.IndexFunc(s.products, func(x product.Product) bool { return x.Code == p.Code })
	if i < 0 {
		return s.AddProduct(ctx, p)
	}
	s.products[i] = cloneProduct(p)
	return s.save(ctx, "update product")
}

// DeleteProduct removes the product with code.
func (s *Store) DeleteProduct(ctx context.Context, code string) (bool, error) {
	n := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p product.Product) bool { return p.Code == code })
	if len(s.products) == n {
		return false, nil
	}
	return true, s.save(ctx, "delete product")
}

// Orders returns every order in collection order.
func (s *Store) Orders() []order.Order {
	return cloneAll(s.orders, cloneOrder)
}

// Order returns the order with the given id.
func (s *Store) Order(id int) (order.Order, bool) {
	i := slices.IndexFunc(s.orders, func(o order.Order) bool { return o.ID == id })
	if i < 0 {
		return order.Order{}, false
	}
	return cloneOrder(s.orders[i]), true
}

// AddOrder appends o. The order counter is raised past o.ID.
func (s *Store) AddOrder(ctx context.Context, o order.Order) error {
	if _, ok := s.Order(o.ID); ok {
		return fmt.Errorf("add order %d: %w", o.ID, ErrDuplicate)
	}
	s.orders = append(s.orders, cloneOrder(o))
	s.nextOrderID = max(s.nextOrderID, o.ID+1)
	return s.save(ctx, "add order")
}

// UpdateOrder replaces the order with o.ID, adding it if absent.
func (s *Store) UpdateOrder(ctx context.Context, o order.Order) error {
	i := slices.IndexFunc(s.orders, func(x order.Order) bool { return x.ID == o.ID })
	if i < 0 {
		return s.AddOrder(ctx, o)
	}
	s.orders[i] = cloneOrder(o)
	return s.save(ctx, "update order")
}

// DeleteOrder removes the order with id regardless of its status.
func (s *Store) DeleteOrder(ctx context.Context, id int) (bool, error) {
	n := len(s.orders)
	s.orders = slices.DeleteFunc(s.orders, func(o order.Order) bool { return o.ID == id })
	if len(s.orders) == n {
		return false, nil
	}
	return true, s.save(ctx, "delete order")
}

// RecentViews returns every recent view history.
func (s *Store) RecentViews() []recent.View {
	return cloneAll(s.views, cloneView)
}

// RecentView returns the history stored for identifier.
func (s *Store) RecentView(identifier string) (recent.View, bool) {
	i := slices.IndexFunc(s.views, func(v recent.View) bool { return v.Identifier == identifier })
	if i < 0 {
		return recent.View{}, false
	}
	return cloneView(s.views[i]), true
}

// AddRecentView appends v.
func (s *Store) AddRecentView(ctx context.Context, v recent.View) error {
	if _, ok := s.RecentView(v.Identifier); ok {
		return fmt.Errorf("add recent view %q: %w", v.Identifier, ErrDuplicate)
	}
	s.views = append(s.views, cloneView(v))
	return s.save(ctx, "add recent view")
}

// UpdateRecentView replaces the history for v.Identifier, adding it if
// absent.
func (s *Store) UpdateRecentView(ctx context.Context, v recent.View) error {
	i := slices.IndexFunc(s.views, func(x recent.View) bool { return x.Identifier == v.Identifier })
	if i < 0 {
		return s.AddRecentView(ctx, v)
	}
	s.views[i] = cloneView(v)
	return s.save(ctx, "update recent view")
}
