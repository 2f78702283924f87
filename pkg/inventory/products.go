package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storeflow/pkg/category"
	"storeflow/pkg/product"
)

// NewProduct describes a product to create.
type NewProduct struct {
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *int
}

// ProductPatch lists the fields to change. Nil fields keep their value.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
}

// Products returns every product in collection order.
func (s *Service) Products() []product.Product {
	return s.store.Products()
}

// FindProduct looks a product up through the cache.
func (s *Service) FindProduct(code string) (product.Product, bool) {
	return s.cache.Get(strings.TrimSpace(code))
}

// SearchProducts returns products whose name contains query, ignoring case.
func (s *Service) SearchProducts(query string) []product.Product {
	query = strings.TrimSpace(query)
	var out []product.Product
	for _, p := range s.store.Products() {
		if contains(p.Name, query) {
			out = append(out, p)
		}
	}
	return out
}

// CreateProduct validates np and stores it. A category id that does not
// exist is dropped and the product is left unclassified.
func (s *Service) CreateProduct(ctx context.Context, np NewProduct) (product.Product, error) {
	code, name := strings.TrimSpace(np.Code), strings.TrimSpace(np.Name)
	if code == "" || name == "" {
		return product.Product{}, fmt.Errorf("create product: code and name: %w", ErrMissingField)
	}
	if np.Price.IsNegative() || np.Stock < 0 {
		return product.Product{}, fmt.Errorf("create product %s: %w", code, ErrNegativeValue)
	}
	if _, ok := s.store.Product(code); ok {
		return product.Product{}, fmt.Errorf("create product %s: %w", code, ErrDuplicateProduct)
	}

	categoryID := np.CategoryID
	if categoryID != nil {
		if _, ok := s.store.Category(*categoryID); !ok {
			s.log.Warn(ctx, "ignoring unknown category for new product", "code", code, "category_id", *categoryID)
			categoryID = nil
		}
	}

	p := product.Product{
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(np.Description),
		Price:       np.Price,
		Stock:       np.Stock,
		CategoryID:  categoryID,
		CreatedAt:   s.now(),
	}
	if err := s.store.AddProduct(ctx, p); err != nil {
		return product.Product{}, err
	}
	s.cache.Put(p)
	s.log.Info(ctx, "product created", "code", code)
	return p, nil
}

// UpdateProduct applies patch to the product with code.
func (s *Service) UpdateProduct(ctx context.Context, code string, patch ProductPatch) (product.Product, bool, error) {
	p, ok := s.store.Product(strings.TrimSpace(code))
	if !ok {
		return product.Product{}, false, nil
	}
	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			p.Name = name
		}
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return product.Product{}, true, fmt.Errorf("update product %s: %w", p.Code, ErrNegativeValue)
		}
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return product.Product{}, true, fmt.Errorf("update product %s: %w", p.Code, ErrNegativeValue)
		}
		p.Stock = *patch.Stock
	}
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return product.Product{}, true, err
	}
	s.cache.Put(p)
	return p, true, nil
}

// SetStock overwrites the stock of the product with code.
func (s *Service) SetStock(ctx context.Context, code string, stock int) (product.Product, bool, error) {
	return s.UpdateProduct(ctx, code, ProductPatch{Stock: &stock})
}

// DeleteProduct removes the product with code from the store and the
// cache. Orders referencing it are left untouched.
func (s *Service) DeleteProduct(ctx context.Context, code string) (product.Product, bool, error) {
	code = strings.TrimSpace(code)
	p, ok := s.store.Product(code)
	if !ok {
		return product.Product{}, false, nil
	}
	s.cache.Remove(code)
	if _, err := s.store.DeleteProduct(ctx, code); err != nil {
		return product.Product{}, true, err
	}
	s.log.Info(ctx, "product deleted", "code", code)
	return p, true, nil
}

// CategoryName returns the name of p's category, or NoCategory when it is
// unset or points at a deleted category.
func (s *Service) CategoryName(p product.Product) string {
	if p.CategoryID == nil {
		return NoCategory
	}
	c, ok := s.store.Category(*p.CategoryID)
	if !ok {
		return NoCategory
	}
	return c.Name
}

// CategoryPathOf returns the full category path of p, or NoCategory.
func (s *Service) CategoryPathOf(p product.Product) string {
	if p.CategoryID == nil {
		return NoCategory
	}
	all := s.store.Categories()
	c, ok := category.Find(all, *p.CategoryID)
	if !ok {
		return NoCategory
	}
	return s.path(c, all)
}
