package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"storeflow/pkg/category"
	"storeflow/pkg/otel"
)

// RootLabel names the top of the category forest.
const RootLabel = "ROOT"

// DeleteReport describes what DeleteCategory changed.
type DeleteReport struct {
	Category           category.Category
	MovedProducts      []string
	PromotedCategories []category.Category
}

// Impact previews the effect of deleting a category.
type Impact struct {
	Category            category.Category
	Path                string
	DirectSubcategories []category.Category
	SubtreeSize         int
	DirectProducts      int
	SubtreeProducts     int

	// NewParentPath is where promoted subcategories will hang, or RootLabel.
	NewParentPath string
}

// Categories returns every category in collection order.
func (s *Service) Categories() []category.Category {
	return s.store.Categories()
}

// Children returns the direct children of parentID; nil selects roots.
func (s *Service) Children(parentID *int) []category.Category {
	return category.Children(s.store.Categories(), parentID)
}

// CategoryPath renders c from its root. Cycles are logged and the partial
// path is returned.
func (s *Service) CategoryPath(c category.Category) string {
	return s.path(c, s.store.Categories())
}

func (s *Service) path(c category.Category, all []category.Category) string {
	p, err := category.FullPath(c, all)
	if err != nil {
		s.log.Warn(context.Background(), "category path", "category_id", c.ID, "error", err)
	}
	return p
}

// CreateCategory stores a new category under parentID, or as a root when
// parentID is nil.
func (s *Service) CreateCategory(ctx context.Context, name string, parentID *int) (category.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return category.Category{}, fmt.Errorf("create category: name: %w", ErrMissingField)
	}
	if parentID != nil {
		if _, ok := s.store.Category(*parentID); !ok {
			return category.Category{}, fmt.Errorf("create category %q: parent %d: %w", name, *parentID, ErrUnknownCategory)
		}
	}
	id, err := s.store.NextCategoryID(ctx)
	if err != nil {
		return category.Category{}, err
	}
	c := category.Category{ID: id, Name: name, ParentID: parentID}
	if err := s.store.AddCategory(ctx, c); err != nil {
		return category.Category{}, err
	}
	s.tree.InvalidateAll()
	s.log.Info(ctx, "category created", "category_id", id, "name", name)
	return c, nil
}

// CategoryImpact gathers the figures shown before a deletion.
func (s *Service) CategoryImpact(id int) (Impact, bool, error) {
	all := s.store.Categories()
	c, ok := category.Find(all, id)
	if !ok {
		return Impact{}, false, nil
	}
	subtree, err := s.tree.Subtree(id)
	if err != nil {
		return Impact{}, true, err
	}
	products, err := s.tree.ProductsInSubtree(id)
	if err != nil {
		return Impact{}, true, err
	}
	im := Impact{
		Category:            c,
		Path:                s.path(c, all),
		DirectSubcategories: category.Children(all, &id),
		SubtreeSize:         len(subtree),
		SubtreeProducts:     len(products),
		NewParentPath:       RootLabel,
	}
	for _, p := range s.store.Products() {
		if p.InCategory(id) {
			im.DirectProducts++
		}
	}
	if c.ParentID != nil {
		if parent, ok := category.Find(all, *c.ParentID); ok {
			im.NewParentPath = s.path(parent, all)
		}
	}
	return im, true, nil
}

// DeleteCategory removes category id. Its direct products become
// unclassified and its direct subcategories move up to its former parent.
// The steps are not atomic: a persistence error leaves earlier steps
// applied.
func (s *Service) DeleteCategory(ctx context.Context, id int) (DeleteReport, bool, error) {
	ctx, span := otel.AddSpan(ctx, "inventory.delete_category", attribute.Int("category.id", id))
	defer span.End()

	c, ok := s.store.Category(id)
	if !ok {
		return DeleteReport{}, false, nil
	}
	defer s.tree.InvalidateAll()

	report := DeleteReport{Category: c}
	for _, p := range s.store.Products() {
		if !p.InCategory(id) {
			continue
		}
		p.CategoryID = nil
		if err := s.store.UpdateProduct(ctx, p); err != nil {
			otel.RecordError(span, err)
			return report, true, fmt.Errorf("delete category %d: unassign product %s: %w", id, p.Code, err)
		}
		s.cache.Put(p)
		report.MovedProducts = append(report.MovedProducts, p.Code)
	}

	for _, child := range category.Children(s.store.Categories(), &id) {
		child.ParentID = c.ParentID
		if err := s.store.UpdateCategory(ctx, child); err != nil {
			otel.RecordError(span, err)
			return report, true, fmt.Errorf("delete category %d: promote %d: %w", id, child.ID, err)
		}
		report.PromotedCategories = append(report.PromotedCategories, child)
	}

	if _, err := s.store.DeleteCategory(ctx, id); err != nil {
		otel.RecordError(span, err)
		return report, true, fmt.Errorf("delete category %d: %w", id, err)
	}
	s.log.Info(ctx, "category deleted", "category_id", id,
		"moved_products", len(report.MovedProducts), "promoted", len(report.PromotedCategories))
	return report, true, nil
}
