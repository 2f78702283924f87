package main

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"storeflow/pkg/category"
	"storeflow/pkg/inventory"
)

func (a *app) categories(ctx context.Context) error {
	a.con.println("\n--- CATEGORY MANAGEMENT ---")
	for {
		a.con.println("\nOptions:")
		a.con.println("1. View category tree")
		a.con.println("2. Browse categories hierarchically")
		a.con.println("3. Search products by category")
		a.con.println("4. Create new category")
		a.con.println("5. Delete category")
		a.con.println("6. Return to main menu")

		opt, err := a.con.ask(ctx, "\nSelect option (1-6): ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			err = a.showTree(ctx)
		case "2":
			err = a.browse(ctx)
		case "3":
			err = a.searchByCategory(ctx)
		case "4":
			err = a.createCategory(ctx)
		case "5":
			err = a.deleteCategory(ctx)
		case "6":
			return nil
		default:
			a.con.println("Invalid option")
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) showTree(ctx context.Context) error {
	a.con.println("\n--- CATEGORY TREE ---")
	forest, err := a.svc.Tree().Forest()
	if err := a.check(ctx, "category tree", err); err != nil {
		return err
	}
	if len(forest) == 0 {
		a.con.println("No categories created")
		return nil
	}
	products := a.svc.Products()
	var walk func(n category.Node, level int, last bool)
	walk = func(n category.Node, level int, last bool) {
		indent := strings.Repeat("    ", level)
		connector := "├── "
		if last {
			connector = "└── "
		}
		a.con.printf("%s%s%s (%d products)\n", indent, connector, n.Name, n.ProductCount)
		for _, p := range products {
			if p.InCategory(n.ID) {
				a.con.printf("%s    %s (%s)\n", indent, p.Name, a.con.money(p.Price))
			}
		}
		names := slices.Sorted(maps.Keys(n.Children))
		for i, name := range names {
			walk(n.Children[name], level+1, i == len(names)-1)
		}
	}
	roots := slices.Sorted(maps.Keys(forest))
	for i, name := range roots {
		walk(forest[name], 0, i == len(roots)-1)
	}
	return nil
}

func (a *app) directProducts(id int) int {
	n := 0
	for _, p := range a.svc.Products() {
		if p.InCategory(id) {
			n++
		}
	}
	return n
}

func (a *app) browse(ctx context.Context) error {
	var current *int
	for {
		a.con.println("\n--- BROWSE CATEGORIES ---")
		cats := a.svc.Categories()
		if current != nil {
			c, ok := category.Find(cats, *current)
			if ok {
				a.con.printf("Current: %s\n", a.svc.CategoryPath(c))
			} else {
				current = nil
			}
		}

		subs := a.svc.Children(current)
		if len(subs) > 0 {
			a.con.println("\nSubcategories:")
			for i, c := range subs {
				a.con.printf("%2d. %s (%d products)\n", i+1, c.Name, a.directProducts(c.ID))
			}
		}
		if current != nil {
			var here []string
			for _, p := range a.svc.Products() {
				if p.InCategory(*current) {
					here = append(here, a.con.p.Sprintf("%s (%s) - Stock: %d", p.Name, a.con.money(p.Price), p.Stock))
				}
			}
			if len(here) > 0 {
				a.con.printf("\nProducts in this category (%d):\n", len(here))
				for i, line := range here {
					a.con.printf("    %2d. %s\n", i+1, line)
				}
			}
		}

		a.con.println("\nOptions:")
		if len(subs) > 0 {
			a.con.println("Enter number to navigate to subcategory")
		}
		if current != nil {
			a.con.println("U - Go up one level")
		}
		a.con.println("H - Go to root")
		a.con.println("B - Back to category menu")

		opt, err := a.con.ask(ctx, "\nSelect option: ")
		if err != nil {
			return err
		}
		switch opt = strings.ToLower(opt); {
		case opt == "b":
			return nil
		case opt == "h":
			current = nil
		case opt == "u" && current != nil:
			c, ok := category.Find(cats, *current)
			if ok && c.ParentID != nil {
				parent := *c.ParentID
				current = &parent
			} else {
				current = nil
			}
		default:
			n, convErr := strconv.Atoi(opt)
			if convErr != nil {
				a.con.println("Invalid option")
				continue
			}
			if n < 1 || n > len(subs) {
				a.con.println("Invalid category number")
				continue
			}
			id := subs[n-1].ID
			current = &id
		}
	}
}

func (a *app) searchByCategory(ctx context.Context) error {
	a.con.println("\n--- SEARCH BY CATEGORY ---")
	if !a.listCategoryPaths() {
		return nil
	}
	id, ok, err := a.con.askInt(ctx, "\nCategory ID: ")
	if err != nil {
		return err
	}
	c, found := category.Find(a.svc.Categories(), id)
	if !ok || !found {
		a.con.println("Invalid category ID")
		return nil
	}
	subtree, err := a.svc.Tree().Subtree(id)
	if err := a.check(ctx, "category subtree", err); err != nil {
		return err
	}
	products, err := a.svc.Tree().ProductsInSubtree(id)
	if err := a.check(ctx, "category products", err); err != nil {
		return err
	}
	a.con.printf("\nSearching in: %s\n", a.svc.CategoryPath(c))
	a.con.printf("Subcategories included: %d\n", len(subtree))
	a.con.printf("\nProducts found: %d\n", len(products))
	for _, p := range products {
		a.con.printf("  %s\n", p.Name)
		a.con.printf("    Category: %s\n", a.svc.CategoryPathOf(p))
		a.con.printf("    %s | Stock: %d\n\n", a.con.money(p.Price), p.Stock)
	}
	return nil
}

func (a *app) createCategory(ctx context.Context) error {
	a.con.println("\n--- CREATE CATEGORY ---")
	name, err := a.con.ask(ctx, "Category name: ")
	if err != nil {
		return err
	}
	if name == "" {
		a.con.println("Category name cannot be empty")
		return nil
	}
	var parentID *int
	if a.listCategoryPaths() {
		id, ok, err := a.con.askInt(ctx, "\nParent category ID (leave empty for root): ")
		if err != nil {
			return err
		}
		if ok {
			parentID = &id
		}
	}
	c, err := a.svc.CreateCategory(ctx, name, parentID)
	if err != nil {
		return a.check(ctx, "create category", err)
	}
	a.con.printf("Category '%s' created successfully (%s)\n", c.Name, a.svc.CategoryPath(c))
	return nil
}

func (a *app) deleteCategory(ctx context.Context) error {
	a.con.println("\n--- DELETE CATEGORY ---")
	if !a.listCategoryPaths() {
		return nil
	}
	id, ok, err := a.con.askInt(ctx, "\nCategory ID to delete: ")
	if err != nil {
		return err
	}
	if !ok {
		a.con.println("Operation cancelled")
		return nil
	}
	im, found, err := a.svc.CategoryImpact(id)
	if err := a.check(ctx, "category impact", err); err != nil {
		return err
	}
	if !found {
		a.con.println("Invalid category ID")
		return nil
	}

	a.con.printf("\nCATEGORY TO DELETE: %s\n", im.Path)
	a.con.printf("Direct subcategories: %d\n", len(im.DirectSubcategories))
	a.con.printf("Total subcategories in tree: %d\n", im.SubtreeSize)
	a.con.printf("Direct products: %d\n", im.DirectProducts)
	a.con.printf("Total products in tree: %d\n", im.SubtreeProducts)
	a.con.println("\nWARNING: This action will:")
	a.con.printf("   - DELETE the category '%s'\n", im.Category.Name)
	if im.DirectProducts > 0 {
		a.con.printf("   - Move %d direct products to '%s'\n", im.DirectProducts, inventory.NoCategory)
	}
	if n := len(im.DirectSubcategories); n > 0 {
		a.con.printf("   - Move %d subcategories up one level:\n", n)
		for _, sub := range im.DirectSubcategories {
			a.con.printf("     - %s -> %s\n", sub.Name, im.NewParentPath)
		}
	}
	a.con.println("   - This action CANNOT be undone!")

	yes, err := a.con.confirm(ctx, "\nType 'DELETE' to confirm: ", "DELETE")
	if err != nil {
		return err
	}
	if !yes {
		a.con.println("Deletion cancelled")
		return nil
	}
	report, _, err := a.svc.DeleteCategory(ctx, id)
	if err != nil {
		return a.check(ctx, "delete category", err)
	}
	a.con.printf("\nCategory '%s' deleted successfully\n", report.Category.Name)
	if n := len(report.MovedProducts); n > 0 {
		a.con.printf("   %d products moved to '%s'\n", n, inventory.NoCategory)
	}
	if len(report.PromotedCategories) > 0 {
		a.con.printf("   %d subcategories moved up one level\n", len(report.PromotedCategories))
		a.con.println("\nNew structure:")
		for _, c := range report.PromotedCategories {
			a.con.printf("   - %s\n", a.svc.CategoryPath(c))
		}
	}
	return nil
}
