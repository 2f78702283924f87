package main

import (
	"context"

	"storeflow/pkg/inventory"
	"storeflow/pkg/product"
)

func (a *app) products(ctx context.Context) error {
	a.con.println("\n--- PRODUCT MANAGEMENT ---")
	for {
		a.con.println("\nOptions:")
		a.con.println("1. View all products")
		a.con.println("2. Search product by code")
		a.con.println("3. Search product by name")
		a.con.println("4. Create new product")
		a.con.println("5. Update product information")
		a.con.println("6. Update stock only")
		a.con.println("7. Delete product")
		a.con.println("8. Return to main menu")

		opt, err := a.con.ask(ctx, "\nSelect option (1-8): ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			a.listProducts()
		case "2":
			err = a.findProduct(ctx)
		case "3":
			err = a.searchProducts(ctx)
		case "4":
			err = a.createProduct(ctx)
		case "5":
			err = a.updateProduct(ctx)
		case "6":
			err = a.updateStock(ctx)
		case "7":
			err = a.deleteProduct(ctx)
		case "8":
			return nil
		default:
			a.con.println("Invalid option")
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) productLine(p product.Product) string {
	return a.con.p.Sprintf("%s | Stock: %d | %s", a.con.money(p.Price), p.Stock, a.svc.CategoryName(p))
}

func (a *app) listProducts() {
	products := a.svc.Products()
	a.con.printf("\nProducts found: %d\n", len(products))
	for _, p := range products {
		a.con.printf("  [%s] %s | %s\n", p.Code, p.Name, a.productLine(p))
	}
}

func (a *app) findProduct(ctx context.Context) error {
	code, err := a.con.ask(ctx, "Enter product code: ")
	if err != nil || code == "" {
		return err
	}
	if p, ok := a.svc.FindProduct(code); ok {
		a.con.printf("Found: %s | Stock: %d\n", p.Name, p.Stock)
	} else {
		a.con.printf("Product '%s' not found\n", code)
	}
	return nil
}

func (a *app) searchProducts(ctx context.Context) error {
	a.con.println("\n--- SEARCH PRODUCTS BY NAME ---")
	query, err := a.con.ask(ctx, "Enter product name (partial match): ")
	if err != nil {
		return err
	}
	if query == "" {
		a.con.println("Search query cannot be empty")
		return nil
	}
	found := a.svc.SearchProducts(query)
	if len(found) == 0 {
		a.con.println("No products found matching your search")
		return nil
	}
	a.con.printf("\nFound %d product(s):\n", len(found))
	for i, p := range found {
		a.con.printf("%2d. %s (Code: %s) - %s\n", i+1, p.Name, p.Code, a.productLine(p))
	}
	return nil
}

// listCategoryPaths prints every category with its full path and reports
// whether there were any.
func (a *app) listCategoryPaths() bool {
	cats := a.svc.Categories()
	if len(cats) == 0 {
		a.con.println("No categories available")
		return false
	}
	a.con.println("\nAvailable categories:")
	for _, c := range cats {
		a.con.printf("  %d. %s\n", c.ID, a.svc.CategoryPath(c))
	}
	return true
}

func (a *app) createProduct(ctx context.Context) error {
	a.con.println("\nCreate new product:")
	var np inventory.NewProduct
	var err error
	if np.Code, err = a.con.ask(ctx, "Code: "); err != nil {
		return err
	}
	if np.Name, err = a.con.ask(ctx, "Name: "); err != nil {
		return err
	}
	if np.Description, err = a.con.ask(ctx, "Description: "); err != nil {
		return err
	}
	price, ok, err := a.con.askDecimal(ctx, "Price: ")
	if err != nil {
		return err
	}
	if !ok {
		a.con.println("Invalid price")
		return nil
	}
	stock, ok, err := a.con.askInt(ctx, "Stock: ")
	if err != nil {
		return err
	}
	if !ok {
		a.con.println("Invalid stock value")
		return nil
	}
	np.Price, np.Stock = price, stock

	if _, exists := a.svc.FindProduct(np.Code); exists {
		a.con.printf("Product with code '%s' already exists\n", np.Code)
		return nil
	}
	if a.listCategoryPaths() {
		id, ok, err := a.con.askInt(ctx, "\nCategory ID (leave empty for no category): ")
		if err != nil {
			return err
		}
		if ok {
			np.CategoryID = &id
		}
	}

	p, err := a.svc.CreateProduct(ctx, np)
	if err != nil {
		return a.check(ctx, "create product", err)
	}
	if np.CategoryID != nil && p.CategoryID == nil {
		a.con.println("Invalid category ID, product left without category")
	}
	a.con.printf("Product '%s' created (%s)\n", p.Name, a.svc.CategoryPathOf(p))
	return nil
}

func (a *app) updateProduct(ctx context.Context) error {
	a.con.println("\n--- UPDATE PRODUCT ---")
	code, err := a.con.ask(ctx, "Product code to update: ")
	if err != nil || code == "" {
		return err
	}
	p, ok := a.svc.FindProduct(code)
	if !ok {
		a.con.printf("Product '%s' not found\n", code)
		return nil
	}
	a.con.printf("Current: %s | %s | Stock: %d\n", p.Name, a.con.money(p.Price), p.Stock)
	a.con.println("\nLeave blank to keep current value:")

	var patch inventory.ProductPatch
	name, err := a.con.ask(ctx, a.con.p.Sprintf("New name [%s]: ", p.Name))
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}
	price, ok, err := a.con.askDecimal(ctx, a.con.p.Sprintf("New price [%s]: ", p.Price.StringFixed(2)))
	if err != nil {
		return err
	}
	if ok {
		patch.Price = &price
	}
	stock, ok, err := a.con.askInt(ctx, a.con.p.Sprintf("New stock [%d]: ", p.Stock))
	if err != nil {
		return err
	}
	if ok {
		patch.Stock = &stock
	}
	desc, err := a.con.ask(ctx, a.con.p.Sprintf("New description [%s]: ", p.Description))
	if err != nil {
		return err
	}
	if desc != "" {
		patch.Description = &desc
	}

	if _, _, err := a.svc.UpdateProduct(ctx, p.Code, patch); err != nil {
		return a.check(ctx, "update product", err)
	}
	a.con.println("Product updated")
	return nil
}

func (a *app) updateStock(ctx context.Context) error {
	code, err := a.con.ask(ctx, "Product code: ")
	if err != nil {
		return err
	}
	stock, ok, err := a.con.askInt(ctx, "New stock: ")
	if err != nil {
		return err
	}
	if code == "" || !ok {
		a.con.println("Invalid stock value")
		return nil
	}
	_, found, err := a.svc.SetStock(ctx, code, stock)
	if err != nil {
		return a.check(ctx, "update stock", err)
	}
	if !found {
		a.con.println("Product not found")
		return nil
	}
	a.con.printf("Stock updated to %d\n", stock)
	return nil
}

func (a *app) deleteProduct(ctx context.Context) error {
	a.con.println("\n--- DELETE PRODUCT ---")
	code, err := a.con.ask(ctx, "Product code to delete: ")
	if err != nil || code == "" {
		return err
	}
	p, ok := a.svc.FindProduct(code)
	if !ok {
		a.con.printf("Product '%s' not found\n", code)
		return nil
	}
	a.con.printf("Delete '%s' (Code: %s)?\n", p.Name, p.Code)
	yes, err := a.con.confirm(ctx, "Type 'YES' to confirm: ", "YES")
	if err != nil {
		return err
	}
	if !yes {
		a.con.println("Deletion cancelled")
		return nil
	}
	if _, _, err := a.svc.DeleteProduct(ctx, p.Code); err != nil {
		return a.check(ctx, "delete product", err)
	}
	a.con.printf("Product '%s' deleted\n", p.Name)
	return nil
}
