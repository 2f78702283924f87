package main

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	"storeflow/pkg/category"
	"storeflow/pkg/inventory"
	"storeflow/pkg/logger"
	"storeflow/pkg/order"
)

const timeLayout = "2006-01-02 15:04:05"

// userErrors are reported on the console and do not end the session.
var userErrors = []error{
	inventory.ErrMissingField,
	inventory.ErrNegativeValue,
	inventory.ErrDuplicateProduct,
	inventory.ErrUnknownProduct,
	inventory.ErrUnknownCategory,
	inventory.ErrEmptyOrder,
	inventory.ErrInvalidQuantity,
	order.ErrUnknownStatus,
	category.ErrCycle,
}

type app struct {
	name string
	svc  *inventory.Service
	log  *logger.Logger
	con  *console
}

// check prints validation failures and passes anything else up, logged.
func (a *app) check(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			a.con.printf("Error: %v\n", err)
			return nil
		}
	}
	a.log.Error(ctx, op, "error", err)
	return err
}

func (a *app) run(ctx context.Context) error {
	a.con.printf("\n%s - STORE MANAGEMENT SYSTEM\n", a.name)
	a.initialize(ctx)

	for {
		a.con.banner("MAIN MENU", 40)
		a.con.println("1. Product Management")
		a.con.println("2. Order Processing")
		a.con.println("3. User Search History")
		a.con.println("4. Categories")
		a.con.println("5. Current Status")
		a.con.println("6. Exit")
		a.con.println(strings.Repeat("=", 40))

		opt, err := a.con.ask(ctx, "\nSelect option (1-6): ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			err = a.products(ctx)
		case "2":
			err = a.orders(ctx)
		case "3":
			err = a.history(ctx)
		case "4":
			err = a.categories(ctx)
		case "5":
			a.status()
		case "6":
			a.con.printf("\nThank you for using %s system\n", a.name)
			return nil
		default:
			a.con.println("Invalid option")
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) initialize(ctx context.Context) {
	a.con.println("Initializing Store System...")
	a.svc.Start(ctx)
	sum := a.svc.Status()
	a.con.printf("Product Cache: %d products loaded\n", sum.Cache.Cached)
	a.con.printf("Order Queue: %d pending orders loaded\n", sum.Queued)
	a.con.println("All services initialized successfully")
}

func (a *app) status() {
	a.con.banner("CURRENT STORE STATUS", 50)

	products := a.svc.Products()
	a.con.printf("\nPRODUCTS (%d):\n", len(products))
	for _, p := range products {
		a.con.printf("  %s: %s | %s | Stock: %d | %s\n",
			p.Code, p.Name, a.con.money(p.Price), p.Stock, a.svc.CategoryName(p))
	}

	orders := a.svc.Orders("")
	slices.Reverse(orders)
	a.con.printf("\nORDERS (%d):\n", len(orders))
	for _, o := range orders {
		a.con.printf("  %d: %s | %s | %s\n",
			o.ID, o.CustomerName, o.Status, o.CreatedAt.Local().Format("02/01 15:04"))
	}

	cats := a.svc.Categories()
	a.con.printf("\nCATEGORIES (%d):\n", len(cats))
	for _, c := range cats {
		parent := "Root"
		if c.ParentID != nil {
			if p, ok := category.Find(cats, *c.ParentID); ok {
				parent = p.Name
			}
		}
		a.con.printf("  %s (Parent: %s)\n", c.Name, parent)
	}

	histories := a.svc.Histories()
	a.con.printf("\nVIEW HISTORIES (%d):\n", len(histories))
	for _, id := range slices.Sorted(maps.Keys(histories)) {
		codes := make([]string, 0, len(histories[id]))
		for _, e := range histories[id] {
			codes = append(codes, e.Code)
		}
		a.con.printf("  %s: [%s]\n", id, strings.Join(codes, ", "))
	}

	sum := a.svc.Status()
	a.con.printf("\nCOMPONENTS:\n")
	a.con.printf("  Product cache: %d cached (initialized: %t)\n", sum.Cache.Cached, sum.Cache.Initialized)
	a.con.printf("  Order queue: %d queued\n", sum.Queued)
	for _, s := range []order.Status{order.StatusPending, order.StatusProcessing, order.StatusDone, order.StatusCancelled} {
		a.con.printf("  %s orders: %d\n", s, sum.Orders[s])
	}
}
