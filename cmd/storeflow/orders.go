package main

import (
	"context"
	"strings"

	"storeflow/pkg/order"
)

func (a *app) orders(ctx context.Context) error {
	a.con.println("\n--- ORDER PROCESSING ---")
	for {
		pending := a.svc.Orders(order.StatusPending)
		a.con.printf("\nPending orders: %d\n", len(pending))
		for _, o := range pending {
			a.con.printf("  %d: %s | Items: %d | %s\n",
				o.ID, o.CustomerName, len(o.Items), o.CreatedAt.Local().Format("15:04:05"))
		}

		a.con.println("\nOptions:")
		a.con.println("1. Process next order (FIFO)")
		a.con.println("2. Process all pending orders")
		a.con.println("3. Create new order")
		a.con.println("4. View order details")
		a.con.println("5. View order history")
		a.con.println("6. Return to main menu")

		opt, err := a.con.ask(ctx, "\nSelect option (1-6): ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			err = a.processNext(ctx)
		case "2":
			err = a.processAll(ctx)
		case "3":
			err = a.createOrder(ctx)
		case "4":
			err = a.orderDetails(ctx)
		case "5":
			err = a.orderHistory(ctx)
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

func (a *app) reportProcessed(id int) {
	o, ok := a.svc.Order(id)
	if !ok {
		a.con.printf("Order %d processed\n", id)
		return
	}
	a.con.printf("Order %d processed: %s\n", id, o.Status)
}

func (a *app) processNext(ctx context.Context) error {
	id, ok, err := a.svc.ProcessNext(ctx)
	if err != nil {
		return a.check(ctx, "process order", err)
	}
	if !ok {
		a.con.println("No orders to process")
		return nil
	}
	a.reportProcessed(id)
	return nil
}

func (a *app) processAll(ctx context.Context) error {
	ids, err := a.svc.ProcessAll(ctx)
	for _, id := range ids {
		a.reportProcessed(id)
	}
	if err != nil {
		return a.check(ctx, "process orders", err)
	}
	a.con.printf("%d orders processed\n", len(ids))
	return nil
}

func (a *app) createOrder(ctx context.Context) error {
	a.con.println("\n--- CREATE ORDER ---")
	customer, err := a.con.ask(ctx, "Customer name: ")
	if err != nil {
		return err
	}
	if customer == "" {
		a.con.println("Customer name cannot be empty")
		return nil
	}

	var items []order.Item
	for {
		code, err := a.con.ask(ctx, "Product code (leave empty to finish): ")
		if err != nil {
			return err
		}
		if code == "" {
			break
		}
		p, ok := a.svc.FindProduct(code)
		if !ok {
			a.con.printf("Product '%s' not found\n", code)
			continue
		}
		qty, ok, err := a.con.askInt(ctx, a.con.p.Sprintf("Quantity of %s [1]: ", p.Name))
		if err != nil {
			return err
		}
		if !ok {
			qty = 1
		}
		if qty < 1 {
			a.con.println("Quantity must be at least 1")
			continue
		}
		if qty > p.Stock {
			a.con.printf("Warning: only %d in stock, the order may be cancelled\n", p.Stock)
		}
		items = append(items, order.Item{Code: p.Code, Qty: qty})
	}
	if len(items) == 0 {
		a.con.println("Order has no items, nothing created")
		return nil
	}

	o, err := a.svc.CreateOrder(ctx, customer, items)
	if err != nil {
		return a.check(ctx, "create order", err)
	}
	a.con.printf("Order %d created and queued\n", o.ID)
	a.printOrder(o)
	return nil
}

func (a *app) orderDetails(ctx context.Context) error {
	a.con.println("\n--- VIEW ORDER DETAILS ---")
	id, ok, err := a.con.askInt(ctx, "Enter order ID: ")
	if err != nil {
		return err
	}
	if !ok {
		a.con.println("Invalid order ID")
		return nil
	}
	o, found := a.svc.Order(id)
	if !found {
		a.con.println("Invalid order ID")
		return nil
	}
	a.printOrder(o)
	return nil
}

func (a *app) printOrder(o order.Order) {
	a.con.printf("\nOrder ID: %d\n", o.ID)
	a.con.printf("Customer: %s\n", o.CustomerName)
	a.con.printf("Status: %s\n", o.Status)
	a.con.printf("Created: %s\n", o.CreatedAt.Local().Format(timeLayout))
	a.con.println("Items:")
	q := a.svc.Quote(o)
	for _, l := range q.Lines {
		if !l.Found {
			a.con.printf("  - %dx %s (Product not found)\n", l.Item.Quantity(), l.Item.Code)
			continue
		}
		a.con.printf("  - %dx %s @ %s = %s\n",
			l.Item.Quantity(), l.Name, a.con.money(l.UnitPrice), a.con.money(l.Subtotal))
	}
	a.con.printf("Total: %s\n", a.con.money(q.Total))
}

func (a *app) orderHistory(ctx context.Context) error {
	a.con.println("\n--- ORDER HISTORY ---")
	a.con.println("\nOptions:")
	a.con.println("1. View all orders")
	a.con.println("2. View pending orders")
	a.con.println("3. View completed orders")
	a.con.println("4. View cancelled orders")
	a.con.println("5. View orders by customer")
	a.con.println("6. Back to order menu")

	opt, err := a.con.ask(ctx, "\nSelect option (1-6): ")
	if err != nil {
		return err
	}
	var (
		orders []order.Order
		title  string
	)
	switch opt {
	case "1":
		orders, title = a.svc.Orders(""), "ALL"
	case "2":
		orders, title = a.svc.Orders(order.StatusPending), "PENDING"
	case "3":
		orders, title = a.svc.Orders(order.StatusDone), "COMPLETED"
	case "4":
		orders, title = a.svc.Orders(order.StatusCancelled), "CANCELLED"
	case "5":
		name, err := a.con.ask(ctx, "Enter customer name: ")
		if err != nil {
			return err
		}
		orders, title = a.svc.OrdersByCustomer(name), "FOR CUSTOMER: "+name
	case "6":
		return nil
	default:
		a.con.println("Invalid option")
		return nil
	}

	rule := strings.Repeat("-", 80)
	a.con.printf("\n%s ORDERS (%d):\n%s\n", title, len(orders), rule)
	if len(orders) == 0 {
		a.con.println("No orders found")
		return nil
	}
	for _, o := range orders {
		a.printOrder(o)
		a.con.println(rule)
	}
	return nil
}
