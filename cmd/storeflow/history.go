package main

import (
	"context"
	"maps"
	"slices"
	"strings"

	"storeflow/pkg/inventory"
)

func (a *app) describe(entries []inventory.ViewEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Found {
			parts = append(parts, e.Name+" ("+e.Code+")")
		} else {
			parts = append(parts, e.Code+" (deleted)")
		}
	}
	return strings.Join(parts, ", ")
}

func (a *app) history(ctx context.Context) error {
	a.con.println("\n--- USER SEARCH HISTORY ---")
	histories := a.svc.Histories()
	if len(histories) == 0 {
		a.con.println("No user histories registered")
	} else {
		a.con.println("Existing user histories:")
		for _, id := range slices.Sorted(maps.Keys(histories)) {
			a.con.printf("  %s: %s\n", id, a.describe(histories[id]))
		}
	}

	for {
		a.con.println("\nOptions:")
		a.con.println("1. Simulate product view by user")
		a.con.println("2. View user history")
		a.con.println("3. Clear user history")
		a.con.println("4. Return to main menu")

		opt, err := a.con.ask(ctx, "\nSelect option (1-4): ")
		if err != nil {
			return err
		}
		switch opt {
		case "1":
			err = a.recordView(ctx)
		case "2":
			err = a.showHistory(ctx)
		case "3":
			err = a.clearHistory(ctx)
		case "4":
			return nil
		default:
			a.con.println("Invalid option")
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) recordView(ctx context.Context) error {
	user, err := a.con.ask(ctx, "User/session identifier (leave empty for a new session): ")
	if err != nil {
		return err
	}
	code, err := a.con.ask(ctx, "Product code viewed: ")
	if err != nil || code == "" {
		return err
	}
	p, ok := a.svc.FindProduct(code)
	if !ok {
		a.con.printf("Product '%s' does not exist\n", code)
		return nil
	}
	id, stack, err := a.svc.RecordView(ctx, user, p.Code)
	if err != nil {
		return a.check(ctx, "record view", err)
	}
	if user == "" {
		a.con.printf("New session: %s\n", id)
	}
	a.con.printf("'%s' added to user history\n", p.Name)
	a.con.printf("Current history: [%s]\n", strings.Join(stack, ", "))
	return nil
}

func (a *app) showHistory(ctx context.Context) error {
	user, err := a.con.ask(ctx, "User identifier to query: ")
	if err != nil || user == "" {
		return err
	}
	entries, ok := a.svc.History(user)
	if !ok {
		a.con.printf("No history for user %s\n", user)
		return nil
	}
	a.con.printf("History for user %s: %s\n", user, a.describe(entries))
	return nil
}

func (a *app) clearHistory(ctx context.Context) error {
	user, err := a.con.ask(ctx, "User identifier to clear: ")
	if err != nil || user == "" {
		return err
	}
	cleared, err := a.svc.ClearHistory(ctx, user)
	if err != nil {
		return a.check(ctx, "clear history", err)
	}
	if !cleared {
		a.con.printf("No history for user %s\n", user)
		return nil
	}
	a.con.printf("History cleared for user %s\n", user)
	return nil
}
