package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storeflow/pkg/category"
	"storeflow/pkg/order"
	"storeflow/pkg/product"
	"storeflow/pkg/recent"
)

// SeedCounts reports how many records SeedSampleData wrote.
type SeedCounts struct {
	Categories  int
	Products    int
	Orders      int
	RecentViews int
}

func intPtr(v int) *int { return &v }

func sampleCategories() []category.Category {
	return []category.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Computers", ParentID: intPtr(1)},
		{ID: 3, Name: "Smartphones", ParentID: intPtr(1)},
		{ID: 4, Name: "Tablets", ParentID: intPtr(1)},
		{ID: 5, Name: "Clothing"},
		{ID: 6, Name: "Men", ParentID: intPtr(5)},
		{ID: 7, Name: "Women", ParentID: intPtr(5)},
		{ID: 8, Name: "Home"},
		{ID: 9, Name: "Furniture", ParentID: intPtr(8)},
		{ID: 10, Name: "Appliances", ParentID: intPtr(8)},
	}
}

func sampleProducts(now time.Time) []product.Product {
	mk := func(code, name, desc, price string, stock, cat int) product.Product {
		return product.Product{
			Code:        code,
			Name:        name,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Stock:       stock,
			CategoryID:  intPtr(cat),
			CreatedAt:   now,
		}
	}
	return []product.Product{
		mk("LAP-001", "Gaming Laptop", "High-end gaming laptop", "1200.00", 15, 2),
		mk("LAP-002", "Office Laptop", "Laptop for work and study", "800.00", 25, 2),
		mk("PHN-001", "iPhone 15", "Latest generation Apple smartphone", "999.00", 30, 3),
		mk("PHN-002", "Samsung Galaxy", "Premium Android smartphone", "850.00", 20, 3),
		mk("TAB-001", "iPad Pro", "Professional Apple tablet", "1100.00", 12, 4),
		mk("TAB-002", "Android Tablet", "Versatile Android tablet", "300.00", 18, 4),
		mk("CAM-001", "Casual Shirt", "Cotton shirt for men", "45.00", 50, 6),
		mk("PAN-001", "Jeans", "Classic jeans for men", "60.00", 40, 6),
		mk("VES-001", "Summer Dress", "Light dress for women", "55.00", 35, 7),
		mk("SOF-001", "3-Seat Sofa", "Modern living room sofa", "450.00", 8, 9),
		mk("MES-001", "Coffee Table", "Modern design coffee table", "120.00", 15, 9),
		mk("REF-001", "Refrigerator", "Energy efficient refrigerator", "700.00", 10, 10),
		mk("LAV-001", "Washing Machine", "15kg automatic washing machine", "550.00", 12, 10),
	}
}

func sampleOrders(now time.Time) []order.Order {
	return []order.Order{
		{ID: 1, CustomerName: "Juan Pérez", Status: order.StatusDone, CreatedAt: now,
			Items: []order.Item{{Code: "PHN-001", Qty: 1}, {Code: "TAB-002", Qty: 1}}},
		{ID: 2, CustomerName: "María García", Status: order.StatusPending, CreatedAt: now.Add(time.Second),
			Items: []order.Item{{Code: "LAP-001", Qty: 1}, {Code: "CAM-001", Qty: 2}}},
		{ID: 3, CustomerName: "Carlos López", Status: order.StatusPending, CreatedAt: now.Add(2 * time.Second),
			Items: []order.Item{{Code: "REF-001", Qty: 1}}},
	}
}

func sampleViews(now time.Time) []recent.View {
	return []recent.View{
		{Identifier: "user_juan", Stack: []string{"PHN-001", "TAB-002", "LAP-001"}, UpdatedAt: now},
		{Identifier: "user_maria", Stack: []string{"LAP-001", "CAM-001", "VES-001"}, UpdatedAt: now},
		{Identifier: "user_carlos", Stack: []string{"REF-001", "LAV-001", "SOF-001"}, UpdatedAt: now},
	}
}

// SeedSampleData wipes the store, writes the demo catalog and resets every
// in-memory component.
func (s *Service) SeedSampleData(ctx context.Context) (SeedCounts, error) {
	if err := s.store.Reset(ctx); err != nil {
		return SeedCounts{}, fmt.Errorf("seed: %w", err)
	}
	s.cache.Clear()
	s.tree.InvalidateAll()
	s.queue.Clear()

	now := s.now()
	var counts SeedCounts
	for _, c := range sampleCategories() {
		if err := s.store.AddCategory(ctx, c); err != nil {
			return counts, fmt.Errorf("seed: %w", err)
		}
		counts.Categories++
	}
	for _, p := range sampleProducts(now) {
		if err := s.store.AddProduct(ctx, p); err != nil {
			return counts, fmt.Errorf("seed: %w", err)
		}
		counts.Products++
	}
	for _, o := range sampleOrders(now) {
		if err := s.store.AddOrder(ctx, o); err != nil {
			return counts, fmt.Errorf("seed: %w", err)
		}
		counts.Orders++
	}
	for _, v := range sampleViews(now) {
		if err := s.store.AddRecentView(ctx, v); err != nil {
			return counts, fmt.Errorf("seed: %w", err)
		}
		counts.RecentViews++
	}
	s.log.Info(ctx, "sample data written",
		"categories", counts.Categories, "products", counts.Products,
		"orders", counts.Orders, "recent_views", counts.RecentViews)
	return counts, nil
}
