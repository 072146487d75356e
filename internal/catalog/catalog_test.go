package catalog

import (
	"testing"

	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

func sampleMenuItems() []upstream.MenuItem {
	return []upstream.MenuItem{
		{ID: 1, CategoryID: 1, Name: "Classic Burger", Description: "beef patty", DisplayOrder: 2},
		{ID: 2, CategoryID: 2, Name: "Chocolate Shake", Description: "hand spun", DisplayOrder: 5},
		{ID: 3, CategoryID: 2, Name: "Vanilla Shake", Description: "hand spun", DisplayOrder: 1},
		{ID: 4, CategoryID: 1, Name: "Garden Salad", Description: "fresh greens", DisplayOrder: 3},
		{ID: 5, CategoryID: 3, Name: "Fries", Description: "crispy", DisplayOrder: 4},
	}
}

func TestFilterMenuItemsByCategory(t *testing.T) {
	got := FilterMenuItems(sampleMenuItems(), MenuItemFilter{Category: "2"})
	if len(got) != 2 {
		t.Fatalf("expected 2 items in category 2, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("expected display-order ascending [3 2], got [%d %d]", got[0].ID, got[1].ID)
	}
}

func TestFilterMenuItemsCategoryAll(t *testing.T) {
	got := FilterMenuItems(sampleMenuItems(), MenuItemFilter{Category: CategoryAll})
	if len(got) != 5 {
		t.Fatalf("expected all 5 items, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].DisplayOrder > got[i].DisplayOrder {
			t.Fatalf("items not sorted by display order: %+v", got)
		}
	}
}

func TestFilterMenuItemsSearch(t *testing.T) {
	got := FilterMenuItems(sampleMenuItems(), MenuItemFilter{Search: "SHAKE"})
	if len(got) != 2 {
		t.Fatalf("expected 2 shakes, got %d", len(got))
	}

	got = FilterMenuItems(sampleMenuItems(), MenuItemFilter{Search: "greens"})
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("description search failed: %+v", got)
	}

	got = FilterMenuItems(sampleMenuItems(), MenuItemFilter{Search: "sushi"})
	if len(got) != 0 {
		t.Fatalf("expected empty no-matches result, got %+v", got)
	}
}

func TestFilterMenuItemsStableOnTies(t *testing.T) {
	items := []upstream.MenuItem{
		{ID: 10, CategoryID: 1, Name: "First", DisplayOrder: 1},
		{ID: 11, CategoryID: 1, Name: "Second", DisplayOrder: 1},
		{ID: 12, CategoryID: 1, Name: "Third", DisplayOrder: 1},
	}
	got := FilterMenuItems(items, MenuItemFilter{})
	for i, want := range []int64{10, 11, 12} {
		if got[i].ID != want {
			t.Fatalf("tie broke fetch order: %+v", got)
		}
	}
}

func TestFilterRestaurants(t *testing.T) {
	restaurants := []upstream.Restaurant{
		{ID: 1, Name: "Downtown Grill", City: "New York", Address: "1 Main St"},
		{ID: 2, Name: "Harbor House", City: "Boston", Address: "2 Wharf Ave"},
		{ID: 3, Name: "Midtown Diner", City: "New York", Address: "3 Broadway"},
	}

	got := FilterRestaurants(restaurants, "new york")
	if len(got) != 2 {
		t.Fatalf("expected 2 city matches, got %d", len(got))
	}
	got = FilterRestaurants(restaurants, "WHARF")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("address search failed: %+v", got)
	}
	got = FilterRestaurants(restaurants, "  ")
	if len(got) != 3 {
		t.Fatalf("blank search should keep everything, got %d", len(got))
	}
}

func TestDefaultMenu(t *testing.T) {
	menus := []upstream.Menu{
		{ID: 1, Name: "Brunch"},
		{ID: 2, Name: "Dinner", IsDefault: true},
	}
	menu, ok := DefaultMenu(menus)
	if !ok || menu.ID != 2 {
		t.Fatalf("expected flagged default, got %+v", menu)
	}

	menu, ok = DefaultMenu(menus[:1])
	if !ok || menu.ID != 1 {
		t.Fatalf("expected first-fetched fallback, got %+v", menu)
	}

	if _, ok := DefaultMenu(nil); ok {
		t.Fatal("expected no menu for empty input")
	}
}

func TestFilterOrders(t *testing.T) {
	orders := []upstream.Order{
		{ID: 1, OrderNumber: "ORD-001", CustomerName: "Alice Smith", CustomerPhone: "+15550001111", Status: "pending"},
		{ID: 2, OrderNumber: "ORD-002", CustomerName: "Bob Jones", CustomerPhone: "+15550002222", Status: "completed"},
		{ID: 3, OrderNumber: "ORD-003", CustomerName: "alice cooper", CustomerPhone: "+15550003333", Status: "pending"},
	}

	got := FilterOrders(orders, OrderFilter{Search: "ALICE"})
	if len(got) != 2 {
		t.Fatalf("expected 2 case-insensitive name matches, got %d", len(got))
	}

	got = FilterOrders(orders, OrderFilter{Search: "0002"})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("phone substring search failed: %+v", got)
	}

	got = FilterOrders(orders, OrderFilter{Status: "pending"})
	if len(got) != 2 {
		t.Fatalf("expected 2 pending orders, got %d", len(got))
	}

	got = FilterOrders(orders, OrderFilter{Search: "alice", Status: "completed"})
	if len(got) != 0 {
		t.Fatalf("combined filter should yield none, got %+v", got)
	}

	got = FilterOrders(orders, OrderFilter{Status: StatusAll})
	if len(got) != 3 {
		t.Fatalf("status all should keep everything, got %d", len(got))
	}
}

func TestHoursToday(t *testing.T) {
	open := upstream.Restaurant{
		OpeningHours: upstream.OpeningHours{
			"mon": {Open: "11:00", Close: "22:00"},
		},
	}
	if got := HoursToday(open, "Mon"); got != "11:00 - 22:00" {
		t.Fatalf("unexpected hours %q", got)
	}
	if got := HoursToday(open, "sun"); got != "Closed today" {
		t.Fatalf("unexpected closed label %q", got)
	}
	if got := HoursToday(upstream.Restaurant{}, "mon"); got != "Hours not available" {
		t.Fatalf("unexpected missing-hours label %q", got)
	}
}
