package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func TestAddMergesByID(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 3})

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(Item{ID: 3, Name: "Fries", Price: dec(t, "3.00"), Quantity: 1})
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 1})
	c.Add(Item{ID: 3, Name: "Fries", Price: dec(t, "3.00"), Quantity: 1})
	c.Add(Item{ID: 2, Name: "Shake", Price: dec(t, "5.00"), Quantity: 1})

	items := c.Items()
	gotOrder := []int64{items[0].ID, items[1].ID, items[2].ID}
	wantOrder := []int64{3, 1, 2}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("expected order %v, got %v", wantOrder, gotOrder)
		}
	}
}

func TestSetQuantityRemovesAtZeroOrBelow(t *testing.T) {
	for _, quantity := range []int{0, -1, -100} {
		c := New()
		c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})
		c.SetQuantity(1, quantity)
		if !c.Empty() {
			t.Fatalf("quantity %d should empty the cart", quantity)
		}
	}
}

func TestSetQuantityReplaces(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})
	c.SetQuantity(1, 7)
	if got := c.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
	if c.ItemCount() != 7 {
		t.Fatalf("expected item count 7, got %d", c.ItemCount())
	}
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 1})
	c.Remove(99)
	if c.ItemCount() != 1 {
		t.Fatalf("remove of absent id changed the cart: %+v", c.Items())
	}
}

func TestDerivedTotals(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})
	c.Add(Item{ID: 2, Name: "Shake", Price: dec(t, "5.50"), Quantity: 1})

	if got := c.Subtotal(); !got.Equal(dec(t, "25.50")) {
		t.Fatalf("expected subtotal 25.50, got %s", got)
	}
	if got := c.Tax(DefaultTaxRate).Round(2); !got.Equal(dec(t, "2.23")) {
		t.Fatalf("expected tax 2.23, got %s", got)
	}
	if got := c.Total(DefaultTaxRate).Round(2); !got.Equal(dec(t, "27.73")) {
		t.Fatalf("expected total 27.73, got %s", got)
	}
	if got := c.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}
}

func TestTotalsTrackMutationSequences(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})
	c.Add(Item{ID: 2, Name: "Shake", Price: dec(t, "5.50"), Quantity: 4})
	c.SetQuantity(2, 1)
	c.Add(Item{ID: 3, Name: "Fries", Price: dec(t, "3.25"), Quantity: 2})
	c.Remove(3)

	if got := c.Subtotal(); !got.Equal(dec(t, "25.50")) {
		t.Fatalf("expected subtotal 25.50 after mutations, got %s", got)
	}
	expectedTotal := c.Subtotal().Add(c.Tax(DefaultTaxRate))
	if got := c.Total(DefaultTaxRate); !got.Equal(expectedTotal) {
		t.Fatalf("total %s does not equal subtotal plus tax %s", got, expectedTotal)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})
	c.Clear()
	if !c.Empty() || c.ItemCount() != 0 {
		t.Fatal("clear left lines behind")
	}
	if !c.Subtotal().Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal, got %s", c.Subtotal())
	}
}

func TestSetInstructions(t *testing.T) {
	c := New()
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 1})
	c.SetInstructions(1, "no onions")
	if got := c.Items()[0].SpecialInstructions; got != "no onions" {
		t.Fatalf("expected instructions to stick, got %q", got)
	}
	c.SetInstructions(42, "ignored")
	if len(c.Items()) != 1 {
		t.Fatal("instructions on absent id changed the cart")
	}
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	c := New()
	c.Add(Item{ID: 2, Name: "Shake", Price: dec(t, "5.50"), Quantity: 1, SpecialInstructions: "extra thick"})
	c.Add(Item{ID: 1, Name: "Burger", Price: dec(t, "10.00"), Quantity: 2})

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := New()
	if err := json.Unmarshal(raw, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	original := c.Items()
	reloaded := restored.Items()
	if len(reloaded) != len(original) {
		t.Fatalf("expected %d lines, got %d", len(original), len(reloaded))
	}
	for i := range original {
		if reloaded[i].ID != original[i].ID ||
			reloaded[i].Quantity != original[i].Quantity ||
			!reloaded[i].Price.Equal(original[i].Price) ||
			reloaded[i].SpecialInstructions != original[i].SpecialInstructions {
			t.Fatalf("line %d mismatch: %+v vs %+v", i, reloaded[i], original[i])
		}
	}
}

func TestUnmarshalDropsNonPositiveQuantities(t *testing.T) {
	restored := New()
	raw := `[{"id":1,"name":"Burger","price":"10.00","quantity":2},{"id":2,"name":"Stale","price":"1.00","quantity":0}]`
	if err := json.Unmarshal([]byte(raw), restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(restored.Items()) != 1 || restored.Items()[0].ID != 1 {
		t.Fatalf("expected stale line dropped, got %+v", restored.Items())
	}
}
