package economy

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testStocks() Stocks {
	return Stocks{
		Wood: {Type: Wood, Amount: 500, Capacity: 800, RatePerHour: 3600},
		Clay: {Type: Clay, Amount: 100, Capacity: 800},
		Iron: {Type: Iron, Amount: 0, Capacity: 800},
		Crop: {Type: Crop, Amount: 790, Capacity: 800},
	}
}

func TestStocksSpendAndRefund(t *testing.T) {
	s := testStocks()
	cost := Cost{Wood: 200, Clay: 100, Crop: 50}
	if err := s.Spend(cost); err != nil {
		t.Fatalf("Spend error: %v", err)
	}
	if s[Wood].Amount != 300 || s[Clay].Amount != 0 || s[Crop].Amount != 740 {
		t.Fatalf("unexpected stocks after spend: %+v", s)
	}

	if lost := s.Refund(cost); !lost.IsZero() {
		t.Fatalf("nothing should be lost, got %v", lost)
	}
	if s[Wood].Amount != 500 || s[Clay].Amount != 100 || s[Crop].Amount != 790 {
		t.Fatalf("refund should restore amounts, got %+v", s)
	}
}

func TestStocksRefundCapsAtCapacity(t *testing.T) {
	s := testStocks()
	lost := s.Refund(Cost{Crop: 100, Wood: 100})
	if s[Crop].Amount != 800 {
		t.Fatalf("expected crop capped at 800, got %v", s[Crop].Amount)
	}
	if diff := cmp.Diff(Cost{Crop: 90}, lost); diff != "" {
		t.Fatalf("lost refund (-want +got):\n%s", diff)
	}
}

func TestStocksSpendRejectsShortfall(t *testing.T) {
	s := testStocks()
	before := s.Clone()
	if err := s.Spend(Cost{Wood: 100, Iron: 1}); !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("expected ErrInsufficientResources, got %v", err)
	}
	if diff := cmp.Diff(before, s); diff != "" {
		t.Fatalf("failed spend must not mutate stocks (-want +got):\n%s", diff)
	}
}

func TestStockAfterUsesHourlyRate(t *testing.T) {
	st := Stock{Type: Wood, Amount: 0, Capacity: 800, RatePerHour: 36000}
	got := st.After(80)
	if got.Amount != 800 {
		t.Fatalf("expected full storage after 80s at 10/s, got %v", got.Amount)
	}
	if got.Percentage() != 100 {
		t.Fatalf("expected 100%%, got %v", got.Percentage())
	}
}

func TestCostHelpers(t *testing.T) {
	c := Cost{Wood: 10, Clay: 5}
	if diff := cmp.Diff(Cost{Wood: 30, Clay: 15}, c.Scale(3)); diff != "" {
		t.Fatalf("Scale mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Cost{Wood: 15, Clay: 8}, c.ScaleFloat(1.5)); diff != "" {
		t.Fatalf("ScaleFloat mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Cost{Wood: 11, Clay: 5, Iron: 2}, c.Add(Cost{Wood: 1, Iron: 2})); diff != "" {
		t.Fatalf("Add mismatch (-want +got):\n%s", diff)
	}
	if c.IsZero() || !(Cost{Wood: 0}).IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}

func TestParseResourceType(t *testing.T) {
	if rt, ok := ParseResourceType(" Crop "); !ok || rt != Crop {
		t.Fatalf("ParseResourceType()=(%q,%v)", rt, ok)
	}
	if _, ok := ParseResourceType("gold"); ok {
		t.Fatalf("gold is not a resource")
	}
}
