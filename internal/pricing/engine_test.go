package pricing

import (
	"errors"
	"testing"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
)

func testTier() entities.Tier {
	return entities.Tier{
		Label: "Mid-Tier",
		FabricationItems: []entities.FabricationItem{
			{Item: "SEG walls", Qty: "320 sqft", UnitCost: 37.5, Subtotal: 12000},
			{Item: "Counter", Qty: "1", UnitCost: 600, Subtotal: 600},
		},
		Logistics: map[entities.LogisticsCategory]entities.FlexFloat{
			entities.LogisticsWarehouseOutbound: 860,
			entities.LogisticsInstallDismantle:  9000,
		},
	}
}

func testDocument() entities.EstimateDocument {
	tiers := map[entities.TierKey]entities.Tier{}
	for _, key := range entities.TierKeys {
		tiers[key] = Recompute(testTier())
	}
	return entities.EstimateDocument{ID: "est-1", Tiers: tiers}
}

func TestRecompute(t *testing.T) {
	t.Run("derives all three totals", func(t *testing.T) {
		tier := Recompute(testTier())
		if got := float64(tier.FabricationSubtotal); got != 12600 {
			t.Fatalf("fabrication subtotal: expected 12600, got %v", got)
		}
		if got := float64(tier.LogisticsSubtotal); got != 9860 {
			t.Fatalf("logistics subtotal: expected 9860, got %v", got)
		}
		if got := float64(tier.GrandTotal); got != 22460 {
			t.Fatalf("grand total: expected 22460, got %v", got)
		}
	})

	t.Run("ignores pre-existing derived values", func(t *testing.T) {
		tier := testTier()
		tier.FabricationSubtotal = 999999
		tier.GrandTotal = -5
		out := Recompute(tier)
		if float64(out.GrandTotal) != 22460 {
			t.Fatalf("expected recomputed grand total, got %v", out.GrandTotal)
		}
	})

	t.Run("backfills all nine logistics categories", func(t *testing.T) {
		tier := Recompute(testTier())
		if len(tier.Logistics) != len(entities.LogisticsCategories) {
			t.Fatalf("expected %d categories, got %d", len(entities.LogisticsCategories), len(tier.Logistics))
		}
		if v, ok := tier.Logistics[entities.LogisticsSundries]; !ok || float64(v) != 0 {
			t.Fatalf("expected sundries backfilled to 0, got %v (present=%v)", v, ok)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Recompute(testTier())
		twice := Recompute(once)
		if once.GrandTotal != twice.GrandTotal || once.FabricationSubtotal != twice.FabricationSubtotal {
			t.Fatalf("recompute not idempotent: %v vs %v", once, twice)
		}
	})

	t.Run("empty tier totals to zero", func(t *testing.T) {
		tier := Recompute(entities.Tier{})
		if tier.FabricationSubtotal != 0 || tier.LogisticsSubtotal != 0 || tier.GrandTotal != 0 {
			t.Fatalf("expected zero totals, got %+v", tier)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := testTier()
		Recompute(in)
		if len(in.Logistics) != 2 {
			t.Fatalf("input tier was mutated")
		}
	})
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		qty  string
		want float64
		ok   bool
	}{
		{"2", 2, true},
		{" 3.5 ", 3.5, true},
		{"400 sqft", 400, true},
		{"12 linear ft", 12, true},
		{"1 lot", 1, true},
		{"lot of 3", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseQuantity(tc.qty)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseQuantity(%q) = %v, %v; expected %v, %v", tc.qty, got, ok, tc.want, tc.ok)
		}
	}
}

func TestValidateResult(t *testing.T) {
	t.Run("all tiers present", func(t *testing.T) {
		res := entities.GeneratedResult{Estimates: testDocument().Tiers}
		if err := ValidateResult(res); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing high_end", func(t *testing.T) {
		res := entities.GeneratedResult{Estimates: testDocument().Tiers}
		delete(res.Estimates, entities.TierHighEnd)
		err := ValidateResult(res)
		if !errors.Is(err, ErrSchema) {
			t.Fatalf("expected ErrSchema, got %v", err)
		}
	})
}

func TestAddLineItem(t *testing.T) {
	t.Run("numeric qty derives subtotal", func(t *testing.T) {
		doc, err := AddLineItem(testDocument(), entities.TierMidTier, entities.FabricationItem{
			Item: "Counter", Qty: "2", UnitCost: 600, Subtotal: 0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tier := doc.Tiers[entities.TierMidTier]
		added := tier.FabricationItems[len(tier.FabricationItems)-1]
		if float64(added.Subtotal) != 1200 {
			t.Fatalf("expected subtotal 1200, got %v", added.Subtotal)
		}
		if float64(tier.FabricationSubtotal) != 13800 {
			t.Fatalf("expected fabrication subtotal 13800, got %v", tier.FabricationSubtotal)
		}
	})

	t.Run("non-numeric qty keeps caller subtotal", func(t *testing.T) {
		doc, err := AddLineItem(testDocument(), entities.TierMidTier, entities.FabricationItem{
			Item: "Graphics package", Qty: "lot", UnitCost: 15, Subtotal: 4800,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tier := doc.Tiers[entities.TierMidTier]
		added := tier.FabricationItems[len(tier.FabricationItems)-1]
		if float64(added.Subtotal) != 4800 {
			t.Fatalf("expected caller subtotal 4800, got %v", added.Subtotal)
		}
	})

	t.Run("unknown tier leaves document unchanged", func(t *testing.T) {
		in := testDocument()
		out, err := AddLineItem(in, "luxury", entities.FabricationItem{Item: "X"})
		if !errors.Is(err, ErrUnknownTier) {
			t.Fatalf("expected ErrUnknownTier, got %v", err)
		}
		if len(out.Tiers[entities.TierMidTier].FabricationItems) != 2 {
			t.Fatalf("document changed on error")
		}
	})

	t.Run("input document is not mutated", func(t *testing.T) {
		in := testDocument()
		if _, err := AddLineItem(in, entities.TierMidTier, entities.FabricationItem{Item: "New", Qty: "1", UnitCost: 100}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(in.Tiers[entities.TierMidTier].FabricationItems) != 2 {
			t.Fatalf("input document was mutated")
		}
	})
}

func TestDeleteThenAddReconciles(t *testing.T) {
	doc := testDocument()
	before := float64(doc.Tiers[entities.TierMidTier].GrandTotal)

	doc, err := DeleteLineItem(doc, entities.TierMidTier, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := float64(doc.Tiers[entities.TierMidTier].GrandTotal); got != before-600 {
		t.Fatalf("expected %v after delete, got %v", before-600, got)
	}

	doc, err = AddLineItem(doc, entities.TierMidTier, entities.FabricationItem{Item: "Counter", Qty: "1", UnitCost: 600})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := float64(doc.Tiers[entities.TierMidTier].GrandTotal); got != before {
		t.Fatalf("expected %v after re-add, got %v", before, got)
	}
}

func TestUpdateLineItem(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		_, err := UpdateLineItem(testDocument(), entities.TierMidTier, 9, entities.FabricationItem{Item: "X"})
		if !errors.Is(err, ErrItemIndexOutOfRange) {
			t.Fatalf("expected ErrItemIndexOutOfRange, got %v", err)
		}
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := DeleteLineItem(testDocument(), entities.TierMidTier, -1)
		if !errors.Is(err, ErrItemIndexOutOfRange) {
			t.Fatalf("expected ErrItemIndexOutOfRange, got %v", err)
		}
	})

	t.Run("replace recomputes", func(t *testing.T) {
		doc, err := UpdateLineItem(testDocument(), entities.TierMidTier, 1, entities.FabricationItem{
			Item: "Reception counter", Qty: "2", UnitCost: 2500,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tier := doc.Tiers[entities.TierMidTier]
		if float64(tier.FabricationItems[1].Subtotal) != 5000 {
			t.Fatalf("expected subtotal 5000, got %v", tier.FabricationItems[1].Subtotal)
		}
		if float64(tier.FabricationSubtotal) != 17000 {
			t.Fatalf("expected fabrication subtotal 17000, got %v", tier.FabricationSubtotal)
		}
	})
}

func TestSetLogistics(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		_, err := SetLogistics(testDocument(), entities.TierMidTier, "drayage", 100)
		if !errors.Is(err, ErrUnknownLogisticsKey) {
			t.Fatalf("expected ErrUnknownLogisticsKey, got %v", err)
		}
	})

	t.Run("replaces amount and recomputes", func(t *testing.T) {
		doc, err := SetLogistics(testDocument(), entities.TierMidTier, entities.LogisticsSundries, 500)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tier := doc.Tiers[entities.TierMidTier]
		if float64(tier.LogisticsSubtotal) != 10360 {
			t.Fatalf("expected logistics subtotal 10360, got %v", tier.LogisticsSubtotal)
		}
	})
}
