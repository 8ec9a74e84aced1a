package response

import (
	"errors"
	"testing"
	"time"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/imaging"
)

func exportableDocument() entities.EstimateDocument {
	logistics := map[entities.LogisticsCategory]entities.FlexFloat{}
	for _, c := range entities.LogisticsCategories {
		logistics[c] = 0
	}
	logistics[entities.LogisticsSundries] = 500

	tiers := map[entities.TierKey]entities.Tier{}
	for _, key := range entities.TierKeys {
		tiers[key] = entities.Tier{
			Label:       string(key),
			Description: "desc",
			FabricationItems: []entities.FabricationItem{
				{Item: "SEG walls", Qty: "320 sqft", UnitCost: 37.5, Subtotal: 12000},
			},
			FabricationSubtotal: 12000,
			Logistics:           logistics,
			LogisticsSubtotal:   500,
			GrandTotal:          12500,
		}
	}
	return entities.EstimateDocument{
		ID:           "est-1",
		Request:      entities.BoothRequest{LocationType: entities.LocationIndoor, BoothSizeKey: "20x20"},
		Tiers:        tiers,
		QuoteNumber:  "DCE-51000",
		SelectedTier: entities.TierMidTier,
	}
}

func TestFromEstimateSummary(t *testing.T) {
	doc := exportableDocument()
	doc.Images = []entities.ImageAttachment{{Payload: "abc"}, {Payload: "def"}}

	s := FromEstimateSummary(doc)
	if s.SelectedTotal != 12500 {
		t.Fatalf("expected selected total 12500, got %v", s.SelectedTotal)
	}
	if s.ImageCount != 2 {
		t.Fatalf("expected image count 2, got %d", s.ImageCount)
	}
	if s.BoothSize != "20x20" || s.Location != "indoor" {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestFromExport(t *testing.T) {
	now := time.Now().UTC()
	p := FromExport(exportableDocument(), entities.TierHighEnd, now)

	if p.Tier != "high_end" {
		t.Fatalf("unexpected tier: %s", p.Tier)
	}
	if len(p.Logistics) != len(entities.LogisticsCategories) {
		t.Fatalf("expected %d logistics lines, got %d", len(entities.LogisticsCategories), len(p.Logistics))
	}
	// Fixed display ordering: warehouse outbound first, pre-show PM last.
	if p.Logistics[0].Label != "Warehouse Outbound" {
		t.Fatalf("unexpected first logistics line: %s", p.Logistics[0].Label)
	}
	if p.Logistics[len(p.Logistics)-1].Label != "Pre-Show / Project Management" {
		t.Fatalf("unexpected last logistics line: %s", p.Logistics[len(p.Logistics)-1].Label)
	}
	if p.GrandTotal != 12500 {
		t.Fatalf("expected grand total 12500, got %v", p.GrandTotal)
	}
	if !p.GeneratedAt.Equal(now) {
		t.Fatalf("expected generated_at stamped")
	}
}

func TestFromCreateResult(t *testing.T) {
	resp := FromCreateResult(exportableDocument(), []imaging.FileError{
		{Name: "blurry.heic", Err: errors.New("could not decode image")},
	})
	if len(resp.ImageFailures) != 1 || resp.ImageFailures[0].Name != "blurry.heic" {
		t.Fatalf("unexpected failures: %+v", resp.ImageFailures)
	}
	if resp.Estimate.ID != "est-1" {
		t.Fatalf("unexpected estimate: %+v", resp.Estimate)
	}
}
