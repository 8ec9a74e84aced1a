package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/extraction"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase/interfaces"
	mock_interfaces "github.com/michaelsjacques/dreamcraft-estimator/internal/usecase/interfaces/mocks"
)

const validGeneratorJSON = `{
  "analysis": { "detected_elements": ["island booth"], "assumptions": ["3-day show"] },
  "clarifying_questions": [{ "id": "q1", "question": "Rigging by venue?", "why_it_matters": "Shifts cost", "options": ["Yes", "No"] }],
  "estimates": {
    "affordable": { "label": "Affordable", "description": "basic",
      "fabrication_items": [{ "item": "Walls", "qty": "2", "unit_cost": 600, "subtotal": 0 }],
      "logistics": { "warehouse_outbound": 500 }, "notes": "" },
    "mid_tier": { "label": "Mid-Tier", "description": "custom",
      "fabrication_items": [{ "item": "SEG walls", "qty": "320 sqft", "unit_cost": 37.5, "subtotal": 12000 }],
      "logistics": { "installation_dismantle_labor": 9000 }, "notes": "" },
    "high_end": { "label": "High-End", "description": "premium",
      "fabrication_items": [], "logistics": {}, "notes": "" }
  },
  "time_estimate": { "fabrication_weeks": "4-6 weeks", "install_days": "2", "dismantle_days": "1" }
}`

func storedDocument() entities.EstimateDocument {
	now := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	tiers := map[entities.TierKey]entities.Tier{}
	for _, key := range entities.TierKeys {
		logistics := map[entities.LogisticsCategory]entities.FlexFloat{}
		for _, c := range entities.LogisticsCategories {
			logistics[c] = 0
		}
		tiers[key] = entities.Tier{
			Label: string(key),
			FabricationItems: []entities.FabricationItem{
				{Item: "Counter", Qty: "1", UnitCost: 600, Subtotal: 600},
			},
			FabricationSubtotal: 600,
			Logistics:           logistics,
		}
	}
	return entities.EstimateDocument{
		ID:      "est-1",
		Request: entities.BoothRequest{LocationType: entities.LocationIndoor, BoothSizeKey: "20x20"},
		ClarifyingQuestions: []entities.ClarifyingQuestion{
			{ID: "q1", Question: "Rigging by venue?"},
		},
		Tiers:        tiers,
		Status:       entities.EstimateStatusDraft,
		QuoteNumber:  "DCE-51234",
		SelectedTier: entities.TierMidTier,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestEstimateUseCase_CreateEstimate(t *testing.T) {
	t.Run("invalid location", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, _, err := uc.CreateEstimate(context.Background(), CreateEstimateParams{Location: "underwater", BoothSizeKey: "20x20"})
		if !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
	})

	t.Run("invalid booth size", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, _, err := uc.CreateEstimate(context.Background(), CreateEstimateParams{Location: entities.LocationIndoor, BoothSizeKey: "15x15"})
		if !errors.Is(err, ErrInvalidBoothSize) {
			t.Fatalf("expected ErrInvalidBoothSize, got %v", err)
		}
		if !strings.Contains(err.Error(), "10x20, 20x20, 30x30, 40x40, custom") {
			t.Fatalf("expected catalog keys in message, got %v", err)
		}
	})

	t.Run("success fills defaults and derives totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIGeneratorGateway(ctrl)
		uc := NewEstimateUseCase(repo, gateway)

		gateway.EXPECT().Generate(gomock.Any(), gomock.AssignableToTypeOf(interfaces.GenerationRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.GenerationRequest) (string, error) {
				if req.MaxTokens != 8000 {
					t.Fatalf("unexpected max tokens: %d", req.MaxTokens)
				}
				if !strings.Contains(req.System, "Location: INDOOR") {
					t.Fatalf("system prompt missing location context")
				}
				if !strings.Contains(req.System, "Indoor:") {
					t.Fatalf("system prompt missing indoor pricing reference")
				}
				return validGeneratorJSON, nil
			},
		)
		repo.EXPECT().Put(gomock.Any(), gomock.AssignableToTypeOf(entities.EstimateDocument{})).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		doc, fileErrors, err := uc.CreateEstimate(context.Background(), CreateEstimateParams{
			Location:     entities.LocationIndoor,
			BoothSizeKey: "20x20",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fileErrors) != 0 {
			t.Fatalf("unexpected file errors: %v", fileErrors)
		}
		if doc.ID == "" {
			t.Fatalf("expected generated id")
		}
		if doc.Status != entities.EstimateStatusDraft {
			t.Fatalf("expected draft status, got %s", doc.Status)
		}
		if doc.SelectedTier != entities.TierMidTier {
			t.Fatalf("expected mid_tier selection, got %s", doc.SelectedTier)
		}
		if !strings.HasPrefix(doc.QuoteNumber, "DCE-") {
			t.Fatalf("unexpected quote number %q", doc.QuoteNumber)
		}
		if doc.Request.SquareFootage == nil || *doc.Request.SquareFootage != 400 {
			t.Fatalf("expected 400 sqft from catalog, got %v", doc.Request.SquareFootage)
		}
		if doc.CreatedAt.IsZero() || !doc.CreatedAt.Equal(doc.UpdatedAt) {
			t.Fatalf("expected matching timestamps")
		}

		// Totals are re-derived server side from the generator's leaf values;
		// logistics maps are backfilled to the full nine keys.
		mid := doc.Tiers[entities.TierMidTier]
		if float64(mid.FabricationSubtotal) != 12000 {
			t.Fatalf("expected fabrication subtotal 12000, got %v", mid.FabricationSubtotal)
		}
		if float64(mid.LogisticsSubtotal) != 9000 {
			t.Fatalf("expected logistics subtotal 9000, got %v", mid.LogisticsSubtotal)
		}
		if float64(mid.GrandTotal) != 21000 {
			t.Fatalf("expected grand total 21000, got %v", mid.GrandTotal)
		}
		affordable := doc.Tiers[entities.TierAffordable]
		if len(affordable.Logistics) != len(entities.LogisticsCategories) {
			t.Fatalf("expected backfilled logistics, got %d keys", len(affordable.Logistics))
		}
	})

	t.Run("missing tier fails before persistence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIGeneratorGateway(ctrl)
		uc := NewEstimateUseCase(repo, gateway)

		partial := strings.Replace(validGeneratorJSON, `"high_end"`, `"premium"`, 1)
		gateway.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(partial, nil)

		_, _, err := uc.CreateEstimate(context.Background(), CreateEstimateParams{
			Location:     entities.LocationIndoor,
			BoothSizeKey: "20x20",
		})
		if err == nil {
			t.Fatalf("expected schema error")
		}
	})

	t.Run("truncated response surfaces extraction error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIGeneratorGateway(ctrl)
		uc := NewEstimateUseCase(repo, gateway)

		gateway.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(`{"analysis": {"detected_elements": [`, nil)

		_, _, err := uc.CreateEstimate(context.Background(), CreateEstimateParams{
			Location:     entities.LocationIndoor,
			BoothSizeKey: "20x20",
		})
		if !errors.Is(err, extraction.ErrTruncated) {
			t.Fatalf("expected ErrTruncated, got %v", err)
		}
	})
}

func TestEstimateUseCase_Refine(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.EstimateDocument{}, nil)

		_, err := uc.Refine(context.Background(), "missing", nil)
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("no questions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		doc := storedDocument()
		doc.ClarifyingQuestions = nil
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(doc, nil)

		_, err := uc.Refine(context.Background(), "est-1", nil)
		if !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("expected ErrNoQuestions, got %v", err)
		}
	})

	t.Run("gateway failure leaves document untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIGeneratorGateway(ctrl)
		uc := NewEstimateUseCase(repo, gateway)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)
		gateway.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("provider down"))
		// No Put expectation: a failed refinement must not write.

		_, err := uc.Refine(context.Background(), "est-1", map[string]string{"q1": "Venue"})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("success swaps generated fields and preserves identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIGeneratorGateway(ctrl)
		uc := NewEstimateUseCase(repo, gateway)

		stored := storedDocument()
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		gateway.EXPECT().Generate(gomock.Any(), gomock.AssignableToTypeOf(interfaces.GenerationRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.GenerationRequest) (string, error) {
				text := req.Messages[0].Content[len(req.Messages[0].Content)-1].Text
				if !strings.Contains(text, "Q: Rigging by venue?") || !strings.Contains(text, "A: Venue") {
					t.Fatalf("refine content missing Q/A block: %s", text)
				}
				return validGeneratorJSON, nil
			},
		)
		repo.EXPECT().Put(gomock.Any(), gomock.AssignableToTypeOf(entities.EstimateDocument{})).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		doc, err := uc.Refine(context.Background(), "est-1", map[string]string{"q1": "Venue"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.ID != stored.ID || !doc.CreatedAt.Equal(stored.CreatedAt) {
			t.Fatalf("refinement must preserve identity")
		}
		if doc.QuoteNumber != stored.QuoteNumber {
			t.Fatalf("refinement must preserve quote number")
		}
		if doc.Status != entities.EstimateStatusRevised {
			t.Fatalf("expected revised status, got %s", doc.Status)
		}
		if !doc.UpdatedAt.After(stored.UpdatedAt) {
			t.Fatalf("expected updated_at to advance")
		}
		if doc.Tiers[entities.TierAffordable].Label != "Affordable" {
			t.Fatalf("expected replaced tiers")
		}
	})

	t.Run("unanswered questions forwarded as not specified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		gateway := mock_interfaces.NewMockIGeneratorGateway(ctrl)
		uc := NewEstimateUseCase(repo, gateway)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)
		gateway.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.GenerationRequest) (string, error) {
				text := req.Messages[0].Content[len(req.Messages[0].Content)-1].Text
				if !strings.Contains(text, "A: Not specified") {
					t.Fatalf("expected Not specified answer, got: %s", text)
				}
				return validGeneratorJSON, nil
			},
		)
		repo.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		if _, err := uc.Refine(context.Background(), "est-1", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEstimateUseCase_LineItemEdits(t *testing.T) {
	t.Run("add derives subtotal from numeric qty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)
		repo.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		doc, err := uc.AddLineItem(context.Background(), "est-1", entities.TierMidTier, entities.FabricationItem{
			Item: "Counter", Qty: "2", UnitCost: 600, Subtotal: 0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tier := doc.Tiers[entities.TierMidTier]
		added := tier.FabricationItems[len(tier.FabricationItems)-1]
		if float64(added.Subtotal) != 1200 {
			t.Fatalf("expected derived subtotal 1200, got %v", added.Subtotal)
		}
		if float64(tier.FabricationSubtotal) != 1800 {
			t.Fatalf("expected recomputed subtotal 1800, got %v", tier.FabricationSubtotal)
		}
	})

	t.Run("update out of range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)

		_, err := uc.UpdateLineItem(context.Background(), "est-1", entities.TierMidTier, 5, entities.FabricationItem{Item: "X"})
		if err == nil {
			t.Fatalf("expected index error")
		}
	})

	t.Run("unknown tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)

		_, err := uc.AddLineItem(context.Background(), "est-1", "luxury", entities.FabricationItem{Item: "X"})
		if err == nil {
			t.Fatalf("expected unknown tier error")
		}
	})

	t.Run("logistics update recomputes totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)
		repo.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		doc, err := uc.UpdateLogistics(context.Background(), "est-1", entities.TierHighEnd, entities.LogisticsSundries, 750)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tier := doc.Tiers[entities.TierHighEnd]
		if float64(tier.LogisticsSubtotal) != 750 {
			t.Fatalf("expected logistics subtotal 750, got %v", tier.LogisticsSubtotal)
		}
		if float64(tier.GrandTotal) != 1350 {
			t.Fatalf("expected grand total 1350, got %v", tier.GrandTotal)
		}
	})
}

func TestEstimateUseCase_StatusAndDetails(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		_, err := uc.UpdateStatus(context.Background(), "est-1", "archived")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("status transition is unrestricted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		stored := storedDocument()
		stored.Status = entities.EstimateStatusAccepted
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		repo.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		doc, err := uc.UpdateStatus(context.Background(), "est-1", entities.EstimateStatusDraft)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Status != entities.EstimateStatusDraft {
			t.Fatalf("expected draft, got %s", doc.Status)
		}
	})

	t.Run("details patch only provided fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		stored := storedDocument()
		stored.ProjectName = "Coachella 2026"
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		repo.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error) {
				return doc, nil
			},
		)

		client := "Modelo"
		doc, err := uc.UpdateDetails(context.Background(), "est-1", EstimateDetails{ClientName: &client})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.ClientName != "Modelo" {
			t.Fatalf("expected client name set, got %q", doc.ClientName)
		}
		if doc.ProjectName != "Coachella 2026" {
			t.Fatalf("expected project name untouched, got %q", doc.ProjectName)
		}
	})

	t.Run("invalid selected tier", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil)
		tier := entities.TierKey("luxury")
		_, err := uc.UpdateDetails(context.Background(), "est-1", EstimateDetails{SelectedTier: &tier})
		if !errors.Is(err, ErrInvalidTier) {
			t.Fatalf("expected ErrInvalidTier, got %v", err)
		}
	})
}

func TestEstimateUseCase_ListAndExport(t *testing.T) {
	t.Run("list sorts by updated_at desc", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)

		older := storedDocument()
		older.ID = "older"
		newer := storedDocument()
		newer.ID = "newer"
		newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)
		repo.EXPECT().List(gomock.Any()).Return([]entities.EstimateDocument{older, newer}, nil)

		docs, err := uc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if docs[0].ID != "newer" || docs[1].ID != "older" {
			t.Fatalf("unexpected order: %s, %s", docs[0].ID, docs[1].ID)
		}
	})

	t.Run("export defaults to selected tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)

		_, key, err := uc.ExportTier(context.Background(), "est-1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != entities.TierMidTier {
			t.Fatalf("expected mid_tier default, got %s", key)
		}
	})

	t.Run("export rejects unknown tier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedDocument(), nil)

		_, _, err := uc.ExportTier(context.Background(), "est-1", "luxury")
		if !errors.Is(err, ErrInvalidTier) {
			t.Fatalf("expected ErrInvalidTier, got %v", err)
		}
	})

	t.Run("delete missing estimate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.EstimateDocument{}, nil)

		err := uc.Delete(context.Background(), "missing")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}
