package response

import (
	"time"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/imaging"
)

// EstimateSummary is the dashboard list row: enough to pick an estimate
// without shipping every tier and render payload.
type EstimateSummary struct {
	ID            string    `json:"id"`
	ClientName    string    `json:"client_name"`
	ProjectName   string    `json:"project_name"`
	QuoteNumber   string    `json:"quote_number"`
	Status        string    `json:"status"`
	Location      string    `json:"location"`
	BoothSize     string    `json:"booth_size"`
	SelectedTier  string    `json:"selected_tier"`
	SelectedTotal float64   `json:"selected_total"`
	ImageCount    int       `json:"image_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromEstimateSummary(doc entities.EstimateDocument) EstimateSummary {
	var selectedTotal float64
	if tier, ok := doc.Tiers[doc.SelectedTier]; ok {
		selectedTotal = float64(tier.GrandTotal)
	}
	return EstimateSummary{
		ID:            doc.ID,
		ClientName:    doc.ClientName,
		ProjectName:   doc.ProjectName,
		QuoteNumber:   doc.QuoteNumber,
		Status:        string(doc.Status),
		Location:      string(doc.Request.LocationType),
		BoothSize:     doc.Request.BoothSizeKey,
		SelectedTier:  string(doc.SelectedTier),
		SelectedTotal: selectedTotal,
		ImageCount:    len(doc.Images),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func FromEstimateList(docs []entities.EstimateDocument) []EstimateSummary {
	out := make([]EstimateSummary, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromEstimateSummary(doc))
	}
	return out
}

// ImageFailure reports one render dropped during creation.
type ImageFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// CreateEstimateResponse pairs the created document with any per-file image
// failures. A 201 with a non-empty failure list means the estimate was
// generated from fewer renders than were uploaded.
type CreateEstimateResponse struct {
	Estimate      entities.EstimateDocument `json:"estimate"`
	ImageFailures []ImageFailure            `json:"image_failures,omitempty"`
}

func FromCreateResult(doc entities.EstimateDocument, fileErrors []imaging.FileError) CreateEstimateResponse {
	resp := CreateEstimateResponse{Estimate: doc}
	for _, fe := range fileErrors {
		resp.ImageFailures = append(resp.ImageFailures, ImageFailure{Name: fe.Name, Error: fe.Err.Error()})
	}
	return resp
}

// ExportLine is one priced row on a client-facing quote.
type ExportLine struct {
	Label    string  `json:"label"`
	Qty      string  `json:"qty,omitempty"`
	UnitCost float64 `json:"unit_cost,omitempty"`
	Subtotal float64 `json:"subtotal"`
}

// ExportPayload is the client-facing quote for one tier: display labels,
// fixed logistics ordering, derived totals and schedule. It carries no
// internal keys and no renders.
type ExportPayload struct {
	QuoteNumber         string                `json:"quote_number"`
	ClientName          string                `json:"client_name"`
	ProjectName         string                `json:"project_name"`
	Location            string                `json:"location"`
	BoothSize           string                `json:"booth_size"`
	Tier                string                `json:"tier"`
	TierLabel           string                `json:"tier_label"`
	TierDescription     string                `json:"tier_description"`
	FabricationItems    []ExportLine          `json:"fabrication_items"`
	FabricationSubtotal float64               `json:"fabrication_subtotal"`
	Logistics           []ExportLine          `json:"logistics"`
	LogisticsSubtotal   float64               `json:"logistics_subtotal"`
	GrandTotal          float64               `json:"grand_total"`
	Notes               string                `json:"notes,omitempty"`
	TimeEstimate        entities.TimeEstimate `json:"time_estimate"`
	GeneratedAt         time.Time             `json:"generated_at"`
}

func FromExport(doc entities.EstimateDocument, key entities.TierKey, now time.Time) ExportPayload {
	tier := doc.Tiers[key]

	items := make([]ExportLine, 0, len(tier.FabricationItems))
	for _, item := range tier.FabricationItems {
		items = append(items, ExportLine{
			Label:    item.Item,
			Qty:      item.Qty,
			UnitCost: float64(item.UnitCost),
			Subtotal: float64(item.Subtotal),
		})
	}

	logistics := make([]ExportLine, 0, len(entities.LogisticsCategories))
	for _, category := range entities.LogisticsCategories {
		logistics = append(logistics, ExportLine{
			Label:    entities.LogisticsLabels[category],
			Subtotal: float64(tier.Logistics[category]),
		})
	}

	return ExportPayload{
		QuoteNumber:         doc.QuoteNumber,
		ClientName:          doc.ClientName,
		ProjectName:         doc.ProjectName,
		Location:            string(doc.Request.LocationType),
		BoothSize:           doc.Request.BoothSizeKey,
		Tier:                string(key),
		TierLabel:           tier.Label,
		TierDescription:     tier.Description,
		FabricationItems:    items,
		FabricationSubtotal: float64(tier.FabricationSubtotal),
		Logistics:           logistics,
		LogisticsSubtotal:   float64(tier.LogisticsSubtotal),
		GrandTotal:          float64(tier.GrandTotal),
		Notes:               tier.Notes,
		TimeEstimate:        doc.TimeEstimate,
		GeneratedAt:         now,
	}
}
