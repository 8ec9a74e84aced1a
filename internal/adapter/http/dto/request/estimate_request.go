package request

import (
	"strings"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
)

// CreateEstimateForm is the multipart form starting the pipeline. Render
// files ride alongside under the "images" field and are read by the handler.
type CreateEstimateForm struct {
	Location      string `form:"location" binding:"required"`
	BoothSize     string `form:"booth_size" binding:"required"`
	SquareFootage *int   `form:"square_footage"`
	ClientName    string `form:"client_name"`
	ProjectName   string `form:"project_name"`
}

// RefineRequest carries clarifying answers keyed by question id. Missing or
// blank answers are allowed; they are forwarded as unanswered.
type RefineRequest struct {
	Answers map[string]string `json:"answers"`
}

// LineItemRequest is one fabrication line item in add/update calls. Qty is
// free text; whether it drives the subtotal is decided server-side.
type LineItemRequest struct {
	Item     string  `json:"item" binding:"required"`
	Qty      string  `json:"qty"`
	UnitCost float64 `json:"unit_cost"`
	Subtotal float64 `json:"subtotal"`
}

func (r LineItemRequest) ToEntity() entities.FabricationItem {
	return entities.FabricationItem{
		Item:     strings.TrimSpace(r.Item),
		Qty:      strings.TrimSpace(r.Qty),
		UnitCost: entities.FlexFloat(r.UnitCost),
		Subtotal: entities.FlexFloat(r.Subtotal),
	}
}

type LogisticsRequest struct {
	Amount float64 `json:"amount"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DetailsRequest patches estimate metadata. Pointer fields distinguish
// "leave alone" (absent) from "set to empty" (present and blank).
type DetailsRequest struct {
	ClientName   *string `json:"client_name"`
	ProjectName  *string `json:"project_name"`
	QuoteNumber  *string `json:"quote_number"`
	SelectedTier *string `json:"selected_tier"`
}
