package entities

import "time"

// EstimateStatus is workflow/display metadata on an estimate document. It
// never gates edits; any status can move to any other, and a successful
// refinement always lands on "revised".
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusAccepted EstimateStatus = "accepted"
	EstimateStatusRevised  EstimateStatus = "revised"
)

// IsValid reports whether s is one of the known workflow statuses.
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusAccepted, EstimateStatusRevised:
		return true
	}
	return false
}

// LocationType distinguishes the two pricing references the generator is
// briefed with.
type LocationType string

const (
	LocationIndoor  LocationType = "indoor"
	LocationOutdoor LocationType = "outdoor"
)

func (l LocationType) IsValid() bool {
	return l == LocationIndoor || l == LocationOutdoor
}

// TierKey identifies one of the three pricing scenarios. A document missing
// any of the three is schema-invalid.
type TierKey string

const (
	TierAffordable TierKey = "affordable"
	TierMidTier    TierKey = "mid_tier"
	TierHighEnd    TierKey = "high_end"
)

// TierKeys is the fixed, ordered tier set.
var TierKeys = []TierKey{TierAffordable, TierMidTier, TierHighEnd}

// LogisticsCategory is one of the nine fixed logistics cost buckets. Every
// tier carries all nine, defaulting to 0.
type LogisticsCategory string

const (
	LogisticsWarehouseOutbound LogisticsCategory = "warehouse_outbound"
	LogisticsPackingMaterials  LogisticsCategory = "packing_materials"
	LogisticsTransportation    LogisticsCategory = "transportation_to_show"
	LogisticsInstallDismantle  LogisticsCategory = "installation_dismantle_labor"
	LogisticsLaborTravel       LogisticsCategory = "labor_travel_expenses"
	LogisticsFreightReturn     LogisticsCategory = "freight_return"
	LogisticsWarehouseInbound  LogisticsCategory = "warehouse_inbound"
	LogisticsSundries          LogisticsCategory = "sundries"
	LogisticsPreShowPM         LogisticsCategory = "preshow_pm"
)

// LogisticsCategories is the fixed, ordered category set.
var LogisticsCategories = []LogisticsCategory{
	LogisticsWarehouseOutbound,
	LogisticsPackingMaterials,
	LogisticsTransportation,
	LogisticsInstallDismantle,
	LogisticsLaborTravel,
	LogisticsFreightReturn,
	LogisticsWarehouseInbound,
	LogisticsSundries,
	LogisticsPreShowPM,
}

// LogisticsLabels maps category keys to the display names used on exports.
var LogisticsLabels = map[LogisticsCategory]string{
	LogisticsWarehouseOutbound: "Warehouse Outbound",
	LogisticsPackingMaterials:  "Packing Materials",
	LogisticsTransportation:    "Transportation to Show",
	LogisticsInstallDismantle:  "Install & Dismantle Labor",
	LogisticsLaborTravel:       "Labor Travel & Expenses",
	LogisticsFreightReturn:     "Freight Return",
	LogisticsWarehouseInbound:  "Warehouse Inbound",
	LogisticsSundries:          "Sundries & Incidentals",
	LogisticsPreShowPM:         "Pre-Show / Project Management",
}

// FabricationItem is a single buildable line item. Qty is free text on the
// wire ("2", "400 sqft", "1 lot"); the pricing engine decides whether it is
// numeric enough to derive a subtotal from.
type FabricationItem struct {
	Item     string    `json:"item"`
	Qty      string    `json:"qty"`
	UnitCost FlexFloat `json:"unit_cost"`
	Subtotal FlexFloat `json:"subtotal"`
}

// Tier is one pricing scenario. FabricationSubtotal, LogisticsSubtotal and
// GrandTotal are derived by the pricing engine and must never be written by
// callers directly.
type Tier struct {
	Label               string                          `json:"label"`
	Description         string                          `json:"description"`
	FabricationItems    []FabricationItem               `json:"fabrication_items"`
	FabricationSubtotal FlexFloat                       `json:"fabrication_subtotal"`
	Logistics           map[LogisticsCategory]FlexFloat `json:"logistics"`
	LogisticsSubtotal   FlexFloat                       `json:"logistics_subtotal"`
	GrandTotal          FlexFloat                       `json:"grand_total"`
	Notes               string                          `json:"notes"`
}

// Analysis is the generator's read of the submitted renders. Advisory only.
type Analysis struct {
	DetectedElements []string `json:"detected_elements"`
	Assumptions      []string `json:"assumptions"`
}

// ClarifyingQuestion is a follow-up the generator wants answered before it
// can tighten the estimate. Options may be empty (free-text answer).
type ClarifyingQuestion struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	WhyItMatters string   `json:"why_it_matters"`
	Options      []string `json:"options"`
}

// TimeEstimate holds free-form schedule strings ("3-4 weeks", "2 days").
type TimeEstimate struct {
	FabricationWeeks string `json:"fabrication_weeks"`
	InstallDays      string `json:"install_days"`
	DismantleDays    string `json:"dismantle_days"`
}

// GeneratedResult is the payload the generator responds with: analysis,
// clarifying questions, the three tiers and a schedule. It is exactly the
// slice of an EstimateDocument that a refinement replaces.
type GeneratedResult struct {
	Analysis            Analysis             `json:"analysis"`
	ClarifyingQuestions []ClarifyingQuestion `json:"clarifying_questions"`
	Estimates           map[TierKey]Tier     `json:"estimates"`
	TimeEstimate        TimeEstimate         `json:"time_estimate"`
}

// BoothRequest is the immutable request context an estimate was generated
// from. Refinement reuses it verbatim.
type BoothRequest struct {
	LocationType  LocationType `json:"location_type"`
	BoothSizeKey  string       `json:"booth_size"`
	SquareFootage *int         `json:"square_footage"`
}

// ImageAttachment is a normalized render: base64 JPEG payload (no data-URI
// prefix), its MIME type (image/jpeg after re-encode) and the original
// display name. Insertion order is angle order.
type ImageAttachment struct {
	Payload     string `json:"b64"`
	MIMEType    string `json:"mime_type"`
	DisplayName string `json:"name"`
}

// EstimateDocument is the unit of persistence and the bit-exact contract
// shared with export and list tooling.
//
// Lifecycle:
//   - created only by a successful pipeline run
//   - refinement replaces analysis/clarifying_questions/estimates/
//     time_estimate and sets status=revised, preserving id, request,
//     images and created_at
//   - manual edits mutate one tier and re-derive its totals before the
//     document is persisted
type EstimateDocument struct {
	ID                  string               `json:"id"`
	Request             BoothRequest         `json:"request"`
	Images              []ImageAttachment    `json:"images"`
	Analysis            Analysis             `json:"analysis"`
	ClarifyingQuestions []ClarifyingQuestion `json:"clarifying_questions"`
	Tiers               map[TierKey]Tier     `json:"estimates"`
	TimeEstimate        TimeEstimate         `json:"time_estimate"`
	Status              EstimateStatus       `json:"status"`
	ClientName          string               `json:"client_name"`
	ProjectName         string               `json:"project_name"`
	QuoteNumber         string               `json:"quote_number"`
	SelectedTier        TierKey              `json:"selected_tier"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}
