package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase/interfaces"
)

// BoothSize is one selectable booth footprint. SquareFootage is nil for the
// custom size, where the client supplies their own footage.
type BoothSize struct {
	SquareFootage *int
	Label         string
}

func intPtr(v int) *int { return &v }

// BoothSizes is the fixed catalog of selectable booth footprints.
var BoothSizes = map[string]BoothSize{
	"10x20":  {SquareFootage: intPtr(200), Label: "Small – 10×20 (200 sqft)"},
	"20x20":  {SquareFootage: intPtr(400), Label: "Medium – 20×20 (400 sqft)"},
	"30x30":  {SquareFootage: intPtr(900), Label: "Large – 30×30 (900 sqft)"},
	"40x40":  {SquareFootage: intPtr(1600), Label: "XL – 40×40 (1,600 sqft)"},
	"custom": {SquareFootage: nil, Label: "Custom Size"},
}

const indoorPricing = `Indoor:
- Flooring: $4.25/sqft (carpet/linoleum)
- Graphics: $15-18/sqft (vinyl wrap / SEG)
- Wall: $37.50/sqft (plywood or aluminum SEG frame)
- Custom Wall: $70/sqft (shelving unit or cutout)
- Hanging Sign: $37.50/sqft
- Reception Counter: $2,500 each
- LED Video Wall: $195/sqft (rental indoor tiles)
- Counter: $600/linear ft (2-6ft range)
- Logo Lighting: $1,850-$2,600 each
- Stanchion: $40 each (tradeshow: $75 each)`

const outdoorPricing = `Outdoor:
- Flooring Snap Block/Carpet: $4.25/sqft
- Rental Platform Flooring: $17.50/sqft
- Astro Turf: $4/sqft
- Graphics: $15-18/sqft (vinyl wrap / SEG)
- Wall: $37.50/sqft (plywood / aluminum SEG)
- Custom Wall: $70/sqft (shelving/cutout)
- Built Signage: $37.50/sqft
- LED Video Wall: $250/sqft (outdoor rental tiles)
- High Boy Table: $135 each
- Printed Canopy: $9/sqft
- Truss Stock: $25/linear ft (12x12)
- Stanchion: $40-75 each
- Rental Counter: $450-600 each`

const responseSchema = `{
  "analysis": { "detected_elements": ["string"], "assumptions": ["string"] },
  "clarifying_questions": [{ "id": "q1", "question": "string", "why_it_matters": "string", "options": ["A","B","other"] }],
  "estimates": {
    "affordable": {
      "label": "Affordable", "description": "string",
      "fabrication_items": [{ "item": "string", "qty": "string", "unit_cost": 0, "subtotal": 0 }],
      "fabrication_subtotal": 0,
      "logistics": { "warehouse_outbound": 0, "packing_materials": 0, "transportation_to_show": 0, "installation_dismantle_labor": 0, "labor_travel_expenses": 0, "freight_return": 0, "warehouse_inbound": 0, "sundries": 0, "preshow_pm": 0 },
      "logistics_subtotal": 0, "grand_total": 0, "notes": "string"
    },
    "mid_tier": { "label": "Mid-Tier", "description": "string", "fabrication_items": [{ "item": "string", "qty": "string", "unit_cost": 0, "subtotal": 0 }], "fabrication_subtotal": 0, "logistics": { "warehouse_outbound": 0, "packing_materials": 0, "transportation_to_show": 0, "installation_dismantle_labor": 0, "labor_travel_expenses": 0, "freight_return": 0, "warehouse_inbound": 0, "sundries": 0, "preshow_pm": 0 }, "logistics_subtotal": 0, "grand_total": 0, "notes": "string" },
    "high_end": { "label": "High-End", "description": "string", "fabrication_items": [{ "item": "string", "qty": "string", "unit_cost": 0, "subtotal": 0 }], "fabrication_subtotal": 0, "logistics": { "warehouse_outbound": 0, "packing_materials": 0, "transportation_to_show": 0, "installation_dismantle_labor": 0, "labor_travel_expenses": 0, "freight_return": 0, "warehouse_inbound": 0, "sundries": 0, "preshow_pm": 0 }, "logistics_subtotal": 0, "grand_total": 0, "notes": "string" }
  },
  "time_estimate": { "fabrication_weeks": "string", "install_days": "string", "dismantle_days": "string" }
}`

// buildSystemPrompt assembles the estimator briefing for one booth request:
// company framing, the location-specific pricing reference, logistics
// benchmarks, tier definitions and the exact JSON response contract.
func buildSystemPrompt(req entities.BoothRequest) string {
	sqftNote := ""
	if req.SquareFootage != nil {
		sqftNote = fmt.Sprintf("(~%d sqft)", *req.SquareFootage)
	}

	pricing := indoorPricing
	if req.LocationType == entities.LocationOutdoor {
		pricing = outdoorPricing
	}

	return fmt.Sprintf(`You are a senior fabrication estimator at DreamCraft Events (DCE), a world-class experiential fabrication company in Tustin, CA that builds trade show exhibits, branded activations, music festival experiences, and immersive brand environments.

BOOTH CONTEXT:
- Location: %s
- Size: %s %s

PRICING REFERENCE:
%s

LOGISTICS BENCHMARKS:
- Warehouse outbound: $86-$96/hr, 8-20 hrs typical
- Packing/pallets/crating: $385-$485 per unit
- Transportation: local ($900-$1,800), regional ($5,000-$6,000), national ($10,000+)
- I&D labor: small ~$8,000-$15,000 | medium ~$15,000-$25,000 | large ~$25,000-$45,000+
- Labor travel: $3,500-$10,000+
- Warehouse inbound: $688-$1,152
- Sundries: $1.25/sqft
- Pre-show/PM: $2,500-$8,000
- Structural engineering (large outdoor): $3,750-$4,250

TIERING:
- AFFORDABLE: Standard materials, vinyl graphics, basic lighting, minimal custom. Max impact at lowest cost.
- MID-TIER: Quality custom fabrication, SEG graphics, custom counters, moderate LED, possible small display.
- HIGH-END: Premium custom builds, bespoke cabinetry, large LED video walls, interactive tech, full lighting.

TASK: Analyze the render (if provided), identify all elements, and produce three estimate tiers.

Respond ONLY with valid JSON — no markdown, no backticks, no preamble. Keep all string values under 100 chars. Use this exact structure:
%s`, strings.ToUpper(string(req.LocationType)), req.BoothSizeKey, sqftNote, pricing, responseSchema)
}

func sqftOrTBD(req entities.BoothRequest) string {
	if req.SquareFootage != nil {
		return fmt.Sprintf("%d sqft", *req.SquareFootage)
	}
	return "size TBD"
}

func imageBlocks(images []entities.ImageAttachment) []interfaces.ContentBlock {
	blocks := make([]interfaces.ContentBlock, 0, len(images))
	for _, img := range images {
		mediaType := img.MIMEType
		if mediaType == "" {
			mediaType = "image/jpeg"
		}
		blocks = append(blocks, interfaces.ContentBlock{
			Type: "image",
			Source: &interfaces.ImageSource{
				Type:      "base64",
				MediaType: mediaType,
				Data:      img.Payload,
			},
		})
	}
	return blocks
}

// buildCreateContent assembles the user turn for a first-pass estimate:
// every render as an image block, then the analysis instruction. With no
// renders the generator is asked for a general estimate from booth context
// alone.
func buildCreateContent(req entities.BoothRequest, images []entities.ImageAttachment) []interfaces.ContentBlock {
	if len(images) == 0 {
		text := fmt.Sprintf("Generate a general fabrication estimate.\nBooth: %s | Location: %s | %s\n\nIMPORTANT: Respond ONLY with valid JSON. No backticks, no preamble.",
			req.BoothSizeKey, strings.ToUpper(string(req.LocationType)), sqftOrTBD(req))
		return []interfaces.ContentBlock{{Type: "text", Text: text}}
	}

	subject := "this render"
	angleNote := ""
	if len(images) > 1 {
		subject = "these renders (multiple angles of the same booth)"
		angleNote = fmt.Sprintf("You have been provided %d render angles of the same booth. Analyze all of them together to get a complete picture before estimating.", len(images))
	}
	text := fmt.Sprintf("Analyze %s and produce a full fabrication estimate.\n%s\nBooth: %s | Location: %s | %s\n\nIMPORTANT: Respond ONLY with a single valid JSON object. No markdown, no backticks, no text before or after. Keep all string values under 100 chars.",
		subject, angleNote, req.BoothSizeKey, strings.ToUpper(string(req.LocationType)), sqftOrTBD(req))

	return append(imageBlocks(images), interfaces.ContentBlock{Type: "text", Text: text})
}

// buildRefineContent assembles the user turn for a refinement pass: the
// original renders again, plus the clarifying questions paired with their
// answers. Unanswered questions are sent explicitly as "Not specified" so
// the generator knows they were offered and declined rather than lost.
func buildRefineContent(doc entities.EstimateDocument, answers map[string]string) []interfaces.ContentBlock {
	qa := make([]string, 0, len(doc.ClarifyingQuestions))
	for _, q := range doc.ClarifyingQuestions {
		answer := strings.TrimSpace(answers[q.ID])
		if answer == "" {
			answer = "Not specified"
		}
		qa = append(qa, fmt.Sprintf("Q: %s\nA: %s", q.Question, answer))
	}
	ctx := strings.Join(qa, "\n\n")

	if len(doc.Images) > 0 {
		text := fmt.Sprintf("Re-estimate with these clarifying answers:\n%s\n\nRespond ONLY with valid JSON. No backticks.", ctx)
		return append(imageBlocks(doc.Images), interfaces.ContentBlock{Type: "text", Text: text})
	}

	text := fmt.Sprintf("Re-estimate with these clarifying answers:\n%s\n\nBooth: %s | Location: %s\n\nRespond ONLY with valid JSON. No backticks.",
		ctx, doc.Request.BoothSizeKey, doc.Request.LocationType)
	return []interfaces.ContentBlock{{Type: "text", Text: text}}
}

// SortedBoothSizeKeys returns the catalog keys with the named footprints
// first by area and "custom" last, for stable rendering and validation
// messages.
func SortedBoothSizeKeys() []string {
	keys := make([]string, 0, len(BoothSizes))
	for k := range BoothSizes {
		if k != "custom" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return *BoothSizes[keys[i]].SquareFootage < *BoothSizes[keys[j]].SquareFootage
	})
	return append(keys, "custom")
}
