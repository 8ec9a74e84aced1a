package generator

// mockEstimateJSON is what mock mode answers with: a small but complete
// three-tier estimate in the exact wire shape the real model is briefed to
// produce. Lets the whole pipeline run locally with no API key.
const mockEstimateJSON = `{
  "analysis": {
    "detected_elements": ["20x20 island booth", "backlit header sign", "reception counter", "LED video wall"],
    "assumptions": ["Standard 3-day show", "Local venue within 50 miles", "Single-story structure"]
  },
  "clarifying_questions": [
    { "id": "q1", "question": "Is the hanging sign rigged by the venue or by DCE?", "why_it_matters": "Venue rigging shifts cost to show services", "options": ["Venue", "DCE", "other"] },
    { "id": "q2", "question": "Is the LED wall purchased or rented?", "why_it_matters": "Rental roughly halves the line item", "options": ["Rented", "Purchased", "other"] }
  ],
  "estimates": {
    "affordable": {
      "label": "Affordable", "description": "Standard materials, vinyl graphics, basic lighting",
      "fabrication_items": [
        { "item": "Plywood wall panels", "qty": "320 sqft", "unit_cost": 37.5, "subtotal": 12000 },
        { "item": "Vinyl graphics", "qty": "200 sqft", "unit_cost": 15, "subtotal": 3000 },
        { "item": "Carpet flooring", "qty": "400 sqft", "unit_cost": 4.25, "subtotal": 1700 }
      ],
      "fabrication_subtotal": 16700,
      "logistics": { "warehouse_outbound": 860, "packing_materials": 770, "transportation_to_show": 1200, "installation_dismantle_labor": 9000, "labor_travel_expenses": 3500, "freight_return": 1200, "warehouse_inbound": 688, "sundries": 500, "preshow_pm": 2500 },
      "logistics_subtotal": 20218, "grand_total": 36918, "notes": "Max impact at lowest cost"
    },
    "mid_tier": {
      "label": "Mid-Tier", "description": "Custom fabrication, SEG graphics, custom counter",
      "fabrication_items": [
        { "item": "Aluminum SEG walls", "qty": "320 sqft", "unit_cost": 37.5, "subtotal": 12000 },
        { "item": "SEG fabric graphics", "qty": "320 sqft", "unit_cost": 18, "subtotal": 5760 },
        { "item": "Custom reception counter", "qty": "1", "unit_cost": 2500, "subtotal": 2500 },
        { "item": "LED video wall rental", "qty": "40 sqft", "unit_cost": 195, "subtotal": 7800 }
      ],
      "fabrication_subtotal": 28060,
      "logistics": { "warehouse_outbound": 1100, "packing_materials": 970, "transportation_to_show": 1800, "installation_dismantle_labor": 15000, "labor_travel_expenses": 5000, "freight_return": 1800, "warehouse_inbound": 900, "sundries": 500, "preshow_pm": 4000 },
      "logistics_subtotal": 31070, "grand_total": 59130, "notes": "Best value for a branded presence"
    },
    "high_end": {
      "label": "High-End", "description": "Premium custom builds, large LED, full lighting",
      "fabrication_items": [
        { "item": "Custom millwork walls", "qty": "320 sqft", "unit_cost": 70, "subtotal": 22400 },
        { "item": "Large LED video wall", "qty": "100 sqft", "unit_cost": 195, "subtotal": 19500 },
        { "item": "Bespoke cabinetry", "qty": "2", "unit_cost": 4500, "subtotal": 9000 },
        { "item": "Logo lighting package", "qty": "2", "unit_cost": 2200, "subtotal": 4400 }
      ],
      "fabrication_subtotal": 55300,
      "logistics": { "warehouse_outbound": 1600, "packing_materials": 1455, "transportation_to_show": 5500, "installation_dismantle_labor": 25000, "labor_travel_expenses": 8000, "freight_return": 5500, "warehouse_inbound": 1152, "sundries": 500, "preshow_pm": 6000 },
      "logistics_subtotal": 54707, "grand_total": 110007, "notes": "Flagship presence with interactive tech"
    }
  },
  "time_estimate": { "fabrication_weeks": "4-6 weeks", "install_days": "2 days", "dismantle_days": "1 day" }
}`
