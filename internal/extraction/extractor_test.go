package extraction

import (
	"errors"
	"strings"
	"testing"
)

const minimalEstimate = `{
  "analysis": { "detected_elements": ["booth"], "assumptions": [] },
  "clarifying_questions": [],
  "estimates": {
    "affordable": { "label": "Affordable", "fabrication_items": [], "logistics": {} },
    "mid_tier": { "label": "Mid-Tier", "fabrication_items": [], "logistics": {} },
    "high_end": { "label": "High-End", "fabrication_items": [], "logistics": {} }
  },
  "time_estimate": { "fabrication_weeks": "4", "install_days": "2", "dismantle_days": "1" }
}`

func TestExtract(t *testing.T) {
	t.Run("bare JSON", func(t *testing.T) {
		res, err := Extract(minimalEstimate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Estimates["affordable"].Label != "Affordable" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("markdown fenced", func(t *testing.T) {
		raw := "```json\n" + minimalEstimate + "\n```"
		res, err := Extract(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Estimates) != 3 {
			t.Fatalf("expected 3 tiers, got %d", len(res.Estimates))
		}
	})

	t.Run("prose before and after", func(t *testing.T) {
		raw := "Here is your estimate:\n\n" + minimalEstimate + "\n\nLet me know if you need changes."
		if _, err := Extract(raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("uppercase fence marker", func(t *testing.T) {
		raw := "```JSON\n" + minimalEstimate + "\n```"
		if _, err := Extract(raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := Extract("I could not produce an estimate for this booth.")
		if !errors.Is(err, ErrNoJSON) {
			t.Fatalf("expected ErrNoJSON, got %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Extract("")
		if !errors.Is(err, ErrNoJSON) {
			t.Fatalf("expected ErrNoJSON, got %v", err)
		}
	})

	t.Run("truncated object", func(t *testing.T) {
		raw := `{"analysis": {"detected_elements": ["booth"], "assumptions": [`
		_, err := Extract(raw)
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("expected ErrTruncated, got %v", err)
		}
		var malformed *MalformedJSONError
		if errors.As(err, &malformed) {
			t.Fatalf("truncation must not be reported as malformed")
		}
	})

	t.Run("balanced but invalid JSON", func(t *testing.T) {
		raw := `{"analysis": {"detected_elements": [booth]}}`
		_, err := Extract(raw)
		var malformed *MalformedJSONError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedJSONError, got %v", err)
		}
		if malformed.Snippet == "" {
			t.Fatalf("expected candidate snippet retained")
		}
	})

	t.Run("ignores trailing text after balanced object", func(t *testing.T) {
		raw := minimalEstimate + ` {"another": "object"}`
		res, err := Extract(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Estimates) != 3 {
			t.Fatalf("expected first object parsed, got %+v", res)
		}
	})

	t.Run("truncation message carries retry guidance", func(t *testing.T) {
		if !strings.Contains(ErrTruncated.Error(), "smaller booth size") {
			t.Fatalf("truncation error should guide the retry: %v", ErrTruncated)
		}
	})
}
