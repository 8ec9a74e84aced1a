// Package pricing owns every derived number on an estimate document. All
// subtotal/total math and all numeric coercion funnels through here so the
// same figures come out whether a tier arrived from the generator or from a
// manual correction.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
)

var (
	// ErrSchema marks a document or generated result that is missing part
	// of the fixed shape (tier keys, tier index out of range and the like).
	ErrSchema = errors.New("estimate schema invalid")

	ErrUnknownTier         = errors.New("unknown tier key")
	ErrUnknownLogisticsKey = errors.New("unknown logistics category")
	ErrItemIndexOutOfRange = errors.New("fabrication item index out of range")
)

// coerce maps the leftovers FlexFloat decoding cannot catch (values built
// in-process) onto 0 so derived fields are always finite.
func coerce(v entities.FlexFloat) float64 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseQuantity extracts the leading numeric portion of a free-text qty
// ("2", "400 sqft", "3.5 days"). ok is false when the string does not start
// with a number.
func parseQuantity(qty string) (float64, bool) {
	s := strings.TrimSpace(qty)
	end := 0
	seenDigit := false
	for i, r := range s {
		if r >= '0' && r <= '9' {
			seenDigit = true
			end = i + 1
			continue
		}
		if (r == '.' || r == '-' || r == '+') && (i == 0 || r == '.') {
			end = i + 1
			continue
		}
		break
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Recompute rebuilds a tier's derived fields from its leaf inputs alone.
// Pre-existing subtotal/grand-total values are ignored, the logistics map
// is backfilled to the full nine categories, and every number is coerced
// finite. Idempotent: Recompute(Recompute(t)) == Recompute(t).
func Recompute(t entities.Tier) entities.Tier {
	out := cloneTier(t)

	var fabrication float64
	for i, item := range out.FabricationItems {
		subtotal := coerce(item.Subtotal)
		out.FabricationItems[i].UnitCost = entities.FlexFloat(coerce(item.UnitCost))
		out.FabricationItems[i].Subtotal = entities.FlexFloat(subtotal)
		fabrication += subtotal
	}

	normalized := make(map[entities.LogisticsCategory]entities.FlexFloat, len(entities.LogisticsCategories))
	var logistics float64
	for _, category := range entities.LogisticsCategories {
		amount := coerce(out.Logistics[category])
		normalized[category] = entities.FlexFloat(amount)
		logistics += amount
	}
	out.Logistics = normalized

	out.FabricationSubtotal = entities.FlexFloat(fabrication)
	out.LogisticsSubtotal = entities.FlexFloat(logistics)
	out.GrandTotal = entities.FlexFloat(fabrication + logistics)
	return out
}

// ValidateResult rejects a generated result that does not carry all three
// tier keys. Logistics keys are not checked here: Recompute backfills
// missing categories to 0, which is the tolerant behavior the generator
// contract promises.
func ValidateResult(res entities.GeneratedResult) error {
	for _, key := range entities.TierKeys {
		if _, ok := res.Estimates[key]; !ok {
			return fmt.Errorf("%w: missing tier %q", ErrSchema, key)
		}
	}
	return nil
}

// ValidateDocument applies the same tier-completeness check to a full
// document, as used on store loads and before persistence.
func ValidateDocument(doc entities.EstimateDocument) error {
	for _, key := range entities.TierKeys {
		if _, ok := doc.Tiers[key]; !ok {
			return fmt.Errorf("%w: missing tier %q", ErrSchema, key)
		}
	}
	return nil
}

// NormalizeResult recomputes every tier of a generated result, producing
// the canonical form that gets stored.
func NormalizeResult(res entities.GeneratedResult) entities.GeneratedResult {
	normalized := make(map[entities.TierKey]entities.Tier, len(res.Estimates))
	for key, tier := range res.Estimates {
		normalized[key] = Recompute(tier)
	}
	res.Estimates = normalized
	return res
}

// AddLineItem appends a fabrication item to a tier and re-derives its
// totals. When the quantity parses as a number the subtotal is derived as
// unit cost x quantity; otherwise the caller-supplied subtotal stands.
func AddLineItem(doc entities.EstimateDocument, tierKey entities.TierKey, item entities.FabricationItem) (entities.EstimateDocument, error) {
	return editTier(doc, tierKey, func(t entities.Tier) (entities.Tier, error) {
		t.FabricationItems = append(t.FabricationItems, deriveSubtotal(item))
		return t, nil
	})
}

// UpdateLineItem replaces the item at index in place. Subtotal follows the
// same derivation rule as AddLineItem.
func UpdateLineItem(doc entities.EstimateDocument, tierKey entities.TierKey, index int, item entities.FabricationItem) (entities.EstimateDocument, error) {
	return editTier(doc, tierKey, func(t entities.Tier) (entities.Tier, error) {
		if index < 0 || index >= len(t.FabricationItems) {
			return t, fmt.Errorf("%w: %d", ErrItemIndexOutOfRange, index)
		}
		t.FabricationItems[index] = deriveSubtotal(item)
		return t, nil
	})
}

// DeleteLineItem removes the item at index.
func DeleteLineItem(doc entities.EstimateDocument, tierKey entities.TierKey, index int) (entities.EstimateDocument, error) {
	return editTier(doc, tierKey, func(t entities.Tier) (entities.Tier, error) {
		if index < 0 || index >= len(t.FabricationItems) {
			return t, fmt.Errorf("%w: %d", ErrItemIndexOutOfRange, index)
		}
		t.FabricationItems = append(t.FabricationItems[:index], t.FabricationItems[index+1:]...)
		return t, nil
	})
}

// SetLogistics replaces one logistics category amount. The category must be
// one of the nine fixed keys; amounts are coerced finite on recompute.
func SetLogistics(doc entities.EstimateDocument, tierKey entities.TierKey, category entities.LogisticsCategory, amount float64) (entities.EstimateDocument, error) {
	if _, ok := entities.LogisticsLabels[category]; !ok {
		return doc, fmt.Errorf("%w: %q", ErrUnknownLogisticsKey, category)
	}
	return editTier(doc, tierKey, func(t entities.Tier) (entities.Tier, error) {
		t.Logistics[category] = entities.FlexFloat(amount)
		return t, nil
	})
}

// editTier clones the document, applies fn to a copy of the addressed tier
// and recomputes it. The input document is never mutated; callers observe
// either the fully re-derived result or an error with nothing changed.
func editTier(doc entities.EstimateDocument, tierKey entities.TierKey, fn func(entities.Tier) (entities.Tier, error)) (entities.EstimateDocument, error) {
	out := CloneDocument(doc)
	tier, ok := out.Tiers[tierKey]
	if !ok {
		return doc, fmt.Errorf("%w: %q", ErrUnknownTier, tierKey)
	}
	edited, err := fn(cloneTier(tier))
	if err != nil {
		return doc, err
	}
	out.Tiers[tierKey] = Recompute(edited)
	return out, nil
}

func deriveSubtotal(item entities.FabricationItem) entities.FabricationItem {
	if qty, ok := parseQuantity(item.Qty); ok {
		item.Subtotal = entities.FlexFloat(coerce(item.UnitCost) * qty)
	}
	return item
}

// CloneDocument deep-copies a document so edits follow the
// immutable-document pattern: no caller ever holds a live alias into the
// version being persisted.
func CloneDocument(doc entities.EstimateDocument) entities.EstimateDocument {
	out := doc
	out.Images = append([]entities.ImageAttachment(nil), doc.Images...)
	out.Analysis.DetectedElements = append([]string(nil), doc.Analysis.DetectedElements...)
	out.Analysis.Assumptions = append([]string(nil), doc.Analysis.Assumptions...)
	out.ClarifyingQuestions = cloneQuestions(doc.ClarifyingQuestions)
	out.Tiers = make(map[entities.TierKey]entities.Tier, len(doc.Tiers))
	for key, tier := range doc.Tiers {
		out.Tiers[key] = cloneTier(tier)
	}
	return out
}

func cloneQuestions(qs []entities.ClarifyingQuestion) []entities.ClarifyingQuestion {
	if qs == nil {
		return nil
	}
	out := make([]entities.ClarifyingQuestion, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

func cloneTier(t entities.Tier) entities.Tier {
	out := t
	out.FabricationItems = append([]entities.FabricationItem(nil), t.FabricationItems...)
	out.Logistics = make(map[entities.LogisticsCategory]entities.FlexFloat, len(t.Logistics))
	for k, v := range t.Logistics {
		out.Logistics[k] = v
	}
	return out
}
