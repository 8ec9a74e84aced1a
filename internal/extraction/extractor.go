// Package extraction recovers a structured estimate from raw generator
// output. The generator is asked for bare JSON but routinely wraps it in
// markdown fences, prepends prose, or gets cut off mid-object; extraction
// has to tell those failure modes apart because they need different user
// guidance.
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
)

var (
	// ErrNoJSON means the response contained no object at all. Retrying
	// the same request verbatim is reasonable.
	ErrNoJSON = errors.New("no JSON object found in generator response")

	// ErrTruncated means the object started but never closed: the
	// response hit the output limit. Distinct from a parse failure
	// because the fix is to retry with reduced scope, not to retry as-is.
	ErrTruncated = errors.New("generator response was cut off before the estimate completed; retry with a smaller booth size or fewer renders, then refine with the clarifying questions")
)

// MalformedJSONError wraps a parse failure and keeps the candidate
// substring for diagnostics.
type MalformedJSONError struct {
	Snippet string
	Err     error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("generator returned malformed JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

var fenceMarkers = regexp.MustCompile("(?i)```json\\s*|```\\s*")

// Extract strips markdown wrapping from raw generator text, locates the
// first balanced top-level object, and parses it into a GeneratedResult.
// Domain validation (tier completeness, totals) is the pricing engine's
// job; Extract only guarantees well-formed JSON in the right overall shape.
func Extract(raw string) (entities.GeneratedResult, error) {
	clean := strings.TrimSpace(fenceMarkers.ReplaceAllString(raw, ""))

	start := strings.IndexByte(clean, '{')
	if start == -1 {
		return entities.GeneratedResult{}, ErrNoJSON
	}

	depth := 0
	end := -1
	for i := start; i < len(clean); i++ {
		switch clean[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return entities.GeneratedResult{}, ErrTruncated
	}

	candidate := clean[start : end+1]
	var result entities.GeneratedResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return entities.GeneratedResult{}, &MalformedJSONError{Snippet: candidate, Err: err}
	}
	return result, nil
}
