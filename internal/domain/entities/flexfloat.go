package entities

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that survives the generator's loose typing. The
// model occasionally emits "1200", "$1,200", null or plain garbage where a
// number belongs; all of those decode to a usable value (garbage to 0)
// instead of failing the whole document. It always marshals as a plain
// JSON number, so the persisted schema stays strict.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*f = 0
			return nil
		}
		s = unquoted
	}

	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}
