package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// nonNumericChars strips everything that cannot appear in a plain number, so
// values like "140W" or "8 GB" still yield their embedded number. The comma
// survives the strip because Portuguese sources use it as the decimal mark.
var nonNumericChars = regexp.MustCompile(`[^0-9.,\-]`)

// FlexFloat is a JSON scalar the model may emit as a number, a numeric
// string (possibly with surrounding units or prose), or null. Valid is false
// when no number could be derived.
type FlexFloat struct {
	Value float64
	Valid bool
}

// FlexInt behaves like FlexFloat but truncates to an integer.
type FlexInt struct {
	Value int
	Valid bool
}

// FlexString is a JSON text field the model may emit as a string or, when it
// gets sloppy, as a bare number ("tgp_range": 140). Numbers keep their
// literal form; anything else decays to "".
type FlexString string

// CoerceFloat extracts a float from a loosely formatted string by stripping
// all characters except digits, separators and '-'. A lone comma is read as
// the Portuguese decimal mark ("3,5" -> 3.5). Strings mixing '.' and ',' or
// carrying several dots ("R$ 5.599,90") are ambiguous between thousands and
// decimal separators; they return false so a garbled price degrades to
// absent instead of a wildly wrong number. Returns false when nothing
// parseable remains.
func CoerceFloat(s string) (float64, bool) {
	cleaned := nonNumericChars.ReplaceAllString(strings.TrimSpace(s), "")
	if strings.Contains(cleaned, ".") && strings.Contains(cleaned, ",") {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if strings.Count(cleaned, ".") > 1 {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (s *FlexString) UnmarshalJSON(data []byte) error {
	// Field-level garbage must not abort the whole record.
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}

	*s = ""
	return nil
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	// Field-level garbage must not abort the whole record.
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = FlexFloat{}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexFloat{Value: num, Valid: true}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, ok := CoerceFloat(str); ok {
			*f = FlexFloat{Value: v, Valid: true}
			return nil
		}
	}

	*f = FlexFloat{}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns the value as a *float64, or nil when absent.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	if !f.Valid {
		*i = FlexInt{}
		return nil
	}
	*i = FlexInt{Value: int(f.Value), Valid: true}
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// Ptr returns the value as a *int, or nil when absent.
func (i FlexInt) Ptr() *int {
	if !i.Valid {
		return nil
	}
	v := i.Value
	return &v
}
