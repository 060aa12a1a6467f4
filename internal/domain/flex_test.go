package domain

import (
	"encoding/json"
	"testing"
)

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"3.5", 3.5, true},
		{"  16 ", 16, true},
		{"140W", 140, true},
		{"8 GB", 8, true},
		{"R$ 4999", 4999, true},
		{"3,5", 3.5, true}, // comma as decimal mark
		{"-5", -5, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"5.599,90", 0, false}, // mixed separators, ambiguous
		{"5.599.90", 0, false}, // more than one dot, ambiguous
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CoerceFloat(tt.in)
			if ok != tt.valid {
				t.Fatalf("CoerceFloat(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Errorf("CoerceFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlexFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  float64
		valid bool
	}{
		{"number", `2.8`, 2.8, true},
		{"numeric string", `"2.8"`, 2.8, true},
		{"string with unit", `"140W"`, 140, true},
		{"null", `null`, 0, false},
		{"free text", `"unknown"`, 0, false},
		{"object", `{"w":140}`, 0, false},
		{"array", `[140]`, 0, false},
		{"boolean", `true`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v, field garbage must not fail", tt.raw, err)
			}
			if f.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v", f.Valid, tt.valid)
			}
			if f.Valid && f.Value != tt.want {
				t.Errorf("Value = %v, want %v", f.Value, tt.want)
			}
		})
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	var i FlexInt
	if err := json.Unmarshal([]byte(`"16 GB"`), &i); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !i.Valid || i.Value != 16 {
		t.Errorf("FlexInt = %+v, want 16", i)
	}

	// Fractional values truncate.
	if err := json.Unmarshal([]byte(`14.9`), &i); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !i.Valid || i.Value != 14 {
		t.Errorf("FlexInt = %+v, want 14", i)
	}
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"RTX 4060"`, "RTX 4060"},
		{"integer", `140`, "140"},
		{"float keeps literal form", `2.8`, "2.8"},
		{"null", `null`, ""},
		{"boolean", `true`, ""},
		{"object", `{"w":140}`, ""},
		{"array", `["x"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s FlexString
			if err := json.Unmarshal([]byte(tt.raw), &s); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v, field garbage must not fail", tt.raw, err)
			}
			if string(s) != tt.want {
				t.Errorf("FlexString = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestFlexMarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A FlexFloat `json:"a"`
		B FlexInt   `json:"b"`
	}{
		A: FlexFloat{Value: 2.5, Valid: true},
	})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `{"a":2.5,"b":null}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestFlexPtr(t *testing.T) {
	f := FlexFloat{Value: 3.3, Valid: true}
	if p := f.Ptr(); p == nil || *p != 3.3 {
		t.Errorf("Ptr() = %v", p)
	}
	if p := (FlexFloat{}).Ptr(); p != nil {
		t.Errorf("Ptr() on invalid = %v, want nil", p)
	}
	i := FlexInt{Value: 8, Valid: true}
	if p := i.Ptr(); p == nil || *p != 8 {
		t.Errorf("Ptr() = %v", p)
	}
}
