package usecase

import (
	"errors"
	"testing"

	"github.com/comparanote/backend/internal/domain"
)

func TestExtractCandidates(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "clean JSON array",
			raw:       `[{"name":"Notebook A"},{"name":"Notebook B"}]`,
			wantCount: 2,
		},
		{
			name:      "array wrapped in prose",
			raw:       `Here is the result: [{"name":"X"}] Thanks!`,
			wantCount: 1,
		},
		{
			name:      "array inside a markdown fence",
			raw:       "```json\n[{\"name\":\"Fenced\"}]\n```",
			wantCount: 1,
		},
		{
			name:      "empty array",
			raw:       `[]`,
			wantCount: 0,
		},
		{
			name:    "no opening bracket",
			raw:     `the model refused to answer`,
			wantErr: true,
		},
		{
			name:    "no closing bracket",
			raw:     `[{"name":"truncated"`,
			wantErr: true,
		},
		{
			name:    "brackets around invalid JSON",
			raw:     `[not json at all]`,
			wantErr: true,
		},
		{
			name:    "top-level object instead of array",
			raw:     `{"name":"X"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := ExtractCandidates(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractCandidates() error = nil, want malformed-response error")
				}
				if !errors.Is(err, domain.ErrMalformedResponse) {
					t.Errorf("error = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractCandidates() error = %v", err)
			}
			if len(candidates) != tt.wantCount {
				t.Errorf("len(candidates) = %d, want %d", len(candidates), tt.wantCount)
			}
		})
	}
}

func TestExtractCandidates_ContentSurvivesWrapping(t *testing.T) {
	raw := `The configurations are: [{"name":"X","gpu_details":"RTX 4060"}] hope this helps`
	candidates, err := ExtractCandidates(raw)
	if err != nil {
		t.Fatalf("ExtractCandidates() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
	if candidates[0].Name != "X" {
		t.Errorf("Name = %q, want X", candidates[0].Name)
	}
	if candidates[0].GPUDetails != "RTX 4060" {
		t.Errorf("GPUDetails = %q, want RTX 4060", candidates[0].GPUDetails)
	}
}

func TestExtractCandidates_NumberInTextField(t *testing.T) {
	// The model sometimes emits a bare number where the schema asks for a
	// string. That must not fail the whole array.
	raw := `[{"name":"Notebook X","tgp_range":140,"gpu_details":"RTX 4060"},{"name":"Notebook Y"}]`
	candidates, err := ExtractCandidates(raw)
	if err != nil {
		t.Fatalf("ExtractCandidates() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].TGPRange != "140" {
		t.Errorf("TGPRange = %q, want 140", candidates[0].TGPRange)
	}
	if candidates[1].Name != "Notebook Y" {
		t.Errorf("Name = %q, want Notebook Y", candidates[1].Name)
	}
}
