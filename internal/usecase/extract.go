package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comparanote/backend/internal/domain"
)

// ExtractCandidates locates the JSON array embedded in the raw model output
// and parses it into product candidates. When the provider honors the JSON
// response mode the text parses directly; otherwise the payload is cut
// between the first '[' and the last ']', tolerating wrapping prose the
// model sometimes adds despite instructions.
func ExtractCandidates(raw string) ([]domain.ProductCandidate, error) {
	text := strings.TrimSpace(raw)

	var candidates []domain.ProductCandidate
	if err := json.Unmarshal([]byte(text), &candidates); err == nil {
		return candidates, nil
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in output", domain.ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return candidates, nil
}
