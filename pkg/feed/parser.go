// pkg/feed/parser.go
package feed

import (
	"encoding/json"
	"fmt"
	"io"
)

// ParseIndex decodes a feed index document. Only the id/type pairs are
// extracted; nothing else is validated.
func ParseIndex(r io.Reader) (*Index, error) {
	var idx Index
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	return &idx, nil
}

// ParseSearch decodes a search service response
func ParseSearch(r io.Reader) (*SearchResult, error) {
	var res SearchResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decoding search results: %w", err)
	}
	return &res, nil
}
