// pkg/feed/types.go
package feed

import (
	"strings"
)

// Resource is one typed service endpoint listed by the feed index
type Resource struct {
	ID   string `json:"@id"`
	Type string `json:"@type"`
}

// Index is the feed's root document. Resources keep feed order and types are
// not unique.
type Index struct {
	Resources []Resource `json:"resources"`
}

// SearchService returns the first resource declared as the search service
func (idx *Index) SearchService() (Resource, bool) {
	for _, r := range idx.Resources {
		if r.Type == SearchServiceType {
			return r, true
		}
	}
	return Resource{}, false
}

// PackageBaseAddress returns the last resource whose type starts with the
// base-address prefix, so the most recently listed variant wins.
func (idx *Index) PackageBaseAddress() (Resource, bool) {
	for i := len(idx.Resources) - 1; i >= 0; i-- {
		if strings.HasPrefix(idx.Resources[i].Type, BaseAddressTypePrefix) {
			return idx.Resources[i], true
		}
	}
	return Resource{}, false
}

// SearchResult is the search service response. The first record is the
// resolved version.
type SearchResult struct {
	Data []SearchRecord `json:"data"`
}

// SearchRecord is one package version returned by the search service
type SearchRecord struct {
	ID      string `json:"id,omitempty"`
	Version string `json:"version"`
}
