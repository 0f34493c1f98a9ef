// pkg/feed/search.go
package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/arc-language/extpm/pkg/core"
)

// SearchURL builds the query URL for packageID against the search endpoint.
// Query parameters already present on the endpoint are kept.
func SearchURL(endpoint, packageID string, includePrerelease bool) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing search endpoint %q: %w", endpoint, err)
	}

	q := u.Query()
	q.Set("q", "packageid:"+strings.ToLower(packageID))
	if includePrerelease {
		q.Set("prerelease", "true")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Locate asks the feed's search service for packageID and returns the
// version of the first record, verbatim. No sorting is applied: the feed's
// order is authoritative.
func (c *Client) Locate(ctx context.Context, idx *Index, packageID string, includePrerelease bool) (string, error) {
	svc, ok := idx.SearchService()
	if !ok {
		return "", fmt.Errorf("%w: feed lists no %s", core.ErrServiceUnavailable, SearchServiceType)
	}

	queryURL, err := SearchURL(svc.ID, packageID, includePrerelease)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrServiceUnavailable, err)
	}

	c.logger.Debugf("Searching: %s", queryURL)

	resp, err := c.Get(ctx, queryURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	res, err := ParseSearch(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)
	}

	if len(res.Data) == 0 {
		return "", fmt.Errorf("%w: no versions of %s", core.ErrVersionNotFound, packageID)
	}

	version := res.Data[0].Version
	if IsPrerelease(version) {
		c.logger.Debugf("Resolved %s %s (pre-release)", packageID, version)
	} else {
		c.logger.Debugf("Resolved %s %s", packageID, version)
	}

	return version, nil
}

// IsPrerelease reports whether version carries a semver pre-release tag.
// Versions that are not semver (four-part legacy versions) never are.
func IsPrerelease(version string) bool {
	v := "v" + strings.TrimPrefix(version, "v")
	return semver.IsValid(v) && semver.Prerelease(v) != ""
}
