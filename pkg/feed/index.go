// pkg/feed/index.go
package feed

import (
	"context"
	"fmt"

	"github.com/arc-language/extpm/pkg/core"
)

// FetchIndex retrieves and parses the feed root index. Any failure here is
// pipeline-fatal.
func (c *Client) FetchIndex(ctx context.Context, indexURL string) (*Index, error) {
	c.logger.Debugf("Fetching feed index: %s", indexURL)

	resp, err := c.Get(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	idx, err := ParseIndex(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)
	}

	c.logger.Debugf("Feed lists %d resources", len(idx.Resources))
	return idx, nil
}
