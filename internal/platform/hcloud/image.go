package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ResolveImage looks up an OS image by name for the given architecture.
func (c *Client) ResolveImage(ctx context.Context, name string, architecture hcloud.Architecture) (*hcloud.Image, error) {
	image, _, err := c.image.GetByNameAndArchitecture(ctx, name, architecture)
	if err != nil {
		return nil, fmt.Errorf("failed to look up image %s: %w", name, err)
	}
	if image == nil {
		return nil, fmt.Errorf("image not found: %s (%s)", name, architecture)
	}
	if !image.Deprecated.IsZero() {
		// Deprecated images still work but will disappear; surface it early.
		return nil, fmt.Errorf("image %s is deprecated since %s, pick a newer image", name, image.Deprecated.Format("2006-01-02"))
	}
	return image, nil
}
