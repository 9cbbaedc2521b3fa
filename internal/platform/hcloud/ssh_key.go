package hcloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureSSHKey ensures the SSH key exists with the given public key.
// Key material is immutable on the provider side, so a fingerprint mismatch
// on an existing key is an error rather than an update.
func (c *Client) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	return (&EnsureOperation[*hcloud.SSHKey, hcloud.SSHKeyCreateOpts, any]{
		Name:         name,
		ResourceType: "ssh key",
		Get:          c.sshKey.Get,
		Create:       simpleCreate(c.sshKey.Create),
		Validate: func(key *hcloud.SSHKey) error {
			if strings.TrimSpace(key.PublicKey) != strings.TrimSpace(publicKey) {
				return fmt.Errorf("ssh key %s already exists with different key material", name)
			}
			return nil
		},
		CreateOptsMapper: func() hcloud.SSHKeyCreateOpts {
			return hcloud.SSHKeyCreateOpts{
				Name:      name,
				PublicKey: publicKey,
				Labels:    labels,
			}
		},
	}).Execute(ctx, c)
}

// GetSSHKey returns the SSH key by name, or nil if it doesn't exist.
func (c *Client) GetSSHKey(ctx context.Context, name string) (*hcloud.SSHKey, error) {
	key, _, err := c.sshKey.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get ssh key: %w", err)
	}
	return key, nil
}

// DeleteSSHKey deletes the SSH key with the given name.
func (c *Client) DeleteSSHKey(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.SSHKey]{
		Name:         name,
		ResourceType: "ssh key",
		Get:          c.sshKey.Get,
		Delete:       c.sshKey.Delete,
	}).Execute(ctx, c)
}
