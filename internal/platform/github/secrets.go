package github

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/box"
)

// PublicKey is a repository's Actions secrets public key.
type PublicKey struct {
	KeyID string `json:"key_id"`
	Key   string `json:"key"`
}

// GetSecretsPublicKey fetches the key used to encrypt Actions secrets.
func (c *Client) GetSecretsPublicKey(ctx context.Context, owner, repo string) (*PublicKey, error) {
	url := fmt.Sprintf("/repos/%s/%s/actions/secrets/public-key", owner, repo)

	var key PublicKey
	if err := c.do(ctx, http.MethodGet, url, nil, &key); err != nil {
		return nil, fmt.Errorf("get secrets public key: %w", err)
	}
	return &key, nil
}

// PutSecret encrypts a value with the repository public key and stores it
// as an Actions secret. The plaintext never appears in the request.
func (c *Client) PutSecret(ctx context.Context, owner, repo, name, value string) error {
	key, err := c.GetSecretsPublicKey(ctx, owner, repo)
	if err != nil {
		return err
	}

	encrypted, err := sealSecret(key.Key, value)
	if err != nil {
		return fmt.Errorf("encrypt secret %s: %w", name, err)
	}

	body := map[string]string{
		"encrypted_value": encrypted,
		"key_id":          key.KeyID,
	}
	url := fmt.Sprintf("/repos/%s/%s/actions/secrets/%s", owner, repo, name)
	if err := c.do(ctx, http.MethodPut, url, body, nil); err != nil {
		return fmt.Errorf("put secret %s: %w", name, err)
	}
	return nil
}

// DeleteSecret removes an Actions secret. Missing secrets are not an error.
func (c *Client) DeleteSecret(ctx context.Context, owner, repo, name string) error {
	url := fmt.Sprintf("/repos/%s/%s/actions/secrets/%s", owner, repo, name)
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete secret %s: %w", name, err)
	}
	return nil
}

// sealSecret encrypts plaintext for the repository key using an anonymous
// sealed box: an ephemeral keypair, a BLAKE2b nonce derived from both public
// keys, and the ephemeral public key prepended to the ciphertext.
func sealSecret(base64PublicKey, plaintext string) (string, error) {
	pubBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64PublicKey))
	if err != nil {
		return "", fmt.Errorf("decode public key: %w", err)
	}
	if len(pubBytes) != 32 {
		return "", fmt.Errorf("invalid public key length: %d", len(pubBytes))
	}
	var recipientPub [32]byte
	copy(recipientPub[:], pubBytes)

	ephemeralPub, ephemeralPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate ephemeral key: %w", err)
	}

	nonceBytes := blake2b.Sum256(append(ephemeralPub[:], recipientPub[:]...))
	var nonce [24]byte
	copy(nonce[:], nonceBytes[:24])

	sealed := box.Seal(nil, []byte(plaintext), &nonce, &recipientPub, ephemeralPriv)

	out := make([]byte, 0, len(ephemeralPub)+len(sealed))
	out = append(out, ephemeralPub[:]...)
	out = append(out, sealed...)
	return base64.StdEncoding.EncodeToString(out), nil
}
