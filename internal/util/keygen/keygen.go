// Package keygen generates ed25519 key pairs for SSH authentication.
//
// Keys are produced in OpenSSH PEM format (private) and authorized_keys
// format (public), suitable for uploading to the cloud provider as an
// instance SSH key or to the source host as a CI deploy key.
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// KeyPair holds an ed25519 key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the private key in OpenSSH PEM format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateKeyPair generates a new ed25519 key pair. The comment is embedded
// in the private key and appended to the authorized_keys line.
func GenerateKeyPair(comment string) (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	privBlock, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	privateKeyPEM := pem.EncodeToMemory(privBlock)

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}
	pubBytes := ssh.MarshalAuthorizedKey(sshPub)

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pubBytes,
	}, nil
}
