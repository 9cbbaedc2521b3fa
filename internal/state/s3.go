package state

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/platform/s3"
)

// objectStore is the object storage surface the S3 store needs.
type objectStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte) error
	DeleteObject(ctx context.Context, key string) error
}

// S3Store keeps the snapshot as an object in a bucket so several machines
// can operate the same stack.
type S3Store struct {
	client objectStore
	key    string
}

// NewS3Store creates a store backed by an object storage client.
func NewS3Store(client *s3.Client, key string) *S3Store {
	return &S3Store{client: client, key: key}
}

func (s *S3Store) Load(ctx context.Context) (*Snapshot, error) {
	data, err := s.client.GetObject(ctx, s.key)
	if err != nil {
		if s3.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load remote state: %w", err)
	}
	return unmarshalSnapshot(data)
}

func (s *S3Store) Save(ctx context.Context, snap *Snapshot) error {
	data, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}
	if err := s.client.PutObject(ctx, s.key, data); err != nil {
		return fmt.Errorf("save remote state: %w", err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context) error {
	if err := s.client.DeleteObject(ctx, s.key); err != nil {
		return fmt.Errorf("delete remote state: %w", err)
	}
	return nil
}
