package testsupport

import (
	"context"
	"crypto/sha1"
	"fmt"

	"github.com/edgeship/edgeship/internal/platform/github"
)

// FakeRepo is an in-memory source host: one repository with branch-agnostic
// file contents and a secret store that records plaintext values for
// assertions.
type FakeRepo struct {
	Files   map[string][]byte
	Secrets map[string]string
	Commits []string

	// Missing makes GetRepository fail, simulating a bad repo or token.
	Missing bool

	// Err, when set, is returned by every call.
	Err error
}

// NewFakeRepo creates an empty fake repository.
func NewFakeRepo() *FakeRepo {
	return &FakeRepo{
		Files:   map[string][]byte{},
		Secrets: map[string]string{},
	}
}

var _ github.RepoManager = (*FakeRepo)(nil)

func (f *FakeRepo) GetRepository(_ context.Context, owner, repo string) error {
	if f.Err != nil {
		return f.Err
	}
	if f.Missing {
		return fmt.Errorf("repository %s/%s not found", owner, repo)
	}
	return nil
}

func (f *FakeRepo) GetFile(_ context.Context, _, _, path, _ string) ([]byte, string, bool, error) {
	if f.Err != nil {
		return nil, "", false, f.Err
	}
	content, ok := f.Files[path]
	if !ok {
		return nil, "", false, nil
	}
	return content, fmt.Sprintf("%x", sha1.Sum(content)), true, nil
}

func (f *FakeRepo) PutFile(_ context.Context, _, _, path, _, message string, content []byte) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	if existing, ok := f.Files[path]; ok && string(existing) == string(content) {
		return false, nil
	}
	f.Files[path] = content
	f.Commits = append(f.Commits, message)
	return true, nil
}

func (f *FakeRepo) DeleteFile(_ context.Context, _, _, path, _, message string) error {
	if f.Err != nil {
		return f.Err
	}
	if _, ok := f.Files[path]; ok {
		delete(f.Files, path)
		f.Commits = append(f.Commits, message)
	}
	return nil
}

func (f *FakeRepo) PutSecret(_ context.Context, _, _, name, value string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Secrets[name] = value
	return nil
}

func (f *FakeRepo) DeleteSecret(_ context.Context, _, _, name string) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.Secrets, name)
	return nil
}
