package github

import "context"

// RepoManager is the surface the delivery phase uses to commit workflow
// files and manage Actions secrets.
type RepoManager interface {
	GetRepository(ctx context.Context, owner, repo string) error
	GetFile(ctx context.Context, owner, repo, path, ref string) (content []byte, sha string, ok bool, err error)
	PutFile(ctx context.Context, owner, repo, path, branch, message string, content []byte) (changed bool, err error)
	DeleteFile(ctx context.Context, owner, repo, path, branch, message string) error
	PutSecret(ctx context.Context, owner, repo, name, value string) error
	DeleteSecret(ctx context.Context, owner, repo, name string) error
}

var _ RepoManager = (*Client)(nil)
