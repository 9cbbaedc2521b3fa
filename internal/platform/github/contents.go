package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

type fileContent struct {
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

// GetFile returns the decoded content and blob SHA of a file on a branch.
// Returns ok=false when the file does not exist.
func (c *Client) GetFile(ctx context.Context, owner, repo, path, ref string) (content []byte, sha string, ok bool, err error) {
	url := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s", owner, repo, path, ref)

	var fc fileContent
	if err := c.do(ctx, http.MethodGet, url, nil, &fc); err != nil {
		if IsNotFound(err) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("get %s: %w", path, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fc.Content, "\n", ""))
	if err != nil {
		return nil, "", false, fmt.Errorf("decode %s: %w", path, err)
	}
	return decoded, fc.SHA, true, nil
}

// PutFile creates or updates a file on a branch with a single commit. The
// update is skipped when the remote content already matches.
func (c *Client) PutFile(ctx context.Context, owner, repo, path, branch, message string, content []byte) (changed bool, err error) {
	existing, sha, exists, err := c.GetFile(ctx, owner, repo, path, branch)
	if err != nil {
		return false, err
	}
	if exists && string(existing) == string(content) {
		return false, nil
	}

	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  branch,
	}
	if exists {
		body["sha"] = sha
	}

	url := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if err := c.do(ctx, http.MethodPut, url, body, nil); err != nil {
		return false, fmt.Errorf("commit %s: %w", path, err)
	}
	return true, nil
}

// DeleteFile removes a file from a branch. Missing files are not an error.
func (c *Client) DeleteFile(ctx context.Context, owner, repo, path, branch, message string) error {
	_, sha, exists, err := c.GetFile(ctx, owner, repo, path, branch)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	body := map[string]string{
		"message": message,
		"sha":     sha,
		"branch":  branch,
	}
	url := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if err := c.do(ctx, http.MethodDelete, url, body, nil); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// GetRepository checks that the repository exists and the token can see it.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) error {
	url := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := c.do(ctx, http.MethodGet, url, nil, nil); err != nil {
		return fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}
	return nil
}
