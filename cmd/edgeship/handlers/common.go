// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"

	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/platform/cloudflare"
	"github.com/edgeship/edgeship/internal/platform/github"
	"github.com/edgeship/edgeship/internal/platform/hcloud"
	"github.com/edgeship/edgeship/internal/platform/s3"
	"github.com/edgeship/edgeship/internal/state"
	"github.com/edgeship/edgeship/internal/util/naming"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file.
	findConfigFile = config.FindConfigFile

	// loadSecrets reads provider credentials from the environment.
	loadSecrets = config.LoadSecrets

	// loadTimeouts reads the timeout knobs from the environment.
	loadTimeouts = config.LoadTimeouts

	// newInfraClient creates a new infrastructure client.
	newInfraClient = func(token string, timeouts *config.Timeouts) hcloud.InfrastructureManager {
		return hcloud.NewClient(token, hcloud.WithTimeouts(timeouts))
	}

	// newIngressClient creates a new tunnel/DNS client.
	newIngressClient = func(token string) cloudflare.IngressManager {
		return cloudflare.NewClient(token)
	}

	// newRepoClient creates a new repository client.
	newRepoClient = func(token string) github.RepoManager {
		return github.NewClient(token)
	}

	// newStateStore creates the snapshot store for a stack.
	newStateStore = defaultStateStore

	// newBucketChecker creates the client doctor uses to verify the
	// state bucket.
	newBucketChecker = func(s3cfg *config.S3StateConfig, secrets *config.Secrets) (bucketChecker, error) {
		return s3.NewClient(s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, secrets.S3AccessKey, secrets.S3SecretKey)
	}
)

// bucketChecker is the slice of the object store client doctor needs.
type bucketChecker interface {
	BucketExists(ctx context.Context) (bool, error)
}

// loadConfig loads and validates the stack configuration.
// If configPath is empty, it looks for edgeship.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'edgeship init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// defaultStateStore picks the snapshot store: S3 when configured, the
// local file otherwise.
func defaultStateStore(cfg *config.Config, secrets *config.Secrets) (state.Store, error) {
	if s3cfg := cfg.State.S3; s3cfg != nil {
		if err := secrets.RequireS3(); err != nil {
			return nil, err
		}
		client, err := s3.NewClient(s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, secrets.S3AccessKey, secrets.S3SecretKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create state store: %w", err)
		}
		return state.NewS3Store(client, naming.StateObject(cfg.Name)), nil
	}
	return state.NewFileStore(cfg.State.Path), nil
}

// loadSnapshot loads the stack snapshot, returning a fresh one when none
// has been written yet.
func loadSnapshot(ctx context.Context, store state.Store, stack string) (*state.Snapshot, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	if snap == nil {
		snap = state.NewSnapshot(stack)
	}
	return snap, nil
}
