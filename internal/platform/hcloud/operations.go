package hcloud

import (
	"context"
	"fmt"
	"reflect"

	"github.com/edgeship/edgeship/internal/util/retry"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// CreateResult wraps the result of a resource creation operation.
// It carries the actions that may need to be awaited.
type CreateResult[T any] struct {
	Resource T
	Action   *hcloud.Action
	Actions  []*hcloud.Action
}

// EnsureOperation encapsulates get-or-create logic for an hcloud resource,
// with optional validation and update paths for resources that already
// exist. Every resource operation in this package is expressed through it
// so apply stays idempotent.
type EnsureOperation[T any, CreateOpts any, UpdateOpts any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource by name.
	Get func(ctx context.Context, name string) (T, *hcloud.Response, error)

	// Create creates the resource with the given options.
	Create func(ctx context.Context, opts CreateOpts) (*CreateResult[T], *hcloud.Response, error)

	// Update updates the resource if it exists (optional).
	Update func(ctx context.Context, resource T, opts UpdateOpts) ([]*hcloud.Action, *hcloud.Response, error)

	// NeedsUpdate decides whether Update runs for an existing resource
	// (optional, defaults to always when Update is set).
	NeedsUpdate func(resource T) bool

	// Validate checks that an existing resource matches the declaration
	// when it cannot be updated in place (optional).
	Validate func(resource T) error

	// CreateOptsMapper maps the declaration to create options.
	CreateOptsMapper func() CreateOpts

	// UpdateOptsMapper maps the declaration to update options
	// (required if Update is provided).
	UpdateOptsMapper func(resource T) UpdateOpts
}

// Execute performs the ensure operation: get the existing resource,
// validate or update it, or create it.
func (op *EnsureOperation[T, CreateOpts, UpdateOpts]) Execute(ctx context.Context, c *Client) (T, error) {
	var zero T

	resource, _, err := op.Get(ctx, op.Name)
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", op.ResourceType, err)
	}

	if !reflect.ValueOf(resource).IsNil() {
		if op.Validate != nil {
			if err := op.Validate(resource); err != nil {
				return zero, err
			}
		}

		if op.Update != nil && op.UpdateOptsMapper != nil {
			if op.NeedsUpdate == nil || op.NeedsUpdate(resource) {
				actions, _, err := op.Update(ctx, resource, op.UpdateOptsMapper(resource))
				if err != nil {
					return zero, fmt.Errorf("failed to update %s: %w", op.ResourceType, err)
				}
				if err := waitForActions(ctx, c.action, actions...); err != nil {
					return zero, fmt.Errorf("failed to wait for %s update: %w", op.ResourceType, err)
				}
			}
		}

		return resource, nil
	}

	result, _, err := op.Create(ctx, op.CreateOptsMapper())
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", op.ResourceType, err)
	}

	if err := waitForCreateResult(ctx, c.action, result); err != nil {
		return zero, fmt.Errorf("failed to wait for %s creation: %w", op.ResourceType, err)
	}

	return result.Resource, nil
}

// DeleteOperation encapsulates deletion logic for an hcloud resource.
// The operation is idempotent: it succeeds if the resource doesn't exist.
// Locked resources are retried with exponential backoff.
type DeleteOperation[T any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource by name.
	Get func(ctx context.Context, name string) (T, *hcloud.Response, error)

	// Delete removes the resource.
	Delete func(ctx context.Context, resource T) (*hcloud.Response, error)
}

// Execute performs the delete operation with retry and timeout handling.
func (op *DeleteOperation[T]) Execute(ctx context.Context, c *Client) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.Do(ctx, func() error {
		resource, _, err := op.Get(ctx, op.Name)
		if err != nil {
			return retry.Fatal(fmt.Errorf("failed to get %s: %w", op.ResourceType, err))
		}

		if reflect.ValueOf(resource).IsNil() {
			return nil // already gone
		}

		if _, err := op.Delete(ctx, resource); err != nil {
			if isResourceLocked(err) {
				return err // retryable
			}
			return retry.Fatal(err)
		}
		return nil
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

func waitForActions(ctx context.Context, waiter ActionAPI, actions ...*hcloud.Action) error {
	if len(actions) == 0 {
		return nil
	}
	return waiter.WaitFor(ctx, actions...)
}

func waitForCreateResult[T any](ctx context.Context, waiter ActionAPI, result *CreateResult[T]) error {
	if result.Action != nil {
		return waiter.WaitFor(ctx, result.Action)
	}
	return waitForActions(ctx, waiter, result.Actions...)
}

// simpleCreate wraps create functions that return the resource directly.
func simpleCreate[T any, Opts any](
	createFn func(context.Context, Opts) (T, *hcloud.Response, error),
) func(context.Context, Opts) (*CreateResult[T], *hcloud.Response, error) {
	return func(ctx context.Context, opts Opts) (*CreateResult[T], *hcloud.Response, error) {
		resource, resp, err := createFn(ctx, opts)
		if err != nil {
			return nil, resp, err
		}
		return &CreateResult[T]{Resource: resource}, resp, nil
	}
}
