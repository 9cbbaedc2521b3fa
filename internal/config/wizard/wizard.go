package wizard

import (
	"context"
	"fmt"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Stack Identity
	StackName string
	Location  string

	// Network
	NetworkCIDR  string
	SubnetCIDR   string
	SSHAllowList []string

	// Instance
	ServerType string
	OSImage    string
	AppPort    int
	Database   string

	// Ingress
	Domain    string
	Hostname  string
	AccountID string

	// Deploy
	Repo         string
	Branch       string
	Registry     string
	DeployImage  string
	RegistryUser string

	// State
	UseS3      bool
	S3Endpoint string
	S3Region   string
	S3Bucket   string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runStackIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("stack identity: %w", err)
	}

	if err := runNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := runInstanceGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}

	if err := runIngressGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("ingress: %w", err)
	}

	if err := runDeployGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("deploy: %w", err)
	}

	if err := runStateGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}

	return result, nil
}
