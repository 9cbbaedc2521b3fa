package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables carrying provider credentials. Tokens are never
// stored in the config file, the state snapshot, or log output.
const (
	EnvHCloudToken     = "HCLOUD_TOKEN"
	EnvCloudflareToken = "CLOUDFLARE_API_TOKEN"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvRegistryToken   = "REGISTRY_TOKEN"

	EnvS3AccessKey = "EDGESHIP_S3_ACCESS_KEY"
	EnvS3SecretKey = "EDGESHIP_S3_SECRET_KEY"
)

// Secrets holds provider credentials read from the environment.
type Secrets struct {
	HCloudToken     string
	CloudflareToken string
	GitHubToken     string
	RegistryToken   string

	S3AccessKey string
	S3SecretKey string
}

// LoadSecrets reads all provider credentials from the environment.
// Missing values are left empty; RequireProvisioning and RequireS3 enforce
// presence per command.
func LoadSecrets() *Secrets {
	return &Secrets{
		HCloudToken:     strings.TrimSpace(os.Getenv(EnvHCloudToken)),
		CloudflareToken: strings.TrimSpace(os.Getenv(EnvCloudflareToken)),
		GitHubToken:     strings.TrimSpace(os.Getenv(EnvGitHubToken)),
		RegistryToken:   strings.TrimSpace(os.Getenv(EnvRegistryToken)),
		S3AccessKey:     strings.TrimSpace(os.Getenv(EnvS3AccessKey)),
		S3SecretKey:     strings.TrimSpace(os.Getenv(EnvS3SecretKey)),
	}
}

// RequireProvisioning checks that the credentials needed by plan/apply/destroy
// are present.
func (s *Secrets) RequireProvisioning() error {
	var missing []string
	if s.HCloudToken == "" {
		missing = append(missing, EnvHCloudToken)
	}
	if s.CloudflareToken == "" {
		missing = append(missing, EnvCloudflareToken)
	}
	if s.GitHubToken == "" {
		missing = append(missing, EnvGitHubToken)
	}
	if s.RegistryToken == "" {
		missing = append(missing, EnvRegistryToken)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RequireS3 checks that S3 state credentials are present.
func (s *Secrets) RequireS3() error {
	var missing []string
	if s.S3AccessKey == "" {
		missing = append(missing, EnvS3AccessKey)
	}
	if s.S3SecretKey == "" {
		missing = append(missing, EnvS3SecretKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
