package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		Name:     "myapp",
		Location: "nbg1",
		Ingress: IngressConfig{
			Domain:    "example.com",
			Hostname:  "app.example.com",
			AccountID: "acc-123",
		},
		Deploy: DeployConfig{
			Repo:         "acme/myapp",
			Image:        "ghcr.io/acme/myapp",
			RegistryUser: "acme",
		},
	}
	cfg.applyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing name", func(c *Config) { c.Name = "" }, "name is required"},
		{"bad name", func(c *Config) { c.Name = "My_App" }, "lowercase"},
		{"name too long", func(c *Config) { c.Name = strings.Repeat("a", 40) }, "lowercase"},
		{"missing location", func(c *Config) { c.Location = "" }, "location is required"},
		{"bad location", func(c *Config) { c.Location = "moon1" }, "invalid location"},
		{"bad zone", func(c *Config) { c.Network.Zone = "mars" }, "network zone"},
		{"bad cidr", func(c *Config) { c.Network.CIDR = "not-a-cidr" }, "invalid cidr"},
		{"subnet outside network", func(c *Config) { c.Network.SubnetCIDR = "192.168.0.0/24" }, "not inside"},
		{"subnet wider than network", func(c *Config) { c.Network.SubnetCIDR = "10.0.0.0/8" }, "not inside"},
		{"bad ssh allow list", func(c *Config) { c.Network.SSHAllowList = []string{"1.2.3.4"} }, "ssh_allow_list"},
		{"port out of range", func(c *Config) { c.Instance.AppPort = 70000 }, "out of range"},
		{"unknown database", func(c *Config) { c.Instance.Database = "oracle" }, "unsupported database"},
		{"missing domain", func(c *Config) { c.Ingress.Domain = "" }, "domain is required"},
		{"missing hostname", func(c *Config) { c.Ingress.Hostname = "" }, "hostname is required"},
		{"missing account", func(c *Config) { c.Ingress.AccountID = "" }, "account_id is required"},
		{"hostname outside domain", func(c *Config) { c.Ingress.Hostname = "app.other.org" }, "not within domain"},
		{"missing repo", func(c *Config) { c.Deploy.Repo = "" }, "repo is required"},
		{"malformed repo", func(c *Config) { c.Deploy.Repo = "no-slash" }, "owner/name"},
		{"missing image", func(c *Config) { c.Deploy.Image = "" }, "image is required"},
		{"missing registry user", func(c *Config) { c.Deploy.RegistryUser = "" }, "registry_user is required"},
		{"incomplete s3", func(c *Config) { c.State.S3 = &S3StateConfig{Bucket: "b"} }, "state.s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_HostnameEqualsDomain(t *testing.T) {
	cfg := validConfig()
	cfg.Ingress.Hostname = "example.com"
	assert.NoError(t, cfg.Validate())
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv(EnvHCloudToken, " hc-token ")
	t.Setenv(EnvCloudflareToken, "cf-token")
	t.Setenv(EnvGitHubToken, "gh-token")
	t.Setenv(EnvRegistryToken, "reg-token")

	s := LoadSecrets()
	assert.Equal(t, "hc-token", s.HCloudToken)
	require.NoError(t, s.RequireProvisioning())
}

func TestSecrets_RequireProvisioning_Missing(t *testing.T) {
	s := &Secrets{HCloudToken: "x"}
	err := s.RequireProvisioning()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvCloudflareToken)
	assert.Contains(t, err.Error(), EnvGitHubToken)
	assert.NotContains(t, err.Error(), EnvHCloudToken)
}

func TestSecrets_RequireS3(t *testing.T) {
	s := &Secrets{}
	require.Error(t, s.RequireS3())
	s.S3AccessKey = "a"
	s.S3SecretKey = "b"
	require.NoError(t, s.RequireS3())
}
