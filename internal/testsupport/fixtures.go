package testsupport

import "github.com/edgeship/edgeship/internal/config"

// StackConfig returns a valid stack configuration for tests.
func StackConfig() *config.Config {
	cfg := &config.Config{
		Name:     "web",
		Location: "nbg1",
		Network: config.NetworkConfig{
			CIDR:       "10.20.0.0/16",
			SubnetCIDR: "10.20.1.0/24",
			Zone:       "eu-central",
		},
		Instance: config.InstanceConfig{
			Type:    "cx22",
			Image:   "ubuntu-24.04",
			AppPort: 8080,
		},
		Ingress: config.IngressConfig{
			Domain:    "example.com",
			Hostname:  "app.example.com",
			AccountID: "acc-1",
		},
		Deploy: config.DeployConfig{
			Repo:         "acme/web",
			Branch:       "main",
			Registry:     "ghcr.io",
			Image:        "ghcr.io/acme/web",
			RegistryUser: "acme",
		},
	}
	return cfg
}

// StackSecrets returns a full credential set for tests.
func StackSecrets() *config.Secrets {
	return &config.Secrets{
		HCloudToken:     "hcloud-test",
		CloudflareToken: "cf-test",
		GitHubToken:     "gh-test",
		RegistryToken:   "registry-test",
	}
}
