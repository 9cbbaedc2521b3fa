// Package config defines the stack configuration and its loading,
// defaulting, and validation rules.
package config

// Config holds the declarative description of one application stack:
// the cloud network and instance, the tunnel ingress path, and the
// continuous-deployment pipeline.
//
// Provider credentials are deliberately absent: they are read from the
// environment (see Secrets) and never written to or read from the config
// file.
type Config struct {
	// Name identifies the stack. All provisioned resources derive their
	// names and labels from it.
	Name string `yaml:"name"`

	// Location is the cloud datacenter location, e.g. nbg1, fsn1, hel1.
	Location string `yaml:"location"`

	Network  NetworkConfig  `yaml:"network"`
	Instance InstanceConfig `yaml:"instance"`
	Ingress  IngressConfig  `yaml:"ingress"`
	Deploy   DeployConfig   `yaml:"deploy"`

	// State configures where the post-apply snapshot is written.
	State StateConfig `yaml:"state,omitempty"`
}

// NetworkConfig describes the private network and its security rules.
type NetworkConfig struct {
	// CIDR is the network range. Default: 10.20.0.0/16.
	CIDR string `yaml:"cidr,omitempty"`

	// SubnetCIDR is the instance subnet. Must be inside CIDR.
	// Default: 10.20.1.0/24.
	SubnetCIDR string `yaml:"subnet_cidr,omitempty"`

	// Zone is the provider network zone. Default: eu-central.
	Zone string `yaml:"zone,omitempty"`

	// SSHAllowList restricts inbound SSH to these CIDRs. Empty means SSH
	// stays closed: the tunnel is the only ingress path.
	SSHAllowList []string `yaml:"ssh_allow_list,omitempty"`
}

// InstanceConfig describes the compute instance and its boot script inputs.
type InstanceConfig struct {
	// Type is the server type, e.g. cx22. Default: cx22.
	Type string `yaml:"type,omitempty"`

	// Image is the OS image name or selector. Default: ubuntu-24.04.
	Image string `yaml:"image,omitempty"`

	// AppPort is the local port the application container listens on.
	// Default: 8080.
	AppPort int `yaml:"app_port,omitempty"`

	// Database optionally installs a database on first boot.
	// Supported: "postgres". Empty means none.
	Database string `yaml:"database,omitempty"`
}

// IngressConfig describes the tunnel ingress path.
type IngressConfig struct {
	// Domain is the DNS zone, e.g. example.com.
	Domain string `yaml:"domain"`

	// Hostname is the public hostname routed through the tunnel,
	// e.g. app.example.com. Must be the domain or a subdomain of it.
	Hostname string `yaml:"hostname"`

	// AccountID is the tunnel provider account the tunnel is created in.
	AccountID string `yaml:"account_id"`
}

// DeployConfig describes the continuous-deployment pipeline.
type DeployConfig struct {
	// Repo is the source repository in owner/name form.
	Repo string `yaml:"repo"`

	// Branch triggers the pipeline on push. Default: main.
	Branch string `yaml:"branch,omitempty"`

	// Registry is the container registry host. Default: ghcr.io.
	Registry string `yaml:"registry,omitempty"`

	// Image is the full image reference the pipeline builds and the
	// instance runs, e.g. ghcr.io/owner/myapp.
	Image string `yaml:"image"`

	// RegistryUser authenticates against the registry, both on the
	// instance and in the pipeline.
	RegistryUser string `yaml:"registry_user"`
}

// StateConfig configures state snapshot storage.
type StateConfig struct {
	// Path is the local snapshot file. Default: edgeship.state.json.
	Path string `yaml:"path,omitempty"`

	// S3 optionally mirrors the snapshot to an S3-compatible bucket.
	S3 *S3StateConfig `yaml:"s3,omitempty"`
}

// S3StateConfig points at an S3-compatible object store.
// Credentials come from the environment (see Secrets).
type S3StateConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
}

// RepoOwner returns the owner part of Deploy.Repo, or "" if malformed.
func (c *Config) RepoOwner() string {
	owner, _ := splitRepo(c.Deploy.Repo)
	return owner
}

// RepoName returns the name part of Deploy.Repo, or "" if malformed.
func (c *Config) RepoName() string {
	_, name := splitRepo(c.Deploy.Repo)
	return name
}

func splitRepo(repo string) (owner, name string) {
	for i := 0; i < len(repo); i++ {
		if repo[i] == '/' {
			return repo[:i], repo[i+1:]
		}
	}
	return "", ""
}
