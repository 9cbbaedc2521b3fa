package wizard

import "github.com/edgeship/edgeship/internal/config"

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *Result) *config.Config {
	cfg := &config.Config{
		Name:     result.StackName,
		Location: result.Location,
		Network: config.NetworkConfig{
			CIDR:       result.NetworkCIDR,
			SubnetCIDR: result.SubnetCIDR,
		},
		Instance: config.InstanceConfig{
			Type:     result.ServerType,
			Image:    result.OSImage,
			AppPort:  result.AppPort,
			Database: result.Database,
		},
		Ingress: config.IngressConfig{
			Domain:    result.Domain,
			Hostname:  result.Hostname,
			AccountID: result.AccountID,
		},
		Deploy: config.DeployConfig{
			Repo:         result.Repo,
			Branch:       result.Branch,
			Registry:     result.Registry,
			Image:        result.DeployImage,
			RegistryUser: result.RegistryUser,
		},
	}

	// Only set the allow list if provided (optional field).
	if len(result.SSHAllowList) > 0 {
		cfg.Network.SSHAllowList = result.SSHAllowList
	}

	if result.UseS3 {
		cfg.State.S3 = &config.S3StateConfig{
			Endpoint: result.S3Endpoint,
			Region:   result.S3Region,
			Bucket:   result.S3Bucket,
		}
	}

	return cfg
}
