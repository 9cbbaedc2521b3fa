package config

// Defaults applied by LoadFile when fields are omitted.
const (
	DefaultNetworkCIDR = "10.20.0.0/16"
	DefaultSubnetCIDR  = "10.20.1.0/24"
	DefaultNetworkZone = "eu-central"
	DefaultServerType  = "cx22"
	DefaultImage       = "ubuntu-24.04"
	DefaultAppPort     = 8080
	DefaultBranch      = "main"
	DefaultRegistry    = "ghcr.io"
	DefaultStatePath   = "edgeship.state.json"
)
