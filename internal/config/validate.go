package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

// ValidLocations contains all valid Hetzner Cloud datacenter locations.
// https://docs.hetzner.com/cloud/general/locations/
var ValidLocations = map[string]bool{
	"nbg1": true, // Nuremberg, Germany
	"fsn1": true, // Falkenstein, Germany
	"hel1": true, // Helsinki, Finland
	"ash":  true, // Ashburn, USA
	"hil":  true, // Hillsboro, USA
	"sin":  true, // Singapore
}

// ValidNetworkZones contains all valid Hetzner Cloud network zones.
// https://docs.hetzner.com/cloud/networks/overview/
var ValidNetworkZones = map[string]bool{
	"eu-central":   true,
	"us-east":      true,
	"us-west":      true,
	"ap-southeast": true,
}

// ValidDatabases lists the databases the boot script knows how to install.
var ValidDatabases = map[string]bool{
	"postgres": true,
}

// stackNameRegex validates stack names: 1-32 lowercase alphanumeric with hyphens.
var stackNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// repoRegex validates owner/name repository references.
var repoRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Validate checks the configuration and returns a detailed error on the
// first problem found.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !stackNameRegex.MatchString(c.Name) {
		return fmt.Errorf("name %q must be 1-32 lowercase alphanumeric characters or hyphens", c.Name)
	}
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if !ValidLocations[c.Location] {
		return fmt.Errorf("invalid location %q", c.Location)
	}

	if err := c.validateNetwork(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if err := c.validateInstance(); err != nil {
		return fmt.Errorf("instance validation failed: %w", err)
	}
	if err := c.validateIngress(); err != nil {
		return fmt.Errorf("ingress validation failed: %w", err)
	}
	if err := c.validateDeploy(); err != nil {
		return fmt.Errorf("deploy validation failed: %w", err)
	}
	return c.validateState()
}

func (c *Config) validateNetwork() error {
	if !ValidNetworkZones[c.Network.Zone] {
		return fmt.Errorf("invalid network zone %q", c.Network.Zone)
	}

	_, netRange, err := net.ParseCIDR(c.Network.CIDR)
	if err != nil {
		return fmt.Errorf("invalid cidr %q: %w", c.Network.CIDR, err)
	}

	subnetIP, subnetRange, err := net.ParseCIDR(c.Network.SubnetCIDR)
	if err != nil {
		return fmt.Errorf("invalid subnet_cidr %q: %w", c.Network.SubnetCIDR, err)
	}
	if !netRange.Contains(subnetIP) {
		return fmt.Errorf("subnet %s is not inside network %s", c.Network.SubnetCIDR, c.Network.CIDR)
	}
	netOnes, _ := netRange.Mask.Size()
	subnetOnes, _ := subnetRange.Mask.Size()
	if subnetOnes < netOnes {
		return fmt.Errorf("subnet %s is wider than network %s", c.Network.SubnetCIDR, c.Network.CIDR)
	}

	for _, cidr := range c.Network.SSHAllowList {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid ssh_allow_list entry %q: %w", cidr, err)
		}
	}
	return nil
}

func (c *Config) validateInstance() error {
	if c.Instance.AppPort < 1 || c.Instance.AppPort > 65535 {
		return fmt.Errorf("app_port %d out of range", c.Instance.AppPort)
	}
	if c.Instance.Database != "" && !ValidDatabases[c.Instance.Database] {
		return fmt.Errorf("unsupported database %q", c.Instance.Database)
	}
	return nil
}

func (c *Config) validateIngress() error {
	if c.Ingress.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if c.Ingress.Hostname == "" {
		return fmt.Errorf("hostname is required")
	}
	if c.Ingress.AccountID == "" {
		return fmt.Errorf("account_id is required")
	}
	if c.Ingress.Hostname != c.Ingress.Domain &&
		!strings.HasSuffix(c.Ingress.Hostname, "."+c.Ingress.Domain) {
		return fmt.Errorf("hostname %q is not within domain %q", c.Ingress.Hostname, c.Ingress.Domain)
	}
	return nil
}

func (c *Config) validateDeploy() error {
	if c.Deploy.Repo == "" {
		return fmt.Errorf("repo is required")
	}
	if !repoRegex.MatchString(c.Deploy.Repo) {
		return fmt.Errorf("repo %q must be in owner/name form", c.Deploy.Repo)
	}
	if c.Deploy.Image == "" {
		return fmt.Errorf("image is required")
	}
	if c.Deploy.RegistryUser == "" {
		return fmt.Errorf("registry_user is required")
	}
	return nil
}

func (c *Config) validateState() error {
	if s3 := c.State.S3; s3 != nil {
		if s3.Endpoint == "" || s3.Region == "" || s3.Bucket == "" {
			return fmt.Errorf("state.s3 requires endpoint, region, and bucket")
		}
	}
	return nil
}
