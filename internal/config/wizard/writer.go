package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edgeship/edgeship/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// Fields still at their defaults are dropped so the file stays readable.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(stripDefaults(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// stripDefaults returns a copy of cfg with default-valued fields cleared.
// LoadFile restores them, so omitting them loses nothing.
func stripDefaults(cfg *config.Config) *config.Config {
	out := *cfg

	if out.Network.CIDR == config.DefaultNetworkCIDR {
		out.Network.CIDR = ""
	}
	if out.Network.SubnetCIDR == config.DefaultSubnetCIDR {
		out.Network.SubnetCIDR = ""
	}
	if out.Network.Zone == config.DefaultNetworkZone {
		out.Network.Zone = ""
	}
	if out.Instance.Type == config.DefaultServerType {
		out.Instance.Type = ""
	}
	if out.Instance.Image == config.DefaultImage {
		out.Instance.Image = ""
	}
	if out.Instance.AppPort == config.DefaultAppPort {
		out.Instance.AppPort = 0
	}
	if out.Deploy.Branch == config.DefaultBranch {
		out.Deploy.Branch = ""
	}
	if out.Deploy.Registry == config.DefaultRegistry {
		out.Deploy.Registry = ""
	}
	if out.State.Path == config.DefaultStatePath {
		out.State.Path = ""
	}

	return &out
}

func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# edgeship stack configuration
# Generated by: edgeship init
# Generated at: %s
#
# Required environment variables:
#   HCLOUD_TOKEN         - Hetzner Cloud API token
#   CLOUDFLARE_API_TOKEN - Cloudflare API token (Tunnel + DNS edit)
#   GITHUB_TOKEN         - GitHub token with repo scope
#   REGISTRY_TOKEN       - Container registry token
#
# Usage:
#   edgeship apply -c %s
`, time.Now().Format(time.RFC3339), outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
