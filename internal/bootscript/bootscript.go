// Package bootscript renders the instance boot (user-data) script.
//
// The script runs once at first boot and finishes provisioning in a fixed
// order: deploy user creation, container runtime installation, optional
// database installation, tunnel client installation and registration,
// registry authentication, and finally the application container launch.
package bootscript

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/boot.sh.tmpl
var bootTemplate string

// Params parameterizes the boot script for one instance.
type Params struct {
	// DeployUser is the unprivileged account created for deployments.
	DeployUser string
	// AuthorizedKey is the OpenSSH public key granted to DeployUser.
	AuthorizedKey string
	// Database optionally installs a database ("postgres" or empty).
	Database string
	// TunnelToken registers the tunnel client with the provider.
	TunnelToken string
	// Registry, RegistryUser, RegistryToken authenticate docker pulls.
	Registry      string
	RegistryUser  string
	RegistryToken string
	// Image is the application container image reference.
	Image string
	// AppPort is the local port the container listens on.
	AppPort int
}

var tmpl = template.Must(template.New("boot").Parse(bootTemplate))

// Render produces the boot script. All fields except Database are required.
func Render(p Params) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to render boot script: %w", err)
	}

	script := buf.String()
	if !strings.HasPrefix(script, "#!/") {
		return "", fmt.Errorf("rendered boot script missing shebang")
	}
	return script, nil
}

func (p Params) validate() error {
	required := map[string]string{
		"deploy user":    p.DeployUser,
		"authorized key": p.AuthorizedKey,
		"tunnel token":   p.TunnelToken,
		"registry":       p.Registry,
		"registry user":  p.RegistryUser,
		"registry token": p.RegistryToken,
		"image":          p.Image,
	}
	for name, val := range required {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("boot script parameter %s is required", name)
		}
	}
	if p.AppPort < 1 || p.AppPort > 65535 {
		return fmt.Errorf("boot script app port %d out of range", p.AppPort)
	}
	return nil
}
