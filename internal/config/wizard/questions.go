package wizard

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/edgeship/edgeship/internal/config"
)

// stackNameRegex validates stack name format: 1-32 lowercase alphanumeric with hyphens.
var stackNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// repoRegex validates owner/name repository references.
var repoRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// runStackIdentityGroup prompts for stack name and location.
func runStackIdentityGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder("my-app").
				Value(&result.StackName).
				Validate(validateStackName),
			huh.NewSelect[string]().
				Title("Location").
				Description("Hetzner Cloud datacenter").
				Options(LocationsToOptions()...).
				Value(&result.Location),
		).Title("Stack Identity"),
	).RunWithContext(ctx)
}

// runNetworkGroup prompts for network ranges and the SSH allow list.
func runNetworkGroup(ctx context.Context, result *Result) error {
	result.NetworkCIDR = config.DefaultNetworkCIDR
	result.SubnetCIDR = config.DefaultSubnetCIDR

	var sshAllowInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Network CIDR").
				Description("Private network range").
				Value(&result.NetworkCIDR).
				Validate(validateCIDR),
			huh.NewInput().
				Title("Subnet CIDR").
				Description("Instance subnet, must be inside the network range").
				Value(&result.SubnetCIDR).
				Validate(validateCIDR),
			huh.NewInput().
				Title("SSH Allow List (Optional)").
				Description("Comma-separated CIDRs allowed to reach SSH. Leave empty to keep SSH closed; the tunnel is the only ingress path.").
				Placeholder("203.0.113.0/24 (or leave empty)").
				Value(&sshAllowInput).
				Validate(validateCIDRList),
		).Title("Network"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.SSHAllowList = parseCIDRList(sshAllowInput)
	return nil
}

// runInstanceGroup prompts for server type, image, app port, and database.
func runInstanceGroup(ctx context.Context, result *Result) error {
	result.ServerType = config.DefaultServerType
	result.OSImage = config.DefaultImage
	appPort := strconv.Itoa(config.DefaultAppPort)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Server Type").
				Description("Choose the server type for the app instance").
				Options(ServerTypesToOptions()...).
				Value(&result.ServerType),
			huh.NewSelect[string]().
				Title("OS Image").
				Options(ImagesToOptions()...).
				Value(&result.OSImage),
			huh.NewInput().
				Title("App Port").
				Description("Local port the application container listens on").
				Value(&appPort).
				Validate(validatePort),
			huh.NewSelect[string]().
				Title("Database").
				Description("Optionally install a database on first boot").
				Options(DatabaseOptions...).
				Value(&result.Database),
		).Title("Instance"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	// Validated above; Atoi cannot fail here.
	result.AppPort, _ = strconv.Atoi(strings.TrimSpace(appPort))
	return nil
}

// runIngressGroup prompts for the tunnel ingress path.
func runIngressGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Description("DNS zone managed in Cloudflare").
				Placeholder("example.com").
				Value(&result.Domain).
				Validate(validateDomain),
			huh.NewInput().
				Title("Hostname").
				Description("Public hostname routed through the tunnel").
				Placeholder("app.example.com").
				Value(&result.Hostname),
			huh.NewInput().
				Title("Cloudflare Account ID").
				Value(&result.AccountID).
				Validate(validateAccountID),
		).Title("Ingress"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if result.Hostname == "" {
		result.Hostname = result.Domain
	}
	return validateHostnameInDomain(result.Hostname, result.Domain)
}

// runDeployGroup prompts for the continuous-deployment pipeline settings.
func runDeployGroup(ctx context.Context, result *Result) error {
	result.Branch = config.DefaultBranch
	result.Registry = config.DefaultRegistry

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repository").
				Description("GitHub repository in owner/name form").
				Placeholder("acme/my-app").
				Value(&result.Repo).
				Validate(validateRepo),
			huh.NewInput().
				Title("Branch").
				Description("Pushes to this branch trigger a deploy").
				Value(&result.Branch),
			huh.NewInput().
				Title("Registry").
				Description("Container registry host").
				Value(&result.Registry),
			huh.NewInput().
				Title("Image").
				Description("Full image reference the pipeline builds").
				Placeholder("ghcr.io/acme/my-app (or leave empty to derive from the repository)").
				Value(&result.DeployImage),
			huh.NewInput().
				Title("Registry User").
				Placeholder("acme").
				Value(&result.RegistryUser),
		).Title("Deploy"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	// Derive the image from the repository when left empty.
	if result.DeployImage == "" {
		result.DeployImage = result.Registry + "/" + strings.ToLower(result.Repo)
	}
	return nil
}

// runStateGroup prompts for state snapshot storage.
func runStateGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Mirror state to S3?").
				Description("Keeps the state snapshot in an S3-compatible bucket in addition to the local file").
				Value(&result.UseS3),
		).Title("State Storage"),
	).RunWithContext(ctx)

	if err != nil || !result.UseS3 {
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("S3 Endpoint").
				Description("Leave empty for AWS S3").
				Placeholder("https://fsn1.your-objectstorage.com").
				Value(&result.S3Endpoint),
			huh.NewInput().
				Title("S3 Region").
				Placeholder("fsn1").
				Value(&result.S3Region),
			huh.NewInput().
				Title("S3 Bucket").
				Value(&result.S3Bucket).
				Validate(validateBucket),
		).Title("S3 State"),
	).RunWithContext(ctx)
}

func validateStackName(name string) error {
	if name == "" {
		return errStackNameRequired
	}
	if !stackNameRegex.MatchString(name) {
		return errStackNameInvalid
	}
	return nil
}

func validateCIDR(cidr string) error {
	if _, _, err := net.ParseCIDR(strings.TrimSpace(cidr)); err != nil {
		return errCIDRInvalid
	}
	return nil
}

func validateCIDRList(input string) error {
	for _, cidr := range parseCIDRList(input) {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return errCIDRInvalid
		}
	}
	return nil
}

func validatePort(input string) error {
	port, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || port < 1 || port > 65535 {
		return errPortInvalid
	}
	return nil
}

func validateDomain(domain string) error {
	if strings.TrimSpace(domain) == "" {
		return errDomainRequired
	}
	return nil
}

func validateAccountID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errAccountIDRequired
	}
	return nil
}

func validateHostnameInDomain(hostname, domain string) error {
	if hostname == domain || strings.HasSuffix(hostname, "."+domain) {
		return nil
	}
	return errHostnameInvalid
}

func validateRepo(repo string) error {
	if !repoRegex.MatchString(strings.TrimSpace(repo)) {
		return errRepoInvalid
	}
	return nil
}

func validateBucket(bucket string) error {
	if strings.TrimSpace(bucket) == "" {
		return errBucketRequired
	}
	return nil
}

// parseCIDRList splits a comma-separated CIDR list, trimming whitespace
// and dropping empty entries.
func parseCIDRList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	cidrs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cidrs = append(cidrs, trimmed)
		}
	}
	return cidrs
}
