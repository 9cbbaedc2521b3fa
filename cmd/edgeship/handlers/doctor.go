package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/edgeship/edgeship/internal/bootscript"
	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/util/naming"
	"github.com/edgeship/edgeship/internal/workflow"
)

// CheckResult is the outcome of one diagnostic check.
type CheckResult struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// DoctorReport aggregates all diagnostic checks for a stack.
type DoctorReport struct {
	Stack  string        `json:"stack"`
	Checks []CheckResult `json:"checks"`
}

// Failed reports whether any check failed.
func (r *DoctorReport) Failed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return true
		}
	}
	return false
}

// Doctor runs diagnostic checks: configuration validity, credentials,
// template rendering, and provider reachability.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secrets := loadSecrets()
	report := &DoctorReport{Stack: cfg.Name}

	report.add("credentials", checkCredentials(secrets))
	report.add("phase graph", newReconciler().ValidateGraph())
	report.add("boot script", checkBootScript(cfg))
	report.add("deploy workflow", checkWorkflow(cfg))

	// Provider checks only run with credentials present.
	if secrets.HCloudToken != "" {
		report.add("hetzner api", checkHetzner(ctx, cfg, secrets))
	}
	if secrets.CloudflareToken != "" {
		report.add("cloudflare zone", checkZone(ctx, cfg, secrets))
		report.add("dns records", checkDNSRecords(ctx, cfg, secrets))
	}
	if secrets.GitHubToken != "" {
		report.add("github repository", checkRepository(ctx, cfg, secrets))
	}
	if cfg.State.S3 != nil {
		report.add("state bucket", checkStateBucket(ctx, cfg, secrets))
	}

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printReport(report)
	}

	if report.Failed() {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func (r *DoctorReport) add(name string, err error) {
	result := CheckResult{Name: name, OK: err == nil}
	if err != nil {
		result.Message = err.Error()
	}
	r.Checks = append(r.Checks, result)
}

func checkCredentials(secrets *config.Secrets) error {
	return secrets.RequireProvisioning()
}

// checkBootScript renders the boot script with placeholder credentials to
// catch template and config problems before apply.
func checkBootScript(cfg *config.Config) error {
	_, err := bootscript.Render(bootscript.Params{
		DeployUser:    "deploy",
		AuthorizedKey: "ssh-ed25519 AAAA placeholder",
		Database:      cfg.Instance.Database,
		TunnelToken:   "placeholder",
		Registry:      cfg.Deploy.Registry,
		RegistryUser:  cfg.Deploy.RegistryUser,
		RegistryToken: "placeholder",
		Image:         cfg.Deploy.Image,
		AppPort:       cfg.Instance.AppPort,
	})
	return err
}

// checkWorkflow generates the deploy workflow and runs it back through the
// YAML validator.
func checkWorkflow(cfg *config.Config) error {
	wf := workflow.Generate(workflow.Params{
		Stack:        cfg.Name,
		Branch:       cfg.Deploy.Branch,
		Registry:     cfg.Deploy.Registry,
		RegistryUser: cfg.Deploy.RegistryUser,
		AppPort:      cfg.Instance.AppPort,
	})
	data, err := wf.Marshal()
	if err != nil {
		return err
	}
	return workflow.Validate(data)
}

func checkHetzner(ctx context.Context, cfg *config.Config, secrets *config.Secrets) error {
	infra := newInfraClient(secrets.HCloudToken, loadTimeouts())
	_, err := infra.GetNetwork(ctx, naming.Network(cfg.Name))
	return err
}

func checkZone(ctx context.Context, cfg *config.Config, secrets *config.Secrets) error {
	ingress := newIngressClient(secrets.CloudflareToken)
	_, err := ingress.GetZoneID(ctx, cfg.Ingress.Domain)
	return err
}

// checkDNSRecords verifies the token can read the zone's DNS records.
// The zone lookup alone does not touch the DNS scope.
func checkDNSRecords(ctx context.Context, cfg *config.Config, secrets *config.Secrets) error {
	ingress := newIngressClient(secrets.CloudflareToken)
	zoneID, err := ingress.GetZoneID(ctx, cfg.Ingress.Domain)
	if err != nil {
		return err
	}
	_, err = ingress.ListDNSRecords(ctx, zoneID, "CNAME")
	return err
}

func checkRepository(ctx context.Context, cfg *config.Config, secrets *config.Secrets) error {
	repo := newRepoClient(secrets.GitHubToken)
	return repo.GetRepository(ctx, cfg.RepoOwner(), cfg.RepoName())
}

func checkStateBucket(ctx context.Context, cfg *config.Config, secrets *config.Secrets) error {
	if err := secrets.RequireS3(); err != nil {
		return err
	}
	checker, err := newBucketChecker(cfg.State.S3, secrets)
	if err != nil {
		return err
	}
	exists, err := checker.BucketExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s not found", cfg.State.S3.Bucket)
	}
	return nil
}

func printReport(report *DoctorReport) {
	fmt.Printf("\nedgeship doctor: %s\n\n", report.Stack)
	for _, c := range report.Checks {
		indicator := "✅"
		if !c.OK {
			indicator = "❌"
		}
		if c.Message != "" {
			fmt.Printf("  %s  %-20s %s\n", indicator, c.Name, c.Message)
		} else {
			fmt.Printf("  %s  %s\n", indicator, c.Name)
		}
	}
	fmt.Println()

	if report.Failed() {
		fmt.Fprintln(os.Stderr, "Fix the failing checks above, then run 'edgeship apply'.")
	} else {
		fmt.Println("All checks passed. Run 'edgeship apply' to provision the stack.")
	}
}
