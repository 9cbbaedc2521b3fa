// Package workflow generates the continuous-deployment pipeline committed
// to the source repository: a GitHub Actions workflow that builds the
// application image, pushes it to the registry, and restarts the container
// on the instance over SSH.
package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Canonical names of the CI secrets the workflow references. The delivery
// phase uploads values under exactly these names.
const (
	SecretRegistryToken = "REGISTRY_TOKEN"
	SecretDeployHost    = "DEPLOY_HOST"
	SecretDeployUser    = "DEPLOY_USER"
	SecretDeployKey     = "DEPLOY_KEY"
	SecretImageRef      = "IMAGE_REF"
)

// SecretNames lists every CI secret the workflow depends on.
var SecretNames = []string{
	SecretRegistryToken,
	SecretDeployHost,
	SecretDeployUser,
	SecretDeployKey,
	SecretImageRef,
}

// Params parameterizes workflow generation.
type Params struct {
	// Stack names the workflow.
	Stack string
	// Branch triggers the pipeline on push.
	Branch string
	// Registry is the container registry host.
	Registry string
	// RegistryUser authenticates the registry login step.
	RegistryUser string
	// AppPort is the local port the container binds on the instance.
	AppPort int
}

// Workflow is the root of a GitHub Actions workflow file.
type Workflow struct {
	Name string  `yaml:"name"`
	On   Trigger `yaml:"on"`
	Jobs Jobs    `yaml:"jobs"`
}

// Trigger holds the workflow trigger events.
type Trigger struct {
	Push PushTrigger `yaml:"push"`
}

// PushTrigger filters push events by branch.
type PushTrigger struct {
	Branches []string `yaml:"branches"`
}

// Jobs holds the build and deploy jobs in a fixed order.
type Jobs struct {
	Build  Job `yaml:"build"`
	Deploy Job `yaml:"deploy"`
}

// Job is one workflow job.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Needs  string `yaml:"needs,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// Step is one job step, either an action use or a run script.
type Step struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}

// Generate builds the deploy workflow for the stack.
func Generate(p Params) *Workflow {
	imageExpr := fmt.Sprintf("${{ secrets.%s }}", SecretImageRef)

	return &Workflow{
		Name: fmt.Sprintf("%s-deploy", p.Stack),
		On: Trigger{
			Push: PushTrigger{Branches: []string{p.Branch}},
		},
		Jobs: Jobs{
			Build: Job{
				RunsOn: "ubuntu-latest",
				Steps: []Step{
					{
						Name: "Checkout",
						Uses: "actions/checkout@v4",
					},
					{
						Name: "Log in to registry",
						Uses: "docker/login-action@v3",
						With: map[string]string{
							"registry": p.Registry,
							"username": p.RegistryUser,
							"password": fmt.Sprintf("${{ secrets.%s }}", SecretRegistryToken),
						},
					},
					{
						Name: "Build and push",
						Uses: "docker/build-push-action@v6",
						With: map[string]string{
							"context": ".",
							"push":    "true",
							"tags":    imageExpr + ":latest",
						},
					},
				},
			},
			Deploy: Job{
				RunsOn: "ubuntu-latest",
				Needs:  "build",
				Steps: []Step{
					{
						Name: "Restart application container",
						Uses: "appleboy/ssh-action@v1",
						With: map[string]string{
							"host":     fmt.Sprintf("${{ secrets.%s }}", SecretDeployHost),
							"username": fmt.Sprintf("${{ secrets.%s }}", SecretDeployUser),
							"key":      fmt.Sprintf("${{ secrets.%s }}", SecretDeployKey),
							"script": fmt.Sprintf(
								"docker pull %[1]s:latest\ndocker rm -f app\ndocker run -d --name app --restart unless-stopped -p 127.0.0.1:%[2]d:%[2]d %[1]s:latest",
								imageExpr, p.AppPort),
						},
					},
				},
			},
		},
	}
}

// Marshal renders the workflow as YAML.
func (w *Workflow) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workflow: %w", err)
	}
	return data, nil
}

// Validate checks that YAML round-trips, used by doctor.
func Validate(data []byte) error {
	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("invalid workflow yaml: %w", err)
	}
	if w.Name == "" {
		return fmt.Errorf("workflow has no name")
	}
	if len(w.Jobs.Build.Steps) == 0 || len(w.Jobs.Deploy.Steps) == 0 {
		return fmt.Errorf("workflow is missing build or deploy steps")
	}
	return nil
}
