// Package delivery wires the source repository into the stack: it commits
// the deploy workflow and uploads the CI secrets it references.
package delivery

import (
	"fmt"

	"github.com/edgeship/edgeship/internal/plan"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
	"github.com/edgeship/edgeship/internal/workflow"
)

// Provisioner converges the workflow file and repository secrets.
type Provisioner struct{}

// NewProvisioner creates a delivery provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "delivery"
}

func generateWorkflow(ctx *provisioning.Context) ([]byte, error) {
	w := workflow.Generate(workflow.Params{
		Stack:        ctx.Config.Name,
		Branch:       ctx.Config.Deploy.Branch,
		Registry:     ctx.Config.Deploy.Registry,
		RegistryUser: ctx.Config.Deploy.RegistryUser,
		AppPort:      ctx.Config.Instance.AppPort,
	})
	return w.Marshal()
}

// Plan implements provisioning.Phase.
func (p *Provisioner) Plan(ctx *provisioning.Context, pl *plan.Plan) error {
	owner, repo := ctx.Config.RepoOwner(), ctx.Config.RepoName()
	path := naming.WorkflowFile(ctx.Config.Name)

	desired, err := generateWorkflow(ctx)
	if err != nil {
		return err
	}

	existing, _, ok, err := ctx.Repo.GetFile(ctx, owner, repo, path, ctx.Config.Deploy.Branch)
	if err != nil {
		return err
	}
	switch {
	case !ok:
		pl.Add(plan.Step{Kind: "workflow", Name: path, Action: plan.ActionCreate, Reason: "not found"})
	case string(existing) != string(desired):
		pl.Add(plan.Step{Kind: "workflow", Name: path, Action: plan.ActionUpdate, Reason: "content differs"})
	default:
		pl.Add(plan.Step{Kind: "workflow", Name: path, Action: plan.ActionNoop})
	}

	// Secret values are write-only upstream, so apply always re-uploads.
	for _, name := range workflow.SecretNames {
		pl.Add(plan.Step{Kind: "secret", Name: name, Action: plan.ActionUpdate, Reason: "re-uploaded on apply"})
	}
	return nil
}

// Provision implements provisioning.Phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.provisionWorkflow(ctx); err != nil {
		return err
	}
	return p.provisionSecrets(ctx)
}

func (p *Provisioner) provisionWorkflow(ctx *provisioning.Context) error {
	owner, repo := ctx.Config.RepoOwner(), ctx.Config.RepoName()
	path := naming.WorkflowFile(ctx.Config.Name)

	data, err := generateWorkflow(ctx)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Add %s deploy workflow", ctx.Config.Name)
	changed, err := ctx.Repo.PutFile(ctx, owner, repo, path, ctx.Config.Deploy.Branch, message, data)
	if err != nil {
		return err
	}
	ctx.Snapshot.Resources.Workflow = path

	if changed {
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "workflow", path, "")
	} else {
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "workflow", path, "")
	}
	return nil
}

// provisionSecrets uploads the CI secrets the workflow references. The
// deploy key is only rotated when the compute phase generated a new pair.
func (p *Provisioner) provisionSecrets(ctx *provisioning.Context) error {
	if ctx.State.ServerIPv4 == "" {
		return fmt.Errorf("server address not available; compute phase must run first")
	}

	owner, repo := ctx.Config.RepoOwner(), ctx.Config.RepoName()

	values := map[string]string{
		workflow.SecretRegistryToken: ctx.Secrets.RegistryToken,
		workflow.SecretDeployHost:    ctx.State.ServerIPv4,
		workflow.SecretDeployUser:    naming.DeployUser(ctx.Config.Name),
		workflow.SecretImageRef:      ctx.Config.Deploy.Image,
	}
	if len(ctx.State.DeployPrivateKey) > 0 {
		values[workflow.SecretDeployKey] = string(ctx.State.DeployPrivateKey)
	}

	for _, name := range workflow.SecretNames {
		value, ok := values[name]
		if !ok {
			continue
		}
		if err := ctx.Repo.PutSecret(ctx, owner, repo, name, value); err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "secret", name, "")
	}
	return nil
}
