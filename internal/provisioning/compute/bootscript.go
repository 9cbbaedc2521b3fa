package compute

import (
	"fmt"

	"github.com/edgeship/edgeship/internal/bootscript"
	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/naming"
)

// renderBootScript assembles the first-boot script from config and the
// in-memory results of earlier phases. The rendered script carries the
// tunnel token and registry token and therefore must never be logged.
func renderBootScript(ctx *provisioning.Context) (string, error) {
	token, err := requireTunnelToken(ctx)
	if err != nil {
		return "", err
	}
	if len(ctx.State.DeployPublicKey) == 0 {
		return "", fmt.Errorf("deploy public key not available; ssh key step must run first")
	}

	return bootscript.Render(bootscript.Params{
		DeployUser:    naming.DeployUser(ctx.Config.Name),
		AuthorizedKey: string(ctx.State.DeployPublicKey),
		Database:      ctx.Config.Instance.Database,
		TunnelToken:   token,
		Registry:      ctx.Config.Deploy.Registry,
		RegistryUser:  ctx.Config.Deploy.RegistryUser,
		RegistryToken: ctx.Secrets.RegistryToken,
		Image:         ctx.Config.Deploy.Image,
		AppPort:       ctx.Config.Instance.AppPort,
	})
}
