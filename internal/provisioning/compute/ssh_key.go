package compute

import (
	"strconv"

	"github.com/edgeship/edgeship/internal/provisioning"
	"github.com/edgeship/edgeship/internal/util/keygen"
	"github.com/edgeship/edgeship/internal/util/naming"
)

// provisionSSHKey ensures the deploy key exists at the provider. A fresh
// key pair is generated only when the provider has none; the private half
// then lives in memory until the delivery phase uploads it as a CI secret.
func (p *Provisioner) provisionSSHKey(ctx *provisioning.Context) error {
	keyName := naming.SSHKey(ctx.Config.Name)

	existing, err := ctx.Infra.GetSSHKey(ctx, keyName)
	if err != nil {
		return err
	}
	if existing != nil {
		ctx.State.SSHKeyID = existing.ID
		ctx.State.DeployPublicKey = []byte(existing.PublicKey)
		ctx.Snapshot.Resources.SSHKeyID = existing.ID
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "ssh key", keyName, strconv.FormatInt(existing.ID, 10))
		return nil
	}

	pair, err := keygen.GenerateKeyPair(naming.DeployUser(ctx.Config.Name) + "@" + ctx.Config.Name)
	if err != nil {
		return err
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "ssh key", keyName)
	key, err := ctx.Infra.EnsureSSHKey(ctx, keyName, string(pair.PublicKey), naming.Labels(ctx.Config.Name))
	if err != nil {
		return err
	}

	ctx.State.SSHKeyID = key.ID
	ctx.State.DeployPrivateKey = pair.PrivateKey
	ctx.State.DeployPublicKey = pair.PublicKey
	ctx.Snapshot.Resources.SSHKeyID = key.ID

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "ssh key", keyName, strconv.FormatInt(key.ID, 10))
	return nil
}
