package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgeship/edgeship/internal/config"
	"github.com/edgeship/edgeship/internal/config/wizard"
)

func stubWizardResult() *wizard.Result {
	return &wizard.Result{
		StackName:    "web",
		Location:     "nbg1",
		NetworkCIDR:  "10.20.0.0/16",
		SubnetCIDR:   "10.20.1.0/24",
		ServerType:   "cx22",
		OSImage:      "ubuntu-24.04",
		AppPort:      8080,
		Domain:       "example.com",
		Hostname:     "app.example.com",
		AccountID:    "acc-1",
		Repo:         "acme/web",
		Branch:       "main",
		Registry:     "ghcr.io",
		DeployImage:  "ghcr.io/acme/web",
		RegistryUser: "acme",
	}
}

func TestInit_WritesConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*wizard.Result, error) {
		return stubWizardResult(), nil
	}

	var written *config.Config
	var writtenPath string
	writeConfig = func(cfg *config.Config, path string) error {
		written = cfg
		writtenPath = path
		return nil
	}

	output := captureOutput(func() {
		require.NoError(t, Init(context.Background(), "edgeship.yaml"))
	})

	require.NotNil(t, written)
	assert.Equal(t, "web", written.Name)
	assert.Equal(t, "edgeship.yaml", writtenPath)
	assert.Contains(t, output, "Configuration saved!")
	assert.Contains(t, output, "edgeship apply")
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(string) bool { return true }
	confirmOverwrite = func(string) (bool, error) { return false, nil }

	wizardRan := false
	runWizard = func(context.Context) (*wizard.Result, error) {
		wizardRan = true
		return stubWizardResult(), nil
	}

	output := captureOutput(func() {
		require.NoError(t, Init(context.Background(), "edgeship.yaml"))
	})

	assert.False(t, wizardRan, "declined overwrite must not run the wizard")
	assert.Contains(t, output, "canceled")
}

func TestInit_WizardError(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*wizard.Result, error) {
		return nil, errors.New("user interrupt")
	}

	var err error
	captureOutput(func() {
		err = Init(context.Background(), "edgeship.yaml")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}
