package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	cmd := Completion()

	require.NotNil(t, cmd)
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
}

func TestCompletion_RejectsUnknownShell(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"completion", "tcsh"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	assert.Error(t, err)
}

func TestCompletion_RequiresArgument(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"completion"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	assert.Error(t, err)
}
