package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamingFunctions(t *testing.T) {
	stack := "myapp"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Network", Network(stack), "myapp"},
		{"Firewall", Firewall(stack), "myapp"},
		{"Server", Server(stack), "myapp-app"},
		{"SSHKey", SSHKey(stack), "myapp-deploy"},
		{"Tunnel", Tunnel(stack), "myapp-tunnel"},
		{"WorkflowFile", WorkflowFile(stack), ".github/workflows/myapp-deploy.yml"},
		{"StateObject", StateObject(stack), "myapp/edgeship.state.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestLabels(t *testing.T) {
	labels := Labels("myapp")
	assert.Equal(t, "myapp", labels[KeyStack])
	assert.Equal(t, ManagedByEdgeship, labels[KeyManagedBy])
}
