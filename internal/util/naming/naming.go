// Package naming provides consistent naming and labeling for provisioned
// resources.
//
// Infrastructure resources follow the pattern {stack}-{type} so that
// everything belonging to one stack can be identified and cleaned up by
// name, and labeled resources can additionally be found by label selector.
package naming

import "fmt"

// Standard label keys. The edgeship.io prefix namespaces our labels away
// from anything the user may have set on shared resources.
const (
	KeyStack     = "edgeship.io/stack"
	KeyManagedBy = "edgeship.io/managed-by"

	ManagedByEdgeship = "edgeship"
)

func Network(stack string) string {
	return stack
}

func Firewall(stack string) string {
	return stack
}

func Server(stack string) string {
	return fmt.Sprintf("%s-app", stack)
}

func SSHKey(stack string) string {
	return fmt.Sprintf("%s-deploy", stack)
}

func Tunnel(stack string) string {
	return fmt.Sprintf("%s-tunnel", stack)
}

func DeployUser(stack string) string {
	return "deploy"
}

func WorkflowFile(stack string) string {
	return fmt.Sprintf(".github/workflows/%s-deploy.yml", stack)
}

func StateObject(stack string) string {
	return fmt.Sprintf("%s/edgeship.state.json", stack)
}

// Labels returns the standard label set for stack resources.
func Labels(stack string) map[string]string {
	return map[string]string{
		KeyStack:     stack,
		KeyManagedBy: ManagedByEdgeship,
	}
}
