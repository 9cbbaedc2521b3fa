// Package wizard implements the interactive stack configuration wizard
// used by the init command.
//
// The wizard walks through a series of question groups (stack identity,
// network, instance, ingress, deployment, state storage), collects the
// answers into a Result, and converts that into a config.Config which is
// written to disk as YAML.
package wizard
