// Package main is the entry point for the edgeship CLI.
//
// edgeship is a command-line tool for provisioning a single-instance
// application stack: a Hetzner Cloud server on a private network, a
// Cloudflare Tunnel as the only public ingress path, and a GitHub Actions
// pipeline that deploys on every push. It is stateless and declarative:
// every run converges the providers toward the config file.
//
// Commands: init, plan, apply, destroy, doctor.
//
// For detailed usage information, run:
//
//	edgeship --help
package main

import (
	"fmt"
	"os"

	"github.com/edgeship/edgeship/cmd/edgeship/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
