// Package main is the entry point for the flux CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Flux/internal/runtime"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitStatus ends the process with a non-zero status without reporting an
// error, e.g. after an interrupt.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.Execute(), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	var status exitStatus
	switch {
	case err == nil:
		return runtime.ExitOK
	case errors.As(err, &status):
		return int(status)
	default:
		fmt.Fprintf(stderr, "flux: %v\n", err)
		return runtime.ExitError
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	repo     string
	frontend string
	config   string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "flux",
		Short:         "flux — terminal selectors for issues, patches and notifications",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.repo, "repo", ".", "repository to work in")
	root.PersistentFlags().StringVar(&g.frontend, "frontend", "", "tree or inline (default from config)")
	root.PersistentFlags().StringVar(&g.config, "config", "", "settings file (default ~/.flux/config.toml)")

	root.AddCommand(
		inboxCmd(g),
		issueCmd(g),
		patchCmd(g),
		initCmd(),
		versionCmd(),
	)
	return root
}
