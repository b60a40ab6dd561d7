// Package main implements certctl CLI commands and utility routines required by the CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaultops/certctl/pkg/errcode"
	"github.com/vaultops/certctl/pkg/logger"
)

var globalUsage = `The certctl cli fetches mTLS certificate material for services
of a certificate-based trust domain backed by the Vault PKI secrets engine

To fetch a leaf certificate for a service, run:

   $ certctl fetch --domain example.com --component web --common-name svc1.example.com
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "certctl",
		Short:         "Fetch certificates from a trust domain's PKI backend",
		Long:          globalUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands here
	cmd.AddCommand(
		newFetchCmd(stdout),
		newListCmd(stdout),
		newEnvCmd(stdout),
		newErrInfoCmd(stdout),
		newVersionCmd(stdout),
	)

	return cmd
}

func main() {
	// Operation failures are logged once, at the exit boundary.
	if err := logger.SetLogLevel("info"); err != nil {
		os.Exit(1)
	}

	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// report prints err according to its classification and returns the process
// exit code: 1 for classified operation errors, reported as a single line;
// 2 for anything unexpected, reported with full detail.
func report(out io.Writer, err error) int {
	if _, ok := errcode.Classify(err); ok {
		fmt.Fprintln(out, color.RedString("Error: %s", err))
		return 1
	}

	fmt.Fprintf(out, "%s\n%+v\n", color.RedString("Unexpected error:"), err)
	return 2
}
