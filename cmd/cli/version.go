package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vaultops/certctl/pkg/version"
)

const versionHelp = `
This command prints the certctl version information
`

type versionCmd struct {
	out io.Writer
}

func newVersionCmd(out io.Writer) *cobra.Command {
	v := &versionCmd{out: out}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "certctl version",
		Long:  versionHelp,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			v.run()
		},
	}
	return cmd
}

func (v *versionCmd) run() {
	fmt.Fprintf(v.out, "Version: %s; Commit: %s; Date: %s\n",
		orNone(version.Version), orNone(version.GitCommit), orNone(version.BuildDate))
}

func orNone(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
