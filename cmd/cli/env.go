package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vaultops/certctl/pkg/logger"
)

const envHelp = `
This command prints out the environment information used by certctl
`

func newEnvCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "certctl client environment information",
		Long:  envHelp,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			envVars := map[string]string{
				"VAULT_ADDR":  os.Getenv("VAULT_ADDR"),
				"VAULT_TOKEN": redacted(os.Getenv("VAULT_TOKEN")),
				logger.EnvVarHumanReadableLogMessages: os.Getenv(logger.EnvVarHumanReadableLogMessages),
			}

			// Sort the variables by alphabetical order.
			// This allows for a constant output across calls to 'certctl env'.
			var keys []string
			for k := range envVars {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s=\"%s\"\n", k, envVars[k])
			}
		},
	}
	return cmd
}

func redacted(v string) string {
	if v == "" {
		return ""
	}
	return "<redacted>"
}
