package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/vaultops/certctl/pkg/errcode"
	"github.com/vaultops/certctl/pkg/fetcher"
	"github.com/vaultops/certctl/pkg/logger"
)

const fetchDescription = `
This command fetches a fresh leaf certificate and private key for a service of a
trust domain from the domain's PKI backend, or, with --bootstrap-ca, the domain
CA certificate itself.

A leaf fetch writes three files to the output directory: the private key
(readable only by the owner), the leaf certificate and the CA chain. A
bootstrap fetch requires no token and writes a single CA certificate file;
subsequent fetches can verify the backend against it via --ca-path.
`

const fetchExample = `  # Fetch a leaf certificate for svc1
  certctl fetch --domain example.com --component web --common-name svc1.example.com

  # First contact: fetch the domain CA without a local trust anchor
  certctl fetch --domain example.com --bootstrap-ca --ca-output-dir /etc/ssl/domains
`

type fetchCmd struct {
	out      io.Writer
	config   fetcher.Config
	altNames string
	ipSANs   string
	debug    bool
}

func newFetchCmd(out io.Writer) *cobra.Command {
	fc := &fetchCmd{out: out}

	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "fetch a leaf certificate or the domain CA",
		Long:    fetchDescription,
		Example: fetchExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fc.debug {
				if err := logger.SetLogLevel("debug"); err != nil {
					return errcode.New(errcode.ErrSettingLogLevel, err)
				}
			}
			if err := fc.resolve(); err != nil {
				return err
			}
			return fc.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVar(&fc.config.Domain, "domain", "", "trust domain whose pki/{domain} mount is addressed")
	f.StringVar(&fc.config.Component, "component", "", "logical service category the issuance role is scoped to")
	f.StringVar(&fc.config.CommonName, "common-name", "", "common name the leaf certificate is issued for")
	f.StringVar(&fc.config.Token, "token", "", "issuance token (defaults to $VAULT_TOKEN)")
	f.StringVar(&fc.altNames, "alt-names", "", "comma-separated DNS subject alternative names")
	f.StringVar(&fc.ipSANs, "ip-sans", "", "comma-separated IP subject alternative names")
	f.DurationVar(&fc.config.TTL, "ttl", 8760*time.Hour, "requested certificate validity period")
	f.StringVar(&fc.config.VaultAddress, "vault-address", "", "address of the Vault backend (defaults to $VAULT_ADDR)")
	f.BoolVar(&fc.config.NoTLSVerify, "no-ssl-verify", false, "skip TLS verification of the backend's identity")
	f.BoolVar(&fc.config.BootstrapCA, "bootstrap-ca", false, "fetch the domain CA certificate instead of a leaf pair (implies --no-ssl-verify)")
	f.StringVar(&fc.config.OutputDir, "output-dir", ".", "directory receiving the key, certificate and chain files")
	f.StringVar(&fc.config.CAOutputDir, "ca-output-dir", "", "directory receiving the CA certificate in bootstrap mode (defaults to --output-dir)")
	f.StringVar(&fc.config.CAPath, "ca-path", "", "CA certificate file used to verify the backend")
	f.BoolVar(&fc.debug, "debug", false, "enable debug logging")

	return cmd
}

// resolve fills environment fallbacks and normalizes flag values into the
// fetcher configuration. The environment is consulted only here, at the CLI
// boundary.
func (fc *fetchCmd) resolve() error {
	if fc.config.Token == "" {
		fc.config.Token = os.Getenv("VAULT_TOKEN")
	}

	fc.config.AltNames = splitCommaSeparatedValues(fc.altNames)
	fc.config.IPSANs = splitCommaSeparatedValues(fc.ipSANs)

	for _, p := range []*string{&fc.config.OutputDir, &fc.config.CAOutputDir, &fc.config.CAPath} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return errcode.New(errcode.ErrInvalidConfig, err)
		}
		*p = expanded
	}

	return nil
}

func (fc *fetchCmd) run(ctx context.Context) error {
	f, err := fetcher.New(fc.config)
	if err != nil {
		return err
	}

	result, err := f.Run(ctx)
	if err != nil {
		return err
	}

	if result.CAPath != "" {
		fmt.Fprintf(fc.out, "Wrote CA certificate for domain %q to %s\n", fc.config.Domain, result.CAPath)
		return nil
	}

	fmt.Fprintf(fc.out, "Wrote certificate material for %q:\n  key:   %s\n  cert:  %s\n  chain: %s\n",
		fc.config.CommonName, result.Bundle.Key, result.Bundle.Cert, result.Bundle.Chain)
	return nil
}
