package fetcher

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config is the full set of inputs for one fetch invocation. Environment
// variables are resolved at the CLI boundary; by the time a Config exists,
// everything is explicit.
type Config struct {
	// Domain is the trust domain whose pki/{domain} mount is addressed.
	Domain string

	// Component is the logical service category the issuance role is scoped to.
	// Parameterizes output file names.
	Component string

	// Token is the issuance token. Not required for bootstrap.
	Token string

	// VaultAddress of the backend; empty means the Vault API's own resolution.
	VaultAddress string

	// CommonName the leaf certificate is issued for.
	CommonName string

	// AltNames are additional DNS subject alternative names.
	AltNames []string

	// IPSANs are IP subject alternative names.
	IPSANs []string

	// TTL is the requested validity period of the leaf certificate.
	TTL time.Duration

	// NoTLSVerify disables verification of the backend's TLS identity.
	NoTLSVerify bool

	// BootstrapCA fetches the domain CA certificate instead of a leaf pair.
	BootstrapCA bool

	// OutputDir receives the key/cert/chain trio.
	OutputDir string

	// CAOutputDir receives the CA certificate in bootstrap mode. Falls back to
	// OutputDir.
	CAOutputDir string

	// CAPath is a CA certificate file to verify the backend against.
	CAPath string
}

// Validate checks the configuration before any network traffic. All problems
// are reported at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Domain == "" {
		result = multierror.Append(result, errors.New("a domain is required"))
	}

	if !c.BootstrapCA {
		if c.Component == "" {
			result = multierror.Append(result, errors.New("a component is required"))
		}
		if c.CommonName == "" {
			result = multierror.Append(result, errors.New("a common name is required"))
		}
		if c.Token == "" {
			result = multierror.Append(result, errors.New("an issuance token is required (flag or VAULT_TOKEN)"))
		}
		if c.TTL <= 0 {
			result = multierror.Append(result, errors.New("ttl must be positive"))
		}
	}

	return result.ErrorOrNil()
}

func (c Config) outputDir() string {
	if c.OutputDir == "" {
		return "."
	}
	return c.OutputDir
}

func (c Config) caOutputDir() string {
	if c.CAOutputDir == "" {
		return c.outputDir()
	}
	return c.CAOutputDir
}
