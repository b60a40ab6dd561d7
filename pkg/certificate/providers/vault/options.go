package vault

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/vaultops/certctl/pkg/trust"
)

// Options configure the connection to the Vault PKI backend.
type Options struct {
	// Address of the Vault backend. When empty the client falls back to the
	// address resolution of the Vault API (VAULT_ADDR).
	Address string

	// Token used for issuance requests. Not required for CA-only fetches.
	Token string

	// Domain is the trust domain whose pki/{domain} mount is addressed.
	Domain string

	// TrustMode governs verification of the backend's own TLS identity.
	TrustMode trust.Mode

	// CAPath is the CA certificate file backing trust.ModeCustomCA.
	CAPath string
}

// Validate validates the options for the Hashi Vault certificate requestor.
func (o Options) Validate() error {
	var result *multierror.Error

	if o.Domain == "" {
		result = multierror.Append(result, errors.New("Domain not specified in Hashi Vault options"))
	}

	if o.TrustMode == trust.ModeCustomCA && o.CAPath == "" {
		result = multierror.Append(result, errors.New("CAPath must be set in Hashi Vault options when verifying against a supplied CA"))
	}

	return result.ErrorOrNil()
}
