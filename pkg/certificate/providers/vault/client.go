package vault

import (
	"context"
	"encoding/pem"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"

	"github.com/vaultops/certctl/pkg/certificate"
	certpem "github.com/vaultops/certctl/pkg/certificate/pem"
	"github.com/vaultops/certctl/pkg/errcode"
	"github.com/vaultops/certctl/pkg/trust"
)

const (
	// The string values of the JSON keys of the PKI issuance response.
	// See: https://www.vaultproject.io/api-docs/secret/pki#sample-response-8
	serialNumberField = "serial_number"
	certificateField  = "certificate"
	privateKeyField   = "private_key"
	issuingCAField    = "issuing_ca"
	caChainField      = "ca_chain"
	commonNameField   = "common_name"
	altNamesField     = "alt_names"
	ipSANsField       = "ip_sans"
	ttlField          = "ttl"
)

// NewClient creates a requestor for the trust domain's PKI mount, with the
// backend's own TLS identity checked according to the supplied trust mode.
func NewClient(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, errcode.New(errcode.ErrInvalidConfig, err)
	}

	config := api.DefaultConfig()
	if opts.Address != "" {
		config.Address = opts.Address
	}

	// Exactly one attempt per invocation. Issuance is not idempotent-safe to
	// blindly repeat, so retrying is left to the caller.
	config.MaxRetries = 0

	tlsConfig := &api.TLSConfig{}
	switch opts.TrustMode {
	case trust.ModeSkipVerify:
		tlsConfig.Insecure = true
	case trust.ModeCustomCA:
		tlsConfig.CACert = opts.CAPath
	}
	if err := config.ConfigureTLS(tlsConfig); err != nil {
		return nil, errcode.New(errcode.ErrInvalidConfig, errors.Wrap(err, "configuring TLS for the Vault client"))
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, errcode.New(errcode.ErrInvalidConfig, errors.Wrapf(err, "creating Vault client for %s", config.Address))
	}
	client.SetToken(opts.Token)

	log.Debug().Msgf("Created Vault client for domain=%q at %s with %s", opts.Domain, config.Address, opts.TrustMode)

	return &Client{client: client, domain: opts.Domain}, nil
}

// IssueCertificate requests a fresh leaf key/certificate pair for req from the
// domain's issuance role. Exactly one attempt is made; retrying on transient
// failure is the caller's decision, since every repeated call issues another
// certificate.
func (c *Client) IssueCertificate(ctx context.Context, req certificate.Request) (*certificate.Certificate, error) {
	start := time.Now()

	secret, err := c.client.Logical().WriteWithContext(ctx, getIssueURL(c.domain), getIssuanceData(req))
	if err != nil {
		return nil, classify(errors.Wrapf(err, "issuing certificate for CN=%s", req.CommonName))
	}

	cert, err := newCert(req, secret)
	if err != nil {
		return nil, err
	}

	log.Debug().Msgf("Issued certificate with SerialNumber=%s for CN=%s in %+v", cert.SerialNumber, req.CommonName, time.Since(start))

	return cert, nil
}

// FetchCA retrieves the domain CA certificate in PEM form. The endpoint is
// unauthenticated, so no token is needed; this is what makes trust-on-first-use
// bootstrap possible.
func (c *Client) FetchCA(ctx context.Context) (certpem.RootCertificate, error) {
	req := c.client.NewRequest(http.MethodGet, getCAPemPath(c.domain))

	// The ca/pem endpoint answers raw PEM, not a JSON secret, so Logical() does not apply.
	resp, err := c.client.RawRequestWithContext(ctx, req)
	if err != nil {
		return nil, classify(errors.Wrapf(err, "fetching CA certificate for domain=%s", c.domain))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(errors.Wrapf(err, "reading CA certificate for domain=%s", c.domain))
	}

	if block, _ := pem.Decode(body); block == nil || block.Type != "CERTIFICATE" {
		return nil, errcode.Newf(errcode.ErrMalformedResponse, "backend returned no PEM certificate for domain=%s", c.domain)
	}

	return certpem.RootCertificate(body), nil
}

// newCert builds a certificate bundle from the issuance response, rejecting
// payloads that miss any required field.
func newCert(req certificate.Request, secret *api.Secret) (*certificate.Certificate, error) {
	if secret == nil || secret.Data == nil {
		return nil, errcode.Newf(errcode.ErrMalformedResponse, "backend returned an empty issuance response for CN=%s", req.CommonName)
	}

	leaf, err := stringField(secret, certificateField)
	if err != nil {
		return nil, err
	}
	key, err := stringField(secret, privateKeyField)
	if err != nil {
		return nil, err
	}
	issuingCA, err := stringField(secret, issuingCAField)
	if err != nil {
		return nil, err
	}
	serialNumber, err := stringField(secret, serialNumberField)
	if err != nil {
		return nil, err
	}

	cert := &certificate.Certificate{
		CommonName:   req.CommonName,
		SerialNumber: certificate.SerialNumber(serialNumber),
		Expiration:   time.Now().Add(req.TTL),
		CertChain:    certpem.Certificate(leaf),
		PrivateKey:   certpem.PrivateKey(key),
		IssuingCA:    certpem.RootCertificate(issuingCA),
	}

	// ca_chain is only present for mounts with an intermediate hierarchy.
	if chain, ok := secret.Data[caChainField].([]interface{}); ok {
		for _, entry := range chain {
			ca, ok := entry.(string)
			if !ok {
				return nil, errcode.Newf(errcode.ErrMalformedResponse, "unexpected %s entry of type %T in issuance response", caChainField, entry)
			}
			cert.CAChain = append(cert.CAChain, certpem.RootCertificate(ca))
		}
	}

	return cert, nil
}

func stringField(secret *api.Secret, field string) (string, error) {
	value, ok := secret.Data[field].(string)
	if !ok || value == "" {
		return "", errcode.Newf(errcode.ErrMalformedResponse, "issuance response is missing the %q field", field)
	}
	return value, nil
}
