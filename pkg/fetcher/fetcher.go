// Package fetcher orchestrates a single certificate fetch: it resolves the
// trust mode, performs the exchange with the PKI backend and persists the
// result. Each invocation is independent; no state survives a run.
package fetcher

import (
	"context"

	"github.com/vaultops/certctl/pkg/certificate"
	"github.com/vaultops/certctl/pkg/certificate/pem"
	"github.com/vaultops/certctl/pkg/certificate/providers/vault"
	"github.com/vaultops/certctl/pkg/certificate/storage"
	"github.com/vaultops/certctl/pkg/errcode"
	"github.com/vaultops/certctl/pkg/logger"
	"github.com/vaultops/certctl/pkg/trust"
)

var log = logger.New("fetcher")

// Requestor is the network half of a fetch.
type Requestor interface {
	// IssueCertificate requests a fresh leaf key/certificate pair.
	IssueCertificate(ctx context.Context, req certificate.Request) (*certificate.Certificate, error)

	// FetchCA retrieves the domain CA certificate. Requires no token.
	FetchCA(ctx context.Context) (pem.RootCertificate, error)
}

// Storage persists fetched certificate material.
type Storage interface {
	StoreBundle(component string, cert *certificate.Certificate) (*storage.BundlePaths, error)
	StoreCA(domain string, ca pem.RootCertificate) (string, error)
}

// Result reports where a successful fetch left its artifacts. Exactly one of
// the two fields is set, matching the path taken.
type Result struct {
	// Bundle locations for a normal fetch.
	Bundle *storage.BundlePaths

	// CA certificate location for a bootstrap fetch.
	CAPath string
}

// Fetcher ties the trust resolver, the requestor and the output writer
// together for one invocation.
type Fetcher struct {
	cfg       Config
	requestor Requestor
	bundles   Storage
	cas       Storage
}

// New wires a Fetcher from the supplied configuration. The trust mode is
// resolved here, before any network traffic, so inconsistent flags fail fast.
func New(cfg Config) (*Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errcode.New(errcode.ErrInvalidConfig, err)
	}

	mode, err := trust.Resolve(trust.Context{
		Bootstrap:  cfg.BootstrapCA,
		SkipVerify: cfg.NoTLSVerify,
		CAPath:     cfg.CAPath,
	})
	if err != nil {
		return nil, err
	}

	client, err := vault.NewClient(vault.Options{
		Address:   cfg.VaultAddress,
		Token:     cfg.Token,
		Domain:    cfg.Domain,
		TrustMode: mode,
		CAPath:    cfg.CAPath,
	})
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		cfg:       cfg,
		requestor: client,
		bundles:   storage.NewLocalDirStorage(cfg.outputDir()),
		cas:       storage.NewLocalDirStorage(cfg.caOutputDir()),
	}, nil
}

// Run executes the single fetch and reports where the artifacts were written.
// Two terminal paths exist: bootstrap persists the domain CA only; a normal
// fetch persists key, certificate and chain. Nothing is written until the
// exchange has produced a complete, parsed response.
func (f *Fetcher) Run(ctx context.Context) (*Result, error) {
	if f.cfg.BootstrapCA {
		return f.bootstrap(ctx)
	}
	return f.fetch(ctx)
}

func (f *Fetcher) bootstrap(ctx context.Context) (*Result, error) {
	log.Info().Msgf("Fetching CA certificate for domain=%q", f.cfg.Domain)

	ca, err := f.requestor.FetchCA(ctx)
	if err != nil {
		return nil, err
	}

	path, err := f.cas.StoreCA(f.cfg.Domain, ca)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("Wrote CA certificate for domain=%q to %s", f.cfg.Domain, path)

	return &Result{CAPath: path}, nil
}

func (f *Fetcher) fetch(ctx context.Context) (*Result, error) {
	req := certificate.Request{
		CommonName: certificate.CommonName(f.cfg.CommonName),
		AltNames:   f.cfg.AltNames,
		IPSANs:     f.cfg.IPSANs,
		TTL:        f.cfg.TTL,
	}

	log.Info().Msgf("Fetching certificate for CN=%q from domain=%q component=%q", f.cfg.CommonName, f.cfg.Domain, f.cfg.Component)

	cert, err := f.requestor.IssueCertificate(ctx, req)
	if err != nil {
		return nil, err
	}

	paths, err := f.bundles.StoreBundle(f.cfg.Component, cert)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("Wrote certificate material with SerialNumber=%s for CN=%q", cert.SerialNumber, cert.CommonName)

	return &Result{Bundle: paths}, nil
}
