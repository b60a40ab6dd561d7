package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	tassert "github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"

	"github.com/vaultops/certctl/pkg/certificate"
	"github.com/vaultops/certctl/pkg/certificate/pem"
	"github.com/vaultops/certctl/pkg/certificate/storage"
	"github.com/vaultops/certctl/pkg/errcode"
)

type fakeRequestor struct {
	cert     *certificate.Certificate
	issueErr error
	ca       pem.RootCertificate
	caErr    error

	issued []certificate.Request
	caHits int
}

func (f *fakeRequestor) IssueCertificate(_ context.Context, req certificate.Request) (*certificate.Certificate, error) {
	f.issued = append(f.issued, req)
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	return f.cert, nil
}

func (f *fakeRequestor) FetchCA(context.Context) (pem.RootCertificate, error) {
	f.caHits++
	if f.caErr != nil {
		return nil, f.caErr
	}
	return f.ca, nil
}

func testConfig(outputDir string) Config {
	return Config{
		Domain:     "example.com",
		Component:  "web",
		Token:      "test-token",
		CommonName: "svc1.example.com",
		TTL:        8760 * time.Hour,
		OutputDir:  outputDir,
	}
}

func newTestFetcher(cfg Config, requestor Requestor) *Fetcher {
	return &Fetcher{
		cfg:       cfg,
		requestor: requestor,
		bundles:   storage.NewLocalDirStorage(cfg.outputDir()),
		cas:       storage.NewLocalDirStorage(cfg.caOutputDir()),
	}
}

func TestRunNormalPath(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	requestor := &fakeRequestor{
		cert: &certificate.Certificate{
			CommonName:   "svc1.example.com",
			SerialNumber: "11:22:33",
			CertChain:    pem.Certificate("-----LEAF-----\n"),
			PrivateKey:   pem.PrivateKey("-----KEY-----\n"),
			IssuingCA:    pem.RootCertificate("-----CA-----\n"),
		},
	}

	cfg := testConfig(dir)
	cfg.AltNames = []string{"svc1"}

	result, err := newTestFetcher(cfg, requestor).Run(context.Background())
	trequire.NoError(t, err)
	trequire.NotNil(t, result.Bundle)
	assert.Empty(result.CAPath)

	// The issuance request carries the caller's parameters unmodified.
	trequire.Len(t, requestor.issued, 1)
	assert.Equal(certificate.CommonName("svc1.example.com"), requestor.issued[0].CommonName)
	assert.Equal([]string{"svc1"}, requestor.issued[0].AltNames)
	assert.Equal(8760*time.Hour, requestor.issued[0].TTL)
	assert.Equal(0, requestor.caHits)

	// Exactly three non-empty files.
	entries, err := os.ReadDir(dir)
	trequire.NoError(t, err)
	assert.Len(entries, 3)
	for _, e := range entries {
		info, err := e.Info()
		trequire.NoError(t, err)
		assert.NotZero(info.Size())
	}
}

func TestRunBootstrapPath(t *testing.T) {
	assert := tassert.New(t)

	outputDir := t.TempDir()
	caDir := t.TempDir()
	requestor := &fakeRequestor{ca: pem.RootCertificate("-----CA-----\n")}

	cfg := Config{
		Domain:      "example.com",
		BootstrapCA: true,
		OutputDir:   outputDir,
		CAOutputDir: caDir,
	}

	result, err := newTestFetcher(cfg, requestor).Run(context.Background())
	trequire.NoError(t, err)
	trequire.Nil(t, result.Bundle)
	assert.Equal(1, requestor.caHits)
	assert.Empty(requestor.issued)

	// One CA file in the CA directory, nothing in the bundle directory.
	caEntries, err := os.ReadDir(caDir)
	trequire.NoError(t, err)
	trequire.Len(t, caEntries, 1)
	assert.Equal("example.com-ca.pem", caEntries[0].Name())
	assert.Equal(filepath.Join(caDir, "example.com-ca.pem"), result.CAPath)

	bundleEntries, err := os.ReadDir(outputDir)
	trequire.NoError(t, err)
	assert.Empty(bundleEntries)
}

func TestRunIssuanceFailureWritesNothing(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	requestor := &fakeRequestor{
		issueErr: errcode.New(errcode.ErrAuthentication, errors.New("permission denied")),
	}

	result, err := newTestFetcher(testConfig(dir), requestor).Run(context.Background())
	assert.Nil(result)
	trequire.Error(t, err)

	code, ok := errcode.Classify(err)
	assert.True(ok)
	assert.Equal(errcode.ErrAuthentication, code)

	entries, err := os.ReadDir(dir)
	trequire.NoError(t, err)
	assert.Empty(entries)
}

func TestNewValidatesConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{
			name: "missing everything",
			cfg:  Config{},
		},
		{
			name: "missing token outside bootstrap",
			cfg: Config{
				Domain:     "example.com",
				Component:  "web",
				CommonName: "svc1.example.com",
				TTL:        time.Hour,
			},
		},
		{
			name: "bootstrap with a CA path",
			cfg: Config{
				Domain:      "example.com",
				BootstrapCA: true,
				CAPath:      "/etc/ssl/example.com-ca.pem",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := tassert.New(t)

			_, err := New(tc.cfg)
			trequire.Error(t, err)

			code, ok := errcode.Classify(err)
			assert.True(ok)
			assert.Equal(errcode.ErrInvalidConfig, code)
		})
	}
}

func TestNewBootstrapNeedsNoToken(t *testing.T) {
	assert := tassert.New(t)

	f, err := New(Config{
		Domain:      "example.com",
		BootstrapCA: true,
		OutputDir:   t.TempDir(),
	})
	trequire.NoError(t, err)
	assert.NotNil(f)
}

func TestConfigOutputDirDefaults(t *testing.T) {
	assert := tassert.New(t)

	var cfg Config
	assert.Equal(".", cfg.outputDir())
	assert.Equal(".", cfg.caOutputDir())

	cfg.OutputDir = "/tmp/certs"
	assert.Equal("/tmp/certs", cfg.caOutputDir())

	cfg.CAOutputDir = "/tmp/cas"
	assert.Equal("/tmp/cas", cfg.caOutputDir())
}
