package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"

	"github.com/vaultops/certctl/pkg/certificate"
	"github.com/vaultops/certctl/pkg/certificate/pem"
)

func testBundle() *certificate.Certificate {
	return &certificate.Certificate{
		CommonName:   "svc1.example.com",
		SerialNumber: "11:22:33",
		CertChain:    pem.Certificate("-----LEAF-----\n"),
		PrivateKey:   pem.PrivateKey("-----KEY-----\n"),
		IssuingCA:    pem.RootCertificate("-----CA-----\n"),
	}
}

func TestStoreBundle(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	s := NewLocalDirStorage(dir)

	paths, err := s.StoreBundle("web", testBundle())
	trequire.NoError(t, err)

	assert.Equal(filepath.Join(dir, "web-svc1.example.com-key.pem"), paths.Key)
	assert.Equal(filepath.Join(dir, "web-svc1.example.com-cert.pem"), paths.Cert)
	assert.Equal(filepath.Join(dir, "web-svc1.example.com-chain.pem"), paths.Chain)

	// Exactly three files, no temp leftovers.
	entries, err := os.ReadDir(dir)
	trequire.NoError(t, err)
	assert.Len(entries, 3)
	for _, e := range entries {
		assert.False(strings.HasPrefix(e.Name(), "."), "unexpected temp file %s", e.Name())
	}

	// Contents round-trip byte-for-byte.
	key, err := os.ReadFile(paths.Key)
	trequire.NoError(t, err)
	assert.Equal("-----KEY-----\n", string(key))

	cert, err := os.ReadFile(paths.Cert)
	trequire.NoError(t, err)
	assert.Equal("-----LEAF-----\n", string(cert))

	chain, err := os.ReadFile(paths.Chain)
	trequire.NoError(t, err)
	assert.Equal("-----CA-----\n", string(chain))

	// The key is never readable by group or other.
	info, err := os.Stat(paths.Key)
	trequire.NoError(t, err)
	assert.Equal(os.FileMode(0), info.Mode().Perm()&0o077)

	info, err = os.Stat(paths.Cert)
	trequire.NoError(t, err)
	assert.Equal(os.FileMode(0o644), info.Mode().Perm())
}

func TestStoreBundleWritesChain(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	s := NewLocalDirStorage(dir)

	bundle := testBundle()
	bundle.CAChain = []pem.RootCertificate{
		pem.RootCertificate("-----INTERMEDIATE-----\n"),
		pem.RootCertificate("-----ROOT-----\n"),
	}

	paths, err := s.StoreBundle("web", bundle)
	trequire.NoError(t, err)

	chain, err := os.ReadFile(paths.Chain)
	trequire.NoError(t, err)
	assert.Equal("-----INTERMEDIATE-----\n-----ROOT-----\n", string(chain))
}

func TestStoreBundleCreatesDirectory(t *testing.T) {
	assert := tassert.New(t)

	dir := filepath.Join(t.TempDir(), "certs", "web")
	s := NewLocalDirStorage(dir)

	paths, err := s.StoreBundle("web", testBundle())
	trequire.NoError(t, err)
	assert.FileExists(paths.Key)
}

func TestStoreBundleDistinctCommonNamesDoNotCollide(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	s := NewLocalDirStorage(dir)

	first := testBundle()
	second := testBundle()
	second.CommonName = "svc2.example.com"

	firstPaths, err := s.StoreBundle("web", first)
	trequire.NoError(t, err)
	secondPaths, err := s.StoreBundle("web", second)
	trequire.NoError(t, err)

	assert.NotEqual(firstPaths.Key, secondPaths.Key)

	entries, err := os.ReadDir(dir)
	trequire.NoError(t, err)
	assert.Len(entries, 6)
}

func TestStoreCA(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	s := NewLocalDirStorage(dir)

	path, err := s.StoreCA("example.com", pem.RootCertificate("-----CA-----\n"))
	trequire.NoError(t, err)
	assert.Equal(filepath.Join(dir, "example.com-ca.pem"), path)

	ca, err := os.ReadFile(path)
	trequire.NoError(t, err)
	assert.Equal("-----CA-----\n", string(ca))

	// A bootstrap fetch produces exactly one file and no key material.
	entries, err := os.ReadDir(dir)
	trequire.NoError(t, err)
	assert.Len(entries, 1)
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	assert := tassert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "web-svc1.example.com-cert.pem")

	trequire.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	trequire.NoError(t, writeFileAtomic(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	trequire.NoError(t, err)
	assert.Equal("new", string(data))
}
