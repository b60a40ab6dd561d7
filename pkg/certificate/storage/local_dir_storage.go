// Package storage persists fetched certificate material to the local filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vaultops/certctl/pkg/certificate"
	"github.com/vaultops/certctl/pkg/certificate/pem"
	"github.com/vaultops/certctl/pkg/errcode"
	"github.com/vaultops/certctl/pkg/logger"
)

var log = logger.New("storage")

const (
	keyPermissions  = os.FileMode(0o600)
	certPermissions = os.FileMode(0o644)
	dirPermissions  = os.FileMode(0o755)

	keySuffix   = "-key.pem"
	certSuffix  = "-cert.pem"
	chainSuffix = "-chain.pem"
	caSuffix    = "-ca.pem"
)

// BundlePaths holds the final locations of one persisted certificate bundle.
type BundlePaths struct {
	Key   string
	Cert  string
	Chain string
}

// LocalDirStorage writes PEM artifacts into a flat directory. File names are
// derived from component and common name, so concurrent fetches for different
// common names never collide.
type LocalDirStorage struct {
	dir string
}

// NewLocalDirStorage inits a new LocalDirStorage rooted at dir.
func NewLocalDirStorage(dir string) *LocalDirStorage {
	return &LocalDirStorage{dir: dir}
}

// StoreBundle persists the private key, leaf certificate and trust chain of the
// given bundle as three distinct files. The key file is never readable by group
// or other. Each file becomes visible at its final name only once fully
// written.
func (s *LocalDirStorage) StoreBundle(component string, cert *certificate.Certificate) (*BundlePaths, error) {
	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return nil, errcode.New(errcode.ErrWritingArtifact, errors.Wrapf(err, "creating output directory %s", s.dir))
	}

	paths := &BundlePaths{
		Key:   s.artifactPath(component, cert.CommonName, keySuffix),
		Cert:  s.artifactPath(component, cert.CommonName, certSuffix),
		Chain: s.artifactPath(component, cert.CommonName, chainSuffix),
	}

	log.Debug().Msgf("Writing key file to %s", paths.Key)
	if err := writeFileAtomic(paths.Key, cert.GetPrivateKey(), keyPermissions); err != nil {
		return nil, errcode.New(errcode.ErrWritingArtifact, err)
	}

	log.Debug().Msgf("Writing cert file to %s", paths.Cert)
	if err := writeFileAtomic(paths.Cert, cert.GetCertificateChain(), certPermissions); err != nil {
		return nil, errcode.New(errcode.ErrWritingArtifact, err)
	}

	log.Debug().Msgf("Writing chain file to %s", paths.Chain)
	if err := writeFileAtomic(paths.Chain, cert.GetTrustChain(), certPermissions); err != nil {
		return nil, errcode.New(errcode.ErrWritingArtifact, err)
	}

	return paths, nil
}

// StoreCA persists the domain CA certificate and returns its final location.
func (s *LocalDirStorage) StoreCA(domain string, ca pem.RootCertificate) (string, error) {
	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return "", errcode.New(errcode.ErrWritingArtifact, errors.Wrapf(err, "creating output directory %s", s.dir))
	}

	path := filepath.Join(s.dir, domain+caSuffix)

	log.Debug().Msgf("Writing CA file to %s", path)
	if err := writeFileAtomic(path, ca, certPermissions); err != nil {
		return "", errcode.New(errcode.ErrWritingArtifact, err)
	}

	return path, nil
}

func (s *LocalDirStorage) artifactPath(component string, cn certificate.CommonName, suffix string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s%s", component, cn, suffix))
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash mid-write never leaves a corrupt artifact
// at the final path. Permissions are applied before any content is written.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-ops once the rename has happened.
		tmp.Close()
		os.Remove(tmpName)
	}()

	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", tmpName)
	}
	if _, err := tmp.Write(data); err != nil {
		return errors.Wrapf(err, "writing %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", tmpName, path)
	}
	return nil
}
