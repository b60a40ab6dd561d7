// Package certificate defines the types describing certificate material fetched from the PKI backend.
package certificate

import (
	"time"

	"github.com/vaultops/certctl/pkg/certificate/pem"
)

// CommonName is the Subject Common Name of a certificate.
type CommonName string

// String returns the CommonName as a string.
func (cn CommonName) String() string {
	return string(cn)
}

// SerialNumber is the serial number of a certificate as reported by the backend.
type SerialNumber string

// String returns the SerialNumber as a string.
func (sn SerialNumber) String() string {
	return string(sn)
}

// Certificate is the bundle produced by a single issuance exchange: a leaf
// certificate, its private key and the chain of signing authorities.
type Certificate struct {
	// The CommonName of the certificate
	CommonName CommonName

	// The SerialNumber of the certificate
	SerialNumber SerialNumber

	// When the certificate expires
	Expiration time.Time

	// PEM encoded leaf certificate
	CertChain pem.Certificate

	// PEM encoded private key
	PrivateKey pem.PrivateKey

	// The signing authority directly above the leaf
	IssuingCA pem.RootCertificate

	// Full chain of signing authorities, leaf's issuer first. May be empty
	// when the backend reports only the issuing CA.
	CAChain []pem.RootCertificate
}

// Request describes the leaf certificate asked of the domain's issuance role.
type Request struct {
	// CommonName the leaf certificate is issued for
	CommonName CommonName

	// Additional DNS subject alternative names
	AltNames []string

	// IP subject alternative names
	IPSANs []string

	// Requested validity period. The role's max TTL is enforced by the
	// backend, not here.
	TTL time.Duration
}
