// Package pem defines the PEM-encoded artifact types exchanged with the PKI backend.
package pem

// Certificate is a PEM-encoded leaf certificate.
type Certificate []byte

// PrivateKey is a PEM-encoded private key.
type PrivateKey []byte

// RootCertificate is a PEM-encoded certificate of a signing authority.
type RootCertificate []byte
