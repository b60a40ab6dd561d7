package certificate

import "bytes"

// GetCommonName returns the common name of the given certificate.
func (c *Certificate) GetCommonName() CommonName {
	return c.CommonName
}

// GetSerialNumber returns the serial number of the given certificate.
func (c *Certificate) GetSerialNumber() SerialNumber {
	return c.SerialNumber
}

// GetCertificateChain returns the PEM encoded leaf certificate.
func (c *Certificate) GetCertificateChain() []byte {
	return c.CertChain
}

// GetPrivateKey returns the PEM encoded private key of the given certificate.
func (c *Certificate) GetPrivateKey() []byte {
	return c.PrivateKey
}

// GetIssuingCA returns the certificate of the authority signing the given cert.
func (c *Certificate) GetIssuingCA() []byte {
	return c.IssuingCA
}

// GetTrustChain returns the PEM encoded chain of signing authorities, leaf's
// issuer first. Falls back to the issuing CA when the backend reported no
// explicit chain.
func (c *Certificate) GetTrustChain() []byte {
	if len(c.CAChain) == 0 {
		return c.IssuingCA
	}

	var buf bytes.Buffer
	for _, ca := range c.CAChain {
		buf.Write(ca)
		if len(ca) > 0 && ca[len(ca)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
