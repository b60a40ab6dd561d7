// Package vault implements the certificate requestor against the PKI secrets engine
// of Hashicorp Vault. One client is scoped to a single trust domain's PKI mount.
package vault

import (
	"github.com/hashicorp/vault/api"

	"github.com/vaultops/certctl/pkg/logger"
)

var log = logger.New("vault")

// Client wraps a Hashi Vault API client scoped to one trust domain.
type Client struct {
	// Hashicorp Vault client
	client *api.Client

	// The trust domain whose pki/{domain} mount is addressed.
	domain string
}
