// Package trust decides how the identity of the PKI backend itself is verified
// before any certificate material is requested from it.
package trust

import (
	"github.com/pkg/errors"

	"github.com/vaultops/certctl/pkg/errcode"
	"github.com/vaultops/certctl/pkg/logger"
)

var log = logger.New("trust")

// Mode is the effective TLS verification mode for the exchange with the backend.
type Mode int

const (
	// ModeSystemTrust verifies the backend against the system trust store.
	ModeSystemTrust Mode = iota

	// ModeCustomCA verifies the backend against a caller-supplied CA certificate.
	ModeCustomCA

	// ModeSkipVerify disables verification of the backend's identity. Selected
	// on explicit request, or forced during bootstrap when no trust anchor
	// exists yet.
	ModeSkipVerify
)

// String returns a human readable name for the verification mode.
func (m Mode) String() string {
	switch m {
	case ModeCustomCA:
		return "verify-against-supplied-ca"
	case ModeSkipVerify:
		return "skip-verification"
	default:
		return "verify-against-system-trust-store"
	}
}

// Context captures the caller-supplied trust inputs for one invocation.
type Context struct {
	// Bootstrap is true when the caller is fetching the domain CA itself and
	// therefore has no trust anchor to verify the backend with.
	Bootstrap bool

	// SkipVerify is the caller's explicit request to skip TLS verification.
	SkipVerify bool

	// CAPath is an optional CA certificate file to verify the backend against.
	CAPath string
}

// Resolve maps the caller-supplied trust inputs to the effective verification
// mode. Bootstrap always selects ModeSkipVerify, overriding an explicit
// verification request: trust-on-first-use is the entire point of bootstrap.
// Supplying a CA path together with bootstrap is contradictory and rejected
// before any network traffic.
func Resolve(tc Context) (Mode, error) {
	if tc.Bootstrap {
		if tc.CAPath != "" {
			return ModeSystemTrust, errcode.New(errcode.ErrInvalidConfig,
				errors.New("a CA path cannot be combined with bootstrap: bootstrap fetches the trust anchor precisely because none is held yet"))
		}
		if !tc.SkipVerify {
			log.Debug().Msg("Bootstrap requested; forcing skip-verification of the backend's TLS identity")
		}
		return ModeSkipVerify, nil
	}

	if tc.SkipVerify {
		return ModeSkipVerify, nil
	}

	if tc.CAPath != "" {
		return ModeCustomCA, nil
	}

	return ModeSystemTrust, nil
}
