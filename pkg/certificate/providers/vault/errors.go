package vault

import (
	"net/url"
	"strings"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"

	"github.com/vaultops/certctl/pkg/errcode"
)

// classify maps a failed exchange with the backend to the operation error
// taxonomy. Vault reports most token problems as 403 "permission denied" and
// missing tokens as 400 "missing client token", so the response messages are
// inspected alongside the status code. Errors that fit no class are returned
// unclassified and surface as unexpected.
func classify(err error) error {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) {
		msg := strings.ToLower(strings.Join(respErr.Errors, "; "))

		switch {
		case respErr.StatusCode == 401,
			strings.Contains(msg, "missing client token"),
			strings.Contains(msg, "invalid token"),
			strings.Contains(msg, "token expired"),
			strings.Contains(msg, "permission denied") && strings.Contains(msg, "token"):
			return errcode.New(errcode.ErrAuthentication, err)

		case respErr.StatusCode == 403:
			return errcode.New(errcode.ErrAuthorization, err)

		case respErr.StatusCode >= 400 && respErr.StatusCode < 500:
			return errcode.New(errcode.ErrValidation, err)

		case respErr.StatusCode >= 500:
			return errcode.New(errcode.ErrBackendUnavailable, err)
		}
		return err
	}

	// No HTTP response at all: connection refused, DNS failure, TLS handshake,
	// context expiry. All reach the backend-unavailable class.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errcode.New(errcode.ErrBackendUnavailable, err)
	}

	return err
}
