// Package errcode defines the error codes for operation failures and an explanation
// of what each error signifies.
package errcode

import (
	"fmt"
)

// ErrCode defines the type to represent error codes
type ErrCode int

const (
	// Kind defines the kind for the error code constants
	Kind = "error_code"
)

// Range 1000-1099 is reserved for errors related to configuration and startup
const (
	// ErrInvalidConfig indicates the supplied flags or options are inconsistent
	// and no operation was attempted.
	ErrInvalidConfig ErrCode = iota + 1000

	// ErrSettingLogLevel indicates the specified log level could not be set
	ErrSettingLogLevel
)

// Range 2000-2099 is reserved for errors related to the exchange with the PKI backend
const (
	// ErrAuthentication indicates the issuance token was missing, invalid or expired.
	ErrAuthentication ErrCode = iota + 2000

	// ErrAuthorization indicates the issuance token is not permitted to use the
	// requested issuance path or role.
	ErrAuthorization

	// ErrValidation indicates the requested common name, SANs or TTL were
	// rejected by the issuance role's constraints.
	ErrValidation

	// ErrBackendUnavailable indicates the backend could not be reached or
	// answered with a server-side failure.
	ErrBackendUnavailable

	// ErrMalformedResponse indicates the backend answered with a payload of an
	// unexpected shape.
	ErrMalformedResponse
)

// Range 3000-3099 is reserved for errors related to persisting fetched material
const (
	// ErrWritingArtifact indicates a key, certificate or chain file could not be
	// written to its destination.
	ErrWritingArtifact ErrCode = iota + 3000
)

// String returns the error code as a string, ex. E1000
func (e ErrCode) String() string {
	return fmt.Sprintf("E%d", int(e))
}

// FromStr returns the ErrCode representation for the given error code string
// Ex. E1000 is converted to ErrInvalidConfig
func FromStr(e string) (ErrCode, error) {
	errStr := strippedErrCode(e)
	var errInt int
	if _, err := fmt.Sscanf(errStr, "%d", &errInt); err != nil {
		return ErrCode(0), fmt.Errorf("error code '%s' is not a valid error code format. Should be of the form Exxxx, ex. E1000", e)
	}
	return ErrCode(errInt), nil
}

func strippedErrCode(e string) string {
	if len(e) > 0 && (e[0] == 'E' || e[0] == 'e') {
		return e[1:]
	}
	return e
}

// ErrCodeMap defines the mapping of error codes to their description.
var ErrCodeMap = map[ErrCode]string{
	ErrInvalidConfig: `
The command line options supplied for the operation are inconsistent or incomplete.
No request was made to the PKI backend.
`,

	ErrSettingLogLevel: `
The specified log level could not be set.
`,

	ErrAuthentication: `
The issuance token was missing, invalid or expired. Obtain a fresh token from the
operator of the trust domain.
`,

	ErrAuthorization: `
The issuance token is not permitted to write to the requested issuance path.
Verify the token was created for this domain's issuance policy.
`,

	ErrValidation: `
The PKI backend rejected the requested certificate parameters. The common name,
alternative names or TTL violate the issuance role's constraints.
`,

	ErrBackendUnavailable: `
The PKI backend could not be reached, or responded with a server-side failure.
The operation may be retried by the caller.
`,

	ErrMalformedResponse: `
The PKI backend responded with a payload of an unexpected shape. The response was
discarded and nothing was written to disk.
`,

	ErrWritingArtifact: `
A fetched key, certificate or chain could not be persisted to the output
directory.
`,
}
