package errcode

import (
	"testing"

	"github.com/pkg/errors"
	tassert "github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert := tassert.New(t)
	assert.Equal(ErrInvalidConfig.String(), "E1000")
	assert.Equal(ErrAuthentication.String(), "E2000")
	assert.Equal(ErrWritingArtifact.String(), "E3000")
}

func TestFromStr(t *testing.T) {
	testCases := []struct {
		name        string
		errStr      string
		expectedErr ErrCode
		expectError bool
	}{
		{
			name:        "valid error code string",
			errStr:      "E1000",
			expectedErr: ErrInvalidConfig,
		},
		{
			name:        "valid error code string without prefix",
			errStr:      "2000",
			expectedErr: ErrAuthentication,
		},
		{
			name:        "invalid error code string",
			errStr:      "Exxx",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := tassert.New(t)

			got, err := FromStr(tc.errStr)
			assert.Equal(tc.expectError, err != nil)
			if !tc.expectError {
				assert.Equal(tc.expectedErr, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	assert := tassert.New(t)

	err := New(ErrAuthentication, errors.New("permission denied"))
	code, ok := Classify(err)
	assert.True(ok)
	assert.Equal(ErrAuthentication, code)

	// Classification survives further wrapping.
	wrapped := errors.Wrap(err, "fetching certificate")
	code, ok = Classify(wrapped)
	assert.True(ok)
	assert.Equal(ErrAuthentication, code)

	_, ok = Classify(errors.New("some other failure"))
	assert.False(ok)

	assert.Nil(New(ErrAuthentication, nil))
}

func TestClassifiedErrorMessage(t *testing.T) {
	assert := tassert.New(t)

	err := Newf(ErrValidation, "common name %q not allowed by role", "evil.example.com")
	assert.Equal(`[E2002] common name "evil.example.com" not allowed by role`, err.Error())
}
