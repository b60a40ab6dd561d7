package main

import (
	"bytes"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"
)

func TestFetchCmdResolve(t *testing.T) {
	assert := tassert.New(t)

	t.Setenv("VAULT_TOKEN", "env-token")

	fc := &fetchCmd{
		out:      &bytes.Buffer{},
		altNames: "svc1, svc1.internal",
		ipSANs:   "10.0.0.1,10.0.0.2",
	}
	fc.config.OutputDir = "/var/lib/certs"

	trequire.NoError(t, fc.resolve())

	assert.Equal("env-token", fc.config.Token)
	assert.Equal([]string{"svc1", "svc1.internal"}, fc.config.AltNames)
	assert.Equal([]string{"10.0.0.1", "10.0.0.2"}, fc.config.IPSANs)
	assert.Equal("/var/lib/certs", fc.config.OutputDir)
}

func TestFetchCmdResolveFlagTokenWins(t *testing.T) {
	assert := tassert.New(t)

	t.Setenv("VAULT_TOKEN", "env-token")

	fc := &fetchCmd{out: &bytes.Buffer{}}
	fc.config.Token = "flag-token"

	trequire.NoError(t, fc.resolve())
	assert.Equal("flag-token", fc.config.Token)
}

func TestEnvRedacted(t *testing.T) {
	assert := tassert.New(t)

	assert.Equal("", redacted(""))
	assert.Equal("<redacted>", redacted("s.supersecret"))
}
