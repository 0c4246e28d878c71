package tls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfig_SystemRoots(t *testing.T) {
	config, err := ClientConfig(Files{})

	require.NoError(t, err)
	assert.Nil(t, config.RootCAs)
	assert.Empty(t, config.Certificates)
}

func TestClientConfig_InvalidCA(t *testing.T) {
	caFile := filepath.Join(t.TempDir(), "ca.crt")
	require.NoError(t, os.WriteFile(caFile, []byte("not a certificate"), 0o600))

	_, err := ClientConfig(Files{CAFile: caFile})

	assert.ErrorContains(t, err, "failed to parse CA certificate")
}

func TestServerConfig_MissingCertificate(t *testing.T) {
	dir := t.TempDir()

	_, err := ServerConfig(Files{
		CertFile: filepath.Join(dir, "missing.crt"),
		KeyFile:  filepath.Join(dir, "missing.key"),
	}, false)

	assert.ErrorContains(t, err, "failed to load server certificate")
}
