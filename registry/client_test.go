package registry

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresEndpoints(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoints cannot be empty")
}

func TestNewClientFromEnv_Unset(t *testing.T) {
	t.Setenv(EndpointsEnvVar, "")

	client, err := NewClientFromEnv()
	require.NoError(t, err)
	// No endpoints configured means no registry integration, not a failure.
	assert.Nil(t, client)
}

func TestClient_KeyLayout(t *testing.T) {
	c := &Client{namespace: "graphmind"}

	assert.Equal(t, "/graphmind/tool/query-graph/abc-123",
		c.instanceKey("tool", "query-graph", "abc-123"))
	assert.Equal(t, "/graphmind/tool/query-graph/",
		c.servicePrefix("tool", "query-graph"))
	assert.Equal(t, "/graphmind/tool/",
		c.kindPrefix("tool"))
}

func TestClientTLS_Disabled(t *testing.T) {
	cfg, err := clientTLS(nil)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = clientTLS(&TLSConfig{Enabled: false, CertFile: "ignored"})
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestClientTLS_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		cfg  TLSConfig
		want string
	}{
		{
			name: "no cert",
			cfg:  TLSConfig{Enabled: true, KeyFile: "k", CAFile: "ca"},
			want: "cert_file is empty",
		},
		{
			name: "no key",
			cfg:  TLSConfig{Enabled: true, CertFile: "c", CAFile: "ca"},
			want: "key_file is empty",
		},
		{
			name: "no ca",
			cfg:  TLSConfig{Enabled: true, CertFile: "c", KeyFile: "k"},
			want: "ca_file is empty",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := clientTLS(&tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestClientTLS_UnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist.pem")

	_, err := clientTLS(&TLSConfig{
		Enabled:  true,
		CertFile: missing,
		KeyFile:  missing,
		CAFile:   missing,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load client key pair")
}

func TestClientTLS_BadCA(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeTestKeyPair(t, dir)

	badCA := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(badCA, []byte("not pem data"), 0o600))

	_, err := clientTLS(&TLSConfig{
		Enabled:  true,
		CertFile: certFile,
		KeyFile:  keyFile,
		CAFile:   badCA,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PEM certificates")
}

func TestClientTLS_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeTestKeyPair(t, dir)

	cfg, err := clientTLS(&TLSConfig{
		Enabled:  true,
		CertFile: certFile,
		KeyFile:  keyFile,
		CAFile:   certFile, // self-signed, so the cert is its own CA
	})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Len(t, cfg.Certificates, 1)
	assert.NotNil(t, cfg.RootCAs)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}

// writeTestKeyPair generates a self-signed certificate and private key in
// PEM form and writes them under dir.
func writeTestKeyPair(t *testing.T, dir string) (certFile, keyFile string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "registry-test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		IsCA:                  true,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile,
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile,
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile
}
