package registry

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// clientTLS builds the tls.Config for mutual-TLS etcd connections from the
// registry TLSConfig. Returns (nil, nil) when TLS is disabled so callers can
// assign the result unconditionally.
func clientTLS(cfg *TLSConfig) (*tls.Config, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	switch {
	case cfg.CertFile == "":
		return nil, fmt.Errorf("registry: tls enabled but cert_file is empty")
	case cfg.KeyFile == "":
		return nil, fmt.Errorf("registry: tls enabled but key_file is empty")
	case cfg.CAFile == "":
		return nil, fmt.Errorf("registry: tls enabled but ca_file is empty")
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("registry: load client key pair: %w", err)
	}

	caData, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, fmt.Errorf("registry: read CA certificate: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caData) {
		return nil, fmt.Errorf("registry: CA file %s holds no PEM certificates", cfg.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
