package tls

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// Files locates the PEM files of one TLS identity
type Files struct {
	CertFile string
	KeyFile  string
	CAFile   string
}

// ServerConfig builds the listener config for the HTTPS and gRPC servers.
// With requireClientCert the peer must present a certificate signed by CAFile.
func ServerConfig(files Files, requireClientCert bool) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(files.CertFile, files.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate: %w", err)
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if !requireClientCert {
		return config, nil
	}
	if files.CAFile == "" {
		return nil, fmt.Errorf("client certificates required but no CA file configured")
	}

	pool, err := loadPool(files.CAFile)
	if err != nil {
		return nil, err
	}
	config.ClientCAs = pool
	config.ClientAuth = tls.RequireAndVerifyClientCert

	return config, nil
}

// ClientConfig builds the config used to call the commerce backend.
// An empty CAFile trusts the system roots; a cert/key pair enables mTLS.
func ClientConfig(files Files) (*tls.Config, error) {
	config := &tls.Config{MinVersion: tls.VersionTLS12}

	if files.CAFile != "" {
		pool, err := loadPool(files.CAFile)
		if err != nil {
			return nil, err
		}
		config.RootCAs = pool
	}

	if files.CertFile != "" && files.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(files.CertFile, files.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		config.Certificates = []tls.Certificate{cert}
	}

	return config, nil
}

func loadPool(caFile string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("failed to parse CA certificate %s", caFile)
	}
	return pool, nil
}
