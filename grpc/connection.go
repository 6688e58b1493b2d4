package grpc

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// GetGrpcConnection dials a gRPC endpoint. Endpoints on port 443 use TLS verified against the
// system roots, anything else is plaintext.
func GetGrpcConnection(grpcUri string, extraOpts ...grpc.DialOption) (*grpc.ClientConn, error) {
	transportCredentials, err := credentialsForUri(grpcUri)
	if err != nil {
		return nil, err
	}

	opts := append([]grpc.DialOption{transportCredentials}, extraOpts...)
	return grpc.Dial(
		stripScheme(grpcUri),
		opts...,
	)
}

// IsTLS reports whether a connection to the uri will use TLS.
func IsTLS(grpcUri string) bool {
	return strings.HasPrefix(grpcUri, "https://") || strings.HasSuffix(grpcUri, ":443")
}

func credentialsForUri(grpcUri string) (grpc.DialOption, error) {
	if !IsTLS(grpcUri) {
		return grpc.WithTransportCredentials(insecure.NewCredentials()), nil
	}

	certPool, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("unable to load system certificates: %w", err)
	}

	creds := credentials.NewTLS(&tls.Config{
		RootCAs:    certPool,
		MinVersion: tls.VersionTLS12,
	})
	return grpc.WithTransportCredentials(creds), nil
}

func stripScheme(grpcUri string) string {
	withoutScheme := strings.TrimPrefix(strings.TrimPrefix(grpcUri, "https://"), "http://")
	if strings.HasPrefix(grpcUri, "https://") && !strings.Contains(withoutScheme, ":") {
		return withoutScheme + ":443"
	}
	return withoutScheme
}
