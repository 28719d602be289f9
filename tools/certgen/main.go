// Command certgen writes a self-signed TLS certificate/key pair for
// running the API server over HTTPS in development.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/digiprop/inspect/internal/certgen"
)

func main() {
	certPath := flag.String("cert", "certs/server.crt", "output path for the certificate")
	keyPath := flag.String("key", "certs/server.key", "output path for the private key")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated SANs")
	flag.Parse()

	_ = os.MkdirAll(filepath.Dir(*certPath), 0755)
	_ = os.MkdirAll(filepath.Dir(*keyPath), 0755)

	certPEM, keyPEM, err := certgen.GenerateServerCertificate(strings.Split(*hosts, ","))
	if err != nil {
		fmt.Fprintf(os.Stderr, "certgen: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*certPath, certPEM, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "certgen: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*keyPath, keyPEM, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "certgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s and %s\n", *certPath, *keyPath)
}
