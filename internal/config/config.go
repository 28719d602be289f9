// Package config provides functionality for managing configuration
// options for the application using command-line flags, environment
// variables, and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the API server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the PostgreSQL connection string. When empty the
	// server runs on seeded in-memory repositories (mock mode).
	DatabaseDSN string

	// RedisAddr holds the Redis address for verification-code storage.
	// When empty codes are kept in memory.
	RedisAddr string

	// JWTSecret signs issued bearer tokens.
	JWTSecret string

	// LogLevel sets the zap log level.
	LogLevel string

	// EnableTLS serves HTTPS using CertFile/KeyFile, generating a
	// self-signed pair when the files are missing.
	EnableTLS bool

	// CertFile is the path to the TLS certificate.
	CertFile string

	// KeyFile is the path to the TLS private key.
	KeyFile string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.RedisAddr, "r", "", "redis address")
	flag.StringVar(&options.JWTSecret, "s", "local-dev-secret", "jwt signing secret")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.BoolVar(&options.EnableTLS, "tls", false, "serve HTTPS")
	flag.StringVar(&options.CertFile, "cert", "certs/server.crt", "TLS certificate path")
	flag.StringVar(&options.KeyFile, "key", "certs/server.key", "TLS private key path")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file, and environment
// variables to set configuration values. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		options.RedisAddr = redisAddr
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if enableTLS := os.Getenv("ENABLE_TLS"); enableTLS == "true" {
		options.EnableTLS = true
	}
	if certFile := os.Getenv("CERT_FILE"); certFile != "" {
		options.CertFile = certFile
	}
	if keyFile := os.Getenv("KEY_FILE"); keyFile != "" {
		options.KeyFile = keyFile
	}

	return options
}
