// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets and connection strings stay strings;
// durations and costs are parsed once here so the rest of the code never
// touches the environment.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	DatabaseURL  string        // MongoDB connection string
	DatabaseName string        // MongoDB database name
	JWTSecret    string        // secret used to sign access tokens
	JWTAlgorithm string        // signing algorithm name (e.g. "HS256")
	AccessTTL    time.Duration // access token time-to-live
	BcryptCost   int           // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Optional values fall
// back to the documented defaults.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DatabaseURL:  must("DATABASE_URL"),
		DatabaseName: must("DATABASE_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		JWTAlgorithm: getenv("JWT_ALGORITHM", "HS256"),
		AccessTTL:    time.Duration(getenvInt("ACCESS_TOKEN_TTL_MIN", 30)) * time.Minute,
		BcryptCost:   getenvInt("BCRYPT_COST", 12),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenvInt reads an integer variable, falling back to def when the
// variable is unset. A set-but-unparsable value is a configuration mistake
// and therefore fatal.
func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
