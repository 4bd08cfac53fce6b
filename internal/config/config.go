package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Strings for identifiers and secrets, ints for
// durations, costs and lengths.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	JWTSecret        string // secret used to sign admin JWTs
	AdminTokenTTLH   int    // admin token time-to-live in hours
	BcryptCost       int    // bcrypt cost for admin password hashing
	RefCodeLength    int    // length of booking reference codes
	OTPTTLMin        int    // one-time code time-to-live in minutes
	DefaultSlotLimit int    // capacity used when slot creation omits slot_limit
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. Tunables with sensible
// defaults use intOr() so a minimal .env is enough to run the service.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AdminTokenTTLH:   intOr("ADMIN_TOKEN_TTL_HOURS", 24),
		BcryptCost:       intOr("BCRYPT_COST", 12),
		RefCodeLength:    intOr("REF_CODE_LENGTH", 10),
		OTPTTLMin:        intOr("OTP_TTL_MIN", 10),
		DefaultSlotLimit: intOr("DEFAULT_SLOT_LIMIT", 5),
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

// intOr converts an optional environment variable to an int, falling back to
// def when the variable is unset. A set-but-invalid value is fatal so that
// typos do not silently change behaviour.
func intOr(key string, def int) int {
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
