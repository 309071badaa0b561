package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

// searchPaths covers starting from the repo root or from a cmd/<tool> directory
var searchPaths = []string{".env", "../../.env", "../../../.env"}

// Env holds the values read from the .env file. Values set in the process
// environment take precedence, so containers can override single keys.
var Env map[string]string

func GetEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	if val, ok := Env[key]; ok && val != "" {
		return val
	}
	return def
}

// GetEnvBool falls back to def on empty or unparsable input
func GetEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return b
}

// GetEnvInt returns def unless the value is a positive integer
func GetEnvInt(key string, def int) int {
	n, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// SetupEnvFile reads the first .env found on the search path.
// A missing file is fine when everything comes from the process environment.
func SetupEnvFile() {
	for _, path := range searchPaths {
		values, err := godotenv.Read(path)
		if err == nil {
			Env = values
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("[Env] Reading %s: %v", path, err)
		}
	}
	log.Warn("[Env] No .env file found, using the process environment only")
}

// APP_ENV defaults to prod, so a missing setting never enables dev conveniences
func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}

func IsProd() bool {
	return GetEnv("APP_ENV", "prod") == "prod"
}
