// Package config reads the environment the CLI runs with. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"record-mapper/internal/logging"
)

// Environment variable names.
const (
	EnvLogLevel = "RECORD_MAPPER_LOG_LEVEL"
	EnvLogFile  = "RECORD_MAPPER_LOG_FILE"
	EnvLogDev   = "RECORD_MAPPER_LOG_DEV"
	EnvProfile  = "RECORD_MAPPER_PROFILE"
)

type Config struct {
	Log     logging.Config
	Profile string
}

// Load reads .env files (if any) and then the process environment.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	return Config{
		Log: logging.Config{
			Level:       firstNonEmpty(get(EnvLogLevel), "info"),
			File:        get(EnvLogFile),
			Development: parseBool(get(EnvLogDev)),
		},
		Profile: get(EnvProfile),
	}
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
