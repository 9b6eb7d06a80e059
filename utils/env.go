package utils

import (
	"os"
	"time"
)

func GetEnvVar(envVar string) string {
	value, found := os.LookupEnv(envVar)
	if !found {
		panic("Env var '" + envVar + "' not specified")
	}
	return value
}

func GetEnvVarWithDefault(envVar, defaultValue string) string {
	value, found := os.LookupEnv(envVar)
	if !found {
		return defaultValue
	}
	return value
}

func GetEnvDurationWithDefault(envVar string, defaultValue time.Duration) time.Duration {
	value, found := os.LookupEnv(envVar)
	if !found {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic("Env var '" + envVar + "' is not a valid duration: " + err.Error())
	}
	return d
}
