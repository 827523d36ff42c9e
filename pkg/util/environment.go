package util

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// EnvironmentString returns the value of key or fallback when it is unset or empty
func EnvironmentString(env map[string]string, key string, fallback string) string {
	if env[key] != "" {
		return env[key]
	}

	return fallback
}

func EnvironmentInt(env map[string]string, key string, fallback int) (int, error) {
	if env[key] == "" {
		return fallback, nil
	}

	return strconv.Atoi(env[key])
}
