package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	portEnvVar          = "PORT"
	appNameVar          = "APP_NAME"
	baseURLVar          = "BASE_URL"
	remoteTimeoutEnvVar = "REMOTE_TIMEOUT"

	defaultRemoteTimeout = 10 * time.Second
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Song Ranker")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the public URL of the dashboard (e.g., "https://admin.example.com").
// Cookies are marked Secure when it is https.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

// GetRemoteTimeout bounds every call to the hosted backend. Invalid values fall
// back to the default.
func (EnvVars) GetRemoteTimeout() time.Duration {
	raw := os.Getenv(remoteTimeoutEnvVar)
	if raw == "" {
		return defaultRemoteTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultRemoteTimeout
	}
	return d
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
