package config

import "time"

const sessionSecretVar = "SESSION_SECRET"

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetSignInRatePerMinute() int
	GetStartupRatePerMinute() int
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret is the root secret the cookie signing and encryption keys are
// derived from.
func (Security) GetSessionSecret() string {
	return GetEnv(sessionSecretVar, "")
}

func (Security) GetMaxSessionAge() time.Duration {
	return 7 * 24 * time.Hour // matches the provider's refresh token lifetime
}

func (Security) GetSignInRatePerMinute() int {
	return 10
}

// GetStartupRatePerMinute bounds the startup call every page load makes.
func (Security) GetStartupRatePerMinute() int {
	return 120
}
