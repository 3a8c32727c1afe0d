package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	SupabaseConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
	GetRemoteTimeout() time.Duration
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	Supabase
}

// New loads a .env file when one is present and returns a Config backed by the
// process environment.
func New() Config {
	if err := godotenv.Load(); err != nil {
		_ = err // production environments have no .env file
	}
	return mainConfig{}
}

// Validate reports every required setting that is missing.
func (c mainConfig) Validate() error {
	var errs []error
	if c.GetSupabaseURL() == "" {
		errs = append(errs, fmt.Errorf("%s environment variable is required", supabaseURLVar))
	}
	if c.GetSupabaseAnonKey() == "" {
		errs = append(errs, fmt.Errorf("%s environment variable is required", supabaseAnonKeyVar))
	}
	if c.GetSessionSecret() == "" {
		errs = append(errs, fmt.Errorf("%s environment variable is required", sessionSecretVar))
	}
	return errors.Join(errs...)
}
