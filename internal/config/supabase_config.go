package config

import "strings"

const (
	supabaseURLVar       = "SUPABASE_URL"
	supabaseAnonKeyVar   = "SUPABASE_ANON_KEY"
	supabaseJWTSecretVar = "SUPABASE_JWT_SECRET"
	databaseURLVar       = "DATABASE_URL"
)

// SupabaseConfig describes the hosted backend the dashboard authenticates
// against and reads member profiles from.
type SupabaseConfig interface {
	GetSupabaseURL() string
	GetSupabaseAnonKey() string
	GetSupabaseJWTSecret() string
	GetDatabaseURL() string
}

type Supabase struct{}

var _ SupabaseConfig = Supabase{}

func (Supabase) GetSupabaseURL() string {
	return strings.TrimRight(GetEnv(supabaseURLVar, ""), "/")
}

func (Supabase) GetSupabaseAnonKey() string {
	return GetEnv(supabaseAnonKeyVar, "")
}

// GetSupabaseJWTSecret returns the legacy HS256 secret. When empty, access tokens
// are verified against the project's JWKS instead.
func (Supabase) GetSupabaseJWTSecret() string {
	return GetEnv(supabaseJWTSecretVar, "")
}

// GetDatabaseURL returns a direct Postgres connection string. When set, member
// profiles are read over SQL rather than the REST API.
func (Supabase) GetDatabaseURL() string {
	return GetEnv(databaseURLVar, "")
}
