package config

import (
	"os"
	"sort"
	"strings"
)

const allowedOriginsVar = "ALLOWED_ORIGINS"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// ParseAllowedOrigins splits a comma separated origin list, ignoring blanks.
func ParseAllowedOrigins(raw string) AllowedOrigins {
	origins := AllowedOrigins{}
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins[origin] = nullValue{}
		}
	}
	return origins
}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	return ParseAllowedOrigins(os.Getenv(allowedOriginsVar))
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization, HX-Request"
}
