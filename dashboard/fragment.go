package dashboard

import (
	"net/url"
	"strings"
)

// ParseFragment reads a URL fragment as query-string pairs. A leading '#' is
// ignored; an empty or malformed fragment yields an empty set.
func ParseFragment(fragment string) url.Values {
	raw := strings.TrimPrefix(fragment, "#")
	if raw == "" {
		return url.Values{}
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}
	}
	return values
}
