// internal/config/modules.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// CurrentLabel returns the display label of the module being edited
func (c *Config) CurrentLabel() string {
	if c.CurrentModuleLabel != "" {
		return c.CurrentModuleLabel
	}
	return c.CurrentModule
}

// APIHost returns host[:port] of an API base URL; it keys the token store
func APIHost(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid api url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid api url %q: missing host", raw)
	}
	return strings.ToLower(u.Host), nil
}
