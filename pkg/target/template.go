// Package target maps identifiers to fetch URLs.
//
// A Template is a URL string carrying exactly one {} substitution slot,
// validated once at construction. The Builder computes every identifier's
// URL up front and serves forward and reverse lookups from read-only maps,
// so all workers can share it without locking.
package target

import (
	"fmt"
	"strings"
)

// Slot is the substitution marker a template must contain exactly once.
const Slot = "{}"

// ConfigError reports an invalid URL template. It is returned during
// construction, before any network activity.
type ConfigError struct {
	Template string
	Reason   string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid url template %q: %s", e.Template, e.Reason)
}

// Template is a validated URL pattern with one substitution slot. The zero
// value is unusable; obtain one from ParseTemplate. Templates are immutable
// after construction.
type Template struct {
	raw string
}

// ParseTemplate validates that s contains exactly one substitution slot.
func ParseTemplate(s string) (Template, error) {
	switch n := strings.Count(s, Slot); {
	case n == 0:
		return Template{}, &ConfigError{Template: s, Reason: "missing substitution slot"}
	case n > 1:
		return Template{}, &ConfigError{Template: s, Reason: fmt.Sprintf("%d substitution slots, want exactly 1", n)}
	}
	return Template{raw: s}, nil
}

// Build substitutes identifier into the template's slot.
func (t Template) Build(identifier string) string {
	return strings.Replace(t.raw, Slot, identifier, 1)
}

// String returns the raw template.
func (t Template) String() string {
	return t.raw
}
