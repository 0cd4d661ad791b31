package cache

import (
	"strings"
)

// Key identifies one cached payload.
type Key struct {
	// Keyword is the run's name tag.
	Keyword string

	// Identifier is the fetch target key.
	Identifier string
}

// String generates the deterministic Redis key.
// Format: chargescan:payload:<keyword>:<identifier>
//
// Example:
//
//	chargescan:payload:fastned:NL-FAST-1013
func (k Key) String() string {
	return strings.Join([]string{"chargescan", "payload", k.Keyword, k.Identifier}, ":")
}
