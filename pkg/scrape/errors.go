package scrape

import "fmt"

// ConfigError reports invalid construction or invocation arguments. It is
// returned before any network activity happens and is never retried.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}
