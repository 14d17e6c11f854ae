package auth

import (
	"strings"

	"UXTester/internal/ports"
)

// DefaultKeyPrefix is the accepted prefix for issued API keys.
const DefaultKeyPrefix = "ux_test_"

// PrefixGate authorizes credentials by prefix match. This is deliberately
// placeholder-strength; it sits behind ports.Gate so a registered-key lookup
// can replace it without touching the engine or the monitor.
type PrefixGate struct {
	prefix string
}

var _ ports.Gate = (*PrefixGate)(nil)

// NewPrefixGate builds a gate for the given prefix, defaulting to
// DefaultKeyPrefix when empty.
func NewPrefixGate(prefix string) *PrefixGate {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &PrefixGate{prefix: prefix}
}

// Authorize accepts only a non-empty credential carrying the prefix.
func (g *PrefixGate) Authorize(credential string) bool {
	return credential != "" && strings.HasPrefix(credential, g.prefix)
}
