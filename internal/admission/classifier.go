// Package admission rate-limits inbound requests per client and endpoint
// class before any business logic runs.
package admission

import "strings"

// Class is a rate-limit tier. Each class carries its own request budget.
type Class string

const (
	// ClassPublic covers product browsing, health, and docs endpoints.
	ClassPublic Class = "public"
	// ClassAuth covers authentication endpoints, budgeted tightly.
	ClassAuth Class = "auth"
	// ClassAPI covers everything else under the versioned API prefix.
	ClassAPI Class = "api"
)

// Classify maps a request path to its rate-limit class. The second return
// is false for paths that carry no limit at all. Order matters: the public
// and auth prefixes are carved out of the general API space first.
func Classify(path string) (Class, bool) {
	switch {
	case strings.HasPrefix(path, "/api/v1/products"),
		strings.HasPrefix(path, "/healthz"),
		strings.HasPrefix(path, "/docs"),
		strings.HasPrefix(path, "/swagger"):
		return ClassPublic, true
	case strings.HasPrefix(path, "/auth/"), strings.Contains(path, "/auth"):
		return ClassAuth, true
	case strings.HasPrefix(path, "/api/"):
		return ClassAPI, true
	default:
		return "", false
	}
}
