package domain

import (
	"regexp"
	"time"
)

// Tenant models an isolated customer organization addressed by subdomain.
// Identity (ID, Subdomain) is immutable once created.
type Tenant struct {
	ID          int64
	Name        string
	Subdomain   string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidSubdomain reports whether s is a usable tenant subdomain label:
// lowercase alphanumeric plus hyphens, no leading or trailing hyphen.
func ValidSubdomain(s string) bool {
	if s == "" || len(s) > 63 {
		return false
	}
	return subdomainPattern.MatchString(s)
}
