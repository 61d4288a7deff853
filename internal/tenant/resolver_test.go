package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverSubdomain(t *testing.T) {
	resolver := NewResolver("example.com", "vercel.app")

	tests := []struct {
		name string
		host string
		want string
	}{
		{"tenant subdomain", "acme.example.com", "acme"},
		{"root domain", "example.com", ""},
		{"www form", "www.example.com", ""},
		{"nested label", "foo.bar.example.com", "foo.bar"},
		{"unrelated host", "other.com", ""},
		{"port stripped", "acme.example.com:8080", "acme"},
		{"bare localhost", "localhost", ""},
		{"localhost with port", "localhost:3000", ""},
		{"loopback", "127.0.0.1", ""},
		{"local subdomain", "acme.localhost", "acme"},
		{"local subdomain with port", "acme.localhost:3000", "acme"},
		{"preview deployment", "acme---feature-branch.vercel.app", "acme"},
		{"preview without marker", "acme.vercel.app", ""},
		{"empty host", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Subdomain(tt.host))
		})
	}
}

func TestResolverRootDomainWithPort(t *testing.T) {
	// Root domain configured with a port, as in local development.
	resolver := NewResolver("example.com:3000", "")
	assert.Equal(t, "acme", resolver.Subdomain("acme.example.com"))
	assert.Equal(t, "", resolver.Subdomain("example.com"))
}
