package tenant

import "strings"

// Resolver derives a tenant subdomain from a request host. Local development
// hosts (*.localhost) and preview-deployment hosts (label---branch.preview)
// are special-cased; otherwise the configured root domain suffix is stripped.
type Resolver struct {
	rootDomain    string
	previewDomain string
}

// NewResolver builds a resolver. Ports in rootDomain are ignored.
func NewResolver(rootDomain, previewDomain string) *Resolver {
	return &Resolver{
		rootDomain:    stripPort(rootDomain),
		previewDomain: stripPort(previewDomain),
	}
}

// Subdomain returns the tenant label for the host, or "" when the host is the
// root domain, its www form, or not under the root domain at all.
func (r *Resolver) Subdomain(host string) string {
	hostname := stripPort(host)
	if hostname == "" {
		return ""
	}

	if hostname == "localhost" || hostname == "127.0.0.1" {
		return ""
	}
	if strings.HasSuffix(hostname, ".localhost") {
		return firstLabel(hostname)
	}

	// Preview deployments: tenant---branch.<previewDomain>.
	if r.previewDomain != "" && strings.HasSuffix(hostname, "."+r.previewDomain) {
		prefix := strings.TrimSuffix(hostname, "."+r.previewDomain)
		if idx := strings.Index(prefix, "---"); idx > 0 {
			return prefix[:idx]
		}
	}

	if r.rootDomain == "" {
		return ""
	}
	if hostname == r.rootDomain || hostname == "www."+r.rootDomain {
		return ""
	}
	if strings.HasSuffix(hostname, "."+r.rootDomain) {
		return strings.TrimSuffix(hostname, "."+r.rootDomain)
	}
	return ""
}

func stripPort(host string) string {
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		return host[:idx]
	}
	return host
}

func firstLabel(hostname string) string {
	if idx := strings.IndexByte(hostname, '.'); idx > 0 {
		return hostname[:idx]
	}
	return ""
}
