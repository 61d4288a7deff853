package dto

import (
	"time"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

// CreateTenantRequest payload for tenant creation.
type CreateTenantRequest struct {
	Name        string `json:"name"`
	Subdomain   string `json:"subdomain"`
	DisplayName string `json:"display_name"`
}

// UpdateTenantRequest payload for tenant updates. Identity fields (id,
// subdomain) are not accepted.
type UpdateTenantRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// TenantResponse is the tenant body returned by tenant endpoints.
type TenantResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Subdomain   string    `json:"subdomain"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTenantResponse builds the tenant body.
func NewTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		Subdomain:   t.Subdomain,
		DisplayName: t.DisplayName,
		CreatedAt:   t.CreatedAt,
	}
}

// NewTenantListResponse maps a tenant slice.
func NewTenantListResponse(tenants []*domain.Tenant) []TenantResponse {
	out := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, NewTenantResponse(t))
	}
	return out
}
