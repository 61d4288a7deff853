package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/events"
	"github.com/spec-kit/tenant-platform/internal/repository"
	"github.com/spec-kit/tenant-platform/internal/tenant"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// TenantService manages tenant lifecycle and keeps the subdomain directory
// snapshot in sync with every mutation.
type TenantService struct {
	tenants    repository.TenantRepository
	users      repository.UserRepository
	directory  *tenant.Directory
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTenantService builds the service.
func NewTenantService(tenants repository.TenantRepository, users repository.UserRepository, directory *tenant.Directory, dispatcher events.Dispatcher, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenants:    tenants,
		users:      users,
		directory:  directory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// List returns all tenants, newest first.
func (s *TenantService) List(ctx context.Context) ([]*domain.Tenant, error) {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(tenants) == 0 {
		return nil, apperrors.NewNotFound("No tenants found")
	}
	return tenants, nil
}

// Get fetches a tenant by id.
func (s *TenantService) Get(ctx context.Context, id int64) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Tenant not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return t, nil
}

// Resolve maps a request subdomain to its tenant. The directory snapshot is
// consulted first so unknown subdomains are rejected without a row lookup.
func (s *TenantService) Resolve(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	known, err := s.directory.Known(ctx, subdomain)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !known {
		return nil, apperrors.NewNotFound("Tenant not found")
	}

	t, err := s.tenants.GetBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Tenant not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return t, nil
}

// Create registers a new tenant. Subdomains are lowercase alphanumeric plus
// hyphens and unique; identity is immutable afterwards.
func (s *TenantService) Create(ctx context.Context, actor *auth.Claims, name, subdomain, displayName string) (*domain.Tenant, error) {
	if name == "" || subdomain == "" {
		return nil, apperrors.NewValidationError("Please provide a tenant name and subdomain.")
	}
	if !domain.ValidSubdomain(subdomain) {
		return nil, apperrors.NewValidationError("Subdomain must be lowercase letters, digits, and hyphens.")
	}

	if _, err := s.tenants.GetBySubdomain(ctx, subdomain); err == nil {
		return nil, apperrors.NewConflict("Subdomain already exists!")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	if displayName == "" {
		displayName = name
	}
	t := &domain.Tenant{Name: name, Subdomain: subdomain, DisplayName: displayName}
	if err := s.tenants.Create(ctx, t); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.refreshDirectory(ctx)
	s.publish(ctx, actor, events.EventTenantCreated, events.TenantCreatedPayload{
		TenantID:  t.ID,
		Name:      t.Name,
		Subdomain: t.Subdomain,
	})

	return t, nil
}

// Update changes the mutable tenant fields (name, display name).
func (s *TenantService) Update(ctx context.Context, actor *auth.Claims, id int64, name, displayName string) (*domain.Tenant, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("Please provide a tenant name.")
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Name = name
	if displayName != "" {
		t.DisplayName = displayName
	}
	if err := s.tenants.Update(ctx, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Tenant not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.refreshDirectory(ctx)
	s.publish(ctx, actor, events.EventTenantUpdated, events.TenantUpdatedPayload{
		TenantID: t.ID,
		Name:     t.Name,
	})

	return t, nil
}

// Delete removes a tenant. Deletion is blocked while any user still
// references the tenant.
func (s *TenantService) Delete(ctx context.Context, actor *auth.Claims, id int64) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.users.CountByTenant(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("Tenant still has assigned users!")
	}

	if err := s.tenants.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Tenant not found")
		}
		return apperrors.NewInternalError(err)
	}

	s.refreshDirectory(ctx)
	s.publish(ctx, actor, events.EventTenantDeleted, events.TenantDeletedPayload{
		TenantID:  t.ID,
		Subdomain: t.Subdomain,
	})

	return nil
}

func (s *TenantService) refreshDirectory(ctx context.Context) {
	if s.directory == nil {
		return
	}
	if err := s.directory.Refresh(ctx); err != nil {
		s.logger.Warn("tenant directory refresh failed", zap.Error(err))
	}
}

func (s *TenantService) publish(ctx context.Context, actor *auth.Claims, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.UserID, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
