package tenant

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/tenant-platform/internal/repository"
)

const subdomainSetKey = "tenant:subdomains"

// Directory is the materialized snapshot of known tenant subdomains, held as
// a Redis set so edge lookups avoid a database round trip. Tenant mutations
// call Refresh to rebuild the snapshot; reads fall back to Postgres when the
// snapshot is missing or Redis is unreachable.
type Directory struct {
	tenants repository.TenantRepository
	cache   *redis.Client
	logger  *zap.Logger
}

// NewDirectory builds the directory. cache may be nil in tests.
func NewDirectory(tenants repository.TenantRepository, cache *redis.Client, logger *zap.Logger) *Directory {
	return &Directory{tenants: tenants, cache: cache, logger: logger}
}

// Known reports whether the subdomain belongs to an existing tenant.
func (d *Directory) Known(ctx context.Context, subdomain string) (bool, error) {
	if subdomain == "" {
		return false, nil
	}

	if d.cache != nil {
		exists, err := d.cache.Exists(ctx, subdomainSetKey).Result()
		if err == nil && exists > 0 {
			member, err := d.cache.SIsMember(ctx, subdomainSetKey, subdomain).Result()
			if err == nil {
				return member, nil
			}
		}
		if err != nil {
			d.logger.Warn("tenant directory cache unavailable", zap.Error(err))
		}
	}

	subdomains, err := d.tenants.ListSubdomains(ctx)
	if err != nil {
		return false, err
	}
	d.store(ctx, subdomains)

	for _, s := range subdomains {
		if s == subdomain {
			return true, nil
		}
	}
	return false, nil
}

// Refresh rebuilds the snapshot from Postgres. Called by the tenant service
// after every create, update, or delete.
func (d *Directory) Refresh(ctx context.Context) error {
	subdomains, err := d.tenants.ListSubdomains(ctx)
	if err != nil {
		return err
	}
	d.store(ctx, subdomains)
	return nil
}

func (d *Directory) store(ctx context.Context, subdomains []string) {
	if d.cache == nil {
		return
	}

	_, err := d.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, subdomainSetKey)
		if len(subdomains) > 0 {
			members := make([]interface{}, len(subdomains))
			for i, s := range subdomains {
				members[i] = s
			}
			pipe.SAdd(ctx, subdomainSetKey, members...)
		}
		return nil
	})
	if err != nil {
		d.logger.Warn("failed to rebuild tenant directory snapshot", zap.Error(err))
	}
}
