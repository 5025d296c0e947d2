package promo

import "context"

// Config holds environment configuration for promo codes.
type Config struct {
	// Optional YAML code catalog. DefaultCodes are used when empty.
	CatalogPath string `env:"PROMO_CATALOG_PATH"`
	// Namespace for Redis redemption counters.
	RedisKeyPrefix string `env:"PROMO_REDIS_KEY_PREFIX" envDefault:"promo:redemptions:"`
}

// NewCatalogFromConfig loads the catalog described by cfg.
func NewCatalogFromConfig(ctx context.Context, cfg Config) (*Catalog, error) {
	if cfg.CatalogPath == "" {
		return NewCatalog(ctx, NewStaticSource(DefaultCodes()...))
	}
	return NewCatalog(ctx, NewYAMLSource(cfg.CatalogPath))
}
