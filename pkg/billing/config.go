package billing

import "context"

// Config holds environment configuration for the billing catalog and factory.
type Config struct {
	Currency    string `env:"BILLING_CURRENCY" envDefault:"INR"`  // ISO 4217 code subscriptions are priced in.
	TrialDays   int    `env:"BILLING_TRIAL_DAYS" envDefault:"30"` // Trial length in days.
	CatalogPath string `env:"BILLING_CATALOG_PATH"`               // Optional YAML plan catalog; built-in plans when empty.
	Locale      string `env:"BILLING_LOCALE" envDefault:"en-IN"`  // BCP 47 tag used for display formatting.
}

// NewFactoryFromConfig builds the catalog and factory described by cfg.
func NewFactoryFromConfig(ctx context.Context, cfg Config, opts ...FactoryOption) (*Factory, error) {
	src := NewInMemSource(DefaultPlans()...)
	if cfg.CatalogPath != "" {
		src = NewYAMLSource(cfg.CatalogPath)
	}

	catalog, err := NewCatalog(ctx, src)
	if err != nil {
		return nil, err
	}

	configOpts := []FactoryOption{
		WithCurrency(cfg.Currency),
		WithTrialDays(cfg.TrialDays),
	}
	return NewFactory(catalog, append(configOpts, opts...)...), nil
}
