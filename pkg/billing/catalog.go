package billing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanSource defines how plan configurations are loaded into a Catalog.
type PlanSource interface {
	Load(ctx context.Context) (map[Plan]PlanConfig, error)
}

// DefaultPlans returns the built-in plan configurations.
func DefaultPlans() []PlanConfig {
	return []PlanConfig{
		{
			Plan:           PlanFree,
			Name:           "Free",
			BasePrice:      decimal.Zero,
			UserMultiplier: decimal.Zero,
			YearlyDiscount: decimal.Zero,
		},
		{
			Plan:           PlanStarter,
			Name:           "Starter",
			BasePrice:      decimal.NewFromInt(49),
			UserMultiplier: decimal.NewFromInt(3),
			YearlyDiscount: decimal.RequireFromString("0.5"),
		},
		{
			Plan:           PlanPremium,
			Name:           "Premium",
			BasePrice:      decimal.NewFromInt(99),
			UserMultiplier: decimal.NewFromInt(5),
			YearlyDiscount: decimal.RequireFromString("0.5"),
		},
	}
}

type inMemSource struct {
	mu    sync.RWMutex
	plans map[Plan]PlanConfig
}

// NewInMemSource returns an in-memory PlanSource holding the given plans.
// Panics if no plans are provided so a catalog always has something to price.
func NewInMemSource(plans ...PlanConfig) PlanSource {
	if len(plans) < 1 {
		panic("billing: at least one plan is required")
	}
	m := make(map[Plan]PlanConfig, len(plans))
	for _, p := range plans {
		m[p.Plan] = p
	}
	return &inMemSource{plans: m}
}

func (s *inMemSource) Load(_ context.Context) (map[Plan]PlanConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Plan]PlanConfig, len(s.plans))
	for k, v := range s.plans {
		out[k] = v
	}
	return out, nil
}

type planFileEntry struct {
	Plan           Plan    `yaml:"plan"`
	Name           string  `yaml:"name"`
	BasePrice      float64 `yaml:"base_price"`
	UserMultiplier float64 `yaml:"user_multiplier"`
	YearlyDiscount float64 `yaml:"yearly_discount"`
}

type planFile struct {
	Plans []planFileEntry `yaml:"plans"`
}

type yamlSource struct {
	path string
}

// NewYAMLSource returns a PlanSource reading plans from a YAML file:
//
//	plans:
//	  - plan: premium
//	    name: Premium
//	    base_price: 99
//	    user_multiplier: 5
//	    yearly_discount: 0.5
func NewYAMLSource(path string) PlanSource {
	return &yamlSource{path: path}
}

func (s *yamlSource) Load(_ context.Context) (map[Plan]PlanConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return ParsePlansYAML(data)
}

// ParsePlansYAML decodes plan configurations from YAML bytes.
func ParsePlansYAML(data []byte) (map[Plan]PlanConfig, error) {
	var f planFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	out := make(map[Plan]PlanConfig, len(f.Plans))
	for _, p := range f.Plans {
		out[p.Plan] = PlanConfig{
			Plan:           p.Plan,
			Name:           p.Name,
			BasePrice:      decimal.NewFromFloat(p.BasePrice),
			UserMultiplier: decimal.NewFromFloat(p.UserMultiplier),
			YearlyDiscount: decimal.NewFromFloat(p.YearlyDiscount),
		}
	}
	return out, nil
}

// Catalog is a validated, immutable set of plan configurations.
type Catalog struct {
	plans map[Plan]PlanConfig
}

// NewCatalog loads and validates plans from src.
func NewCatalog(ctx context.Context, src PlanSource) (*Catalog, error) {
	if src == nil {
		panic("billing: PlanSource is required")
	}
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if err := validatePlans(plans); err != nil {
		return nil, err
	}
	return &Catalog{plans: plans}, nil
}

// DefaultCatalog returns a catalog built from DefaultPlans.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(context.Background(), NewInMemSource(DefaultPlans()...))
	if err != nil {
		panic(err)
	}
	return c
}

// Plan returns the configuration of p.
func (c *Catalog) Plan(p Plan) (PlanConfig, error) {
	cfg, ok := c.plans[p]
	if !ok {
		return PlanConfig{}, ErrPlanNotFound
	}
	return cfg, nil
}

// Pricing validates the inputs and computes the price breakdown.
func (c *Catalog) Pricing(p Plan, userCount int, cycle BillingCycle) (Pricing, error) {
	cfg, err := c.Plan(p)
	if err != nil {
		return Pricing{}, err
	}
	if userCount < 1 {
		return Pricing{}, ErrInvalidUserCount
	}
	if !cycle.Valid() {
		return Pricing{}, ErrInvalidBillingCycle
	}
	return CalculatePricing(cfg, userCount, cycle), nil
}

// validatePlans catches configuration errors at load time.
func validatePlans(plans map[Plan]PlanConfig) error {
	one := decimal.NewFromInt(1)
	for key, p := range plans {
		if key != p.Plan {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan key mismatch: map key %s != plan %s", key, p.Plan))
		}
		if !p.Plan.Valid() {
			return errors.Join(ErrInvalidPlanConfiguration, fmt.Errorf("unknown plan %q", p.Plan))
		}
		if p.BasePrice.IsNegative() || p.UserMultiplier.IsNegative() {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s has negative price components", p.Plan))
		}
		if p.YearlyDiscount.IsNegative() || p.YearlyDiscount.GreaterThanOrEqual(one) {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s yearly discount %s out of range [0,1)", p.Plan, p.YearlyDiscount))
		}
		if p.Plan == PlanFree && !(p.BasePrice.IsZero() && p.UserMultiplier.IsZero() && p.YearlyDiscount.IsZero()) {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan %s must have zero price components", p.Plan))
		}
	}
	return nil
}
