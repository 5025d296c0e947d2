package promo

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Source loads promo code definitions.
type Source interface {
	Load(ctx context.Context) ([]Code, error)
}

// DefaultCodes returns the built-in promo codes.
func DefaultCodes() []Code {
	return []Code{
		{Code: "SAVE10", PercentOff: decimal.NewFromInt(10)},
	}
}

type staticSource []Code

// NewStaticSource returns a Source serving the given codes.
func NewStaticSource(codes ...Code) Source {
	return staticSource(codes)
}

func (s staticSource) Load(context.Context) ([]Code, error) {
	return append([]Code(nil), s...), nil
}

type codeFileEntry struct {
	Code           string     `yaml:"code"`
	PercentOff     float64    `yaml:"percent_off"`
	ExpiresAt      *time.Time `yaml:"expires_at"`
	MaxRedemptions int        `yaml:"max_redemptions"`
}

type codeFile struct {
	Codes []codeFileEntry `yaml:"codes"`
}

type yamlSource struct {
	path string
}

// NewYAMLSource reads codes from a YAML file:
//
//	codes:
//	  - code: SAVE10
//	    percent_off: 10
//	  - code: LAUNCH25
//	    percent_off: 25
//	    expires_at: 2025-01-01T00:00:00Z
//	    max_redemptions: 100
func NewYAMLSource(path string) Source {
	return yamlSource{path: path}
}

func (s yamlSource) Load(context.Context) ([]Code, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return ParseCodesYAML(data)
}

// ParseCodesYAML decodes promo codes from YAML bytes.
func ParseCodesYAML(data []byte) ([]Code, error) {
	var f codeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	codes := make([]Code, 0, len(f.Codes))
	for _, e := range f.Codes {
		codes = append(codes, Code{
			Code:           e.Code,
			PercentOff:     decimal.NewFromFloat(e.PercentOff),
			ExpiresAt:      e.ExpiresAt,
			MaxRedemptions: e.MaxRedemptions,
		})
	}
	return codes, nil
}

// Catalog is an immutable lookup table of promo codes keyed by normalized code.
type Catalog struct {
	codes map[string]Code
}

// NewCatalog loads, normalizes and validates codes from src.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		panic("promo: Source is required")
	}
	list, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCodes, err)
	}

	codes := make(map[string]Code, len(list))
	for _, c := range list {
		c.Code = Normalize(c.Code)
		if err := validateCode(c); err != nil {
			return nil, err
		}
		if _, dup := codes[c.Code]; dup {
			return nil, errors.Join(ErrInvalidCode, fmt.Errorf("duplicate code %s", c.Code))
		}
		codes[c.Code] = c
	}
	return &Catalog{codes: codes}, nil
}

// DefaultCatalog returns a catalog holding DefaultCodes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(context.Background(), NewStaticSource(DefaultCodes()...))
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the code matching the normalized form of code.
func (c *Catalog) Lookup(code string) (Code, bool) {
	v, ok := c.codes[Normalize(code)]
	return v, ok
}

// Codes returns a copy of every code in the catalog.
func (c *Catalog) Codes() map[string]Code {
	return maps.Clone(c.codes)
}

func validateCode(c Code) error {
	if c.Code == "" {
		return errors.Join(ErrInvalidCode, errors.New("empty code"))
	}
	if c.PercentOff.IsNegative() || c.PercentOff.GreaterThan(hundred) {
		return errors.Join(ErrInvalidCode, fmt.Errorf("code %s percent off %s out of range [0,100]", c.Code, c.PercentOff))
	}
	if c.MaxRedemptions < 0 {
		return errors.Join(ErrInvalidCode, fmt.Errorf("code %s has negative redemption limit", c.Code))
	}
	return nil
}
