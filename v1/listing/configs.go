package listing

import (
	"fmt"

	"github.com/Aleph-Alpha/querypipe/v1/querystring"
)

// Config controls how list requests are turned into pipelines.
type Config struct {
	// TenantField is matched against Options.TenantValue as the first stage
	// after the caller's prefix. Leave empty to disable tenant scoping.
	TenantField string `mapstructure:"tenant_field"`

	// DefaultSortField is used when the request carries no sort
	// Default: "createdAt"
	DefaultSortField string `mapstructure:"default_sort_field"`

	// DefaultSortDirection is "asc" or "desc"
	// Default: "desc"
	DefaultSortDirection string `mapstructure:"default_sort_direction"`

	// MaxLimit caps the page size. Requests above it are capped silently.
	// Default: 250
	MaxLimit int `mapstructure:"max_limit"`

	// SourceField receives the source name in unified listings
	// Default: "source"
	SourceField string `mapstructure:"source_field"`
}

// Default values for configuration
const (
	DefaultSortField     = "createdAt"
	DefaultSortDirection = querystring.SortDescending
	DefaultMaxLimit      = querystring.DefaultMaxLimit
	DefaultSourceField   = "source"
)

// tieBreakerField keeps page boundaries stable when sort keys collide.
const tieBreakerField = "_id"

func (c Config) withDefaults() Config {
	if c.DefaultSortField == "" {
		c.DefaultSortField = DefaultSortField
	}
	if c.DefaultSortDirection == "" {
		c.DefaultSortDirection = DefaultSortDirection
	}
	if c.MaxLimit == 0 {
		c.MaxLimit = DefaultMaxLimit
	}
	if c.SourceField == "" {
		c.SourceField = DefaultSourceField
	}
	return c
}

// Validate checks a configuration after defaults have been applied.
func (c Config) Validate() error {
	if c.MaxLimit < 0 {
		return fmt.Errorf("%w: max limit must not be negative, got %d", ErrInvalidConfig, c.MaxLimit)
	}
	if _, ok := querystring.Direction(c.DefaultSortDirection); !ok {
		return fmt.Errorf("%w: unknown default sort direction %q", ErrInvalidConfig, c.DefaultSortDirection)
	}
	return nil
}
