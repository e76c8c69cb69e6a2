// Package config loads component configuration from environment variables and
// an optional config file using viper.
//
// Every config struct in this module carries mapstructure tags. Load walks
// those tags and binds one environment variable per leaf field:
//
//	type AppConfig struct {
//	    Listing listing.Config `mapstructure:"listing"`
//	}
//
//	var cfg AppConfig
//	// reads QUERYPIPE_LISTING_TENANT_FIELD, QUERYPIPE_LISTING_MAX_LIMIT, ...
//	err := config.Load("QUERYPIPE", &cfg)
//
// LoadFile reads a YAML, JSON or TOML file first; environment variables win
// over file values. Durations accept Go duration strings such as "5s".
//
// The aggregate Config covers every component of this module. LoadConfig fills
// it and honours PREFIX_CONFIG_FILE, and FXModule provides each section to the
// component fx modules.
package config
