package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/querypipe/v1/listing"
	"github.com/Aleph-Alpha/querypipe/v1/logger"
	"github.com/Aleph-Alpha/querypipe/v1/metrics"
	"github.com/Aleph-Alpha/querypipe/v1/mongo"
	"github.com/Aleph-Alpha/querypipe/v1/tracer"
)

// DefaultPrefix is the environment prefix used by LoadConfig and FXModule.
const DefaultPrefix = "QUERYPIPE"

// configFileSuffix names the variable pointing at an optional config file,
// e.g. QUERYPIPE_CONFIG_FILE.
const configFileSuffix = "CONFIG_FILE"

// ErrInvalidTarget is returned when the load target is not a non-nil pointer to a struct.
var ErrInvalidTarget = errors.New("config target must be a non-nil pointer to a struct")

// Config aggregates the configuration of every component.
type Config struct {
	Logger  logger.Config  `mapstructure:"logger"`
	Metrics metrics.Config `mapstructure:"metrics"`
	Tracer  tracer.Config  `mapstructure:"tracer"`
	Mongo   mongo.Config   `mapstructure:"mongo"`
	Listing listing.Config `mapstructure:"listing"`
}

// Load fills target from environment variables.
//
// Keys are derived from the mapstructure tags of target, so the field
// Listing.TenantField of a struct tagged "listing" and "tenant_field" is read
// from PREFIX_LISTING_TENANT_FIELD. Unset variables leave the field untouched.
func Load(prefix string, target any) error {
	return LoadFile("", prefix, target)
}

// LoadFile is like Load but first reads the file at path. Any format viper
// understands by extension is accepted. Environment variables override file
// values. An empty path skips the file.
func LoadFile(path, prefix string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if prefix != "" {
		v.SetEnvPrefix(strings.TrimSuffix(prefix, "_"))
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every
	// tagged field is bound explicitly before Unmarshal.
	for _, key := range keys(rv.Elem().Type(), "") {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// LoadConfig loads the aggregate Config. When PREFIX_CONFIG_FILE is set the
// file it names is read first.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	path := os.Getenv(envName(prefix, configFileSuffix))
	if err := LoadFile(path, prefix, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// keys lists the dotted viper keys of every leaf field in t.
func keys(t reflect.Type, parent string) []string {
	var out []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		key := strings.ToLower(name)
		if parent != "" {
			key = parent + "." + key
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			out = append(out, keys(ft, key)...)
			continue
		}
		if ft.Kind() == reflect.Interface || ft.Kind() == reflect.Func || ft.Kind() == reflect.Chan {
			continue
		}
		out = append(out, key)
	}
	return out
}

func envName(prefix, suffix string) string {
	prefix = strings.TrimSuffix(prefix, "_")
	if prefix == "" {
		return suffix
	}
	return strings.ToUpper(prefix) + "_" + suffix
}
