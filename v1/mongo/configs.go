package mongo

import "time"

// Config defines the configuration for the MongoDB client.
type Config struct {
	// URI is the MongoDB connection string
	// Default: "mongodb://localhost:27017"
	URI string `mapstructure:"uri"`

	// Database is the database every collection name is resolved against
	// Default: "app"
	Database string `mapstructure:"database"`

	// AppName is reported to the server in the handshake and shows up in server logs
	AppName string `mapstructure:"app_name"`

	// ConnectTimeout bounds establishing a single connection
	// Default: 10 seconds
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// ServerSelectionTimeout bounds how long an operation waits for a suitable server
	// Default: 5 seconds
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`

	// MaxPoolSize is the maximum number of connections per server
	// Default: 100
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`

	// MinPoolSize is the number of connections kept open per server
	// Default: 0
	MinPoolSize uint64 `mapstructure:"min_pool_size"`

	// AllowDiskUse lets aggregation stages spill to disk. Large unpaginated
	// exports with a $sort need this on most deployments.
	AllowDiskUse bool `mapstructure:"allow_disk_use"`

	// DisconnectTimeout bounds Close
	// Default: 10 seconds
	DisconnectTimeout time.Duration `mapstructure:"disconnect_timeout"`

	// Logger is an optional logger from the querypipe/v1/logger package
	Logger Logger `mapstructure:"-"`
}

// Logger is the subset of the logger package used here.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultURI                    = "mongodb://localhost:27017"
	DefaultDatabase               = "app"
	DefaultConnectTimeout         = 10 * time.Second
	DefaultServerSelectionTimeout = 5 * time.Second
	DefaultMaxPoolSize            = 100
	DefaultDisconnectTimeout      = 10 * time.Second
)

// withDefaults fills zero values with the package defaults.
func (c Config) withDefaults() Config {
	if c.URI == "" {
		c.URI = DefaultURI
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ServerSelectionTimeout == 0 {
		c.ServerSelectionTimeout = DefaultServerSelectionTimeout
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = DefaultMaxPoolSize
	}
	if c.DisconnectTimeout == 0 {
		c.DisconnectTimeout = DefaultDisconnectTimeout
	}
	return c
}
