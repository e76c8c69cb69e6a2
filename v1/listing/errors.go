package listing

import "errors"

var (
	// ErrNilAggregator is returned by NewService when no aggregator is given.
	ErrNilAggregator = errors.New("listing: aggregator is nil")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("listing: invalid config")
)

// IsInvalidConfigError checks if the error is caused by an invalid Config.
func IsInvalidConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
