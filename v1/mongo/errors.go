package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrEmptyCollection is returned when an operation is called without a collection name.
	ErrEmptyCollection = errors.New("mongo: empty collection name")

	// ErrNotConnected is returned when the client has been closed or was never created.
	ErrNotConnected = errors.New("mongo: client is not connected")
)

// IsEmptyCollectionError checks if the error is caused by a missing collection name.
func IsEmptyCollectionError(err error) bool {
	return errors.Is(err, ErrEmptyCollection)
}

// IsNotConnectedError checks if the error is caused by a closed client.
func IsNotConnectedError(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// IsTimeoutError reports whether the driver gave up because a deadline passed.
func IsTimeoutError(err error) bool {
	return mongo.IsTimeout(err)
}

// IsNetworkError reports whether the driver failed to reach the server.
func IsNetworkError(err error) bool {
	return mongo.IsNetworkError(err)
}
