// Package filter parses the compact filter grammar used in list query strings.
//
// A filter parameter is a pipe-delimited string in one of two shapes:
//
//	field|type|operator|value[|percentOfResult]
//	field|value
//
// The short shape infers its type and operator from the value:
//
//	Parse("id|abc123")                        // string eq
//	Parse("price|100")                        // amount has
//	Parse("tags|a,b,c")                       // array any
//	Parse("createdAt|2024-01-01~2024-12-31")  // date range {2024-01-01, 2024-12-31}
//
// Types and operators form a closed set. Only the pairs listed by Supports are
// compiled into pipeline stages; every other descriptor is dropped without an
// error. This is deliberate: list endpoints tolerate garbage filters from clients
// instead of rejecting the request.
//
// Values are carried verbatim. In particular has/nh values end up as regular
// expressions without escaping, see package pipeline.
package filter
