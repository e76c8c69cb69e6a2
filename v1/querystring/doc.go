// Package querystring maps list URLs to Request values and back.
//
// Recognised parameters:
//
//	page             1-indexed page number                 default 1
//	limit            page size, capped at the maximum      default maximum (250)
//	sort             field|direction                       default from listing.Config
//	filter           repeatable, see package filter
//	id               identifier for point lookups
//	export           true disables pagination
//	countResultOnly  true returns the count without items
//
// Parsing is tolerant: bad values fall back to defaults instead of failing.
// The helpers here have no engine dependency and can be used to build URLs on
// the client side.
package querystring
