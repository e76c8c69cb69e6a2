// Package pipeline compiles filter descriptors into MongoDB aggregation stages.
//
// Every valid descriptor becomes one $match stage:
//
//	stages := pipeline.Compile(filter.ParseMany(values["filter"]))
//	// [{$match: {price: {$gt: 100}}}, {$match: {tags: {$in: ["a", "b"]}}}]
//
// Descriptors with an unsupported (type, operator) pair, or with values that cannot be
// parsed for their type, produce no stage and no error.
//
// # Operator semantics
//
//   - eq on string: anchored, case-insensitive match. On id and _id the identifier
//     triple-match is used instead (see IdentifierMatch).
//   - ne: negation of eq for the same type.
//   - has / nh: case-insensitive regular expression and its negation. The value is NOT
//     escaped; callers that accept untrusted input get regex semantics, including
//     expensive patterns.
//   - any / none: $in / $nin over the comma separated list. Elements that look like
//     ObjectIDs (24 hex characters) are converted.
//   - range: inclusive bounds. Amount bounds are floats; date bounds are expanded to
//     the start of the first day and the end of the last day (UTC).
//   - lt, gt (amount) and before, after (date): strict comparisons. Dates use the start
//     of the given day for before and the end of the given day for after, so the
//     given day itself is excluded in both directions.
//
// # Percent of result
//
// CompileWithPercent additionally honours Descriptor.PercentOfResult by counting the
// pipeline built so far and appending $skip/$limit stages (see Truncate). Each
// percentage costs one extra engine round-trip.
package pipeline
