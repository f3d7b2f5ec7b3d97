// Package core validates fauxlizer data files and renders what it finds.
//
// A data file is comma-separated text whose first line names four columns,
// in any order: experiment_name, sample_id, fauxness and category_guess.
//
// # Pipeline
//
//  1. [Validate] reads the file and returns an [Outcome]: the first failure
//     found, or Success with every [Row].
//  2. [GenerateSummary] turns the outcome into a [Summary] document: the
//     failure and its payload, or the row count and fauxness range.
//  3. [FetchRow] renders one row as JSON, as two-line CSV, or hands back
//     the Row itself.
//
// # Failure Order
//
// Row checks run in a fixed order and stop at the first failure, so a line
// with several problems reports the earliest:
//
//	EMPTY_EXPERIMENT_NAME -> SAMPLE_ID_NOT_INT -> SAMPLE_ID_NEGATIVE ->
//	FAUXNESS_NOT_FLOAT -> FAUXNESS_OUT_OF_RANGE -> INVALID_CATEGORY_GUESS
//
// sample_id and fauxness are converted as their checks pass, so the payload
// of a later failure shows converted numbers.
//
// # Error Handling
//
// Validation failures are values, never Go errors. Go errors are reserved
// for I/O problems. Both map to user-facing messages with support codes via
// [MapReturnCode] and [MapError].
package core
