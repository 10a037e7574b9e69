// Package diagnostic provides structured errors and warnings produced
// while validating mapping profiles.
//
// Key capabilities:
//   - Stable codes for each kind of problem
//   - Location of the offending profile and key
//   - Folding of all error diagnostics into a single error
package diagnostic
