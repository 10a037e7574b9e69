// Package profile provides the YAML mapping profile: which result style to
// build, how to treat NaN, how many workers to use and which document keys
// feed the three accessors.
//
// # Schema Overview
//
// The profile file has the following structure:
//
//	version: "1"
//	style: structural   # structural | typed
//	nan: propagate      # propagate | reject
//	workers: 1          # values above 1 map in parallel
//	fields:
//	  el1: el1          # key of the first pass-through value
//	  el2: el2          # key of the second pass-through value
//	  i: i              # key of the numeric value
//
// Every key is optional; Parse fills in the values shown above. Unknown keys
// are rejected.
//
// # Validation
//
// Validate reports problems as diagnostics instead of failing on the first
// one. Resolve validates and converts a profile into the Settings the
// pipeline runs with.
package profile
