// Package match ranks known names against a misspelled one so that errors can
// suggest the name the user most likely meant.
//
// Key functions:
//   - Normalize: folds case and drops separators
//   - Levenshtein: edit distance between two strings
//   - Closest: the best candidate above a similarity threshold
package match
