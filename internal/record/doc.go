// Package record provides the source records the mapper reads: the concrete
// Original type and dynamic Documents decoded from JSON or YAML.
//
// Documents expose their fields through fallible accessors. Binding a
// Document resolves all three accessors up front, so the mapping that follows
// cannot fail on a missing or non-numeric field.
package record
