// Package binding checks host-supplied constructors for typed results.
//
// A host program that wants its own result type passes a three-argument
// function; ParseConstructor verifies its shape once with reflection and
// Constructor.Call invokes it for every dynamic record.
package binding
