// Package attr is the registry of function and parameter attributes recognized
// by the IR backend.
//
// The attribute set is closed and fixed at build time. Each Attribute carries a
// canonical name (the exact lowercase token the backend matches byte-for-byte),
// a description, and an optional value shape describing the payload the
// attribute takes when applied.
//
// This package is the leaf of the module: every other internal package imports
// attr; attr imports nothing internal.
//
// Key constraints:
//   - Enumeration order is declaration order and never changes between runs
//   - Canonical names are unique and case-sensitive
//   - A value shape is present only for attributes that take a payload
//   - The table is immutable; all accessors are safe for concurrent use
package attr
