// Package schema checks registry metadata against an embedded CUE schema.
//
// The attr package already refuses to initialize on structurally broken
// tables. This package adds the content rules that are easier to state
// declaratively: token syntax for names and identifiers, sentence form for
// descriptions, and no placeholder value shapes. Uniqueness across entries is
// checked in Go.
//
// Validation collects every finding; it never stops at the first one.
package schema
