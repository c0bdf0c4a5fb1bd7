package attr

import (
	"iter"
	"strconv"
)

// Attribute identifies one member of the closed attribute set.
type Attribute uint8

// Declaration order is enumeration order. Append only; reordering changes
// listings and the catalog digest.
const (
	AlwaysInline Attribute = iota
	InlineHint
	NoReturn
	NoUnwind
	ReadNone
	ReadOnly
	WriteOnly
	Speculatable
	MinSize
	OptSize
	NoInline
	NoCapture
	NonNull
	Dereferenceable
	DereferenceableOrNull
	SRet
	Align
	AllocSize
	AllocAlign
	Returned
	ZeroExt
	SignExt
	Cold
	Hot
	NoBuiltin
	NoRedZone
	SanitizeAddress
	SanitizeThread
	SanitizeMemory
	SanitizeHWAddress
	StrictFP
	StackProtector
	StackProtectorReq
	StackProtectorStrong
	UWTable
	ReturnsTwice
	SwiftSelf
	SwiftError

	numAttributes
)

// Info bundles every piece of metadata for one attribute.
type Info struct {
	Attribute   Attribute `json:"-" yaml:"-"`
	Identifier  string    `json:"identifier" yaml:"identifier"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	ValueShape  string    `json:"value_shape,omitempty" yaml:"value_shape,omitempty"`
}

// Shape returns the value shape and whether the attribute takes a value.
func (i Info) Shape() (string, bool) {
	return i.ValueShape, i.ValueShape != ""
}

// All yields every attribute in declaration order.
// The sequence is finite and may be ranged over any number of times.
func All() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		for a := range numAttributes {
			if !yield(a) {
				return
			}
		}
	}
}

// Attributes returns a new slice holding every attribute in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, 0, numAttributes)
	for a := range All() {
		out = append(out, a)
	}
	return out
}

// Infos returns the metadata of every attribute in declaration order.
func Infos() []Info {
	out := make([]Info, 0, numAttributes)
	for a := range All() {
		out = append(out, a.Info())
	}
	return out
}

// Count returns the number of attributes in the registry.
func Count() int {
	return int(numAttributes)
}

// Valid reports whether a is a member of the attribute set.
// Every value produced by this package is valid; only conversions from raw
// integers can produce an invalid Attribute.
func (a Attribute) Valid() bool {
	return a < numAttributes
}

// Name returns the canonical name, e.g. "dereferenceable_or_null".
// Returns "" for an invalid Attribute.
func (a Attribute) Name() string {
	if !a.Valid() {
		return ""
	}
	return table[a].name
}

// Description returns the human-readable description.
func (a Attribute) Description() string {
	if !a.Valid() {
		return ""
	}
	return table[a].description
}

// ValueShape describes the payload the attribute carries when applied.
// The boolean is false for flag attributes that take no value.
func (a Attribute) ValueShape() (string, bool) {
	if !a.Valid() {
		return "", false
	}
	shape := table[a].shape
	return shape, shape != ""
}

// Info returns the aggregate metadata record for a.
func (a Attribute) Info() Info {
	if !a.Valid() {
		return Info{Attribute: a}
	}
	e := table[a]
	return Info{
		Attribute:   a,
		Identifier:  e.ident,
		Name:        e.name,
		Description: e.description,
		ValueShape:  e.shape,
	}
}

// String returns the identifier form, e.g. "AlwaysInline".
func (a Attribute) String() string {
	if !a.Valid() {
		return "Attribute(" + strconv.Itoa(int(a)) + ")"
	}
	return table[a].ident
}
