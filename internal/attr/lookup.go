package attr

import (
	"errors"
	"fmt"
)

// ErrUnknownAttribute is matched by every error returned for a name that is
// not in the registry.
var ErrUnknownAttribute = errors.New("unknown attribute")

// UnknownAttributeError reports a name or identifier that resolves to nothing.
type UnknownAttributeError struct {
	Name string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownAttribute) hold.
func (e *UnknownAttributeError) Is(target error) bool {
	return target == ErrUnknownAttribute
}

// Reverse indexes, built once from table.
var (
	byName  = indexBy(func(e entry) string { return e.name })
	byIdent = indexBy(func(e entry) string { return e.ident })
)

func indexBy(key func(entry) string) map[string]Attribute {
	m := make(map[string]Attribute, numAttributes)
	for a := range numAttributes {
		m[key(table[a])] = a
	}
	return m
}

// Lookup resolves a canonical name to its Attribute.
// Matching is exact and case-sensitive: "noreturn" resolves, "NoReturn" does not.
func Lookup(name string) (Attribute, error) {
	a, ok := byName[name]
	if !ok {
		return 0, &UnknownAttributeError{Name: name}
	}
	return a, nil
}

// LookupIdentifier resolves an identifier such as "DereferenceableOrNull".
func LookupIdentifier(ident string) (Attribute, error) {
	a, ok := byIdent[ident]
	if !ok {
		return 0, &UnknownAttributeError{Name: ident}
	}
	return a, nil
}

// MustLookup is like Lookup but panics on error.
// Use only in tests or with names known to be valid.
func MustLookup(name string) Attribute {
	a, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return a
}

// MarshalText encodes the attribute as its canonical name.
func (a Attribute) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("marshal attribute: invalid value %d", uint8(a))
	}
	return []byte(table[a].name), nil
}

// UnmarshalText decodes a canonical name. Unknown names are rejected.
func (a *Attribute) UnmarshalText(text []byte) error {
	v, err := Lookup(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
