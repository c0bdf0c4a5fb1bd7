package attr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	identPattern = regexp.MustCompile(`^[A-Z][A-Za-z]*$`)
	namePattern  = regexp.MustCompile(`^[a-z][a-z_]*$`)
)

func init() {
	if err := CheckTable(); err != nil {
		panic(fmt.Sprintf("attr: malformed registry table: %v", err))
	}
}

// CheckTable verifies the registry's structural invariants and returns every
// violation found, joined. The package refuses to initialize if this fails.
func CheckTable() error {
	return checkEntries(table[:])
}

func checkEntries(entries []entry) error {
	var errs []error
	names := make(map[string]int, len(entries))
	idents := make(map[string]int, len(entries))

	for i, e := range entries {
		if !identPattern.MatchString(e.ident) {
			errs = append(errs, fmt.Errorf("entry %d: invalid identifier %q", i, e.ident))
		}
		if !namePattern.MatchString(e.name) {
			errs = append(errs, fmt.Errorf("entry %d (%s): invalid canonical name %q", i, e.ident, e.name))
		}
		if strings.TrimSpace(e.description) == "" {
			errs = append(errs, fmt.Errorf("entry %d (%s): empty description", i, e.ident))
		}
		if e.shape != "" && (strings.TrimSpace(e.shape) == "" || strings.EqualFold(e.shape, "none")) {
			errs = append(errs, fmt.Errorf("entry %d (%s): placeholder value shape %q", i, e.ident, e.shape))
		}
		if prev, dup := names[e.name]; dup && e.name != "" {
			errs = append(errs, fmt.Errorf("entry %d (%s): canonical name %q already used by entry %d", i, e.ident, e.name, prev))
		}
		names[e.name] = i
		if prev, dup := idents[e.ident]; dup && e.ident != "" {
			errs = append(errs, fmt.Errorf("entry %d: identifier %q already used by entry %d", i, e.ident, prev))
		}
		idents[e.ident] = i
	}

	return errors.Join(errs...)
}
