package schema

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/irattrs/internal/attr"
)

//go:embed catalog.cue
var catalogSchema string

// Validation error codes (E100-E199)
const (
	ErrSchemaViolation     = "E100" // entry does not satisfy #Attribute
	ErrBadDescription      = "E101" // description empty or not a sentence
	ErrBadName             = "E102" // canonical name is not a valid token
	ErrDuplicateName       = "E103" // canonical name used twice
	ErrPlaceholderShape    = "E104" // value shape is empty or "None"
	ErrDuplicateIdentifier = "E105" // identifier used twice
	ErrBadIdentifier       = "E106" // identifier is not a valid Go-style name
)

// ValidationError is one finding against one catalog entry.
type ValidationError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] attributes[%d].%s: %s", e.Code, e.Index, e.Field, e.Message)
}

// compiledSchema holds the CUE context the schema was built in.
// A cue.Context is not safe for concurrent use, hence mu.
type compiledSchema struct {
	mu        sync.Mutex
	ctx       *cue.Context
	attribute cue.Value
}

var loadSchema = sync.OnceValues(func() (*compiledSchema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(catalogSchema, cue.Filename("catalog.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Attribute"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Attribute: %w", err)
	}
	return &compiledSchema{ctx: ctx, attribute: def}, nil
})

// CheckRegistry validates the live registry table.
func CheckRegistry() ([]ValidationError, error) {
	return Validate(attr.Infos())
}

// Validate checks an ordered list of entries.
// The error return is reserved for a schema that fails to load; findings are
// returned as ValidationErrors.
func Validate(infos []attr.Info) ([]ValidationError, error) {
	s, err := loadSchema()
	if err != nil {
		return nil, err
	}

	var errs []ValidationError
	s.mu.Lock()
	for i, info := range infos {
		errs = append(errs, s.validateEntry(i, info)...)
	}
	s.mu.Unlock()
	errs = append(errs, checkUnique(infos)...)
	return errs, nil
}

func (s *compiledSchema) validateEntry(index int, info attr.Info) []ValidationError {
	row := map[string]any{
		"identifier":  info.Identifier,
		"name":        info.Name,
		"description": info.Description,
	}
	// An explicitly empty shape means "takes no value"; only a present shape
	// is checked against the placeholder rules.
	if shape, ok := info.Shape(); ok {
		row["value_shape"] = shape
	}

	v := s.attribute.Unify(s.ctx.Encode(row))
	err := v.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var out []ValidationError
	for _, e := range errors.Errors(err) {
		field := lastField(e.Path())
		format, args := e.Msg()
		out = append(out, ValidationError{
			Index:   index,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    codeForField(field),
		})
	}
	return out
}

func checkUnique(infos []attr.Info) []ValidationError {
	var errs []ValidationError
	names := make(map[string]int, len(infos))
	idents := make(map[string]int, len(infos))

	for i, info := range infos {
		if prev, dup := names[info.Name]; dup {
			errs = append(errs, ValidationError{
				Index:   i,
				Field:   "name",
				Message: fmt.Sprintf("canonical name %q already used by attributes[%d]", info.Name, prev),
				Code:    ErrDuplicateName,
			})
		} else {
			names[info.Name] = i
		}

		if prev, dup := idents[info.Identifier]; dup {
			errs = append(errs, ValidationError{
				Index:   i,
				Field:   "identifier",
				Message: fmt.Sprintf("identifier %q already used by attributes[%d]", info.Identifier, prev),
				Code:    ErrDuplicateIdentifier,
			})
		} else {
			idents[info.Identifier] = i
		}
	}
	return errs
}

// lastField returns the innermost non-index selector of a CUE error path.
func lastField(path []string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(path[i]); err == nil {
			continue
		}
		return path[i]
	}
	return ""
}

func codeForField(field string) string {
	switch field {
	case "description":
		return ErrBadDescription
	case "name":
		return ErrBadName
	case "value_shape":
		return ErrPlaceholderShape
	case "identifier":
		return ErrBadIdentifier
	default:
		return ErrSchemaViolation
	}
}
