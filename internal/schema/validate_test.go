package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/irattrs/internal/attr"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestCheckRegistryClean(t *testing.T) {
	errs, err := CheckRegistry()
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateEmpty(t *testing.T) {
	errs, err := Validate(nil)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateEntryRules(t *testing.T) {
	good := attr.Info{
		Identifier:  "Cold",
		Name:        "cold",
		Description: "Indicates that the function is unlikely to be executed.",
	}

	tests := []struct {
		name   string
		mutate func(*attr.Info)
		code   string
		field  string
	}{
		{"uppercase name", func(i *attr.Info) { i.Name = "Cold" }, ErrBadName, "name"},
		{"dashed name", func(i *attr.Info) { i.Name = "cold-call" }, ErrBadName, "name"},
		{"empty description", func(i *attr.Info) { i.Description = "" }, ErrBadDescription, "description"},
		{"no trailing period", func(i *attr.Info) { i.Description = "Marks cold code" }, ErrBadDescription, "description"},
		{"placeholder shape", func(i *attr.Info) { i.ValueShape = "None" }, ErrPlaceholderShape, "value_shape"},
		{"lowercase identifier", func(i *attr.Info) { i.Identifier = "cold" }, ErrBadIdentifier, "identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := good
			tt.mutate(&info)

			errs, err := Validate([]attr.Info{good, info})
			require.NoError(t, err)
			require.NotEmpty(t, errs)

			var found bool
			for _, e := range errs {
				if e.Code == tt.code {
					found = true
					assert.Equal(t, 1, e.Index)
					assert.Equal(t, tt.field, e.Field)
					assert.NotEmpty(t, e.Message)
				}
			}
			assert.True(t, found, "expected %s in %v", tt.code, codes(errs))
		})
	}
}

func TestValidateValidShape(t *testing.T) {
	errs, err := Validate([]attr.Info{attr.Align.Info(), attr.AllocSize.Info()})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateDuplicates(t *testing.T) {
	noReturn := attr.NoReturn.Info()
	renamed := attr.Cold.Info()
	renamed.Name = noReturn.Name

	errs, err := Validate([]attr.Info{noReturn, renamed, attr.NoReturn.Info()})
	require.NoError(t, err)

	assert.Contains(t, codes(errs), ErrDuplicateName)
	assert.Contains(t, codes(errs), ErrDuplicateIdentifier)

	for _, e := range errs {
		assert.NotEqual(t, 0, e.Index, "first occurrence is never reported: %v", e)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Index: 3, Field: "name", Message: "bad token", Code: ErrBadName}
	assert.Equal(t, "[E102] attributes[3].name: bad token", e.Error())
}

func TestLastField(t *testing.T) {
	assert.Equal(t, "name", lastField([]string{"name"}))
	assert.Equal(t, "name", lastField([]string{"#Catalog", "3", "name"}))
	assert.Equal(t, "value_shape", lastField([]string{"value_shape", "0"}))
	assert.Equal(t, "", lastField(nil))
}
