package foundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
)

func positive(field string) Validator[int] {
	return func(v int) ValidationResult {
		if v <= 0 {
			return Failf(field, "positive", "must be positive, got %d", v)
		}
		return Valid()
	}
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(positive("a")).Add(func(v int) ValidationResult {
		if v > 10 {
			return Failf("b", "max", "must be at most 10")
		}
		return Valid()
	})

	assert.True(t, chain.Validate(5).Valid)
	require.NoError(t, chain.Validate(5).ToError())

	res := chain.Validate(-1)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "a", res.Errors[0].Field)
	assert.Equal(t, "a: must be positive, got -1", res.Errors[0].Error())

	res = chain.Validate(11)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "max", res.Errors[0].Code)
}

func TestValidationResultCombine(t *testing.T) {
	res := Failf("a", "x", "first").Combine(Failf("b", "y", "second"))
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 2)

	err := res.ToError()
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryValidation, ce.Category())
	assert.Equal(t, "a: first; b: second", ce.Message())
	field, _ := ce.Context().GetString("field")
	assert.Equal(t, "a", field)
}

func TestFieldErrorWithoutField(t *testing.T) {
	assert.Equal(t, "broken", FieldError{Message: "broken"}.Error())
}
