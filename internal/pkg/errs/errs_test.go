package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"homeoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "abc-123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "abc-123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order abc-123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("order", "abc-123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: order abc-123 (cause: record not found)", err.Error())
	})

	t.Run("Error with non string ID", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: order 456", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsErrorWithCause("order", "abc-123", errors.New("duplicated key"))

	assert.Equal(t, "object already exists: order abc-123 (cause: duplicated key)", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("orderSource")

		assert.Equal(t, "orderSource", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: orderSource", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("7 is not a valid order source")
		err := errs.NewValueIsInvalidErrorWithCause("orderSource", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: orderSource (cause: 7 is not a valid order source)", err.Error())
	})

	t.Run("multi line causes are flattened", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("lineItems", errors.Join(errors.New("first"), errors.New("second")))

		assert.Equal(t, "value is invalid: lineItems (cause: first second)", err.Error())
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("lineItems")

		assert.Equal(t, "lineItems", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: lineItems", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("id", cause)

		assert.Equal(t, "value is required: id (cause: missing required field)", err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("record order: %w", errs.NewValueIsRequiredError("lineItems"))
		require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)

		joined := errors.Join(errs.NewValueIsInvalidError("id"), errs.NewObjectNotFoundError("order", "x"))
		require.ErrorIs(t, joined, errs.ErrValueIsInvalid)
		require.ErrorIs(t, joined, errs.ErrObjectNotFound)
	})

	t.Run("errors.As exposes details", func(t *testing.T) {
		var target *errs.ObjectNotFoundError
		err := fmt.Errorf("get: %w", errs.NewObjectNotFoundError("order", "x"))

		require.ErrorAs(t, err, &target)
		assert.Equal(t, "x", target.ID)
	})
}
