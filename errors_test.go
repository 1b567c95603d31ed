package openid

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFC6749ErrorIs(t *testing.T) {
	err := ErrInvalidGrant.WithHint("The code expired.")

	assert.ErrorIs(t, err, ErrInvalidGrant)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}

func TestRFC6749ErrorCopyOnWrite(t *testing.T) {
	original := ErrInvalidRequest
	modified := original.WithHint("Something specific.").WithDebug("debug detail")

	assert.Empty(t, original.HintField)
	assert.Empty(t, original.DebugField)
	assert.Equal(t, "Something specific.", modified.HintField)
	assert.Equal(t, "debug detail", modified.DebugField)
}

func TestRFC6749ErrorDescription(t *testing.T) {
	err := ErrInvalidRequest.WithHint("The 'scope' parameter is malformed.")

	description := err.GetDescription()
	assert.Contains(t, description, "The request is missing a required parameter")
	assert.Contains(t, description, "The 'scope' parameter is malformed.")

	// Debug only leaks when explicitly exposed.
	err = err.WithDebug("stack detail")
	assert.NotContains(t, err.GetDescription(), "stack detail")
	assert.Contains(t, err.WithExposeDebug(true).GetDescription(), "stack detail")
}

func TestRFC6749ErrorMarshalJSON(t *testing.T) {
	err := &RFC6749Error{
		ErrorField:       "custom_error",
		DescriptionField: "custom_description",
		URIField:         "custom_uri",
		CodeField:        http.StatusBadRequest,
	}

	data, merr := json.Marshal(err)
	require.NoError(t, merr)

	assert.JSONEq(t, `{"error":"custom_error","error_description":"custom_description","error_uri":"custom_uri"}`, string(data))
}

func TestRFC6749ErrorMarshalJSONOmitsEmptyFields(t *testing.T) {
	err := &RFC6749Error{ErrorField: "access_denied", CodeField: http.StatusForbidden}

	data, merr := json.Marshal(err)
	require.NoError(t, merr)

	assert.JSONEq(t, `{"error":"access_denied"}`, string(data))
}

func TestRFC6749ErrorToValues(t *testing.T) {
	err := &RFC6749Error{
		ErrorField:       "access_denied",
		DescriptionField: "The resource owner denied the request.",
		URIField:         "https://example.com/errors/denied",
	}

	values := err.ToValues()
	assert.Equal(t, "access_denied", values.Get("error"))
	assert.Equal(t, "The resource owner denied the request.", values.Get("error_description"))
	assert.Equal(t, "https://example.com/errors/denied", values.Get("error_uri"))
}

func TestErrorToRFC6749Error(t *testing.T) {
	t.Run("ShouldPassThroughProtocolErrors", func(t *testing.T) {
		err := ErrInvalidScope.WithHint("hint")
		assert.Equal(t, err, ErrorToRFC6749Error(err))
	})

	t.Run("ShouldWrapUnknownErrorsAsServerError", func(t *testing.T) {
		wrapped := ErrorToRFC6749Error(errors.New("database down"))
		assert.Equal(t, "server_error", wrapped.ErrorField)
		assert.Equal(t, http.StatusInternalServerError, wrapped.CodeField)
		assert.Equal(t, "database down", wrapped.DebugField)
	})
}

func TestOutcomeToError(t *testing.T) {
	t.Run("ShouldDefaultCodeAndStatus", func(t *testing.T) {
		err := Reject("", "", "").toError(ErrAccessDenied)
		assert.Equal(t, "access_denied", err.ErrorField)
		assert.Equal(t, http.StatusForbidden, err.CodeField)
		assert.Empty(t, err.DescriptionField)
		assert.Empty(t, err.URIField)
	})

	t.Run("ShouldHonorCustomTriple", func(t *testing.T) {
		err := Reject("custom_error", "custom_description", "custom_uri").toError(ErrInvalidRequest)
		assert.Equal(t, "custom_error", err.ErrorField)
		assert.Equal(t, "custom_description", err.DescriptionField)
		assert.Equal(t, "custom_uri", err.URIField)
		assert.Equal(t, http.StatusBadRequest, err.CodeField)
	})

	t.Run("ShouldKeepDescriptionAbsentWhenOnlyCodeGiven", func(t *testing.T) {
		err := Reject("invalid_scope", "", "").toError(ErrInvalidRequest)
		assert.Equal(t, "invalid_scope", err.ErrorField)
		assert.Empty(t, err.DescriptionField)
	})
}
