package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.headerWritten)
}

func TestWrap_ReusesExistingRecorder(t *testing.T) {
	outer := Wrap(httptest.NewRecorder())
	inner := Wrap(outer)

	assert.Same(t, outer, inner)

	inner.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, outer.StatusCode())
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusNotFound, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(code)

			assert.Equal(t, code, wrapped.StatusCode())
			assert.Equal(t, code, rec.Code)
		})
	}
}

func TestResponseWriter_WriteHeader_MultipleCallsIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, wrapped.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte(`{"count":`))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	_, err = wrapped.Write([]byte(`0}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, wrapped.StatusCode(), "implicit 200")
	assert.True(t, wrapped.headerWritten)
	assert.Equal(t, 11, wrapped.BytesWritten())
	assert.Equal(t, `{"count":0}`, rec.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.Same(t, rec, wrapped.Unwrap())
}
