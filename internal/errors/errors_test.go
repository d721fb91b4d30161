package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBassetError_Error(t *testing.T) {
	t.Run("full error with code, asset and cause", func(t *testing.T) {
		err := NewFetchError("fetch_failed", "download failed", fmt.Errorf("connection refused")).
			WithAsset("https://cdn.example.com/lib.js")

		msg := err.Error()
		assert.Contains(t, msg, "[fetch_failed]")
		assert.Contains(t, msg, "asset:https://cdn.example.com/lib.js")
		assert.Contains(t, msg, "download failed")
		assert.Contains(t, msg, "connection refused")
	})

	t.Run("minimal error", func(t *testing.T) {
		err := NewSourceError("bad_source", "not a usable identifier")
		assert.Equal(t, "[bad_source] not a usable identifier", err.Error())
	})
}

func TestBassetError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewArchiveError("extract_failed", "cannot extract", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestBassetError_Is(t *testing.T) {
	a := NewWriteError("put_failed", "storage write refused")
	b := NewWriteError("put_failed", "different message")
	c := NewWriteError("other_code", "storage write refused")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
}

func TestIsType(t *testing.T) {
	fetchErr := NewFetchError("fetch_failed", "boom", nil)
	wrapped := fmt.Errorf("while internalizing: %w", fetchErr)

	assert.True(t, IsType(fetchErr, ErrorTypeFetch))
	assert.True(t, IsType(wrapped, ErrorTypeFetch))
	assert.False(t, IsType(wrapped, ErrorTypeWrite))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeFetch))
}
