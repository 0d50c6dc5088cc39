package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("quantity", "abc", "must be a non-negative number")

	assert.True(t, Is(err, ErrInputValidation))
	assert.Contains(t, err.Error(), "quantity")
	assert.Contains(t, err.Error(), "abc")
}

func TestFeedErrorUnwrapsCause(t *testing.T) {
	err := NewFeedError("RELIANCE.NS", "history", ErrNoPriceData)

	assert.True(t, Is(err, ErrNoPriceData))

	var feedErr *FeedError
	require.True(t, As(err, &feedErr))
	assert.Equal(t, "RELIANCE.NS", feedErr.Symbol)
}

func TestStoreErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreError("/tmp/portfolio.csv", "save", cause)

	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "save")
}
