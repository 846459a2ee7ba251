package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejection_UnwrapsToKind(t *testing.T) {
	errFull := errors.New("test: full")
	rej := NewRejection(errFull, "Full", "no room", map[string]any{"limit": 3})

	wrapped := fmt.Errorf("create: %w", rej)
	assert.ErrorIs(t, wrapped, errFull)

	got, ok := AsRejection(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Full", got.Reason)
	assert.Equal(t, 3, got.Details["limit"])
	assert.Equal(t, "test: full: no room", got.Error())
}
