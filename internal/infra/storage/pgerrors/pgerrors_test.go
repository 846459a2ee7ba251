package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: CodeUniqueViolation, Constraint: "uq_x"})

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "uq_x"))
	assert.False(t, IsUniqueViolation(err, "uq_y"))
	assert.False(t, IsForeignKeyViolation(err, ""))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeSerializationFailure}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: CodeUniqueViolation}))
}
