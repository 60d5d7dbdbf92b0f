package ptrx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueHelpers(t *testing.T) {
	assert.False(t, Value[bool](nil))
	assert.True(t, Value(Bool(true)))
	assert.Equal(t, "x", ValueOr(nil, "x"))
	assert.Equal(t, "y", ValueOr(String("y"), "x"))
	assert.Equal(t, 3, *To(3))
	assert.Equal(t, 7, *Int(7))
}

func TestNonZero(t *testing.T) {
	assert.Nil(t, NonZero(""))
	assert.Nil(t, NonZero(0))
	assert.Equal(t, "a", *NonZero("a"))
}
