package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, a < b, "ULIDs generated in sequence should sort in creation order")
	assert.True(t, IsULID(a))
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID("01HGZ8VNRYXS8QKNJV5GRWPWDQ"))
	assert.True(t, IsULID("01hgz8vnryxs8qknjv5grwpwdq"))
	assert.False(t, IsULID("42"))
	assert.False(t, IsULID("01HGZ8VNRYXS8QKNJV5GRWPWDU"))
	assert.False(t, IsULID(""))
}
