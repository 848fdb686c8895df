package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_ParsesDirtyFlag(t *testing.T) {
	old := Dirty
	t.Cleanup(func() { Dirty = old })

	Dirty = "true"
	assert.True(t, Get().Dirty)
	Dirty = "false"
	assert.False(t, Get().Dirty)
	assert.Equal(t, Version, Get().Version)
}
