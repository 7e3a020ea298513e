package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathIsChildOf(t *testing.T) {
	parent := NewPath("svc::http")
	child := NewPath("svc::http::handler")
	assert.True(t, child.IsChildOf(parent))
	assert.False(t, parent.IsChildOf(child))
	assert.False(t, parent.IsChildOf(parent))
}

func TestPathIsChildOfRejectsPrefixMatchWithoutSeparator(t *testing.T) {
	parent := NewPath("svc::http")
	notChild := NewPath("svc::httpx")
	assert.False(t, notChild.IsChildOf(parent))
}

func TestPathSegments(t *testing.T) {
	p := NewPath("a::b::c")
	assert.Equal(t, []string{"a", "b", "c"}, p.Segments())
}
