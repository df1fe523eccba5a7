package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSuppressHeaderContext verifies the header suppression marker.
func TestSuppressHeaderContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))

	ctx = WithSuppressHeader(ctx)
	assert.True(t, shouldSuppressHeader(ctx))

	// Derived contexts keep the marker.
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	assert.True(t, shouldSuppressHeader(child))
}
