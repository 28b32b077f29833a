package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProvider_ScopesByVisitor(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryProvider()

	alice := p.ForVisitor("alice")
	bob := p.ForVisitor("bob")

	_, ok, err := alice.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, alice.Set(ctx, "k", "one"))
	require.NoError(t, bob.Set(ctx, "k", "two"))

	v, ok, err := alice.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	v, _, _ = p.ForVisitor("bob").Get(ctx, "k")
	assert.Equal(t, "two", v)
}

func TestMemoryProvider_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProvider().ForVisitor("v")

	require.NoError(t, s.Set(ctx, "k", "first"))
	require.NoError(t, s.Set(ctx, "k", "second"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}
