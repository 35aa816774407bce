//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "n1", "output_0")
	require.NoError(t, err)
	assert.False(t, ok, "unset slot must be absent")

	s.Set("n1", "output_0", map[string]any{"status": "completed"})

	value, ok, err := s.Get(ctx, "n1", "output_0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"status": "completed"}, value)

	// Null output means "not yet executed".
	s.Set("n2", "output_0", nil)
	_, ok, err = s.Get(ctx, "n2", "output_0")
	require.NoError(t, err)
	assert.False(t, ok)

	s.Delete("n1", "output_0")
	_, ok, _ = s.Get(ctx, "n1", "output_0")
	assert.False(t, ok)
}
