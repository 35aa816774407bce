//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := New()

	err := r.Register("agent", Capabilities{
		DisplayName:           "Agent",
		RendersAuxiliaryPanel: true,
	})
	require.NoError(t, err)

	caps, ok := r.Get("agent")
	require.True(t, ok)
	assert.Equal(t, "Agent", caps.DisplayName)
	assert.True(t, caps.RendersAuxiliaryPanel)

	_, ok = r.Get("unknown")
	assert.False(t, ok)

	assert.Error(t, r.Register("agent", Capabilities{}), "duplicate registration must fail")
	assert.Error(t, r.Register("", Capabilities{}), "empty type must fail")
}

func TestRegistrySchemas(t *testing.T) {
	r := New()
	shape := map[string]any{"result": "string"}
	r.RegisterSchema("http_request", shape)

	got, ok := r.Schema("http_request")
	require.True(t, ok)
	assert.Equal(t, shape, got)

	_, ok = r.Schema("unknown")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	caps := Capabilities{
		PrimaryHandles:   []string{"input-task_result"},
		AuxiliaryHandles: []string{"memory"},
	}

	tests := []struct {
		handle string
		want   HandleClass
	}{
		{"", HandlePrimary},
		{"input-main", HandlePrimary},
		{"input-task_result", HandlePrimary},
		{"input-tools", HandleAuxiliary},
		{"input-skill", HandleAuxiliary},
		{"memory", HandleAuxiliary},
		{"something-else", HandlePrimary},
	}

	for _, tt := range tests {
		t.Run(tt.handle, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.handle, caps))
		})
	}
}

func TestHandleSuffix(t *testing.T) {
	assert.Equal(t, "task", HandleSuffix("input-task"))
	assert.Equal(t, "approved", HandleSuffix("output-approved"))
	assert.Equal(t, "plain", HandleSuffix("plain"))
}
