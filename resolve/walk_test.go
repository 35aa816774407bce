//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package resolve

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(value any, opts ...WalkOption) []Entry {
	var entries []Entry
	for e := range Walk(value, "", opts...) {
		entries = append(entries, e)
	}
	return entries
}

func TestWalkSingleNestedLeaf(t *testing.T) {
	entries := collect(map[string]any{"a": map[string]any{"b": 1.0}})
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Kind: EntryLeaf, Path: "a.b", Value: 1.0}, entries[0])
}

func TestWalkIsRestartable(t *testing.T) {
	value := map[string]any{
		"z": "last",
		"a": map[string]any{"b": 1.0, "c": true},
		"items": []any{
			map[string]any{"name": "x"},
			2.0,
		},
	}
	seq := Walk(value, "")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second, "re-walking must yield identical, order-stable results")
}

func TestWalkArrayTruncation(t *testing.T) {
	entries := collect(map[string]any{"items": []any{1.0, 2.0, 3.0, 4.0}})
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Kind: EntryLeaf, Path: "items[0]", Value: 1.0}, entries[0])
	assert.Equal(t, Entry{Kind: EntryLeaf, Path: "items[1]", Value: 2.0}, entries[1])
	assert.Equal(t, Entry{Kind: EntryLeaf, Path: "items[2]", Value: 3.0}, entries[2])
	assert.Equal(t, Entry{Kind: EntryMore, Path: "items", Remaining: 1}, entries[3])
}

func TestWalkCustomArrayLimit(t *testing.T) {
	entries := collect(map[string]any{"items": []any{1.0, 2.0, 3.0, 4.0, 5.0}}, MaxArrayItems(2))
	require.Len(t, entries, 3)
	assert.Equal(t, "items[0]", entries[0].Path)
	assert.Equal(t, "items[1]", entries[1].Path)
	assert.Equal(t, Entry{Kind: EntryMore, Path: "items", Remaining: 3}, entries[2])
}

func TestWalkEmptyArrayMarker(t *testing.T) {
	entries := collect(map[string]any{"items": []any{}})
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Kind: EntryEmpty, Path: "items"}, entries[0])
}

func TestWalkObjectArrayItems(t *testing.T) {
	entries := collect(map[string]any{
		"items": []any{
			map[string]any{"name": "first", "meta": map[string]any{"rank": 1.0}},
		},
	})
	paths := make(map[string]any, len(entries))
	for _, e := range entries {
		require.Equal(t, EntryLeaf, e.Kind)
		paths[e.Path] = e.Value
	}
	assert.Equal(t, map[string]any{
		"items[0].meta.rank": 1.0,
		"items[0].name":      "first",
	}, paths, "primitives beneath an array item are addressed via dotted paths")
}

func TestWalkArraysInsideArrayItemsAreNotExpanded(t *testing.T) {
	entries := collect(map[string]any{
		"items": []any{
			map[string]any{"tags": []any{"a", "b"}},
		},
	})
	require.Len(t, entries, 1)
	assert.Equal(t, EntryLeaf, entries[0].Kind)
	assert.Equal(t, "items[0].tags", entries[0].Path)
	assert.Equal(t, []any{"a", "b"}, entries[0].Value)
}

func TestWalkScalarRoot(t *testing.T) {
	entries := collect("hello")
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Kind: EntryLeaf, Path: "", Value: "hello"}, entries[0])
}

func TestWalkBasePathPrefix(t *testing.T) {
	var entries []Entry
	for e := range Walk(map[string]any{"b": 1.0}, "root") {
		entries = append(entries, e)
	}
	require.Len(t, entries, 1)
	assert.Equal(t, "root.b", entries[0].Path)
}

func TestWalkEarlyStop(t *testing.T) {
	value := map[string]any{"a": 1.0, "b": 2.0, "c": 3.0}
	count := 0
	for range Walk(value, "") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestTemplateRef(t *testing.T) {
	assert.Equal(t, "{{node_1.result.items[0].name}}", TemplateRef("node_1", "result.items[0].name"))
	assert.Equal(t, "{{node_1}}", TemplateRef("node_1", ""))
}
