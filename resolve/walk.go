//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package resolve

import (
	"fmt"
	"iter"
	"sort"
)

// defaultMaxArrayItems is how many indexed entries the walker synthesizes per
// array before truncating.
const defaultMaxArrayItems = 3

const defaultPoolSize = 8

// EntryKind distinguishes addressable leaves from the walker's synthetic
// markers.
type EntryKind int

// Entry kinds.
const (
	// EntryLeaf is an addressable primitive value.
	EntryLeaf EntryKind = iota
	// EntryEmpty marks an empty array; not addressable.
	EntryEmpty
	// EntryMore marks array entries truncated past the item limit; not
	// addressable. Remaining carries the truncated count.
	EntryMore
)

// Entry is one element of a path walk: an addressable leaf path with its
// value, or a synthetic marker.
type Entry struct {
	// Kind tags the entry.
	Kind EntryKind `json:"kind"`

	// Path addresses the value relative to the walk root, using dots for
	// object keys and brackets for array indices (e.g. "items[0].name").
	Path string `json:"path"`

	// Value is the leaf value; nil for markers.
	Value any `json:"value,omitempty"`

	// Remaining is the truncated item count for EntryMore markers.
	Remaining int `json:"remaining,omitempty"`
}

// WalkOption configures a walk.
type WalkOption func(*walkConfig)

type walkConfig struct {
	maxArrayItems int
}

// MaxArrayItems bounds how many indexed entries are synthesized per array.
func MaxArrayItems(n int) WalkOption {
	return func(c *walkConfig) {
		if n > 0 {
			c.maxArrayItems = n
		}
	}
}

// Walk lazily enumerates the addressable leaf paths of a JSON-like value,
// depth first. Re-walking the same value yields the same entries in the same
// order. Object keys are visited in sorted order (JSON decoding into Go maps
// does not preserve declaration order, so sorting is the stable contract).
//
// Arrays synthesize up to the configured number of indexed entries followed
// by an EntryMore marker; empty arrays yield a single EntryEmpty marker.
// Objects inside array items are expanded, but arrays nested inside array
// items are not expanded further; they surface as a single leaf holding the
// whole array, keeping previews bounded.
func Walk(value any, basePath string, opts ...WalkOption) iter.Seq[Entry] {
	cfg := walkConfig{maxArrayItems: defaultMaxArrayItems}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(yield func(Entry) bool) {
		type frame struct {
			path        string
			value       any
			inArrayItem bool
		}

		// Explicit stack keeps memory bounded and avoids deep recursion on
		// large values. Children are pushed in reverse so the walk emits in
		// natural order.
		stack := []frame{{path: basePath, value: value}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch v := f.value.(type) {
			case map[string]any:
				keys := make([]string, 0, len(v))
				for k := range v {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for i := len(keys) - 1; i >= 0; i-- {
					stack = append(stack, frame{
						path:        joinPath(f.path, keys[i]),
						value:       v[keys[i]],
						inArrayItem: f.inArrayItem,
					})
				}
			case []any:
				if f.inArrayItem {
					// One-level rule: arrays beneath an array item are not
					// expanded; the whole array is addressable as one leaf.
					if !yield(Entry{Kind: EntryLeaf, Path: f.path, Value: v}) {
						return
					}
					continue
				}
				if len(v) == 0 {
					if !yield(Entry{Kind: EntryEmpty, Path: f.path}) {
						return
					}
					continue
				}
				limit := min(len(v), cfg.maxArrayItems)
				if len(v) > limit {
					stack = append(stack, frame{path: f.path, value: moreMarker{remaining: len(v) - limit}})
				}
				for i := limit - 1; i >= 0; i-- {
					stack = append(stack, frame{
						path:        fmt.Sprintf("%s[%d]", f.path, i),
						value:       v[i],
						inArrayItem: true,
					})
				}
			case moreMarker:
				if !yield(Entry{Kind: EntryMore, Path: f.path, Remaining: v.remaining}) {
					return
				}
			default:
				if !yield(Entry{Kind: EntryLeaf, Path: f.path, Value: f.value}) {
					return
				}
			}
		}
	}
}

// moreMarker is an internal stack sentinel emitting the truncation marker
// after an array's synthesized entries.
type moreMarker struct {
	remaining int
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// TemplateRef formats an addressable leaf path as a template reference for
// data-binding in downstream parameters, e.g. {{node_1.result.items[0].name}}.
func TemplateRef(alias, path string) string {
	if path == "" {
		return "{{" + alias + "}}"
	}
	return "{{" + alias + "." + path + "}}"
}
