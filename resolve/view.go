//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package resolve

import (
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/graph"
	"trpc.group/trpc-go/trpc-flow-go/registry"
)

// SourceKind tags where a view's shape came from. The set is closed:
// consumers switch exhaustively instead of probing the shape for ad hoc keys.
type SourceKind int

// View source kinds.
const (
	// SourceLive means the shape is the node's actual produced output.
	SourceLive SourceKind = iota
	// SourceDeclared means the shape is the registered example shape for the
	// node type.
	SourceDeclared
	// SourcePlaceholder means neither live data nor a declared shape exists.
	SourcePlaceholder
)

// View is the addressable data view a consumer sees for one upstream
// connection: either the producer's live output or a declared fallback shape.
type View struct {
	// Kind tags the shape's origin.
	Kind SourceKind `json:"kind"`

	// Shape is the JSON-like object to walk for addressable paths.
	Shape map[string]any `json:"shape"`

	// ScalarType is the type name of a live scalar output that was wrapped
	// as {value: ...}; empty otherwise.
	ScalarType string `json:"scalar_type,omitempty"`
}

// IsLive reports whether the view reflects actual produced data.
func (v View) IsLive() bool { return v.Kind == SourceLive }

// Describe chooses between a producer's live output and its declared fallback
// shape, narrowed by output handle when the type is multi-output-by-handle.
// live/liveOK come from FetchOutput; edge may be nil when describing a node
// outside any particular connection.
func Describe(node *graph.Node, edge *graph.Edge, caps registry.Capabilities, declared map[string]any, declaredOK bool, live any, liveOK bool) View {
	var view View
	switch {
	case liveOK && live != nil:
		if m, ok := live.(map[string]any); ok {
			view = View{Kind: SourceLive, Shape: m}
		} else {
			view = View{
				Kind:       SourceLive,
				Shape:      map[string]any{"value": live},
				ScalarType: typeName(live),
			}
		}
	case declaredOK:
		view = View{Kind: SourceDeclared, Shape: declared}
	default:
		view = View{Kind: SourcePlaceholder, Shape: map[string]any{"data": "any"}}
	}

	if caps.MultiOutputByHandle && edge != nil {
		view = narrowByHandle(view, edge.SourceHandle)
	}
	return view
}

// narrowByHandle replaces the shape with the slice addressed by a specific
// sub-output handle, so a consumer sees only what flows over its connection
// rather than the producer's entire output surface.
func narrowByHandle(view View, sourceHandle string) View {
	suffix, ok := strings.CutPrefix(sourceHandle, graph.OutputHandlePrefix)
	if !ok || suffix == "" || suffix == "main" {
		return view
	}
	sub, ok := view.Shape[suffix]
	if !ok {
		return view
	}
	if m, ok := sub.(map[string]any); ok {
		view.Shape = m
	} else {
		view.Shape = map[string]any{suffix: sub}
	}
	return view
}

// typeName names a JSON-like scalar's type for display alongside a wrapped
// live scalar.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any:
		return "array"
	default:
		return "object"
	}
}
