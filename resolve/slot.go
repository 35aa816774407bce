//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package resolve

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/graph"
	"trpc.group/trpc-go/trpc-flow-go/output"
)

// Slot maps an edge's source handle to the concrete output slot key of the
// producing node: "output-foo" addresses slot "output_foo"; an absent or
// default handle addresses "output_0".
func Slot(edge *graph.Edge) string {
	handle := edge.SourceHandle
	if handle == "" || handle == graph.OutputHandleMain {
		return graph.DefaultSlot
	}
	if suffix, ok := strings.CutPrefix(handle, graph.OutputHandlePrefix); ok {
		if suffix == "main" {
			return graph.DefaultSlot
		}
		return "output_" + suffix
	}
	return graph.DefaultSlot
}

// FetchOutput looks up a producer's live output at the given slot. When a
// specific non-default slot has no data it additionally tries the default
// slot before declaring absence: multi-output nodes commonly alias their
// primary result onto output_0 during early execution.
func FetchOutput(ctx context.Context, store output.Store, nodeID, slot string) (any, bool, error) {
	value, ok, err := store.Get(ctx, nodeID, slot)
	if err != nil {
		return nil, false, fmt.Errorf("fetch output %s/%s: %w", nodeID, slot, err)
	}
	if ok {
		return value, true, nil
	}
	if slot == graph.DefaultSlot {
		return nil, false, nil
	}
	value, ok, err = store.Get(ctx, nodeID, graph.DefaultSlot)
	if err != nil {
		return nil, false, fmt.Errorf("fetch output %s/%s: %w", nodeID, graph.DefaultSlot, err)
	}
	return value, ok, nil
}
