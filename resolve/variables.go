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

	"trpc.group/trpc-go/trpc-flow-go/output"
)

// Variable is one addressable template variable exposed to the consumer's
// parameter editor: a leaf path into an upstream producer's data view.
type Variable struct {
	// Alias is the producer's template alias.
	Alias string `json:"alias"`

	// Path addresses the leaf within the producer's view.
	Path string `json:"path"`

	// Ref is the ready-to-insert template reference, e.g. {{node_1.a.b}}.
	Ref string `json:"ref"`

	// Value is the leaf's current (live or declared-example) value.
	Value any `json:"value,omitempty"`

	// Live reports whether Value comes from actual produced data.
	Live bool `json:"live"`
}

// DescribeProducer fetches the producer's live output (with default-slot
// fallback) and builds the data view the consumer sees over this connection.
func (r *Resolver) DescribeProducer(ctx context.Context, p Producer, store output.Store) (View, error) {
	node, ok := r.idx.Node(p.Edge.Source)
	if !ok {
		return View{Kind: SourcePlaceholder, Shape: map[string]any{"data": "any"}}, nil
	}
	caps, _ := r.reg.Get(node.Type)
	declared, declaredOK := r.reg.Schema(node.Type)

	live, liveOK, err := FetchOutput(ctx, store, node.ID, Slot(p.Edge))
	if err != nil {
		return View{}, err
	}
	return Describe(node, p.Edge, caps, declared, declaredOK, live, liveOK), nil
}

// Variables enumerates every addressable leaf path across all of a node's
// producers, in producer order. Markers (empty arrays, truncation) are not
// included; they exist only for preview rendering via Walk.
func (r *Resolver) Variables(ctx context.Context, nodeID string, store output.Store) ([]Variable, error) {
	var vars []Variable
	for _, p := range r.Producers(nodeID) {
		view, err := r.DescribeProducer(ctx, p, store)
		if err != nil {
			return nil, err
		}
		for entry := range Walk(view.Shape, "", MaxArrayItems(r.maxArrayItems)) {
			if entry.Kind != EntryLeaf {
				continue
			}
			vars = append(vars, Variable{
				Alias: p.Alias,
				Path:  entry.Path,
				Ref:   TemplateRef(p.Alias, entry.Path),
				Value: entry.Value,
				Live:  view.IsLive(),
			})
		}
	}
	return vars, nil
}
