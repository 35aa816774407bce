//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package resolve implements the dataflow resolution engine: given a graph
// snapshot, a node-type registry, and an output store, it computes which
// upstream producers feed a node's input handles, the addressable data view
// per producer, and which conditional outgoing edges are active. All
// operations read immutable snapshots and are safe to invoke concurrently.
package resolve

import (
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/graph"
	"trpc.group/trpc-go/trpc-flow-go/registry"
)

// Producer is one effective upstream connection feeding a node: a direct
// incoming edge, or an edge inherited from a configuration node's parent.
type Producer struct {
	// Edge is the producing connection.
	Edge *graph.Edge `json:"edge"`

	// Label annotates inherited producers ("via <parent display name>");
	// empty for direct producers.
	Label string `json:"label,omitempty"`

	// TargetHandleLabel is the display suffix of a non-default named target
	// handle; empty for the default handle.
	TargetHandleLabel string `json:"target_handle_label,omitempty"`

	// Alias is the stable template alias of the producing node for this
	// connection. It is distinct from the display name so that multiple
	// connections to the same node through different handles stay
	// disambiguated.
	Alias string `json:"alias"`
}

// Resolver computes producer lists, data views, and active edges over one
// graph snapshot.
type Resolver struct {
	g   *graph.Graph
	idx *graph.Index
	reg *registry.Registry

	maxArrayItems int
	poolSize      int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxArrayItems sets how many array entries the path walker synthesizes
// before truncating. Default is 3.
func WithMaxArrayItems(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxArrayItems = n
		}
	}
}

// WithPoolSize sets the worker pool size used by PreviewAll. Default is 8.
func WithPoolSize(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.poolSize = n
		}
	}
}

// New creates a resolver over a graph snapshot. The graph must not be
// mutated afterwards.
func New(g *graph.Graph, reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		g:             g,
		idx:           graph.NewIndex(g),
		reg:           reg,
		maxArrayItems: defaultMaxArrayItems,
		poolSize:      defaultPoolSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index returns the underlying graph index.
func (r *Resolver) Index() *graph.Index { return r.idx }

// Producers computes the ordered, deduplicated list of upstream producers for
// a node:
//
//  1. All direct incoming edges.
//  2. For node types that render auxiliary connections in a dedicated panel,
//     edges landing on auxiliary handles are suppressed (whitelisted primary
//     handles survive).
//  3. Configuration nodes additionally inherit their parent's primary
//     incoming edges, labeled "via <parent>", so they can preview the data
//     their parent sees.
//
// Direct producers come first, inherited ones after, preserving source edge
// order. Nested inheritance (a configuration node parented by another
// configuration node) is not followed; graph validation rejects it.
func (r *Resolver) Producers(nodeID string) []Producer {
	node, ok := r.idx.Node(nodeID)
	if !ok {
		return nil
	}
	caps, _ := r.reg.Get(node.Type)

	var producers []Producer
	for _, e := range r.idx.Incoming(nodeID) {
		if caps.RendersAuxiliaryPanel && registry.Classify(e.TargetHandle, caps) == registry.HandleAuxiliary {
			continue
		}
		producers = append(producers, Producer{
			Edge:              e,
			TargetHandleLabel: namedHandleLabel(e.TargetHandle),
			Alias:             producerAlias(e),
		})
	}

	if caps.IsConfigurationNode {
		producers = append(producers, r.inheritedProducers(nodeID)...)
	}

	return dedupeProducers(producers)
}

// inheritedProducers gathers the primary incoming edges of every parent this
// configuration node is attached to through an auxiliary handle.
func (r *Resolver) inheritedProducers(nodeID string) []Producer {
	var inherited []Producer
	for _, out := range r.idx.Outgoing(nodeID) {
		parent, ok := r.idx.Node(out.Target)
		if !ok {
			continue
		}
		parentCaps, _ := r.reg.Get(parent.Type)
		if registry.Classify(out.TargetHandle, parentCaps) != registry.HandleAuxiliary {
			continue
		}
		for _, pin := range r.idx.Incoming(parent.ID) {
			if registry.Classify(pin.TargetHandle, parentCaps) == registry.HandleAuxiliary {
				continue
			}
			inherited = append(inherited, Producer{
				Edge:  pin,
				Label: "via " + parent.DisplayName(),
				Alias: producerAlias(pin),
			})
		}
	}
	return inherited
}

// namedHandleLabel returns the display suffix for a non-default named input
// handle, empty otherwise.
func namedHandleLabel(targetHandle string) string {
	if targetHandle == "" || targetHandle == graph.InputHandleMain {
		return ""
	}
	return registry.HandleSuffix(targetHandle)
}

// producerAlias derives the stable template alias for a connection: the
// source node ID, suffixed with the sub-output name for non-default source
// handles.
func producerAlias(e *graph.Edge) string {
	if e.SourceHandle == "" || e.SourceHandle == graph.OutputHandleMain {
		return e.Source
	}
	suffix, ok := strings.CutPrefix(e.SourceHandle, graph.OutputHandlePrefix)
	if !ok || suffix == "" || suffix == "main" {
		return e.Source
	}
	return e.Source + "_" + suffix
}

// dedupeProducers removes duplicate (source, sourceHandle, targetHandle)
// triples, keeping the first occurrence.
func dedupeProducers(producers []Producer) []Producer {
	type key struct {
		source       string
		sourceHandle string
		targetHandle string
	}
	seen := make(map[key]bool, len(producers))
	out := producers[:0]
	for _, p := range producers {
		k := key{p.Edge.Source, p.Edge.SourceHandle, p.Edge.TargetHandle}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
