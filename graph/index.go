//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package graph

// Index provides O(1) neighbor lookup over a graph snapshot. It is built once
// and read-only thereafter, so it is safe for concurrent use. Edge slices
// preserve the insertion order of the source graph; no other ordering is
// guaranteed.
type Index struct {
	nodes    map[string]*Node
	incoming map[string][]*Edge
	outgoing map[string][]*Edge
}

// NewIndex builds an index over the given graph snapshot. The index holds
// pointers into the snapshot; callers must not mutate the graph afterwards.
func NewIndex(g *Graph) *Index {
	idx := &Index{
		nodes:    make(map[string]*Node, len(g.Nodes)),
		incoming: make(map[string][]*Edge, len(g.Nodes)),
		outgoing: make(map[string][]*Edge, len(g.Nodes)),
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		idx.nodes[n.ID] = n
	}
	for i := range g.Edges {
		e := &g.Edges[i]
		idx.outgoing[e.Source] = append(idx.outgoing[e.Source], e)
		idx.incoming[e.Target] = append(idx.incoming[e.Target], e)
	}
	return idx
}

// Node returns the node with the given ID.
func (idx *Index) Node(nodeID string) (*Node, bool) {
	n, ok := idx.nodes[nodeID]
	return n, ok
}

// Incoming returns the edges targeting the given node, in insertion order.
func (idx *Index) Incoming(nodeID string) []*Edge {
	return idx.incoming[nodeID]
}

// Outgoing returns the edges originating from the given node, in insertion
// order.
func (idx *Index) Outgoing(nodeID string) []*Edge {
	return idx.outgoing[nodeID]
}
