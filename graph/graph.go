//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package graph defines the wire-level workflow graph model: typed nodes
// connected by directed, possibly multi-handle edges. The structure aligns
// with the ReactFlow edge/node shape used by the visual editor, but carries
// only the fields the resolution engine needs.
package graph

import (
	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-flow-go/condition"
)

// Handle naming conventions. A handle name is the editor-facing identifier of
// a connection point on a node; absence of a handle name means the single
// default handle.
const (
	// InputHandlePrefix prefixes every input handle name.
	InputHandlePrefix = "input-"
	// OutputHandlePrefix prefixes every output handle name.
	OutputHandlePrefix = "output-"
	// InputHandleMain is the default main data input handle.
	InputHandleMain = "input-main"
	// OutputHandleMain is the default output handle.
	OutputHandleMain = "output-main"
	// DefaultSlot is the output slot key for the default/single output.
	DefaultSlot = "output_0"
)

// Node is a unit of work in the workflow graph. Type indexes into the
// external node-type registry; the engine never infers behavior from the
// type string itself.
type Node struct {
	// ID is the unique node identifier within a graph.
	ID string `json:"id"`

	// Type names the registered node type (e.g., "agent", "http_request").
	Type string `json:"type"`

	// Data carries node instance configuration. The engine treats it as
	// opaque apart from well-known display fields.
	Data map[string]any `json:"data,omitempty"`
}

// EdgeData carries the optional declarative condition and display label of an
// edge.
type EdgeData struct {
	// Condition, when present, gates whether the edge is active given the
	// live output of its source node.
	Condition *condition.Condition `json:"condition,omitempty"`

	// Label is the edge label for UI display.
	Label string `json:"label,omitempty"`
}

// Edge is a directed connection from a node's output handle to another
// node's input handle.
type Edge struct {
	// ID is the unique edge identifier (auto-generated if not provided).
	ID string `json:"id,omitempty"`

	// Source is the source node ID.
	Source string `json:"source"`

	// Target is the target node ID.
	Target string `json:"target"`

	// SourceHandle names the output handle on the source node. Empty means
	// the default output handle.
	SourceHandle string `json:"sourceHandle,omitempty"`

	// TargetHandle names the input handle on the target node. Empty means
	// the default main input handle.
	TargetHandle string `json:"targetHandle,omitempty"`

	// Data carries the optional condition and label.
	Data EdgeData `json:"data,omitempty"`
}

// Graph is an immutable snapshot of a workflow graph. Build an Index over it
// for neighbor lookups; none of the resolution components mutate it.
type Graph struct {
	// ID identifies the graph snapshot.
	ID string `json:"id,omitempty"`

	// Name is the graph name for display.
	Name string `json:"name,omitempty"`

	// Nodes are the node instances in this graph.
	Nodes []Node `json:"nodes"`

	// Edges define the connections between nodes.
	Edges []Edge `json:"edges"`
}

// EnsureIDs fills in missing graph and edge identifiers. The editor usually
// assigns IDs itself; this keeps programmatically built graphs valid.
func (g *Graph) EnsureIDs() {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	for i := range g.Edges {
		if g.Edges[i].ID == "" {
			g.Edges[i].ID = uuid.NewString()
		}
	}
}

// DisplayName returns the node's display name: the "label" data field when
// set, otherwise the node ID.
func (n *Node) DisplayName() string {
	if n.Data != nil {
		if label, ok := n.Data["label"].(string); ok && label != "" {
			return label
		}
	}
	return n.ID
}
