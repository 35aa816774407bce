//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package graph

import (
	"fmt"

	"trpc.group/trpc-go/trpc-flow-go/condition"
	"trpc.group/trpc-go/trpc-flow-go/registry"
)

// Diagnostic describes a validation problem surfaced to the editor. Offending
// edges are flagged and treated as inactive by the router until fixed.
type Diagnostic struct {
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Diagnostic codes.
const (
	CodeDuplicateNode       = "duplicate_node"
	CodeDuplicateEdge       = "duplicate_edge"
	CodeMissingNode         = "missing_node"
	CodeInvalidCondition    = "invalid_condition"
	CodeNestedConfiguration = "nested_configuration"
)

// Validate performs structural validation of a graph snapshot against the
// node-type registry. It returns one diagnostic per problem; an empty slice
// means the graph is valid. Soft-absent situations (missing outputs, missing
// declared schemas) are not validation concerns; they degrade at resolution
// time instead.
func Validate(g *Graph, reg *registry.Registry) []Diagnostic {
	var diags []Diagnostic

	nodeIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			diags = append(diags, Diagnostic{
				Code:     CodeMissingNode,
				Message:  "node has no id",
				Severity: "error",
			})
			continue
		}
		if nodeIDs[n.ID] {
			diags = append(diags, Diagnostic{
				Code:     CodeDuplicateNode,
				Message:  fmt.Sprintf("duplicate node id %q", n.ID),
				Path:     n.ID,
				Severity: "error",
			})
		}
		nodeIDs[n.ID] = true
	}

	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID != "" {
			if edgeIDs[e.ID] {
				diags = append(diags, Diagnostic{
					Code:     CodeDuplicateEdge,
					Message:  fmt.Sprintf("duplicate edge id %q", e.ID),
					Path:     e.ID,
					Severity: "error",
				})
			}
			edgeIDs[e.ID] = true
		}
		for _, endpoint := range []string{e.Source, e.Target} {
			if !nodeIDs[endpoint] {
				diags = append(diags, Diagnostic{
					Code:     CodeMissingNode,
					Message:  fmt.Sprintf("edge %q references unknown node %q", e.ID, endpoint),
					Path:     e.ID,
					Severity: "error",
				})
			}
		}
		if e.Data.Condition != nil {
			if err := condition.Validate(*e.Data.Condition); err != nil {
				diags = append(diags, Diagnostic{
					Code:     CodeInvalidCondition,
					Message:  fmt.Sprintf("edge %q condition: %v", e.ID, err),
					Path:     e.ID,
					Severity: "error",
				})
			}
		}
	}

	diags = append(diags, validateConfigurationNesting(g, reg)...)
	return diags
}

// validateConfigurationNesting rejects configuration nodes attached to a
// parent that is itself a configuration node. Producer inheritance is one
// level deep only; deeper nesting has no defined resolution semantics, so it
// is blocked at edit time rather than silently mis-resolved.
func validateConfigurationNesting(g *Graph, reg *registry.Registry) []Diagnostic {
	nodeByID := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		nodeByID[g.Nodes[i].ID] = &g.Nodes[i]
	}

	var diags []Diagnostic
	for _, e := range g.Edges {
		source, ok := nodeByID[e.Source]
		if !ok {
			continue
		}
		sourceCaps, _ := reg.Get(source.Type)
		if !sourceCaps.IsConfigurationNode {
			continue
		}
		parent, ok := nodeByID[e.Target]
		if !ok {
			continue
		}
		parentCaps, _ := reg.Get(parent.Type)
		if registry.Classify(e.TargetHandle, parentCaps) != registry.HandleAuxiliary {
			continue
		}
		if parentCaps.IsConfigurationNode {
			diags = append(diags, Diagnostic{
				Code:     CodeNestedConfiguration,
				Message:  fmt.Sprintf("configuration node %q is attached to configuration node %q; nested configuration inheritance is not supported", source.ID, parent.ID),
				Path:     e.ID,
				Severity: "error",
			})
		}
	}
	return diags
}
