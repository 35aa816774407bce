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

	"trpc.group/trpc-go/trpc-flow-go/condition"
	"trpc.group/trpc-go/trpc-flow-go/graph"
	"trpc.group/trpc-go/trpc-flow-go/log"
	"trpc.group/trpc-go/trpc-flow-go/output"
)

// ActiveEdges returns the outgoing edges of a node that are eligible to fire
// given the outputs currently in the store. An unconditioned edge is always
// active; a conditioned edge is active iff its condition validates and
// evaluates true against the source output at the edge's resolved slot.
//
// This is a routing filter, not a switch statement: there is no implicit
// else branch, and zero, one, or many edges may be active at once. An edge
// whose condition fails validation is treated as inactive until fixed, so a
// malformed condition never silently behaves as "always true".
func (r *Resolver) ActiveEdges(ctx context.Context, nodeID string, store output.Store) ([]*graph.Edge, error) {
	var active []*graph.Edge
	for _, e := range r.idx.Outgoing(nodeID) {
		cond := e.Data.Condition
		if cond == nil {
			active = append(active, e)
			continue
		}
		if err := condition.Validate(*cond); err != nil {
			log.Warnf("resolve: edge %s condition is invalid, treating edge as inactive: %v", e.ID, err)
			continue
		}
		out, _, err := FetchOutput(ctx, store, e.Source, Slot(e))
		if err != nil {
			return nil, err
		}
		// Absent output evaluates against a nil root; each operator's
		// absence semantics apply.
		if condition.Evaluate(*cond, out) {
			active = append(active, e)
		}
	}
	return active, nil
}
