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
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-flow-go/output"
)

// NodePreview bundles everything the editor shows for one node: its resolved
// producers, their addressable variables, and its currently active outgoing
// edges.
type NodePreview struct {
	NodeID    string     `json:"node_id"`
	Producers []Producer `json:"producers,omitempty"`
	Variables []Variable `json:"variables,omitempty"`
	Active    []string   `json:"active_edge_ids,omitempty"`
}

// PreviewAll computes previews for every node of the snapshot concurrently
// over a worker pool. Resolution only reads immutable state, so per-node
// previews are independent.
func (r *Resolver) PreviewAll(ctx context.Context, store output.Store) (map[string]*NodePreview, error) {
	previews := make(map[string]*NodePreview, len(r.g.Nodes))
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		return nil, fmt.Errorf("create preview pool: %w", err)
	}
	defer pool.Release()

	for i := range r.g.Nodes {
		nodeID := r.g.Nodes[i].ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			preview, err := r.previewNode(ctx, nodeID, store)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			previews[nodeID] = preview
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit preview task: %w", submitErr)
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return previews, nil
}

func (r *Resolver) previewNode(ctx context.Context, nodeID string, store output.Store) (*NodePreview, error) {
	producers := r.Producers(nodeID)
	variables, err := r.Variables(ctx, nodeID, store)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", nodeID, err)
	}
	active, err := r.ActiveEdges(ctx, nodeID, store)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", nodeID, err)
	}
	preview := &NodePreview{
		NodeID:    nodeID,
		Producers: producers,
		Variables: variables,
	}
	for _, e := range active {
		preview.Active = append(preview.Active, e.ID)
	}
	return preview, nil
}
