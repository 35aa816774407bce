//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package inmemory provides an in-memory output store, used by the design-time
// preview and by tests.
package inmemory

import (
	"context"
	"sync"
)

type slotKey struct {
	nodeID string
	slot   string
}

// Store is an in-memory implementation of output.Store. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	outputs map[slotKey]any
}

// New creates an empty in-memory output store.
func New() *Store {
	return &Store{outputs: make(map[slotKey]any)}
}

// Set records the output of nodeID at the given slot.
func (s *Store) Set(nodeID, slot string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[slotKey{nodeID: nodeID, slot: slot}] = value
}

// Delete removes the output of nodeID at the given slot.
func (s *Store) Delete(nodeID, slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.outputs, slotKey{nodeID: nodeID, slot: slot})
}

// Get implements output.Store.
func (s *Store) Get(_ context.Context, nodeID, slot string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.outputs[slotKey{nodeID: nodeID, slot: slot}]
	if !ok || value == nil {
		return nil, false, nil
	}
	return value, true, nil
}
