//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package output defines the output-store collaborator: read access to the
// JSON values already produced by executed nodes, keyed by node ID and output
// slot.
package output

import "context"

// Store provides read access to node outputs. "Not produced yet" is a
// first-class, non-erroring result: implementations return ok=false and the
// caller falls back to declared-schema mode instead of waiting or retrying.
type Store interface {
	// Get returns the output of nodeID at the given slot. ok is false when
	// the node has not produced anything at that slot. err is reserved for
	// transport failures of remote implementations.
	Get(ctx context.Context, nodeID, slot string) (value any, ok bool, err error)
}
