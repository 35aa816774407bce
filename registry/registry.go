//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package registry holds the static node-type registry consumed by the
// resolution engine. Node behavior flags (which handles are auxiliary,
// whether a type is a configuration node, whether it is multi-output) are
// supplied here as explicit capability data; the engine never infers them
// from node type strings.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Capabilities describes a registered node type.
type Capabilities struct {
	// DisplayName is the human-readable type name.
	DisplayName string `json:"display_name"`

	// Icon names the editor icon for this type.
	Icon string `json:"icon,omitempty"`

	// AuxiliaryHandles lists input handle names that are auxiliary/config
	// side channels (e.g., "input-tools", "input-memory") in addition to the
	// naming-convention default that any non-main "input-*" handle is
	// auxiliary.
	AuxiliaryHandles []string `json:"auxiliary_handles,omitempty"`

	// PrimaryHandles whitelists input handle names that carry primary data
	// despite the auxiliary naming convention (e.g., a trigger's task-result
	// handle).
	PrimaryHandles []string `json:"primary_handles,omitempty"`

	// RendersAuxiliaryPanel marks types whose auxiliary connections are
	// rendered in a dedicated editor panel; their auxiliary edges are
	// suppressed from the resolved producer list.
	RendersAuxiliaryPanel bool `json:"renders_auxiliary_panel,omitempty"`

	// IsConfigurationNode marks types that exist to configure a parent node
	// via an auxiliary handle. They have no primary data inputs of their own
	// and preview their parent's inputs via inheritance.
	IsConfigurationNode bool `json:"is_configuration_node,omitempty"`

	// MultiOutputByHandle marks types whose output handles address distinct
	// sub-outputs of the produced value.
	MultiOutputByHandle bool `json:"multi_output_by_handle,omitempty"`
}

// Registry maps node type names to capabilities and declared output schemas.
// It is safe for concurrent use. Both maps are supplied wholesale by the
// platform hosting the engine; unknown types degrade to zero capabilities and
// a generic placeholder schema.
type Registry struct {
	mu      sync.RWMutex
	types   map[string]Capabilities
	schemas map[string]map[string]any
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		types:   make(map[string]Capabilities),
		schemas: make(map[string]map[string]any),
	}
}

// Register registers capabilities for a node type.
func (r *Registry) Register(nodeType string, caps Capabilities) error {
	if nodeType == "" {
		return fmt.Errorf("node type cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[nodeType]; exists {
		return fmt.Errorf("node type %q already registered", nodeType)
	}
	r.types[nodeType] = caps
	return nil
}

// MustRegister registers capabilities and panics on failure. Useful for
// init-time registration of built-in types.
func (r *Registry) MustRegister(nodeType string, caps Capabilities) {
	if err := r.Register(nodeType, caps); err != nil {
		panic(err)
	}
}

// Get retrieves the capabilities for a node type. Unknown types return zero
// capabilities and false.
func (r *Registry) Get(nodeType string) (Capabilities, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	caps, ok := r.types[nodeType]
	return caps, ok
}

// RegisterSchema registers the declared example output shape for a node
// type, used as a fallback when no live output exists.
func (r *Registry) RegisterSchema(nodeType string, shape map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[nodeType] = shape
}

// Schema retrieves the declared example output shape for a node type.
func (r *Registry) Schema(nodeType string) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shape, ok := r.schemas[nodeType]
	return shape, ok
}

// List returns all registered node type names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
