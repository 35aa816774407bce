//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package registry

import "strings"

// HandleClass classifies an input handle as primary data or auxiliary/config.
type HandleClass int

// Handle classes.
const (
	// HandlePrimary marks main data handles.
	HandlePrimary HandleClass = iota
	// HandleAuxiliary marks configuration side-channel handles.
	HandleAuxiliary
)

const (
	inputHandlePrefix = "input-"
	inputHandleMain   = "input-main"
)

// Classify classifies an input handle name under the given node type
// capabilities. The default main handle (or an absent handle name) is
// primary; handles whitelisted in caps.PrimaryHandles are primary; every
// other "input-*" handle is auxiliary.
func Classify(handle string, caps Capabilities) HandleClass {
	if handle == "" || handle == inputHandleMain {
		return HandlePrimary
	}
	for _, primary := range caps.PrimaryHandles {
		if handle == primary {
			return HandlePrimary
		}
	}
	if strings.HasPrefix(handle, inputHandlePrefix) {
		return HandleAuxiliary
	}
	for _, aux := range caps.AuxiliaryHandles {
		if handle == aux {
			return HandleAuxiliary
		}
	}
	return HandlePrimary
}

// HandleSuffix returns the display suffix of a named handle: "input-task" →
// "task". Handles without the conventional prefix are returned unchanged.
func HandleSuffix(handle string) string {
	if s, ok := strings.CutPrefix(handle, inputHandlePrefix); ok {
		return s
	}
	if s, ok := strings.CutPrefix(handle, "output-"); ok {
		return s
	}
	return handle
}
