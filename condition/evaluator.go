//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package condition

import (
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/log"
)

// Evaluate evaluates a condition against the given root value (typically the
// live output of the edge's source node at the resolved slot).
//
// Evaluation is fail-closed and never panics: a non-numeric comparison
// operand, an invalid regular expression, or an unknown operator all yield
// false. Structural problems (empty field, unknown operator, missing required
// value) should be caught up front with Validate; Evaluate only logs them.
// Evaluate never mutates root or the condition.
func Evaluate(cond Condition, root any) bool {
	desc, ok := Lookup(cond.Operator)
	if !ok {
		log.Warnf("condition: unknown operator %q, evaluating to false", cond.Operator)
		return false
	}
	if desc.RequiresValue && isMissingValue(cond.Value) {
		// Undefined by the catalog; Validate rejects this at edit time.
		log.Warnf("condition: operator %q requires a value, evaluating to false", cond.Operator)
		return false
	}

	actual, present := ResolveField(root, cond.Field)

	return evaluateOperator(cond.Operator, actual, present, cond.Value)
}

// ResolveField resolves a dot-separated path against a JSON-like root value.
// Bare numeric segments index into arrays ("result.items.0.name"); bracket
// indices are normalized to the same form. A missing intermediate segment
// yields (nil, false), never an error.
func ResolveField(root any, path string) (any, bool) {
	path = normalizePath(path)
	if path == "" {
		return nil, false
	}

	current := root
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			continue
		}
		switch v := current.(type) {
		case map[string]any:
			value, exists := v[segment]
			if !exists {
				return nil, false
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			current = v[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// normalizePath rewrites bracket indices into dotted segments so that
// "items[0].name" and "items.0.name" address the same field.
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")
	return strings.Trim(path, ".")
}

func isMissingValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
