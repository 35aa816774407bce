//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package condition

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors reported to the editor. An edge whose condition fails
// validation is flagged and treated as inactive by the router until fixed.
var (
	// ErrFieldRequired indicates an empty condition field.
	ErrFieldRequired = errors.New("condition field is required")
	// ErrUnknownOperator indicates an operator identifier not present in the catalog.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrValueRequired indicates a missing comparison value for an operator that requires one.
	ErrValueRequired = errors.New("operator requires a value")
)

// Validate checks a condition's structure against the catalog. It returns nil
// when the condition is well formed. Evaluation-time concerns (non-numeric
// operands, invalid regular expressions) are not validation errors; those
// fail closed during Evaluate.
func Validate(cond Condition) error {
	if strings.TrimSpace(cond.Field) == "" {
		return ErrFieldRequired
	}
	desc, ok := Lookup(cond.Operator)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperator, cond.Operator)
	}
	if desc.RequiresValue && isMissingValue(cond.Value) {
		return fmt.Errorf("%w: %q", ErrValueRequired, cond.Operator)
	}
	return nil
}

// FormatLabel renders a condition for display, e.g. "status equals completed"
// or "error exists". Operators without a value omit the value clause. The
// rendering is catalog-driven and deterministic; it has no effect on
// evaluation.
func FormatLabel(cond Condition) string {
	desc, ok := Lookup(cond.Operator)
	if !ok {
		return cond.Field + " " + cond.Operator
	}
	if !desc.RequiresValue {
		return cond.Field + " " + desc.Label
	}
	return cond.Field + " " + desc.Label + " " + formatValue(cond.Value)
}

func formatValue(v any) string {
	if items, ok := asSlice(v); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	}
	return stringify(v)
}
