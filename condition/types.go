//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

// Package condition implements the declarative edge-condition language shared
// between the design-time editor and the runtime engine. A condition compares
// a path-addressed field of an upstream node's output against an optional
// value using an operator from a fixed catalog. Both sides consume the same
// catalog; the wire format is { "field": ..., "operator": ..., "value": ... }.
package condition

// Condition is a single declarative predicate attached to an edge.
type Condition struct {
	// Field is a dot-separated path into the source node's output
	// (e.g., "result.items.0.name"). Bracket indices are accepted and
	// normalized ("items[0].name").
	Field string `json:"field"`

	// Operator is the catalog identifier of the predicate to apply.
	Operator string `json:"operator"`

	// Value is the comparison value. It is required for operators whose
	// catalog entry has RequiresValue set and ignored otherwise.
	// Can be string, number, boolean, or array.
	Value any `json:"value,omitempty"`
}

// Operator identifiers. The catalog below is the single source of truth for
// which identifiers exist; an identifier not listed there is a validation
// error.
const (
	// Equality
	OpEqual    = "eq"
	OpNotEqual = "neq"

	// Comparison (numeric only)
	OpGreaterThan        = "gt"
	OpLessThan           = "lt"
	OpGreaterThanOrEqual = "gte"
	OpLessThanOrEqual    = "lte"

	// Contains (string substring or array membership)
	OpContains    = "contains"
	OpNotContains = "not_contains"

	// Existence (key present and non-null)
	OpExists    = "exists"
	OpNotExists = "not_exists"

	// Empty (null, "", empty array, empty object)
	OpIsEmpty    = "is_empty"
	OpIsNotEmpty = "is_not_empty"

	// Pattern
	OpMatches    = "matches"
	OpStartsWith = "starts_with"
	OpEndsWith   = "ends_with"

	// List membership
	OpIn    = "in"
	OpNotIn = "not_in"

	// Boolean coercion
	OpIsTrue  = "is_true"
	OpIsFalse = "is_false"

	// Type checks
	OpIsString  = "is_string"
	OpIsNumber  = "is_number"
	OpIsBoolean = "is_boolean"
	OpIsArray   = "is_array"
	OpIsObject  = "is_object"
)

// ValueType describes what kind of comparison value an operator expects.
type ValueType string

// Value type constants for operator catalog entries.
const (
	ValueTypeNone   ValueType = "none"
	ValueTypeString ValueType = "string"
	ValueTypeNumber ValueType = "number"
	ValueTypeAny    ValueType = "any"
	ValueTypeArray  ValueType = "array"
)

// Descriptor is a versioned catalog entry describing a single operator.
type Descriptor struct {
	// ID is the operator identifier used on the wire.
	ID string `json:"id"`

	// Label is the human-readable verb phrase used by FormatLabel.
	Label string `json:"label"`

	// Description explains the operator for editor tooltips.
	Description string `json:"description"`

	// RequiresValue indicates whether Condition.Value must be provided.
	RequiresValue bool `json:"requires_value"`

	// ValueType describes the expected comparison value kind.
	ValueType ValueType `json:"value_type"`
}

// Catalog is the ordered operator catalog. It is shared verbatim between
// design-time evaluation and the runtime engine; order matters only for
// display (editor dropdowns).
var Catalog = []Descriptor{
	{ID: OpEqual, Label: "equals", Description: "Field equals the given value", RequiresValue: true, ValueType: ValueTypeAny},
	{ID: OpNotEqual, Label: "does not equal", Description: "Field does not equal the given value", RequiresValue: true, ValueType: ValueTypeAny},
	{ID: OpGreaterThan, Label: "is greater than", Description: "Field is numerically greater than the given value", RequiresValue: true, ValueType: ValueTypeNumber},
	{ID: OpLessThan, Label: "is less than", Description: "Field is numerically less than the given value", RequiresValue: true, ValueType: ValueTypeNumber},
	{ID: OpGreaterThanOrEqual, Label: "is greater than or equal to", Description: "Field is numerically greater than or equal to the given value", RequiresValue: true, ValueType: ValueTypeNumber},
	{ID: OpLessThanOrEqual, Label: "is less than or equal to", Description: "Field is numerically less than or equal to the given value", RequiresValue: true, ValueType: ValueTypeNumber},
	{ID: OpContains, Label: "contains", Description: "String field contains the substring, or array field contains the element", RequiresValue: true, ValueType: ValueTypeAny},
	{ID: OpNotContains, Label: "does not contain", Description: "String field does not contain the substring, or array field does not contain the element", RequiresValue: true, ValueType: ValueTypeAny},
	{ID: OpExists, Label: "exists", Description: "Field is present and not null", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpNotExists, Label: "does not exist", Description: "Field is missing or null", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsEmpty, Label: "is empty", Description: "Field is null, an empty string, an empty array, or an empty object", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsNotEmpty, Label: "is not empty", Description: "Field is not null, empty string, empty array, or empty object", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpMatches, Label: "matches", Description: "String field matches the given regular expression", RequiresValue: true, ValueType: ValueTypeString},
	{ID: OpStartsWith, Label: "starts with", Description: "String field starts with the given prefix", RequiresValue: true, ValueType: ValueTypeString},
	{ID: OpEndsWith, Label: "ends with", Description: "String field ends with the given suffix", RequiresValue: true, ValueType: ValueTypeString},
	{ID: OpIn, Label: "is one of", Description: "Field is a member of the given list", RequiresValue: true, ValueType: ValueTypeArray},
	{ID: OpNotIn, Label: "is not one of", Description: "Field is not a member of the given list", RequiresValue: true, ValueType: ValueTypeArray},
	{ID: OpIsTrue, Label: "is true", Description: "Field is truthy under general boolean coercion", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsFalse, Label: "is false", Description: "Field is falsy under general boolean coercion", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsString, Label: "is a string", Description: "Field is a string", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsNumber, Label: "is a number", Description: "Field is a number", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsBoolean, Label: "is a boolean", Description: "Field is a boolean", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsArray, Label: "is an array", Description: "Field is an array", RequiresValue: false, ValueType: ValueTypeNone},
	{ID: OpIsObject, Label: "is an object", Description: "Field is an object", RequiresValue: false, ValueType: ValueTypeNone},
}

var catalogByID = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(Catalog))
	for _, d := range Catalog {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the catalog entry for the given operator identifier.
func Lookup(operator string) (Descriptor, bool) {
	d, ok := catalogByID[operator]
	return d, ok
}
