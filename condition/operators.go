//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//

package condition

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-flow-go/log"
)

// evaluateOperator dispatches a single operator against the resolved field
// value. present reports whether the field path resolved at all; operators
// that reason about absence handle it explicitly, everything else treats an
// absent field as a failing (false) comparison.
func evaluateOperator(operator string, actual any, present bool, expected any) bool {
	switch operator {
	case OpExists:
		return present && actual != nil
	case OpNotExists:
		return !present || actual == nil
	case OpIsEmpty:
		return isEmptyValue(actual)
	case OpIsNotEmpty:
		return !isEmptyValue(actual)
	case OpIsString:
		_, ok := actual.(string)
		return present && ok
	case OpIsNumber:
		if !present {
			return false
		}
		_, ok := asFloat64(actual)
		_, isBool := actual.(bool)
		_, isStr := actual.(string)
		return ok && !isBool && !isStr
	case OpIsBoolean:
		_, ok := actual.(bool)
		return present && ok
	case OpIsArray:
		return present && isArrayValue(actual)
	case OpIsObject:
		return present && isObjectValue(actual)
	case OpIsTrue:
		return present && isTruthy(actual)
	case OpIsFalse:
		return present && !isTruthy(actual)
	case OpEqual:
		return present && looseEqual(actual, expected)
	case OpNotEqual:
		return present && !looseEqual(actual, expected)
	case OpGreaterThan:
		a, b, ok := bothFloat64(actual, expected)
		return ok && a > b
	case OpLessThan:
		a, b, ok := bothFloat64(actual, expected)
		return ok && a < b
	case OpGreaterThanOrEqual:
		a, b, ok := bothFloat64(actual, expected)
		return ok && a >= b
	case OpLessThanOrEqual:
		a, b, ok := bothFloat64(actual, expected)
		return ok && a <= b
	case OpContains:
		contained, ok := membership(actual, expected)
		return ok && contained
	case OpNotContains:
		contained, ok := membership(actual, expected)
		return ok && !contained
	case OpStartsWith:
		s, ok := actual.(string)
		return ok && strings.HasPrefix(s, stringify(expected))
	case OpEndsWith:
		s, ok := actual.(string)
		return ok && strings.HasSuffix(s, stringify(expected))
	case OpMatches:
		s, ok := actual.(string)
		if !ok {
			return false
		}
		re, err := regexp.Compile(stringify(expected))
		if err != nil {
			log.Warnf("condition: invalid regular expression %q: %v", stringify(expected), err)
			return false
		}
		return re.MatchString(s)
	case OpIn:
		member, ok := listMembership(actual, expected)
		return ok && member
	case OpNotIn:
		member, ok := listMembership(actual, expected)
		return ok && !member
	default:
		log.Warnf("condition: unknown operator %q, evaluating to false", operator)
		return false
	}
}

// membership implements contains/not_contains: substring check for strings,
// element membership for arrays. The second return reports whether the field
// type supports the check at all; unsupported types fail both variants.
func membership(actual, expected any) (contained, ok bool) {
	switch v := actual.(type) {
	case string:
		return strings.Contains(v, stringify(expected)), true
	case []any:
		for _, item := range v {
			if looseEqual(item, expected) {
				return true, true
			}
		}
		return false, true
	default:
		return false, false
	}
}

// listMembership implements in/not_in: the expected value must be a list.
func listMembership(actual, expected any) (member, ok bool) {
	items, ok := asSlice(expected)
	if !ok {
		return false, false
	}
	for _, item := range items {
		if looseEqual(actual, item) {
			return true, true
		}
	}
	return false, true
}

// looseEqual compares two JSON-like values the way the editor's authors
// expect: exact equality first, then numeric equality (so 3 == "3" == 3.0),
// then string-form equality for scalars. Composites only compare deeply.
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if af, aok := asFloat64(a); aok {
		if bf, bok := asFloat64(b); bok {
			return af == bf
		}
	}
	if isScalar(a) && isScalar(b) {
		return stringify(a) == stringify(b)
	}
	return false
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isArrayValue(v any) bool {
	if _, ok := v.([]any); ok {
		return true
	}
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isObjectValue(v any) bool {
	if _, ok := v.(map[string]any); ok {
		return true
	}
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Map
}

// isEmptyValue reports whether a value counts as empty: null (or absent),
// empty string, empty array, empty object.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// isTruthy applies general boolean coercion: nil and empty strings are falsy,
// zero numbers are falsy, booleans are themselves, composites are truthy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	default:
		if f, ok := asFloat64(v); ok {
			return f != 0
		}
		return true
	}
}

// bothFloat64 coerces both operands for a numeric comparison. A non-coercible
// operand fails the comparison (fail closed).
func bothFloat64(a, b any) (float64, float64, bool) {
	af, aok := asFloat64(a)
	bf, bok := asFloat64(b)
	return af, bf, aok && bok
}

// asFloat64 converts numeric types (and numeric strings, which is what the
// editor sends for typed-in comparison values) to float64.
func asFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asSlice(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
