package mapping

import (
	"reflect"
	"strings"
)

// Condition gates rule applicability against a single source record field.
type Condition struct {
	// Field is the dot-path into the source record
	Field string `json:"field"`
	// Operator is the comparison operator
	Operator Operator `json:"operator"`
	// Value is the value compared against the field value.
	// It is ignored by the exists and not_exists operators.
	Value any `json:"value,omitempty"`
}

// Validate validates the condition
func (c Condition) Validate() error {
	if c.Field == "" {
		return ErrConditionNoField
	}
	if !c.Operator.IsValid() {
		return ErrInvalidOperator
	}
	return nil
}

// MatchCondition evaluates whether the given condition matches the source record.
//
// exists and not_exists only test for presence of a non-nil value. The string
// operators (contains, starts_with, ends_with) are defined for string field
// values only and evaluate to false on any other type, not an error. An
// unrecognized operator evaluates to false; operator validity is enforced at
// rule registration instead.
func MatchCondition(condition Condition, record map[string]any) bool {
	fieldValue := Get(record, condition.Field)

	switch condition.Operator {
	case OperatorExists:
		return fieldValue != nil
	case OperatorNotExists:
		return fieldValue == nil
	case OperatorEquals:
		return operatorEquals(fieldValue, condition.Value)
	case OperatorNotEquals:
		return !operatorEquals(fieldValue, condition.Value)
	case OperatorContains:
		return operatorString(fieldValue, condition.Value, strings.Contains)
	case OperatorStartsWith:
		return operatorString(fieldValue, condition.Value, strings.HasPrefix)
	case OperatorEndsWith:
		return operatorString(fieldValue, condition.Value, strings.HasSuffix)
	default:
		return false
	}
}

// MatchAllConditions returns true if ALL conditions match the record (AND logic).
// An empty condition list matches unconditionally.
func MatchAllConditions(conditions []Condition, record map[string]any) bool {
	for _, condition := range conditions {
		if !MatchCondition(condition, record) {
			return false
		}
	}
	return true
}

// operatorEquals checks strict equality between the field value and the
// condition value
func operatorEquals(fieldValue, condValue any) bool {
	return reflect.DeepEqual(fieldValue, condValue)
}

// operatorString applies a string predicate when both the field value and the
// condition value are strings, and returns false otherwise
func operatorString(fieldValue, condValue any, predicate func(s, substr string) bool) bool {
	fieldStr, ok := fieldValue.(string)
	if !ok {
		return false
	}
	condStr, ok := condValue.(string)
	if !ok {
		return false
	}
	return predicate(fieldStr, condStr)
}
