package mapping

// Operator represents a condition operator applied to a source record field.
type Operator string

const (
	// OperatorEquals matches when the field value equals the condition value
	OperatorEquals Operator = "equals"
	// OperatorNotEquals matches when the field value differs from the condition value
	OperatorNotEquals Operator = "not_equals"
	// OperatorContains matches when the string field value contains the condition value
	OperatorContains Operator = "contains"
	// OperatorStartsWith matches when the string field value starts with the condition value
	OperatorStartsWith Operator = "starts_with"
	// OperatorEndsWith matches when the string field value ends with the condition value
	OperatorEndsWith Operator = "ends_with"
	// OperatorExists matches when the field is present and non-nil
	OperatorExists Operator = "exists"
	// OperatorNotExists matches when the field is absent or nil
	OperatorNotExists Operator = "not_exists"
)

// AllOperators returns all valid condition operators
func AllOperators() []Operator {
	return []Operator{
		OperatorEquals,
		OperatorNotEquals,
		OperatorContains,
		OperatorStartsWith,
		OperatorEndsWith,
		OperatorExists,
		OperatorNotExists,
	}
}

// IsValid checks if the operator is valid
func (o Operator) IsValid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorContains,
		OperatorStartsWith, OperatorEndsWith, OperatorExists, OperatorNotExists:
		return true
	default:
		return false
	}
}

// String returns the string representation of the operator
func (o Operator) String() string {
	return string(o)
}
