package mapping

import "errors"

var (
	// Rule errors
	ErrRuleNotFound        = errors.New("mapping: rule not found")
	ErrRuleAlreadyExists   = errors.New("mapping: rule already exists")
	ErrRuleInvalidProvider = errors.New("mapping: provider is required")
	ErrRuleInvalidSource   = errors.New("mapping: source entity is required")
	ErrRuleInvalidTarget   = errors.New("mapping: target entity is required")
	ErrRuleNoFieldMappings = errors.New("mapping: at least one field mapping is required")

	// Field mapping errors
	ErrFieldMappingNoSource = errors.New("mapping: field mapping source path is required")
	ErrFieldMappingNoTarget = errors.New("mapping: field mapping target path is required")

	// Condition errors
	ErrConditionNoField = errors.New("mapping: condition field path is required")
	ErrInvalidOperator  = errors.New("mapping: invalid condition operator")

	// Transform errors
	ErrUnknownTransform       = errors.New("mapping: unknown transform")
	ErrTransformAlreadyExists = errors.New("mapping: transform already registered")
	ErrTransformInvalidName   = errors.New("mapping: transform name is required")
	ErrTransformNilFunc       = errors.New("mapping: transform function is required")
)
