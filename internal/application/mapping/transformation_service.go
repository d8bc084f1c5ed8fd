package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opsuite/backend/internal/domain/mapping"
	"go.uber.org/zap"
)

// TransformationServiceImpl implements the mapping.TransformationService
// interface. It is stateless per call; rule state lives in the registry.
type TransformationServiceImpl struct {
	registry mapping.RuleRegistry
	logger   *zap.Logger
}

// NewTransformationService creates a new TransformationServiceImpl
func NewTransformationService(registry mapping.RuleRegistry, logger *zap.Logger) *TransformationServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransformationServiceImpl{
		registry: registry,
		logger:   logger,
	}
}

// Transform applies every applicable enabled rule for the given provider and
// source entity to the source record.
//
// Rules whose conditions do not match are skipped silently. A rule with any
// field-level error contributes no data at all; its errors are aggregated
// into a single rule-level error and the remaining rules still run. Success
// is true iff no rule produced an error.
func (s *TransformationServiceImpl) Transform(
	ctx context.Context,
	provider, sourceEntity string,
	sourceRecord map[string]any,
) *mapping.TransformationResult {
	rules, err := s.registry.FindApplicable(ctx, provider, sourceEntity)
	if err != nil {
		s.logger.Error("rule lookup failed",
			zap.String("provider", provider),
			zap.String("source_entity", sourceEntity),
			zap.Error(err))
		return mapping.NewFailureResult(fmt.Sprintf("Rule lookup failed for %s.%s: %s", provider, sourceEntity, err))
	}
	if len(rules) == 0 {
		return mapping.NewFailureResult(fmt.Sprintf("No mapping rules found for %s.%s", provider, sourceEntity))
	}

	var (
		records  []map[string]any
		ruleErrs []string
	)
	for _, rule := range rules {
		if !mapping.MatchAllConditions(rule.Conditions, sourceRecord) {
			s.logger.Debug("rule skipped by conditions", zap.String("rule_id", rule.ID))
			continue
		}

		target, fieldErrs := applyRule(rule, sourceRecord)
		if len(fieldErrs) > 0 {
			ruleErrs = append(ruleErrs, fmt.Sprintf(
				"Error applying rule %s: Mapping errors: %s", rule.ID, strings.Join(fieldErrs, ", ")))
			continue
		}
		records = append(records, target)
	}

	result := &mapping.TransformationResult{
		Success: len(ruleErrs) == 0,
		Errors:  ruleErrs,
	}
	switch len(records) {
	case 0:
	case 1:
		result.Data = records[0]
	default:
		result.Data = records
	}
	return result
}

// TestRule applies exactly one rule by id against a sample record. The
// provider/entity lookup and the enabled flag are bypassed; conditions are
// still evaluated but only downgrade to a warning so the field mappings can
// be validated regardless.
func (s *TransformationServiceImpl) TestRule(
	ctx context.Context,
	ruleID string,
	sampleRecord map[string]any,
) *mapping.TransformationResult {
	rule, err := s.registry.Get(ctx, ruleID)
	if err != nil {
		if errors.Is(err, mapping.ErrRuleNotFound) {
			return mapping.NewFailureResult(fmt.Sprintf("Rule %s not found", ruleID))
		}
		return mapping.NewFailureResult(fmt.Sprintf("Rule lookup failed for %s: %s", ruleID, err))
	}

	var warnings []string
	if !rule.Enabled {
		warnings = append(warnings, fmt.Sprintf("Rule %s is disabled", rule.ID))
	}
	if !mapping.MatchAllConditions(rule.Conditions, sampleRecord) {
		warnings = append(warnings, fmt.Sprintf("Conditions of rule %s do not match the sample record", rule.ID))
	}

	target, fieldErrs := applyRule(rule, sampleRecord)
	if len(fieldErrs) > 0 {
		result := mapping.NewFailureResult(fmt.Sprintf(
			"Error applying rule %s: Mapping errors: %s", rule.ID, strings.Join(fieldErrs, ", ")))
		result.Warnings = warnings
		return result
	}

	return &mapping.TransformationResult{
		Success:  true,
		Data:     target,
		Warnings: warnings,
	}
}

// applyRule runs every field mapping of the rule, in order, against the
// source record. It returns the built target record together with all
// field-level errors; the caller discards the target when any error occurred
// so a partially populated record never surfaces.
func applyRule(rule *mapping.MappingRule, sourceRecord map[string]any) (map[string]any, []string) {
	target := make(map[string]any)
	var fieldErrs []string

	for _, fm := range rule.FieldMappings {
		sourceValue := mapping.Get(sourceRecord, fm.Source)
		if sourceValue == nil {
			if fm.Required {
				fieldErrs = append(fieldErrs, fmt.Sprintf("Required field %s is missing", fm.Source))
				continue
			}
			if fm.Default != nil {
				mapping.Set(target, fm.Target, fm.Default)
			}
			continue
		}

		transformed, err := applyTransform(fm.Transform, sourceValue)
		if err != nil {
			fieldErrs = append(fieldErrs, fmt.Sprintf("Error mapping %s to %s: %s", fm.Source, fm.Target, err))
			continue
		}
		mapping.Set(target, fm.Target, transformed)
	}

	return target, fieldErrs
}

// applyTransform runs the transform, converting a panic in a custom transform
// into a field-level error so one bad transform cannot abort the invocation
func applyTransform(fn mapping.TransformFunc, value any) (result any, err error) {
	if fn == nil {
		return value, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transform panicked: %v", r)
		}
	}()
	return fn(value)
}

// Ensure TransformationServiceImpl implements TransformationService
var _ mapping.TransformationService = (*TransformationServiceImpl)(nil)
