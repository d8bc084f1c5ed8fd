package mapping

import (
	"context"
	"errors"
	"time"

	"github.com/opsuite/backend/internal/domain/mapping"
	"go.uber.org/zap"
)

// RuleServiceImpl implements the mapping.RuleService interface. Every rule
// passes structural validation and transform-name resolution before it
// reaches the registry, so the engine never sees an invalid operator or an
// unresolvable transform.
type RuleServiceImpl struct {
	registry   mapping.RuleRegistry
	transforms *mapping.TransformRegistry
	logger     *zap.Logger
}

// NewRuleService creates a new RuleServiceImpl
func NewRuleService(registry mapping.RuleRegistry, transforms *mapping.TransformRegistry, logger *zap.Logger) *RuleServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleServiceImpl{
		registry:   registry,
		transforms: transforms,
		logger:     logger,
	}
}

// CreateRule validates and stores a new rule
func (s *RuleServiceImpl) CreateRule(ctx context.Context, rule *mapping.MappingRule) (*mapping.MappingRule, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := rule.ResolveTransforms(s.transforms); err != nil {
		return nil, err
	}

	now := time.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	if rule.UpdatedAt.IsZero() {
		rule.UpdatedAt = now
	}

	if err := s.registry.Add(ctx, rule); err != nil {
		return nil, err
	}

	s.logger.Info("mapping rule created",
		zap.String("rule_id", rule.ID),
		zap.String("provider", rule.Provider),
		zap.String("source_entity", rule.SourceEntity))
	return rule, nil
}

// GetRule retrieves a rule by id
func (s *RuleServiceImpl) GetRule(ctx context.Context, id string) (*mapping.MappingRule, error) {
	return s.registry.Get(ctx, id)
}

// UpdateRule merges a partial update into an existing rule. The patched rule
// is re-validated and its transform names re-resolved before the registry
// applies the change.
func (s *RuleServiceImpl) UpdateRule(ctx context.Context, id string, patch mapping.RuleUpdate) (*mapping.MappingRule, error) {
	current, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the merge result before touching the registry
	preview := current.Clone()
	preview.ApplyUpdate(patch)
	if err := preview.Validate(); err != nil {
		return nil, err
	}
	if err := preview.ResolveTransforms(s.transforms); err != nil {
		return nil, err
	}
	if patch.FieldMappings != nil {
		for i := range patch.FieldMappings {
			if err := patch.FieldMappings[i].ResolveTransform(s.transforms); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.registry.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("mapping rule updated", zap.String("rule_id", id))
	return updated, nil
}

// DeleteRule removes a rule
func (s *RuleServiceImpl) DeleteRule(ctx context.Context, id string) error {
	if err := s.registry.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("mapping rule deleted", zap.String("rule_id", id))
	return nil
}

// ListRules returns all rules in insertion order
func (s *RuleServiceImpl) ListRules(ctx context.Context) ([]*mapping.MappingRule, error) {
	return s.registry.List(ctx)
}

// FindApplicable returns the enabled rules for a provider/entity pairing
func (s *RuleServiceImpl) FindApplicable(ctx context.Context, provider, sourceEntity string) ([]*mapping.MappingRule, error) {
	return s.registry.FindApplicable(ctx, provider, sourceEntity)
}

// CreateRuleFromRequest validates an administrative create request and
// stores the resulting rule
func (s *RuleServiceImpl) CreateRuleFromRequest(ctx context.Context, req CreateRuleRequest) (*mapping.MappingRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rule, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	return s.CreateRule(ctx, rule)
}

// UpdateRuleFromRequest validates an administrative update request and merges
// it into the rule
func (s *RuleServiceImpl) UpdateRuleFromRequest(ctx context.Context, id string, req UpdateRuleRequest) (*mapping.MappingRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.UpdateRule(ctx, id, req.ToPatch())
}

// InitializeDefaultMappings seeds the default mapping catalog. Seeding uses
// add-if-absent semantics keyed on the stable seed ids, so repeated
// invocation never duplicates a rule and never overwrites runtime edits to a
// seeded rule.
func (s *RuleServiceImpl) InitializeDefaultMappings(ctx context.Context) (int, error) {
	seeded := 0
	for _, rule := range mapping.DefaultMappingRules() {
		if _, err := s.registry.Get(ctx, rule.ID); err == nil {
			continue
		} else if !errors.Is(err, mapping.ErrRuleNotFound) {
			return seeded, err
		}

		if _, err := s.CreateRule(ctx, rule); err != nil {
			return seeded, err
		}
		seeded++
	}

	if seeded > 0 {
		s.logger.Info("default mapping rules seeded", zap.Int("count", seeded))
	}
	return seeded, nil
}

// Ensure RuleServiceImpl implements RuleService
var _ mapping.RuleService = (*RuleServiceImpl)(nil)
