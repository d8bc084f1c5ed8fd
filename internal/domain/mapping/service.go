package mapping

import "context"

// ---------------------------------------------------------------------------
// TransformationService Interface
// ---------------------------------------------------------------------------

// TransformationService applies mapping rules to raw provider records.
// Implementations are stateless per call; all state lives in the registry.
// A transformation never fails with a Go error for malformed source data —
// data problems surface inside the TransformationResult only.
type TransformationService interface {
	// Transform applies every applicable enabled rule for the given provider
	// and source entity to the source record and aggregates the outcome
	Transform(ctx context.Context, provider, sourceEntity string, sourceRecord map[string]any) *TransformationResult

	// TestRule applies exactly one rule by id, bypassing the provider and
	// entity lookup. Intended for ad-hoc rule validation tooling; an unknown
	// id yields a failure result, not a Go error.
	TestRule(ctx context.Context, ruleID string, sampleRecord map[string]any) *TransformationResult
}

// ---------------------------------------------------------------------------
// RuleService Interface
// ---------------------------------------------------------------------------

// RuleService defines the application service interface for administering
// mapping rules. All rules pass structural validation and transform-name
// resolution before they reach the registry.
type RuleService interface {
	// CreateRule validates and stores a new rule
	CreateRule(ctx context.Context, rule *MappingRule) (*MappingRule, error)

	// GetRule retrieves a rule by id
	GetRule(ctx context.Context, id string) (*MappingRule, error)

	// UpdateRule merges a partial update into an existing rule
	UpdateRule(ctx context.Context, id string, patch RuleUpdate) (*MappingRule, error)

	// DeleteRule removes a rule
	DeleteRule(ctx context.Context, id string) error

	// ListRules returns all rules in insertion order
	ListRules(ctx context.Context) ([]*MappingRule, error)

	// FindApplicable returns the enabled rules for a provider/entity pairing
	FindApplicable(ctx context.Context, provider, sourceEntity string) ([]*MappingRule, error)

	// InitializeDefaultMappings seeds the default mapping catalog with
	// add-if-absent semantics and returns the number of rules added.
	// Safe to invoke more than once.
	InitializeDefaultMappings(ctx context.Context) (int, error)
}
