package mapping

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// MappingRule Entity
// ---------------------------------------------------------------------------

// MappingRule is a named, enableable bundle of field mappings plus optional
// gating conditions, scoped to one (provider, source entity, target entity)
// pairing. The engine only reads rules; all mutation goes through the
// registry so concurrent writers stay serialized.
type MappingRule struct {
	// ID is the unique, immutable identifier of this rule
	ID string
	// Name is the human-readable rule name
	Name string
	// Description explains what the rule maps (optional)
	Description string
	// Provider identifies the external system the source record comes from
	Provider string
	// SourceEntity is the provider-specific record type being mapped
	SourceEntity string
	// TargetEntity is the internal record type this rule produces
	TargetEntity string
	// Enabled indicates whether the rule participates in transformation
	Enabled bool
	// FieldMappings are applied in order to build the target record
	FieldMappings []FieldMapping
	// Conditions gate applicability; all must match (AND). An empty list
	// means the rule is unconditionally applicable.
	Conditions []Condition
	// CreatedAt is when this rule was created
	CreatedAt time.Time
	// UpdatedAt is when this rule was last updated
	UpdatedAt time.Time
}

// NewMappingRule creates a new enabled mapping rule. An empty id is replaced
// with a generated one; seed rules pass stable ids so re-seeding stays
// idempotent.
func NewMappingRule(id, name, provider, sourceEntity, targetEntity string, fieldMappings []FieldMapping) (*MappingRule, error) {
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	rule := &MappingRule{
		ID:            id,
		Name:          name,
		Provider:      provider,
		SourceEntity:  sourceEntity,
		TargetEntity:  targetEntity,
		Enabled:       true,
		FieldMappings: fieldMappings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

// Validate validates the rule structure, including every field mapping and
// every condition operator. Unknown operators are rejected here rather than
// silently evaluating to false at transformation time.
func (r *MappingRule) Validate() error {
	if r.Provider == "" {
		return ErrRuleInvalidProvider
	}
	if r.SourceEntity == "" {
		return ErrRuleInvalidSource
	}
	if r.TargetEntity == "" {
		return ErrRuleInvalidTarget
	}
	if len(r.FieldMappings) == 0 {
		return ErrRuleNoFieldMappings
	}
	for _, m := range r.FieldMappings {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, c := range r.Conditions {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveTransforms resolves every field mapping's transform name against the
// given registry. Called once at rule registration so the engine never sees
// an unresolvable transform.
func (r *MappingRule) ResolveTransforms(transforms *TransformRegistry) error {
	for i := range r.FieldMappings {
		if err := r.FieldMappings[i].ResolveTransform(transforms); err != nil {
			return err
		}
	}
	return nil
}

// Enable enables this rule
func (r *MappingRule) Enable() {
	r.Enabled = true
	r.UpdatedAt = time.Now()
}

// Disable disables this rule
func (r *MappingRule) Disable() {
	r.Enabled = false
	r.UpdatedAt = time.Now()
}

// ApplyUpdate merges the non-nil fields of the patch into the rule and
// refreshes UpdatedAt. The rule id is immutable and cannot be patched.
func (r *MappingRule) ApplyUpdate(patch RuleUpdate) {
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Provider != nil {
		r.Provider = *patch.Provider
	}
	if patch.SourceEntity != nil {
		r.SourceEntity = *patch.SourceEntity
	}
	if patch.TargetEntity != nil {
		r.TargetEntity = *patch.TargetEntity
	}
	if patch.Enabled != nil {
		r.Enabled = *patch.Enabled
	}
	if patch.FieldMappings != nil {
		r.FieldMappings = patch.FieldMappings
	}
	if patch.Conditions != nil {
		r.Conditions = *patch.Conditions
	}
	r.UpdatedAt = time.Now()
}

// Clone returns a deep copy of the rule. Registries hand out clones so
// callers cannot mutate shared state behind the registry's lock.
func (r *MappingRule) Clone() *MappingRule {
	clone := *r
	clone.FieldMappings = make([]FieldMapping, len(r.FieldMappings))
	copy(clone.FieldMappings, r.FieldMappings)
	if r.Conditions != nil {
		clone.Conditions = make([]Condition, len(r.Conditions))
		copy(clone.Conditions, r.Conditions)
	}
	return &clone
}

// ---------------------------------------------------------------------------
// RuleUpdate Value Object
// ---------------------------------------------------------------------------

// RuleUpdate is a partial-merge patch for a mapping rule. Nil fields are left
// unchanged. Conditions uses a slice pointer so an empty list can clear the
// rule's conditions while nil leaves them untouched.
type RuleUpdate struct {
	Name          *string
	Description   *string
	Provider      *string
	SourceEntity  *string
	TargetEntity  *string
	Enabled       *bool
	FieldMappings []FieldMapping
	Conditions    *[]Condition
}
