package mapping

import (
	"github.com/go-playground/validator/v10"
	"github.com/opsuite/backend/internal/domain/mapping"
)

// validate checks administrative requests before they are turned into domain
// entities
var validate = validator.New()

// FieldMappingInput is the administrative representation of a field mapping
type FieldMappingInput struct {
	Source    string `json:"source" validate:"required"`
	Target    string `json:"target" validate:"required"`
	Transform string `json:"transform,omitempty"`
	Required  bool   `json:"required,omitempty"`
	Default   any    `json:"default,omitempty"`
}

// ToDomain converts the input to a domain FieldMapping
func (i FieldMappingInput) ToDomain() mapping.FieldMapping {
	return mapping.FieldMapping{
		Source:        i.Source,
		Target:        i.Target,
		TransformName: i.Transform,
		Required:      i.Required,
		Default:       i.Default,
	}
}

// ConditionInput is the administrative representation of a rule condition
type ConditionInput struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator" validate:"required,oneof=equals not_equals contains starts_with ends_with exists not_exists"`
	Value    any    `json:"value,omitempty"`
}

// ToDomain converts the input to a domain Condition
func (i ConditionInput) ToDomain() mapping.Condition {
	return mapping.Condition{
		Field:    i.Field,
		Operator: mapping.Operator(i.Operator),
		Value:    i.Value,
	}
}

// CreateRuleRequest represents a request to create a mapping rule
type CreateRuleRequest struct {
	ID            string              `json:"id,omitempty"`
	Name          string              `json:"name" validate:"required"`
	Description   string              `json:"description,omitempty"`
	Provider      string              `json:"provider" validate:"required"`
	SourceEntity  string              `json:"source_entity" validate:"required"`
	TargetEntity  string              `json:"target_entity" validate:"required"`
	FieldMappings []FieldMappingInput `json:"field_mappings" validate:"required,min=1,dive"`
	Conditions    []ConditionInput    `json:"conditions,omitempty" validate:"dive"`
}

// Validate validates the request
func (r *CreateRuleRequest) Validate() error {
	return validate.Struct(r)
}

// ToDomain converts the request to a domain MappingRule
func (r *CreateRuleRequest) ToDomain() (*mapping.MappingRule, error) {
	fieldMappings := make([]mapping.FieldMapping, len(r.FieldMappings))
	for i, fm := range r.FieldMappings {
		fieldMappings[i] = fm.ToDomain()
	}

	rule, err := mapping.NewMappingRule(r.ID, r.Name, r.Provider, r.SourceEntity, r.TargetEntity, fieldMappings)
	if err != nil {
		return nil, err
	}
	rule.Description = r.Description
	for _, c := range r.Conditions {
		rule.Conditions = append(rule.Conditions, c.ToDomain())
	}
	return rule, nil
}

// UpdateRuleRequest represents a partial update to a mapping rule.
// Nil fields are left unchanged.
type UpdateRuleRequest struct {
	Name          *string             `json:"name,omitempty"`
	Description   *string             `json:"description,omitempty"`
	Provider      *string             `json:"provider,omitempty"`
	SourceEntity  *string             `json:"source_entity,omitempty"`
	TargetEntity  *string             `json:"target_entity,omitempty"`
	Enabled       *bool               `json:"enabled,omitempty"`
	FieldMappings []FieldMappingInput `json:"field_mappings,omitempty" validate:"omitempty,min=1,dive"`
	Conditions    *[]ConditionInput   `json:"conditions,omitempty"`
}

// Validate validates the request
func (r *UpdateRuleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Conditions != nil {
		for _, c := range *r.Conditions {
			if err := validate.Struct(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToPatch converts the request to a domain RuleUpdate
func (r *UpdateRuleRequest) ToPatch() mapping.RuleUpdate {
	patch := mapping.RuleUpdate{
		Name:         r.Name,
		Description:  r.Description,
		Provider:     r.Provider,
		SourceEntity: r.SourceEntity,
		TargetEntity: r.TargetEntity,
		Enabled:      r.Enabled,
	}
	if r.FieldMappings != nil {
		patch.FieldMappings = make([]mapping.FieldMapping, len(r.FieldMappings))
		for i, fm := range r.FieldMappings {
			patch.FieldMappings[i] = fm.ToDomain()
		}
	}
	if r.Conditions != nil {
		conditions := make([]mapping.Condition, len(*r.Conditions))
		for i, c := range *r.Conditions {
			conditions[i] = c.ToDomain()
		}
		patch.Conditions = &conditions
	}
	return patch
}
