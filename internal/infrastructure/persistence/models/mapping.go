package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opsuite/backend/internal/domain/mapping"
)

// MappingRuleModel is the persistence model for the MappingRule domain entity.
// Field mappings and conditions are stored as JSON documents; transforms are
// stored by name and resolved against the transform registry when the rule is
// loaded.
type MappingRuleModel struct {
	ID             string    `gorm:"type:varchar(100);primary_key"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Description    string    `gorm:"type:text"`
	Provider       string    `gorm:"type:varchar(50);not null;index:idx_mapping_rule_provider_entity,priority:1"`
	SourceEntity   string    `gorm:"type:varchar(100);not null;index:idx_mapping_rule_provider_entity,priority:2"`
	TargetEntity   string    `gorm:"type:varchar(100);not null"`
	// No default tag: gorm would skip a false value on insert and let the
	// column default re-enable the rule.
	Enabled        bool      `gorm:"not null"`
	FieldMappings  string    `gorm:"type:jsonb;not null;column:field_mappings"`
	ConditionsJSON string    `gorm:"type:jsonb;column:conditions"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MappingRuleModel) TableName() string {
	return "mapping_rules"
}

// ToDomain converts the persistence model to a domain MappingRule, resolving
// stored transform names against the given registry
func (m *MappingRuleModel) ToDomain(transforms *mapping.TransformRegistry) (*mapping.MappingRule, error) {
	rule := &mapping.MappingRule{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Provider:     m.Provider,
		SourceEntity: m.SourceEntity,
		TargetEntity: m.TargetEntity,
		Enabled:      m.Enabled,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	if m.FieldMappings != "" {
		if err := json.Unmarshal([]byte(m.FieldMappings), &rule.FieldMappings); err != nil {
			return nil, fmt.Errorf("failed to decode field mappings of rule %s: %w", m.ID, err)
		}
	}
	if m.ConditionsJSON != "" {
		if err := json.Unmarshal([]byte(m.ConditionsJSON), &rule.Conditions); err != nil {
			return nil, fmt.Errorf("failed to decode conditions of rule %s: %w", m.ID, err)
		}
	}

	if err := rule.ResolveTransforms(transforms); err != nil {
		return nil, fmt.Errorf("failed to resolve transforms of rule %s: %w", m.ID, err)
	}
	return rule, nil
}

// FromDomain populates the persistence model from a domain MappingRule
func (m *MappingRuleModel) FromDomain(rule *mapping.MappingRule) error {
	fieldMappings, err := json.Marshal(rule.FieldMappings)
	if err != nil {
		return fmt.Errorf("failed to encode field mappings of rule %s: %w", rule.ID, err)
	}

	m.ID = rule.ID
	m.Name = rule.Name
	m.Description = rule.Description
	m.Provider = rule.Provider
	m.SourceEntity = rule.SourceEntity
	m.TargetEntity = rule.TargetEntity
	m.Enabled = rule.Enabled
	m.FieldMappings = string(fieldMappings)
	m.CreatedAt = rule.CreatedAt
	m.UpdatedAt = rule.UpdatedAt

	if len(rule.Conditions) > 0 {
		conditions, err := json.Marshal(rule.Conditions)
		if err != nil {
			return fmt.Errorf("failed to encode conditions of rule %s: %w", rule.ID, err)
		}
		m.ConditionsJSON = string(conditions)
	} else {
		m.ConditionsJSON = ""
	}
	return nil
}
