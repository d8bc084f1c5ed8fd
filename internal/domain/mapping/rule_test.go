package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// MappingRule Tests
// ---------------------------------------------------------------------------

func validFieldMappings() []FieldMapping {
	return []FieldMapping{
		{Source: "Id", Target: "externalId", Required: true},
		{Source: "Name", Target: "companyName"},
	}
}

func TestNewMappingRule(t *testing.T) {
	t.Run("Valid rule creation", func(t *testing.T) {
		rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)
		assert.Equal(t, "rule-1", rule.ID)
		assert.Equal(t, "Test Rule", rule.Name)
		assert.Equal(t, "salesforce", rule.Provider)
		assert.Equal(t, "Account", rule.SourceEntity)
		assert.Equal(t, "Customer", rule.TargetEntity)
		assert.True(t, rule.Enabled)
		assert.Len(t, rule.FieldMappings, 2)
		assert.False(t, rule.CreatedAt.IsZero())
		assert.Equal(t, rule.CreatedAt, rule.UpdatedAt)
	})

	t.Run("Empty id is generated", func(t *testing.T) {
		rule, err := NewMappingRule("", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)
		assert.NotEmpty(t, rule.ID)

		other, err := NewMappingRule("", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)
		assert.NotEqual(t, rule.ID, other.ID)
	})

	t.Run("Missing provider", func(t *testing.T) {
		_, err := NewMappingRule("rule-1", "Test Rule", "", "Account", "Customer", validFieldMappings())
		assert.ErrorIs(t, err, ErrRuleInvalidProvider)
	})

	t.Run("Missing source entity", func(t *testing.T) {
		_, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "", "Customer", validFieldMappings())
		assert.ErrorIs(t, err, ErrRuleInvalidSource)
	})

	t.Run("Missing target entity", func(t *testing.T) {
		_, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "", validFieldMappings())
		assert.ErrorIs(t, err, ErrRuleInvalidTarget)
	})

	t.Run("No field mappings", func(t *testing.T) {
		_, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", nil)
		assert.ErrorIs(t, err, ErrRuleNoFieldMappings)
	})
}

func TestMappingRule_Validate(t *testing.T) {
	t.Run("Invalid field mapping is caught", func(t *testing.T) {
		rule := &MappingRule{
			ID: "rule-1", Provider: "salesforce", SourceEntity: "Account", TargetEntity: "Customer",
			FieldMappings: []FieldMapping{{Source: "", Target: "x"}},
		}
		assert.ErrorIs(t, rule.Validate(), ErrFieldMappingNoSource)
	})

	t.Run("Unknown condition operator is rejected", func(t *testing.T) {
		rule := &MappingRule{
			ID: "rule-1", Provider: "salesforce", SourceEntity: "Account", TargetEntity: "Customer",
			FieldMappings: validFieldMappings(),
			Conditions:    []Condition{{Field: "status", Operator: Operator("matches"), Value: "x"}},
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidOperator)
	})
}

func TestMappingRule_ResolveTransforms(t *testing.T) {
	transforms := NewTransformRegistry()

	t.Run("Known names resolve", func(t *testing.T) {
		rule := &MappingRule{
			ID: "rule-1", Provider: "stripe", SourceEntity: "Customer", TargetEntity: "Customer",
			FieldMappings: []FieldMapping{
				{Source: "email", Target: "email", TransformName: TransformLowercase},
				{Source: "id", Target: "externalId"},
			},
		}
		require.NoError(t, rule.ResolveTransforms(transforms))
		assert.NotNil(t, rule.FieldMappings[0].Transform)
		assert.Nil(t, rule.FieldMappings[1].Transform)
	})

	t.Run("Unknown name fails", func(t *testing.T) {
		rule := &MappingRule{
			ID: "rule-1", Provider: "stripe", SourceEntity: "Customer", TargetEntity: "Customer",
			FieldMappings: []FieldMapping{
				{Source: "email", Target: "email", TransformName: "rot13"},
			},
		}
		assert.ErrorIs(t, rule.ResolveTransforms(transforms), ErrUnknownTransform)
	})
}

func TestMappingRule_EnableDisable(t *testing.T) {
	rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
	require.NoError(t, err)

	rule.Disable()
	assert.False(t, rule.Enabled)

	rule.Enable()
	assert.True(t, rule.Enabled)
}

func TestMappingRule_ApplyUpdate(t *testing.T) {
	newName := "Renamed"
	disabled := false

	t.Run("Nil fields are left unchanged", func(t *testing.T) {
		rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)

		rule.ApplyUpdate(RuleUpdate{Name: &newName})
		assert.Equal(t, "Renamed", rule.Name)
		assert.Equal(t, "salesforce", rule.Provider)
		assert.Equal(t, "rule-1", rule.ID)
		assert.True(t, rule.Enabled)
	})

	t.Run("Enabled can be patched to false", func(t *testing.T) {
		rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)

		rule.ApplyUpdate(RuleUpdate{Enabled: &disabled})
		assert.False(t, rule.Enabled)
	})

	t.Run("Field mappings are replaced wholesale", func(t *testing.T) {
		rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)

		rule.ApplyUpdate(RuleUpdate{FieldMappings: []FieldMapping{{Source: "a", Target: "b"}}})
		require.Len(t, rule.FieldMappings, 1)
		assert.Equal(t, "a", rule.FieldMappings[0].Source)
	})

	t.Run("Empty conditions pointer clears conditions", func(t *testing.T) {
		rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
		require.NoError(t, err)
		rule.Conditions = []Condition{{Field: "status", Operator: OperatorExists}}

		rule.ApplyUpdate(RuleUpdate{})
		assert.Len(t, rule.Conditions, 1)

		empty := []Condition{}
		rule.ApplyUpdate(RuleUpdate{Conditions: &empty})
		assert.Empty(t, rule.Conditions)
	})
}

func TestMappingRule_Clone(t *testing.T) {
	rule, err := NewMappingRule("rule-1", "Test Rule", "salesforce", "Account", "Customer", validFieldMappings())
	require.NoError(t, err)
	rule.Conditions = []Condition{{Field: "status", Operator: OperatorExists}}

	clone := rule.Clone()
	clone.Name = "Changed"
	clone.FieldMappings[0].Source = "Changed"
	clone.Conditions[0].Field = "changed"

	assert.Equal(t, "Test Rule", rule.Name)
	assert.Equal(t, "Id", rule.FieldMappings[0].Source)
	assert.Equal(t, "status", rule.Conditions[0].Field)
}

// ---------------------------------------------------------------------------
// FieldMapping Tests
// ---------------------------------------------------------------------------

func TestFieldMapping_Validate(t *testing.T) {
	t.Run("Valid mapping", func(t *testing.T) {
		m := FieldMapping{Source: "Name", Target: "companyName"}
		assert.NoError(t, m.Validate())
	})

	t.Run("Missing source", func(t *testing.T) {
		m := FieldMapping{Target: "companyName"}
		assert.ErrorIs(t, m.Validate(), ErrFieldMappingNoSource)
	})

	t.Run("Missing target", func(t *testing.T) {
		m := FieldMapping{Source: "Name"}
		assert.ErrorIs(t, m.Validate(), ErrFieldMappingNoTarget)
	})
}

func TestFieldMapping_ResolveTransform(t *testing.T) {
	transforms := NewTransformRegistry()

	t.Run("Already resolved function is kept", func(t *testing.T) {
		called := false
		m := FieldMapping{
			Source: "a", Target: "b", TransformName: TransformTrim,
			Transform: func(value any) (any, error) {
				called = true
				return value, nil
			},
		}
		require.NoError(t, m.ResolveTransform(transforms))
		_, err := m.Transform("x")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("No transform name resolves to nil", func(t *testing.T) {
		m := FieldMapping{Source: "a", Target: "b"}
		require.NoError(t, m.ResolveTransform(transforms))
		assert.Nil(t, m.Transform)
	})
}
