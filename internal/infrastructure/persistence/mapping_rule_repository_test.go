package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/opsuite/backend/internal/domain/mapping"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
)

func setupMappingRuleTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.MappingRuleModel{}))
	return db
}

func newStoredRule(t *testing.T, id string, createdAt time.Time) *mapping.MappingRule {
	t.Helper()
	rule, err := mapping.NewMappingRule(id, "Rule "+id, "salesforce", "Account", "Customer",
		[]mapping.FieldMapping{
			{Source: "Id", Target: "externalId", Required: true},
			{Source: "Email", Target: "email", TransformName: mapping.TransformLowercase},
			{Source: "Country", Target: "address.country", Default: "US"},
		})
	require.NoError(t, err)
	rule.Conditions = []mapping.Condition{
		{Field: "Type", Operator: mapping.OperatorEquals, Value: "Customer"},
	}
	rule.CreatedAt = createdAt
	rule.UpdatedAt = createdAt
	return rule
}

func TestMappingRuleRepository_RoundTrip(t *testing.T) {
	db := setupMappingRuleTestDB(t)
	transforms := mapping.NewTransformRegistry()
	repo := NewMappingRuleRepository(db, transforms)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Add(ctx, newStoredRule(t, "r1", now)))

	t.Run("Loaded rule carries field mappings and conditions", func(t *testing.T) {
		got, err := repo.Get(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "Rule r1", got.Name)
		assert.True(t, got.Enabled)

		require.Len(t, got.FieldMappings, 3)
		assert.Equal(t, "externalId", got.FieldMappings[0].Target)
		assert.True(t, got.FieldMappings[0].Required)
		assert.Equal(t, "US", got.FieldMappings[2].Default)

		require.Len(t, got.Conditions, 1)
		assert.Equal(t, mapping.OperatorEquals, got.Conditions[0].Operator)
	})

	t.Run("Transform is re-resolved from its name on load", func(t *testing.T) {
		got, err := repo.Get(ctx, "r1")
		require.NoError(t, err)

		require.Equal(t, mapping.TransformLowercase, got.FieldMappings[1].TransformName)
		require.NotNil(t, got.FieldMappings[1].Transform)
		lowered, err := got.FieldMappings[1].Transform("A@B.C")
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", lowered)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, mapping.ErrRuleNotFound)
	})

	t.Run("Duplicate id", func(t *testing.T) {
		err := repo.Add(ctx, newStoredRule(t, "r1", now))
		assert.ErrorIs(t, err, mapping.ErrRuleAlreadyExists)
	})
}

func TestMappingRuleRepository_Update(t *testing.T) {
	db := setupMappingRuleTestDB(t)
	repo := NewMappingRuleRepository(db, mapping.NewTransformRegistry())
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Add(ctx, newStoredRule(t, "r1", now)))

	t.Run("Patch is merged and persisted", func(t *testing.T) {
		disabled := false
		newName := "Renamed"
		updated, err := repo.Update(ctx, "r1", mapping.RuleUpdate{Name: &newName, Enabled: &disabled})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.False(t, updated.Enabled)

		got, err := repo.Get(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.False(t, got.Enabled)
		assert.True(t, got.UpdatedAt.After(now))
	})

	t.Run("Unknown id", func(t *testing.T) {
		newName := "Renamed"
		_, err := repo.Update(ctx, "nope", mapping.RuleUpdate{Name: &newName})
		assert.ErrorIs(t, err, mapping.ErrRuleNotFound)
	})
}

func TestMappingRuleRepository_Delete(t *testing.T) {
	db := setupMappingRuleTestDB(t)
	repo := NewMappingRuleRepository(db, mapping.NewTransformRegistry())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, newStoredRule(t, "r1", time.Now().UTC())))
	require.NoError(t, repo.Delete(ctx, "r1"))

	_, err := repo.Get(ctx, "r1")
	assert.ErrorIs(t, err, mapping.ErrRuleNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "r1"), mapping.ErrRuleNotFound)
}

func TestMappingRuleRepository_ListAndFindApplicable(t *testing.T) {
	db := setupMappingRuleTestDB(t)
	repo := NewMappingRuleRepository(db, mapping.NewTransformRegistry())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	first := newStoredRule(t, "first", base)
	second := newStoredRule(t, "second", base.Add(time.Second))
	third := newStoredRule(t, "third", base.Add(2*time.Second))
	third.SourceEntity = "Contact"
	fourth := newStoredRule(t, "fourth", base.Add(3*time.Second))
	fourth.Enabled = false

	for _, rule := range []*mapping.MappingRule{second, first, third, fourth} {
		require.NoError(t, repo.Add(ctx, rule))
	}

	t.Run("List orders by creation time", func(t *testing.T) {
		rules, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, rules, 4)
		assert.Equal(t, "first", rules[0].ID)
		assert.Equal(t, "second", rules[1].ID)
		assert.Equal(t, "third", rules[2].ID)
		assert.Equal(t, "fourth", rules[3].ID)
	})

	t.Run("FindApplicable filters provider, entity and enabled", func(t *testing.T) {
		rules, err := repo.FindApplicable(ctx, "salesforce", "Account")
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, "first", rules[0].ID)
		assert.Equal(t, "second", rules[1].ID)
	})

	t.Run("FindApplicable with no match", func(t *testing.T) {
		rules, err := repo.FindApplicable(ctx, "hubspot", "Company")
		require.NoError(t, err)
		assert.Empty(t, rules)
	})
}
