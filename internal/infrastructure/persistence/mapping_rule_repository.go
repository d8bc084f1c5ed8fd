package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsuite/backend/internal/domain/mapping"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// MappingRuleRepository is the gorm-backed implementation of
// mapping.RuleRegistry. It keeps administratively edited rules across process
// restarts; the transformation engine itself never writes through it.
//
// Insertion order is preserved through the created_at column (ties broken by
// id) to match the memory registry's lookup ordering.
type MappingRuleRepository struct {
	db         *gorm.DB
	transforms *mapping.TransformRegistry
}

// NewMappingRuleRepository creates a new MappingRuleRepository
func NewMappingRuleRepository(db *gorm.DB, transforms *mapping.TransformRegistry) *MappingRuleRepository {
	return &MappingRuleRepository{
		db:         db,
		transforms: transforms,
	}
}

// Add stores a new rule
func (r *MappingRuleRepository) Add(ctx context.Context, rule *mapping.MappingRule) error {
	var model models.MappingRuleModel
	if err := model.FromDomain(rule); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", mapping.ErrRuleAlreadyExists, rule.ID)
		}
		return fmt.Errorf("failed to store mapping rule %s: %w", rule.ID, err)
	}
	return nil
}

// Get finds a rule by its id
func (r *MappingRuleRepository) Get(ctx context.Context, id string) (*mapping.MappingRule, error) {
	var model models.MappingRuleModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", mapping.ErrRuleNotFound, id)
		}
		return nil, fmt.Errorf("failed to load mapping rule %s: %w", id, err)
	}
	return model.ToDomain(r.transforms)
}

// Update merges the patch into the rule inside a transaction so concurrent
// writers cannot interleave destructively
func (r *MappingRuleRepository) Update(ctx context.Context, id string, patch mapping.RuleUpdate) (*mapping.MappingRule, error) {
	var updated *mapping.MappingRule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.MappingRuleModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", mapping.ErrRuleNotFound, id)
			}
			return fmt.Errorf("failed to load mapping rule %s: %w", id, err)
		}

		rule, err := model.ToDomain(r.transforms)
		if err != nil {
			return err
		}
		rule.ApplyUpdate(patch)

		if err := model.FromDomain(rule); err != nil {
			return err
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to update mapping rule %s: %w", id, err)
		}
		updated = rule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a rule
func (r *MappingRuleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.MappingRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete mapping rule %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", mapping.ErrRuleNotFound, id)
	}
	return nil
}

// List returns all rules in insertion order
func (r *MappingRuleRepository) List(ctx context.Context) ([]*mapping.MappingRule, error) {
	var modelList []models.MappingRuleModel
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mapping rules: %w", err)
	}
	return r.toDomainList(modelList)
}

// FindApplicable returns all enabled rules matching the provider and source
// entity exactly, in insertion order
func (r *MappingRuleRepository) FindApplicable(ctx context.Context, provider, sourceEntity string) ([]*mapping.MappingRule, error) {
	var modelList []models.MappingRuleModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND source_entity = ? AND enabled = ?", provider, sourceEntity, true).
		Order("created_at ASC, id ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find mapping rules for %s.%s: %w", provider, sourceEntity, err)
	}
	return r.toDomainList(modelList)
}

func (r *MappingRuleRepository) toDomainList(modelList []models.MappingRuleModel) ([]*mapping.MappingRule, error) {
	rules := make([]*mapping.MappingRule, 0, len(modelList))
	for i := range modelList {
		rule, err := modelList[i].ToDomain(r.transforms)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Ensure MappingRuleRepository implements RuleRegistry
var _ mapping.RuleRegistry = (*MappingRuleRepository)(nil)
