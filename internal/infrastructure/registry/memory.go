// Package registry provides the in-process implementation of the mapping
// rule registry. Reads run concurrently under a read lock; all mutation is
// serialized by a single writer lock per the registry port contract.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/opsuite/backend/internal/domain/mapping"
)

// MemoryRuleRegistry is a process-memory mapping.RuleRegistry. Rules are
// indexed by id and kept in insertion order for deterministic lookup results.
type MemoryRuleRegistry struct {
	mu    sync.RWMutex
	rules map[string]*mapping.MappingRule
	order []string
}

// NewMemoryRuleRegistry creates an empty in-memory rule registry
func NewMemoryRuleRegistry() *MemoryRuleRegistry {
	return &MemoryRuleRegistry{
		rules: make(map[string]*mapping.MappingRule),
	}
}

// Add stores a new rule
func (r *MemoryRuleRegistry) Add(_ context.Context, rule *mapping.MappingRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.ID]; exists {
		return fmt.Errorf("%w: %s", mapping.ErrRuleAlreadyExists, rule.ID)
	}
	r.rules[rule.ID] = rule.Clone()
	r.order = append(r.order, rule.ID)
	return nil
}

// Get finds a rule by its id
func (r *MemoryRuleRegistry) Get(_ context.Context, id string) (*mapping.MappingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, exists := r.rules[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", mapping.ErrRuleNotFound, id)
	}
	return rule.Clone(), nil
}

// Update merges the patch into the rule and refreshes UpdatedAt
func (r *MemoryRuleRegistry) Update(_ context.Context, id string, patch mapping.RuleUpdate) (*mapping.MappingRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, exists := r.rules[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", mapping.ErrRuleNotFound, id)
	}
	rule.ApplyUpdate(patch)
	return rule.Clone(), nil
}

// Delete removes a rule
func (r *MemoryRuleRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[id]; !exists {
		return fmt.Errorf("%w: %s", mapping.ErrRuleNotFound, id)
	}
	delete(r.rules, id)
	for i, ruleID := range r.order {
		if ruleID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all rules in insertion order
func (r *MemoryRuleRegistry) List(_ context.Context) ([]*mapping.MappingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]*mapping.MappingRule, 0, len(r.order))
	for _, id := range r.order {
		rules = append(rules, r.rules[id].Clone())
	}
	return rules, nil
}

// FindApplicable returns all enabled rules matching the provider and source
// entity exactly, in insertion order
func (r *MemoryRuleRegistry) FindApplicable(_ context.Context, provider, sourceEntity string) ([]*mapping.MappingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []*mapping.MappingRule
	for _, id := range r.order {
		rule := r.rules[id]
		if rule.Enabled && rule.Provider == provider && rule.SourceEntity == sourceEntity {
			rules = append(rules, rule.Clone())
		}
	}
	return rules, nil
}

// Ensure MemoryRuleRegistry implements RuleRegistry
var _ mapping.RuleRegistry = (*MemoryRuleRegistry)(nil)
