package mapping

import "context"

// ---------------------------------------------------------------------------
// RuleRegistry Port Interface
// ---------------------------------------------------------------------------

// RuleReader defines the interface for reading mapping rules
type RuleReader interface {
	// Get finds a rule by its id.
	// Returns ErrRuleNotFound when the id is unknown.
	Get(ctx context.Context, id string) (*MappingRule, error)

	// List returns all rules in insertion order
	List(ctx context.Context) ([]*MappingRule, error)

	// FindApplicable returns all enabled rules whose provider and source
	// entity match exactly, in insertion order
	FindApplicable(ctx context.Context, provider, sourceEntity string) ([]*MappingRule, error)
}

// RuleWriter defines the interface for mutating mapping rules.
// Implementations must serialize writes so add/update/delete never
// interleave destructively; reads may run concurrently.
type RuleWriter interface {
	// Add stores a new rule.
	// Returns ErrRuleAlreadyExists when the id is taken.
	Add(ctx context.Context, rule *MappingRule) error

	// Update merges the patch into the rule and refreshes UpdatedAt.
	// Returns ErrRuleNotFound when the id is unknown.
	Update(ctx context.Context, id string, patch RuleUpdate) (*MappingRule, error)

	// Delete removes a rule.
	// Returns ErrRuleNotFound when the id is unknown.
	Delete(ctx context.Context, id string) error
}

// RuleRegistry defines the full interface for mapping rule storage
type RuleRegistry interface {
	RuleReader
	RuleWriter
}
