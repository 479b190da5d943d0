package pricing

import (
	"fmt"
	"sync"

	"github.com/servicehub/backend/internal/domain/shared"
)

// Registry maps rule types to their adjusters
type Registry struct {
	mu        sync.RWMutex
	adjusters map[RuleType]Adjuster
}

// NewRegistry creates a registry holding the given adjusters
func NewRegistry(adjusters ...Adjuster) (*Registry, error) {
	r := &Registry{adjusters: make(map[RuleType]Adjuster, len(adjusters))}
	for _, a := range adjusters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a registry with every built-in rule type
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultAdjusters()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds an adjuster; a rule type may only be registered once
func (r *Registry) Register(a Adjuster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt := a.RuleType()
	if _, exists := r.adjusters[rt]; exists {
		return fmt.Errorf("%w: adjuster for '%s' already registered", shared.ErrAlreadyExists, rt)
	}
	r.adjusters[rt] = a
	return nil
}

// Get returns the adjuster for a rule type
func (r *Registry) Get(rt RuleType) (Adjuster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adjusters[rt]
	if !ok {
		return nil, fmt.Errorf("%w: no adjuster for rule type '%s'", shared.ErrNotFound, rt)
	}
	return a, nil
}

// Describe lists the registered rule types with their descriptions and keys, in AllRuleTypes order
func (r *Registry) Describe() []RuleTypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RuleTypeInfo, 0, len(r.adjusters))
	for _, rt := range AllRuleTypes() {
		a, ok := r.adjusters[rt]
		if !ok {
			continue
		}
		out = append(out, RuleTypeInfo{
			RuleType:     rt,
			Description:  a.Description(),
			AllowedKeys:  a.AllowedKeys(),
			RequiredKeys: a.RequiredKeys(),
		})
	}
	return out
}

// RuleTypeInfo documents one rule type for API clients
type RuleTypeInfo struct {
	RuleType     RuleType   `json:"ruleType"`
	Description  string     `json:"description"`
	AllowedKeys  []string   `json:"allowedKeys"`
	RequiredKeys [][]string `json:"requiredKeys"`
}
