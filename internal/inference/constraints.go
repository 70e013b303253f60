package inference

import (
	"fmt"

	"github.com/funvibe/tower/internal/typesystem"
)

// ConstraintType represents the kind of constraint
type ConstraintType string

const (
	ConstraintUnify ConstraintType = "Unify" // Expected ~ Actual
)

// Constraint represents a type constraint recorded while checking a candidate.
type Constraint struct {
	Kind     ConstraintType
	Expected typesystem.Type
	Actual   typesystem.Type
	Origin   string // what produced the constraint, for diagnostics
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s ~ %s (%s)", c.Expected, c.Actual, c.Origin)
}

// ConstraintSystem is the inference workspace of one candidate.
// It is not safe for concurrent use.
type ConstraintSystem struct {
	constraints []Constraint
	subst       typesystem.Subst
}

func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{subst: typesystem.Subst{}}
}

// Merge copies other's constraints and substitution into s. other is left untouched.
func (s *ConstraintSystem) Merge(other *ConstraintSystem) {
	if other == nil {
		return
	}
	s.constraints = append(s.constraints, other.constraints...)
	s.subst = s.subst.Compose(other.subst)
}

// AddUnify records Expected ~ Actual under the current substitution and extends it.
// On failure the system is left unchanged.
func (s *ConstraintSystem) AddUnify(expected, actual typesystem.Type, origin string) error {
	sub, err := typesystem.Unify(expected.Apply(s.subst), actual.Apply(s.subst))
	if err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	s.constraints = append(s.constraints, Constraint{
		Kind:     ConstraintUnify,
		Expected: expected,
		Actual:   actual,
		Origin:   origin,
	})
	s.subst = s.subst.Compose(sub)
	return nil
}

// Apply resolves t against the current substitution.
func (s *ConstraintSystem) Apply(t typesystem.Type) typesystem.Type {
	if t == nil {
		return nil
	}
	return t.Apply(s.subst)
}

// Substitution returns a copy of the current substitution.
func (s *ConstraintSystem) Substitution() typesystem.Subst {
	return s.subst.Clone()
}

// Constraints returns a copy of the recorded constraints.
func (s *ConstraintSystem) Constraints() []Constraint {
	out := make([]Constraint, len(s.constraints))
	copy(out, s.constraints)
	return out
}

func (s *ConstraintSystem) IsEmpty() bool {
	return len(s.constraints) == 0 && len(s.subst) == 0
}

// Factory creates empty constraint systems.
type Factory interface {
	NewSystem() *ConstraintSystem
}

// DefaultFactory builds plain systems.
type DefaultFactory struct{}

func (DefaultFactory) NewSystem() *ConstraintSystem {
	return NewConstraintSystem()
}

// RenameTypeVars renames type variables to avoid collisions with the call site's own variables.
func RenameTypeVars(t typesystem.Type, suffix string) typesystem.Type {
	if t == nil {
		return nil
	}
	vars := t.FreeTypeVariables()
	subst := make(typesystem.Subst, len(vars))
	for _, v := range vars {
		subst[v.Name] = typesystem.TVar{Name: v.Name + "_" + suffix}
	}
	return t.Apply(subst)
}
