package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/tower/internal/typesystem"
)

func TestAddUnifyExtendsSubstitution(t *testing.T) {
	sys := NewConstraintSystem()
	require.True(t, sys.IsEmpty())

	require.NoError(t, sys.AddUnify(typesystem.MustParseType("List<a>"), typesystem.MustParseType("List<Int>"), "arg 0"))
	assert.Equal(t, "Int", sys.Apply(typesystem.TVar{Name: "a"}).String())
	assert.Len(t, sys.Constraints(), 1)

	err := sys.AddUnify(typesystem.TVar{Name: "a"}, typesystem.MustParseType("String"), "arg 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg 1")
	assert.Len(t, sys.Constraints(), 1, "failed constraint is not recorded")
}

func TestMergeCopiesWithoutAliasing(t *testing.T) {
	base := NewConstraintSystem()
	require.NoError(t, base.AddUnify(typesystem.TVar{Name: "r"}, typesystem.MustParseType("Int"), "base"))

	sys := DefaultFactory{}.NewSystem()
	sys.Merge(base)
	require.NoError(t, sys.AddUnify(typesystem.TVar{Name: "b"}, typesystem.MustParseType("Bool"), "local"))

	assert.Len(t, sys.Constraints(), 2)
	assert.Len(t, base.Constraints(), 1)
	assert.NotContains(t, base.Substitution(), "b")
	assert.Equal(t, "Int", sys.Apply(typesystem.TVar{Name: "r"}).String())

	sys.Merge(nil)
	assert.Len(t, sys.Constraints(), 2)
}

func TestRenameTypeVars(t *testing.T) {
	renamed := RenameTypeVars(typesystem.MustParseType("(a, List<b>) -> a"), "c1")
	assert.Equal(t, "(a_c1, List<b_c1>) -> a_c1", renamed.String())
	assert.Nil(t, RenameTypeVars(nil, "x"))
}
