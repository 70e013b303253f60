package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/typesystem"
)

var intType = typesystem.TCon{Name: "Int"}

func collect(fn func(string, resolve.SymbolFunc) resolve.Signal, name string) []*Symbol {
	var out []*Symbol
	fn(name, func(s resolve.Symbol) resolve.Signal {
		out = append(out, s.(*Symbol))
		return resolve.Continue
	})
	return out
}

func TestScopeQueriesAreLocal(t *testing.T) {
	global := NewEmptySymbolTable("main")
	outerFoo := global.DefineFunction("foo", typesystem.TFunc{ReturnType: intType}, "main")
	block := NewEnclosedSymbolTable(global, ScopeBlock, "block")
	prop := block.DefineProperty("foo", intType, "main")

	assert.Equal(t, []*Symbol{prop}, collect(block.Properties, "foo"))
	assert.Empty(t, collect(block.Functions, "foo"))
	assert.Equal(t, []*Symbol{outerFoo}, collect(global.Functions, "foo"))

	chain := block.Chain()
	require.Len(t, chain, 2)
	assert.Same(t, block, chain[0])
	assert.Same(t, global, chain[1])
}

func TestScopeQueriesHonorStop(t *testing.T) {
	st := NewEmptySymbolTable("main")
	first := st.DefineFunction("f", typesystem.TFunc{}, "main")
	st.DefineFunction("f", typesystem.TFunc{Params: []typesystem.Type{intType}}, "main")

	var seen []resolve.Symbol
	sig := st.Functions("f", func(s resolve.Symbol) resolve.Signal {
		seen = append(seen, s)
		return resolve.Stop
	})
	assert.Equal(t, resolve.Stop, sig)
	assert.Equal(t, []resolve.Symbol{first}, seen)
}

func TestClassifiers(t *testing.T) {
	st := NewSymbolTable("main")
	point := st.DefineClassifier("Point", typesystem.TCon{Name: "Point"}, "main")

	assert.Equal(t, []*Symbol{point}, collect(st.Classifiers, "Point"))
	assert.Len(t, collect(st.Classifiers, "Int"), 0)
	assert.Len(t, collect(st.Outer().Classifiers, "Int"), 1)
}

func TestLookup(t *testing.T) {
	st := NewSymbolTable("main")
	fn := NewEnclosedSymbolTable(st, ScopeFunction, "f")

	syms, err := fn.Lookup("print")
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, prelude, syms[0].OriginModule)

	_, err = fn.Lookup("missing")
	var notFound *typesystem.SymbolNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, scope, ok := fn.FindWithScope("toString")
	require.True(t, ok)
	assert.Equal(t, ScopePrelude, scope.ScopeType())
	assert.Contains(t, fn.GetAllNames(), "len")
}

func TestTypeRegistryMembers(t *testing.T) {
	r := NewTypeRegistry()
	_, err := r.DeclareType("Shape", "")
	require.NoError(t, err)
	_, err = r.DeclareType("Circle", "Shape")
	require.NoError(t, err)

	_, err = r.DeclareType("Circle", "")
	assert.Error(t, err)
	_, err = r.DeclareType("Square", "Polygon")
	assert.Error(t, err)

	area := typesystem.TFunc{ReturnType: typesystem.TCon{Name: "Float"}}
	shapeArea, err := r.DefineMember("Shape", &Symbol{Name: "area", Kind: FunctionSymbol, Type: area})
	require.NoError(t, err)
	shapeName, err := r.DefineMember("Shape", &Symbol{Name: "name", Kind: PropertySymbol, Type: typesystem.TCon{Name: "String"}})
	require.NoError(t, err)
	circleArea, err := r.DefineMember("Circle", &Symbol{Name: "area", Kind: FunctionSymbol, Type: area})
	require.NoError(t, err)
	scaled, err := r.DefineMember("Circle", &Symbol{Name: "area", Kind: FunctionSymbol,
		Type: typesystem.TFunc{Params: []typesystem.Type{intType}, ReturnType: typesystem.TCon{Name: "Float"}}})
	require.NoError(t, err)
	_, err = r.DefineMember("Nope", &Symbol{Name: "x"})
	assert.Error(t, err)

	members, ok := r.MemberScope(typesystem.TCon{Name: "Circle"})
	require.True(t, ok)
	// The override hides Shape.area; the overload with a parameter does not.
	assert.Equal(t, []*Symbol{circleArea, scaled}, collect(members.MemberFunctions, "area"))
	assert.Equal(t, []*Symbol{shapeName}, collect(members.MemberProperties, "name"))

	shape, ok := r.MemberScope(typesystem.TCon{Name: "Shape"})
	require.True(t, ok)
	assert.Equal(t, []*Symbol{shapeArea}, collect(shape.MemberFunctions, "area"))

	assert.True(t, r.IsSubtype("Circle", "Shape"))
	assert.False(t, r.IsSubtype("Shape", "Circle"))
}

func TestTypeRegistryMemberScopeMisses(t *testing.T) {
	r := NewBuiltinTypeRegistry()

	_, ok := r.MemberScope(typesystem.TVar{Name: "a"})
	assert.False(t, ok)
	_, ok = r.MemberScope(typesystem.TError{})
	assert.False(t, ok)
	_, ok = r.MemberScope(typesystem.TCon{Name: "Unknown"})
	assert.False(t, ok)

	list, ok := r.MemberScope(typesystem.MustParseType("List<Int>"))
	require.True(t, ok)
	assert.Len(t, collect(list.MemberProperties, "size"), 1)
}

func TestPreludeIsShared(t *testing.T) {
	a := NewSymbolTable("a")
	b := NewSymbolTable("b")
	assert.Same(t, a.Outer(), b.Outer())

	ResetPrelude()
	c := NewSymbolTable("c")
	assert.NotSame(t, a.Outer(), c.Outer())
}

func TestSymbolNames(t *testing.T) {
	member := &Symbol{Name: "area", Kind: FunctionSymbol, Owner: "Shape", Type: typesystem.TFunc{}}
	ext := &Symbol{Name: "scale", Kind: FunctionSymbol, ReceiverType: typesystem.TCon{Name: "Shape"}, Type: typesystem.TFunc{}}

	assert.Equal(t, "Shape.area", member.SymbolName())
	assert.True(t, member.IsMember())
	assert.False(t, member.IsExtension())
	assert.Equal(t, "function Shape.area: () -> Unit", member.String())
	assert.True(t, ext.IsExtension())
	assert.Equal(t, "function Shape.scale: () -> Unit", ext.String())
}

func TestTypeAliases(t *testing.T) {
	global := NewEmptySymbolTable("main")
	global.DefineTypeAlias("Names", typesystem.MustParseType("List<Name>"))
	global.DefineTypeAlias("Name", typesystem.TCon{Name: "String"})
	global.DefineTypeAlias("Loop", typesystem.MustParseType("List<Loop>"))
	block := NewEnclosedSymbolTable(global, ScopeBlock, "block")

	under, ok := block.GetTypeAlias("Name")
	require.True(t, ok)
	assert.Equal(t, "String", under.String())

	assert.Equal(t, "(List<String>) -> String", block.ResolveTypeAlias(typesystem.MustParseType("(Names) -> Name")).String())
	assert.Equal(t, "List<Loop>", block.ResolveTypeAlias(typesystem.TCon{Name: "Loop"}).String())
	assert.Equal(t, "a", block.ResolveTypeAlias(typesystem.TVar{Name: "a"}).String())
}

func TestFindSimilarNames(t *testing.T) {
	st := NewEmptySymbolTable("main")
	st.DefineFunction("length", typesystem.TFunc{}, "main")
	st.DefineFunction("lengths", typesystem.TFunc{}, "main")
	block := NewEnclosedSymbolTable(st, ScopeBlock, "block")
	block.DefineProperty("lenght", intType, "main")
	block.DefineProperty("size", intType, "main")

	assert.Equal(t, []string{"lengths", "lenght"}, block.FindSimilarNames("length", 2))
	assert.Equal(t, []string{"length", "lenght", "lengths"}, block.FindSimilarNames("lengt", 2))
	assert.Empty(t, block.FindSimilarNames("width", 2))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}
