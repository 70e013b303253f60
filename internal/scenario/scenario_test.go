package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/symbols"
)

const shapes = `
types:
  - name: Shape
    members:
      - {name: area, type: "() -> Float"}
      - {name: name, kind: property, type: String}
  - name: Circle
    super: Shape
scopes:
  - name: body
    kind: function
    symbols:
      - {name: scale, receiver: Shape, type: "(Float) -> Unit"}
  - name: main
    symbols:
      - {name: Point, kind: classifier}
      - {name: pick, type: "(a, a) -> a", type_params: [a]}
vars:
  c: Circle
  x: Float
calls:
  - {name: area, receiver: c, expect: {outcome: success, best: [Shape.area]}}
  - {name: name, kind: variable, receiver: c}
  - {name: scale, receiver: c, args: [x], scope: body}
  - {name: pick, args: [x, x], type_args: [Float], scope: main}
`

func TestParseAppliesDefaults(t *testing.T) {
	s, err := Parse([]byte(shapes), "testdata/shapes.yaml")
	require.NoError(t, err)

	assert.Equal(t, "shapes", s.Name)
	assert.Equal(t, "testdata/shapes.yaml", s.Path())
	assert.Equal(t, ScopeFunction, s.Scopes[0].Kind)
	assert.Equal(t, ScopeGlobal, s.Scopes[1].Kind)
	assert.Equal(t, KindFunction, s.Types[0].Members[0].Kind)
	assert.Equal(t, "Point", s.Scopes[1].Symbols[0].Type)
	assert.Equal(t, KindFunction, s.Calls[0].Kind)
	require.NotNil(t, s.Calls[0].Expect)
	assert.Equal(t, []string{"Shape.area"}, s.Calls[0].Expect.Best)
}

func TestValidateReportsAllProblems(t *testing.T) {
	src := `
types:
  - name: Circle
    super: Shape
  - name: Int
scopes:
  - name: main
    kind: module
    symbols:
      - {name: f, type: Int}
      - {name: g, kind: method, type: Int}
      - {name: h, type: "(Int -> Unit"}
calls:
  - {name: x, kind: variable, args: [a]}
  - {name: f, scope: nowhere, expect: {outcome: maybe}}
`
	_, err := Parse([]byte(src), "bad.yaml")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bad.yaml", verr.Path)

	want := []string{
		"supertype Shape must be declared before Circle",
		"type Int declared twice",
		`unknown scope kind "module"`,
		"function f needs a function type",
		`unknown symbol kind "method"`,
		"scopes[0].symbols[2].type",
		"variable access cannot have arguments",
		"unknown scope nowhere",
		`unknown expected outcome "maybe"`,
	}
	require.Len(t, verr.Problems, len(want))
	for i, w := range want {
		assert.Contains(t, verr.Problems[i], w)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("scopes: [\n"), "broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing broken.yaml")

	_, err = Parse([]byte("scopes: []\ncalls: []\n"), "empty.yaml")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"no scopes defined", "no calls defined"}, verr.Problems)
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(shapes), "shapes.yaml")
	require.NoError(t, err)
	w, err := s.Build()
	require.NoError(t, err)

	require.Len(t, w.Sites, 4)
	assert.Same(t, w.Scopes["body"], w.Innermost)
	assert.Same(t, w.Scopes["main"], w.Innermost.Outer())
	assert.Equal(t, symbols.ScopePrelude, w.Scopes["main"].Outer().ScopeType())
	assert.True(t, w.Types.IsSubtype("Circle", "Shape"))

	area := w.Sites[0]
	assert.Equal(t, "c.area()", area.Call.String())
	assert.Len(t, area.Scopes, 3)
	recvType, ok := area.Call.TypeOfExpr(area.Call.ExplicitReceiver)
	require.True(t, ok)
	assert.Equal(t, "Circle", recvType.String())

	assert.Equal(t, resolve.CallVariable, w.Sites[1].Call.Kind)
	// Calls placed in an outer scope do not see inner declarations.
	assert.Len(t, w.Sites[3].Scopes, 2)
	assert.Equal(t, "pick<Float>(x, x)", w.Sites[3].Call.String())

	syms, ok := w.Scopes["body"].Find("scale")
	require.True(t, ok)
	assert.True(t, syms[0].IsExtension())
	assert.Equal(t, "body", syms[0].OriginModule)
	require.Len(t, w.CallScopes, len(w.Sites))
	assert.Same(t, w.Scopes["main"], w.CallScopes[3])
}

func TestBuildWithoutPrelude(t *testing.T) {
	src := `
no_prelude: true
scopes:
  - name: main
calls:
  - {name: print}
`
	s, err := Parse([]byte(src), "bare.yaml")
	require.NoError(t, err)
	w, err := s.Build()
	require.NoError(t, err)
	assert.Nil(t, w.Innermost.Outer())
	assert.Len(t, w.Sites[0].Scopes, 1)
}

func TestLoadAndFind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	files := []string{
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "a.tower"),
		filepath.Join(dir, "nested", "c.yml"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte(shapes), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	found, err := FindScenarios(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{files[1], files[0], files[2]}, found)

	s, err := Load(files[1])
	require.NoError(t, err)
	assert.Equal(t, "a", s.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	_, err = FindScenarios(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestBuildExpandsAliases(t *testing.T) {
	src := `
aliases:
  Size: Float
  Sizes: List<Size>
scopes:
  - name: main
    symbols:
      - {name: total, type: "(Sizes) -> Size"}
vars:
  xs: Sizes
calls:
  - {name: total, args: [xs]}
`
	s, err := Parse([]byte(src), "aliases.yaml")
	require.NoError(t, err)
	w, err := s.Build()
	require.NoError(t, err)

	syms, ok := w.Innermost.Find("total")
	require.True(t, ok)
	assert.Equal(t, "(List<Float>) -> Float", syms[0].Type.String())
	xs, ok := w.Sites[0].Call.TypeOfExpr(resolve.Ident("xs"))
	require.True(t, ok)
	assert.Equal(t, "List<Float>", xs.String())

	_, err = Parse([]byte("aliases: {Int: Float}\nscopes: [{name: main}]\ncalls: [{name: f}]\n"), "shadow.yaml")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems[0], "alias shadows type Int")
}

func TestValidateRejectsDanglingQualifier(t *testing.T) {
	src := "scopes: [{name: main}]\nvars: {x: \"Int.\"}\ncalls: [{name: f, args: [x]}]\n"
	_, err := Parse([]byte(src), "dots.yaml")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Contains(t, verr.Problems[0], "vars[x]")
	assert.Contains(t, verr.Problems[0], "empty module or type name")
}
