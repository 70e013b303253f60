package symbols

import (
	"sync"

	"github.com/funvibe/tower/internal/config"
	"github.com/funvibe/tower/internal/typesystem"
)

// Singleton prelude table containing all built-in symbols
var (
	preludeTable *SymbolTable
	preludeOnce  sync.Once
)

const prelude = "prelude" // Origin for built-in symbols

// GetPrelude returns the singleton prelude SymbolTable containing all built-in symbols.
// It is shared across all resolutions and never modified after initialization.
func GetPrelude() *SymbolTable {
	preludeOnce.Do(func() {
		preludeTable = NewEmptySymbolTable(prelude)
		preludeTable.scopeType = ScopePrelude
		preludeTable.InitBuiltins()
	})
	return preludeTable
}

// NewSymbolTable creates a new global symbol table.
// It inherits from Prelude.
func NewSymbolTable(name string) *SymbolTable {
	return NewEnclosedSymbolTable(GetPrelude(), ScopeGlobal, name)
}

// ResetPrelude resets the prelude singleton (for testing only).
func ResetPrelude() {
	preludeOnce = sync.Once{}
	preludeTable = nil
}

func (st *SymbolTable) InitBuiltins() {
	for _, name := range config.BuiltinTypeNames {
		st.DefineClassifier(name, typesystem.TCon{Name: name}, prelude)
	}

	a := typesystem.TVar{Name: "a"}
	unit := typesystem.TCon{Name: config.UnitTypeName}
	str := typesystem.TCon{Name: config.StringTypeName}
	intType := typesystem.TCon{Name: config.IntTypeName}
	list := typesystem.TApp{Constructor: typesystem.TCon{Name: config.ListTypeName}, Args: []typesystem.Type{a}}

	st.DefineFunction("print", typesystem.TFunc{Params: []typesystem.Type{a}, ReturnType: unit, IsVariadic: true}, prelude)
	st.DefineFunction("len", typesystem.TFunc{Params: []typesystem.Type{list}, ReturnType: intType}, prelude)
	st.DefineExtension(a, "toString", typesystem.TFunc{ReturnType: str}, prelude)
}

// NewBuiltinTypeRegistry returns a registry with a member table for every built-in type.
func NewBuiltinTypeRegistry() *TypeRegistry {
	r := NewTypeRegistry()
	for _, name := range config.BuiltinTypeNames {
		// Built-in names are unique, DeclareType cannot fail here.
		_, _ = r.DeclareType(name, "")
	}
	intType := typesystem.TCon{Name: config.IntTypeName}
	_, _ = r.DefineMember(config.StringTypeName, &Symbol{Name: "length", Kind: PropertySymbol, Type: intType})
	_, _ = r.DefineMember(config.ListTypeName, &Symbol{Name: "size", Kind: PropertySymbol, Type: intType})
	return r
}
