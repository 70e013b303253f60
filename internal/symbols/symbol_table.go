// symbols/symbol_table.go - Main symbol table entry point
//
// The package is split into focused modules:
// - symbol_table_core.go: Core types, Symbol struct, basic utilities
// - symbol_table_init.go: Prelude initialization and built-in types
// - symbol_table_operations.go: Basic symbol table operations (define, find, etc.)
// - symbol_table_resolution.go: Scope queries used by the resolver
// - symbol_table_aliases.go: Type aliases
// - symbol_table_advanced.go: SymbolTable struct definition
// - type_registry.go: Member tables of declared types

package symbols
