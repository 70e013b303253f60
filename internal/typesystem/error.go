package typesystem

import "fmt"

// SymbolNotFoundError indicates a symbol was not found
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol not found: %s", e.Name)
}

func NewSymbolNotFoundError(name string) *SymbolNotFoundError {
	return &SymbolNotFoundError{Name: name}
}

// UnifyError is returned when two types cannot be made equal.
type UnifyError struct {
	Msg string
}

func (e *UnifyError) Error() string {
	return e.Msg
}

// ParseError reports a malformed type expression.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse type %q at %d: %s", e.Input, e.Pos, e.Msg)
}
