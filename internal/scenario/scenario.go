// Package scenario implements the YAML format describing a resolution workload:
// declared types with their members, the lexical scopes visible at call sites,
// the types of call-site expressions and the calls to resolve.
//
// A scenario file looks like:
//
//	types:
//	  - name: Shape
//	    members:
//	      - {name: area, kind: function, type: "() -> Float"}
//	  - name: Circle
//	    super: Shape
//	scopes:                       # innermost first
//	  - name: body
//	    symbols:
//	      - {name: scale, kind: function, receiver: Shape, type: "(Float) -> Unit"}
//	aliases:
//	  Size: Float
//	vars:
//	  c: Circle
//	calls:
//	  - {name: area, receiver: c, expect: {outcome: success, best: [Shape.area]}}
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/tower/internal/config"
	"github.com/funvibe/tower/internal/typesystem"
)

// Scenario is the top-level scenario document.
type Scenario struct {
	// Name identifies the scenario in reports. Defaults to the file name.
	Name string `yaml:"name,omitempty"`

	// Types declares nominal types and their members. A supertype must be
	// declared before its subtypes.
	Types []TypeDecl `yaml:"types,omitempty"`

	// Aliases name type expressions. They may be used in every other type
	// expression of the scenario.
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Scopes are the lexical scopes, innermost first. The outermost one encloses
	// the prelude unless NoPrelude is set.
	Scopes []ScopeDecl `yaml:"scopes"`

	// NoPrelude drops the built-in prelude from the scope chain.
	NoPrelude bool `yaml:"no_prelude,omitempty"`

	// Vars gives the computed type of call-site expressions by name.
	// Expressions without an entry have no known type.
	Vars map[string]string `yaml:"vars,omitempty"`

	// Calls are the call sites to resolve.
	Calls []CallDecl `yaml:"calls"`

	path string
}

// TypeDecl declares a type and its member scope.
type TypeDecl struct {
	Name    string       `yaml:"name"`
	Super   string       `yaml:"super,omitempty"`
	Members []SymbolDecl `yaml:"members,omitempty"`
}

// ScopeDecl is one lexical scope.
type ScopeDecl struct {
	Name string `yaml:"name"`

	// Kind is one of "global", "function" or "block". The outermost scope defaults
	// to "global", the others to "block".
	Kind string `yaml:"kind,omitempty"`

	Symbols []SymbolDecl `yaml:"symbols,omitempty"`
}

// SymbolDecl declares a property, function or classifier.
type SymbolDecl struct {
	Name string `yaml:"name"`

	// Kind is one of "property", "function" or "classifier". Defaults to "function".
	Kind string `yaml:"kind,omitempty"`

	// Type is a type expression, e.g. "(Int, String?) -> Bool" or "List<a>".
	// Functions must have a function type. Classifiers default to a type named after them.
	Type string `yaml:"type,omitempty"`

	// TypeParams are the explicit type parameters, in declaration order.
	TypeParams []string `yaml:"type_params,omitempty"`

	// Receiver makes the symbol an extension callable on values of this type.
	// Not allowed on type members.
	Receiver string `yaml:"receiver,omitempty"`

	Hidden    bool `yaml:"hidden,omitempty"`
	Synthetic bool `yaml:"synthetic,omitempty"`
}

// CallDecl is one call site.
type CallDecl struct {
	Name string `yaml:"name"`

	// Kind is "function" (default) or "variable".
	Kind string `yaml:"kind,omitempty"`

	// Receiver is the explicit receiver expression, looked up in Vars.
	Receiver string `yaml:"receiver,omitempty"`

	// Args are argument expressions, looked up in Vars.
	Args []string `yaml:"args,omitempty"`

	// TypeArgs are explicit type arguments as type expressions.
	TypeArgs []string `yaml:"type_args,omitempty"`

	// Scope names the scope the call occurs in. Defaults to the innermost scope.
	Scope string `yaml:"scope,omitempty"`

	// Expect optionally states the expected result, checked by the report.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation is the expected resolution of a call.
type Expectation struct {
	// Outcome is one of "success", "ambiguous", "inapplicable" or "unresolved".
	Outcome string `yaml:"outcome,omitempty"`

	// Best lists the qualified names of the best candidates, in order.
	Best []string `yaml:"best,omitempty"`
}

// Symbol kinds, scope kinds and call kinds accepted in scenario files.
const (
	KindProperty   = "property"
	KindFunction   = "function"
	KindClassifier = "classifier"
	KindVariable   = "variable"

	ScopeGlobal   = "global"
	ScopeFunction = "function"
	ScopeBlock    = "block"
)

var outcomes = []string{"success", "ambiguous", "inapplicable", "unresolved"}

// ValidationError lists every problem found in a scenario.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.Path, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems:\n  %s", e.Path, len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses scenario content from bytes.
// The path argument is used for the default name and error messages.
func Parse(data []byte, path string) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	s.path = path
	s.setDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Path is the file the scenario was parsed from.
func (s *Scenario) Path() string {
	return s.path
}

func (s *Scenario) setDefaults() {
	if s.Name == "" && s.path != "" {
		base := filepath.Base(s.path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for i := range s.Scopes {
		if s.Scopes[i].Kind == "" {
			if i == len(s.Scopes)-1 {
				s.Scopes[i].Kind = ScopeGlobal
			} else {
				s.Scopes[i].Kind = ScopeBlock
			}
		}
		for j := range s.Scopes[i].Symbols {
			s.Scopes[i].Symbols[j].setDefaults()
		}
	}
	for i := range s.Types {
		for j := range s.Types[i].Members {
			s.Types[i].Members[j].setDefaults()
		}
	}
	for i := range s.Calls {
		if s.Calls[i].Kind == "" {
			s.Calls[i].Kind = KindFunction
		}
	}
}

func (d *SymbolDecl) setDefaults() {
	if d.Kind == "" {
		d.Kind = KindFunction
	}
	if d.Kind == KindClassifier && d.Type == "" {
		d.Type = d.Name
	}
}

// Validate checks the scenario for semantic errors and reports all of them at once.
func (s *Scenario) Validate() error {
	v := &validator{}

	if len(s.Scopes) == 0 {
		v.add("no scopes defined")
	}
	if len(s.Calls) == 0 {
		v.add("no calls defined")
	}

	declared := make(map[string]bool)
	for _, name := range config.BuiltinTypeNames {
		declared[name] = true
	}
	for i, t := range s.Types {
		where := fmt.Sprintf("types[%d]", i)
		switch {
		case t.Name == "":
			v.add("%s: name is required", where)
		case declared[t.Name]:
			v.add("%s: type %s declared twice", where, t.Name)
		}
		if t.Super != "" && !declared[t.Super] {
			v.add("%s: supertype %s must be declared before %s", where, t.Super, t.Name)
		}
		declared[t.Name] = true
		for j, m := range t.Members {
			v.symbol(fmt.Sprintf("%s.members[%d]", where, j), m)
			if m.Receiver != "" {
				v.add("%s.members[%d]: members cannot have a receiver", where, j)
			}
		}
	}

	scopeNames := make(map[string]bool)
	for i, sc := range s.Scopes {
		where := fmt.Sprintf("scopes[%d]", i)
		if sc.Name == "" {
			v.add("%s: name is required", where)
		} else if scopeNames[sc.Name] {
			v.add("%s: scope %s declared twice", where, sc.Name)
		}
		scopeNames[sc.Name] = true
		if !slices.Contains([]string{ScopeGlobal, ScopeFunction, ScopeBlock}, sc.Kind) {
			v.add("%s: unknown scope kind %q", where, sc.Kind)
		}
		for j, sym := range sc.Symbols {
			v.symbol(fmt.Sprintf("%s.symbols[%d]", where, j), sym)
		}
	}

	for _, name := range sortedKeys(s.Aliases) {
		if declared[name] {
			v.add("aliases[%s]: alias shadows type %s", name, name)
		}
		v.typeExpr(fmt.Sprintf("aliases[%s]", name), s.Aliases[name])
	}

	for _, name := range sortedKeys(s.Vars) {
		v.typeExpr(fmt.Sprintf("vars[%s]", name), s.Vars[name])
	}

	for i, c := range s.Calls {
		where := fmt.Sprintf("calls[%d]", i)
		if c.Name == "" {
			v.add("%s: name is required", where)
		}
		if c.Kind != KindFunction && c.Kind != KindVariable {
			v.add("%s: unknown call kind %q", where, c.Kind)
		}
		if c.Kind == KindVariable && len(c.Args) > 0 {
			v.add("%s: variable access cannot have arguments", where)
		}
		if c.Scope != "" && !scopeNames[c.Scope] {
			v.add("%s: unknown scope %s", where, c.Scope)
		}
		for j, ta := range c.TypeArgs {
			v.typeExpr(fmt.Sprintf("%s.type_args[%d]", where, j), ta)
		}
		if c.Expect != nil && c.Expect.Outcome != "" && !slices.Contains(outcomes, c.Expect.Outcome) {
			v.add("%s: unknown expected outcome %q", where, c.Expect.Outcome)
		}
	}

	if len(v.problems) > 0 {
		return &ValidationError{Path: s.path, Problems: v.problems}
	}
	return nil
}

type validator struct {
	problems []string
}

func (v *validator) add(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) typeExpr(where, expr string) typesystem.Type {
	if expr == "" {
		v.add("%s: type is required", where)
		return nil
	}
	t, err := typesystem.ParseType(expr)
	if err != nil {
		v.add("%s: %v", where, err)
		return nil
	}
	return t
}

func (v *validator) symbol(where string, d SymbolDecl) {
	if d.Name == "" {
		v.add("%s: name is required", where)
	}
	switch d.Kind {
	case KindFunction:
		if t := v.typeExpr(where+".type", d.Type); t != nil {
			if _, ok := t.(typesystem.TFunc); !ok {
				v.add("%s: function %s needs a function type, got %s", where, d.Name, t)
			}
		}
	case KindProperty, KindClassifier:
		v.typeExpr(where+".type", d.Type)
	default:
		v.add("%s: unknown symbol kind %q", where, d.Kind)
	}
	if d.Receiver != "" {
		v.typeExpr(where+".receiver", d.Receiver)
	}
	seen := make(map[string]bool)
	for _, tp := range d.TypeParams {
		if seen[tp] {
			v.add("%s: type parameter %s declared twice", where, tp)
		}
		seen[tp] = true
	}
}

// IsScenarioFile reports whether path has a recognized scenario extension.
func IsScenarioFile(path string) bool {
	return slices.Contains(config.ScenarioFileExtensions, filepath.Ext(path))
}

// FindScenarios expands each argument into scenario files: files are kept as they
// are, directories are searched recursively for files with a scenario extension.
// The result is sorted within each directory.
func FindScenarios(paths ...string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("finding scenarios: %w", err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsScenarioFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("finding scenarios in %s: %w", p, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
