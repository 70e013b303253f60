package typesystem

import (
	"strings"
	"unicode"
)

// ParseType parses the textual type syntax used by scenario files:
//
//	Int            type constant
//	a              type variable (lower-case identifier)
//	math.Vector    module-qualified constant
//	List<a>        application
//	(Int, ...a) -> Bool   function; '?' after a parameter marks a default
func ParseType(input string) (Type, error) {
	p := &typeParser{input: input}
	p.skipSpace()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input")
	}
	return t, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(input string) Type {
	t, err := ParseType(input)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) errorf(msg string) error {
	return &ParseError{Input: p.input, Pos: p.pos, Msg: msg}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) accept(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *typeParser) parseType() (Type, error) {
	p.skipSpace()
	if p.peek() == '(' {
		return p.parseFunc()
	}
	return p.parseApp()
}

func (p *typeParser) parseFunc() (Type, error) {
	p.pos++ // (
	fn := TFunc{}
	defaults := 0
	if !p.accept(")") {
		for {
			if fn.IsVariadic {
				return nil, p.errorf("variadic parameter must be last")
			}
			if p.accept("...") {
				fn.IsVariadic = true
			}
			param, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if p.accept("?") {
				defaults++
			} else if defaults > 0 {
				return nil, p.errorf("parameter without default after a defaulted one")
			}
			if p.accept(")") {
				break
			}
			if !p.accept(",") {
				return nil, p.errorf("expected ',' or ')'")
			}
		}
	}
	fn.DefaultCount = defaults
	if !p.accept("->") {
		return nil, p.errorf("expected '->'")
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	fn.ReturnType = ret
	return fn, nil
}

func (p *typeParser) parseApp() (Type, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		r := rune(p.input[p.pos])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' {
			p.pos++
			continue
		}
		break
	}
	name := p.input[start:p.pos]
	if name == "" {
		return nil, p.errorf("expected type name")
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return nil, p.errorf("empty module or type name in " + name)
	}

	var ctor Type
	if unicode.IsLower(rune(name[0])) && !strings.Contains(name, ".") {
		ctor = TVar{Name: name}
	} else if idx := strings.LastIndex(name, "."); idx > 0 {
		ctor = TCon{Module: name[:idx], Name: name[idx+1:]}
	} else {
		ctor = TCon{Name: name}
	}

	if !p.accept("<") {
		return ctor, nil
	}
	app := TApp{Constructor: ctor}
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		app.Args = append(app.Args, arg)
		if p.accept(">") {
			return app, nil
		}
		if !p.accept(",") {
			return nil, p.errorf("expected ',' or '>'")
		}
	}
}
