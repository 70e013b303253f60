package resolve

import "fmt"

// Level is one layer of the tower. The variants are EmptyLevel, MemberLevel and ScopeLevel;
// ProcessLevel switches over them exhaustively.
type Level interface {
	isLevel()
}

// EmptyLevel holds no symbols. Resolution visits it first.
type EmptyLevel struct{}

// MemberLevel holds the members reachable through one receiver value.
type MemberLevel struct {
	Receiver *ReceiverValue
	Types    TypeScopes
}

// ScopeLevel holds the declarations of one ambient lexical scope.
type ScopeLevel struct {
	Scope Scope
}

func (EmptyLevel) isLevel()  {}
func (MemberLevel) isLevel() {}
func (ScopeLevel) isLevel()  {}

// Processor receives every symbol a level finds. dispatch is the receiver the level
// itself binds the match to (member levels only); extension is the receiver the caller
// passed in, handed back unchanged for ambient scope matches.
type Processor interface {
	Process(sym Symbol, dispatch, extension *ReceiverValue) Signal
}

// ProcessLevel looks up name in level under token, calling p once per match.
// receiver is the candidate receiver the caller resolves against; it is not used to
// filter the search.
func ProcessLevel(level Level, token Token, name string, receiver *ReceiverValue, p Processor) Signal {
	switch l := level.(type) {
	case EmptyLevel:
		return Continue
	case MemberLevel:
		return processMemberLevel(l, token, name, p)
	case ScopeLevel:
		return processScopeLevel(l, token, name, receiver, p)
	default:
		panic(fmt.Sprintf("impossible tower level: %T", level))
	}
}

func processMemberLevel(l MemberLevel, token Token, name string, p Processor) Signal {
	if l.Receiver == nil || l.Types == nil {
		return Continue
	}
	members, ok := l.Types.MemberScope(l.Receiver.Type)
	if !ok || members == nil {
		return Continue
	}
	emit := func(sym Symbol) Signal {
		return p.Process(sym, l.Receiver, nil)
	}
	switch token {
	case TokenProperties:
		return members.MemberProperties(name, emit)
	case TokenFunctions:
		return members.MemberFunctions(name, emit)
	case TokenClassifiers:
		// Classifiers are not looked up as receiver members.
		return Continue
	default:
		panic(fmt.Sprintf("impossible token: %d", token))
	}
}

func processScopeLevel(l ScopeLevel, token Token, name string, receiver *ReceiverValue, p Processor) Signal {
	if l.Scope == nil {
		return Continue
	}
	emit := func(sym Symbol) Signal {
		return p.Process(sym, nil, receiver)
	}
	switch token {
	case TokenProperties:
		return l.Scope.Properties(name, emit)
	case TokenFunctions:
		return l.Scope.Functions(name, emit)
	case TokenClassifiers:
		return l.Scope.Classifiers(name, emit)
	default:
		panic(fmt.Sprintf("impossible token: %d", token))
	}
}
