package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessLevelEmpty(t *testing.T) {
	p := &recordingProcessor{}
	assert.Equal(t, Continue, ProcessLevel(EmptyLevel{}, TokenFunctions, "foo", nil, p))
	assert.Empty(t, p.syms)
}

func TestProcessLevelMember(t *testing.T) {
	members := newFakeScope()
	prop := members.add(TokenProperties, &fakeSymbol{name: "foo"})
	fn := members.add(TokenFunctions, &fakeSymbol{name: "foo"})
	members.add(TokenClassifiers, &fakeSymbol{name: "foo"})

	recv := &ReceiverValue{Expr: Ident("r"), Type: typeT()}
	level := MemberLevel{Receiver: recv, Types: fakeTypes{"T": members}}

	tests := []struct {
		token Token
		want  []Symbol
	}{
		{TokenProperties, []Symbol{prop}},
		{TokenFunctions, []Symbol{fn}},
		{TokenClassifiers, nil},
	}
	for _, tt := range tests {
		t.Run(tt.token.String(), func(t *testing.T) {
			p := &recordingProcessor{}
			assert.Equal(t, Continue, ProcessLevel(level, tt.token, "foo", nil, p))
			assert.Equal(t, tt.want, p.syms)
			for i := range p.syms {
				assert.Same(t, recv, p.dispatch[i])
				assert.Nil(t, p.extension[i])
			}
		})
	}
}

func TestProcessLevelMemberWithoutScope(t *testing.T) {
	recv := &ReceiverValue{Expr: Ident("r"), Type: typeT()}
	p := &recordingProcessor{}
	assert.Equal(t, Continue, ProcessLevel(MemberLevel{Receiver: recv, Types: fakeTypes{}}, TokenFunctions, "foo", nil, p))
	assert.Empty(t, p.syms)
}

func TestProcessLevelScope(t *testing.T) {
	scope := newFakeScope()
	prop := scope.add(TokenProperties, &fakeSymbol{name: "foo"})
	fn := scope.add(TokenFunctions, &fakeSymbol{name: "foo"})
	cls := scope.add(TokenClassifiers, &fakeSymbol{name: "foo"})

	recv := &ReceiverValue{Expr: Ident("r"), Type: typeT()}
	tests := []struct {
		token Token
		want  Symbol
	}{
		{TokenProperties, prop},
		{TokenFunctions, fn},
		{TokenClassifiers, cls},
	}
	for _, tt := range tests {
		t.Run(tt.token.String(), func(t *testing.T) {
			p := &recordingProcessor{}
			ProcessLevel(ScopeLevel{Scope: scope}, tt.token, "foo", recv, p)
			require.Len(t, p.syms, 1)
			assert.Same(t, tt.want, p.syms[0])
			assert.Nil(t, p.dispatch[0])
			assert.Same(t, recv, p.extension[0])
		})
	}
}

func TestProcessLevelHonorsStop(t *testing.T) {
	scope := newFakeScope()
	first := scope.add(TokenFunctions, &fakeSymbol{name: "foo", id: 1})
	scope.add(TokenFunctions, &fakeSymbol{name: "foo", id: 2})

	p := &recordingProcessor{stopAfter: 1}
	assert.Equal(t, Stop, ProcessLevel(ScopeLevel{Scope: scope}, TokenFunctions, "foo", nil, p))
	assert.Equal(t, []Symbol{first}, p.syms)
}

type bogusLevel struct{ EmptyLevel }

func TestProcessLevelRejectsUnknownVariants(t *testing.T) {
	assert.Panics(t, func() {
		ProcessLevel(bogusLevel{}, TokenFunctions, "foo", nil, &recordingProcessor{})
	})
	assert.Panics(t, func() {
		ProcessLevel(ScopeLevel{Scope: newFakeScope()}, Token(42), "foo", nil, &recordingProcessor{})
	})
}
