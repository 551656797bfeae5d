package typesystem

import (
	"fmt"
	"unicode"

	"github.com/funvibe/tjcore/internal/config"
)

// Parse reads a type expression in the notation produced by String.
//
//	int  Vec<int>  Map<str, int>  Result<int, str>  tuple(int, str)
//	(int, str)  (int, str) -> bool  A | B  Point<int>  'T  Self
//
// A leading quote marks a type variable; Self is always a variable. Any other
// unknown identifier is a generic name. The return type of an arrow extends
// as far right as possible, so "(int) -> A | B" returns a sum.
func Parse(src string) (Type, error) {
	p := &typeParser{src: []rune(src), input: src}
	t, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", string(p.src[p.pos]))
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for tables of
// built-in signatures and tests.
func MustParse(src string) Type {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	input string
	src   []rune
	pos   int
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: p.input, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) eof() bool { return p.pos >= len(p.src) }

func (p *typeParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *typeParser) peek() rune {
	p.skipSpace()
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) accept(r rune) bool {
	if p.peek() == r {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(r rune) error {
	if !p.accept(r) {
		if p.eof() {
			return p.errorf("expected %q, got end of input", string(r))
		}
		return p.errorf("expected %q, got %q", string(r), string(p.src[p.pos]))
	}
	return nil
}

func (p *typeParser) acceptArrow() bool {
	p.skipSpace()
	if p.pos+1 < len(p.src) && p.src[p.pos] == '-' && p.src[p.pos+1] == '>' {
		p.pos += 2
		return true
	}
	return false
}

func (p *typeParser) parseUnion() (Type, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek() != '|' {
		return first, nil
	}
	members := []Type{first}
	for p.accept('|') {
		next, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	return TSum{Types: members}, nil
}

// parseList reads "t1, t2, ..." up to (and consuming) the closing rune.
func (p *typeParser) parseList(closing rune) ([]Type, error) {
	var out []Type
	if p.accept(closing) {
		return out, nil
	}
	for {
		t, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.accept(',') {
			continue
		}
		if err := p.expect(closing); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (p *typeParser) parsePrimary() (Type, error) {
	switch r := p.peek(); {
	case r == 0:
		return nil, p.errorf("expected a type, got end of input")
	case r == '(':
		p.pos++
		elems, err := p.parseList(')')
		if err != nil {
			return nil, err
		}
		if p.acceptArrow() {
			ret, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			return TFunc{Params: elems, ReturnType: ret}, nil
		}
		return TProduct{Elements: elems}, nil
	case r == '\'':
		p.pos++
		name := p.ident()
		if name == "" {
			return nil, p.errorf("expected a type variable name after '")
		}
		return TVar{Name: name}, nil
	case isIdentStart(r):
		return p.parseNamed(p.ident())
	default:
		return nil, p.errorf("unexpected %q", string(r))
	}
}

func (p *typeParser) parseNamed(name string) (Type, error) {
	if name == config.TupleTypeName && p.peek() == '(' {
		p.pos++
		elems, err := p.parseList(')')
		if err != nil {
			return nil, err
		}
		return TTuple{Elements: elems}, nil
	}

	var args []Type
	start := p.pos
	if p.accept('<') {
		var err error
		if args, err = p.parseList('>'); err != nil {
			return nil, err
		}
	}

	arity := func(n int) error {
		if len(args) != n {
			p.pos = start
			return p.errorf("%s expects %d type argument(s), got %d", name, n, len(args))
		}
		return nil
	}

	if prim, ok := primitives[name]; ok {
		if err := arity(0); err != nil {
			return nil, err
		}
		return prim, nil
	}

	switch name {
	case config.SelfTypeVar:
		if err := arity(0); err != nil {
			return nil, err
		}
		return TVar{Name: name}, nil
	case config.VecTypeName:
		if err := arity(1); err != nil {
			return nil, err
		}
		return TVec{Elem: args[0]}, nil
	case config.SetTypeName:
		if err := arity(1); err != nil {
			return nil, err
		}
		return TSet{Elem: args[0]}, nil
	case config.OptionTypeName:
		if err := arity(1); err != nil {
			return nil, err
		}
		return TOption{Inner: args[0]}, nil
	case config.TaskTypeName:
		if err := arity(1); err != nil {
			return nil, err
		}
		return TTask{Inner: args[0]}, nil
	case config.MapTypeName:
		if err := arity(2); err != nil {
			return nil, err
		}
		return TMap{Key: args[0], Value: args[1]}, nil
	case config.ResultTypeName:
		if err := arity(2); err != nil {
			return nil, err
		}
		return TResult{Ok: args[0], Err: args[1]}, nil
	}
	return TGeneric{Name: name, Args: args}, nil
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func (p *typeParser) ident() string {
	start := p.pos
	for !p.eof() {
		r := p.src[p.pos]
		if r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}
