package pipeline

import (
	"fmt"
	"os"

	"github.com/funvibe/tjcore/internal/diagnostics"
	"github.com/funvibe/tjcore/internal/symbols"
	"github.com/funvibe/tjcore/internal/typesystem"
	"gopkg.in/yaml.v3"
)

// Unit is an analysis input: bindings, declarations and constraints written
// in type-expression syntax. It stands in for the output of a front end.
type Unit struct {
	Label        string           `yaml:"label,omitempty"`
	File         uint32           `yaml:"file,omitempty"`
	Variables    []BindingSpec    `yaml:"variables,omitempty"`
	Functions    []BindingSpec    `yaml:"functions,omitempty"`
	Declarations []BindingSpec    `yaml:"declarations,omitempty"`
	Constraints  []ConstraintSpec `yaml:"constraints,omitempty"`
}

// BindingSpec names a type. Scope > 0 binds a variable in a nested scope of
// that depth.
type BindingSpec struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Scope int      `yaml:"scope,omitempty"`
	Span  SpanSpec `yaml:"span,omitempty"`
}

type ConstraintSpec struct {
	Type      string   `yaml:"type"`
	Interface string   `yaml:"interface"`
	Span      SpanSpec `yaml:"span,omitempty"`
}

type SpanSpec struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// LoadUnit reads a unit file.
func LoadUnit(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading unit %s: %w", path, err)
	}
	return ParseUnit(data, path)
}

// ParseUnit parses unit content. The path is used for the default label and
// error messages.
func ParseUnit(data []byte, path string) (*Unit, error) {
	var u Unit
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parsing unit %s: %w", path, err)
	}
	if u.Label == "" {
		u.Label = path
	}
	for i, c := range u.Constraints {
		if c.Type == "" || c.Interface == "" {
			return nil, fmt.Errorf("%s: constraints[%d]: type and interface are required", path, i)
		}
	}
	return &u, nil
}

func (u *Unit) span(s SpanSpec) diagnostics.SourceSpan {
	return diagnostics.NewSpan(diagnostics.FileID(u.File), s.Start, s.End)
}

// UnitProcessor loads a Unit into the context. Type expressions that fail to
// parse are reported as ParserInvalidType and skipped.
type UnitProcessor struct {
	Unit *Unit
}

func (up *UnitProcessor) Process(ctx *PipelineContext) *PipelineContext {
	u := up.Unit
	if u == nil {
		return ctx
	}

	parse := func(kind string, b BindingSpec) (typesystem.Type, bool) {
		t, err := typesystem.Parse(b.Type)
		if err != nil {
			ctx.Add(diagnostics.NewError(diagnostics.ParserInvalidType, u.span(b.Span),
				"%s %s: %v", kind, b.Name, err))
			return nil, false
		}
		return t, true
	}

	for _, b := range u.Variables {
		t, ok := parse("variable", b)
		if !ok {
			continue
		}
		for ctx.Env.Depth() < b.Scope {
			ctx.Env.EnterScope()
		}
		for ctx.Env.Depth() > b.Scope {
			ctx.Env.ExitScope()
		}
		ctx.Env.BindVariable(b.Name, t)
	}

	for _, b := range u.Functions {
		if t, ok := parse("function", b); ok {
			ctx.Env.BindFunction(b.Name, t)
			ctx.Declare(b.Name, t, u.span(b.Span))
		}
	}

	for _, b := range u.Declarations {
		if t, ok := parse("declaration", b); ok {
			ctx.Declare(b.Name, t, u.span(b.Span))
		}
	}

	for _, c := range u.Constraints {
		ctx.Env.AddConstraint(symbols.InterfaceConstraint{
			TypeVar:   c.Type,
			Interface: c.Interface,
			Span:      u.span(c.Span),
		})
	}
	return ctx
}
