// Package stepbuilder plans the staged builder protocol of a generated model.
//
// A plan turns a model's ordered fields into a chain of single-method step
// contracts, one per required non-identity field, ending in a terminal
// contract that exposes the identity setter, the optional-field setters and
// the build method. Targets render the plan in their own syntax; the plan
// itself knows nothing about any output language beyond the names a Namer
// gives it.
package stepbuilder

import (
	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/schema"
)

// Namer supplies the target-specific names used by a plan
type Namer interface {
	// StepInterface names the contract whose method sets field f
	StepInterface(m schema.Model, f schema.Field) string
	// TerminalInterface names the contract reachable once all required fields are set
	TerminalInterface(m schema.Model) string
	// Setter names the builder method that sets field f
	Setter(f schema.Field) string
	// BuildMethod names the zero-argument construction method
	BuildMethod() string
}

// Step is one link of the required-field chain
type Step struct {
	Field     schema.Field
	Interface string
	Method    string
	// Next is the interface returned by Method: the following step or the terminal
	Next string
}

// Plan is the builder protocol for one model
type Plan struct {
	// Model is the planned model with its identity field ensured
	Model    schema.Model
	Identity schema.Field
	Steps    []Step
	Optional []schema.Field
	Terminal string
	// Entry is the interface returned by the builder's entry point
	Entry string

	IdentitySetter string
	BuildMethod    string

	setters map[string]string
}

// New plans the builder for m. Fields are partitioned by nullability in
// declaration order; the identity field takes part in neither partition.
// Name collisions are reported as assertion failures rather than producing
// an ambiguous chain.
func New(m schema.Model, namer Namer) (*Plan, error) {
	m = m.WithIdentity()
	identity, _ := m.Identity()

	p := &Plan{
		Model:          m,
		Identity:       identity,
		Terminal:       namer.TerminalInterface(m),
		IdentitySetter: namer.Setter(identity),
		BuildMethod:    namer.BuildMethod(),
		setters:        make(map[string]string, len(m.Fields)),
	}

	seenFields := make(map[string]bool, len(m.Fields))
	var required []schema.Field
	for _, f := range m.Fields {
		if seenFields[f.Name] {
			return nil, errors.AssertionFailedf("model %s declares field %q more than once", m.Name, f.Name)
		}
		seenFields[f.Name] = true
		p.setters[f.Name] = namer.Setter(f)

		switch {
		case f.IsIdentity():
		case f.Nullable():
			p.Optional = append(p.Optional, f)
		default:
			required = append(required, f)
		}
	}

	for i, f := range required {
		step := Step{
			Field:     f,
			Interface: namer.StepInterface(m, f),
			Method:    p.setters[f.Name],
			Next:      p.Terminal,
		}
		if i < len(required)-1 {
			step.Next = namer.StepInterface(m, required[i+1])
		}
		p.Steps = append(p.Steps, step)
	}

	p.Entry = p.Terminal
	if len(p.Steps) > 0 {
		p.Entry = p.Steps[0].Interface
	}

	if err := p.check(); err != nil {
		return nil, errors.Wrapf(err, "plan builder for %s", m.Name)
	}
	return p, nil
}

// check verifies that every interface and every builder method is named
// uniquely, so the chain is a simple path ending at the terminal.
func (p *Plan) check() error {
	interfaces := map[string]bool{p.Terminal: true}
	for _, s := range p.Steps {
		if interfaces[s.Interface] {
			return errors.AssertionFailedf("interface name %q is used twice", s.Interface)
		}
		interfaces[s.Interface] = true
	}

	methods := map[string]bool{p.BuildMethod: true}
	for _, name := range p.methodNames() {
		if methods[name] {
			return errors.AssertionFailedf("builder method name %q is used twice", name)
		}
		methods[name] = true
	}

	for i, s := range p.Steps {
		want := p.Terminal
		if i < len(p.Steps)-1 {
			want = p.Steps[i+1].Interface
		}
		if s.Next != want {
			return errors.AssertionFailedf("step %s returns %s, want %s", s.Interface, s.Next, want)
		}
	}
	return nil
}

func (p *Plan) methodNames() []string {
	names := []string{p.IdentitySetter}
	for _, s := range p.Steps {
		names = append(names, s.Method)
	}
	for _, f := range p.Optional {
		names = append(names, p.Setter(f))
	}
	return names
}

// Setter returns the builder method that sets field f
func (p *Plan) Setter(f schema.Field) string {
	return p.setters[f.Name]
}

// Interfaces returns every contract the builder implements, chain first
func (p *Plan) Interfaces() []string {
	names := make([]string, 0, len(p.Steps)+1)
	for _, s := range p.Steps {
		names = append(names, s.Interface)
	}
	return append(names, p.Terminal)
}

// Fields returns all fields in declaration order, identity included
func (p *Plan) Fields() []schema.Field {
	return p.Model.Fields
}
