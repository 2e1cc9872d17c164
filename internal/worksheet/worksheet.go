// Package worksheet evaluates YAML worksheets: named input polynomials
// followed by a list of steps, each combining earlier values.
//
//	polynomials:
//	  a: [[3, 2], [1, 0]]
//	  b: [{coeff: 1, exp: 1}, {coeff: 2, exp: 0}]
//	steps:
//	  - {name: s, op: add, args: [a, b]}
//	  - {name: v, op: eval, args: [s], at: 2}
package worksheet

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	gopoly "github.com/njchilds90/gopoly"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrUnknownName = errors.New("unknown name")
	ErrDuplicate   = errors.New("duplicate name")
	ErrArity       = errors.New("wrong number of args")
)

// Worksheet is the decoded YAML document.
type Worksheet struct {
	Polynomials map[string]TermList `yaml:"polynomials"`
	Steps       []Step              `yaml:"steps"`
}

// Step is one operation. At is only used by eval.
type Step struct {
	Name string   `yaml:"name"`
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
	At   *int     `yaml:"at,omitempty"`
}

// TermList accepts terms either as [coeff, exp] pairs or as
// {coeff, exp} mappings.
type TermList []gopoly.Term

func (l *TermList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: terms must be a sequence", value.Line)
	}
	out := make(TermList, 0, len(value.Content))
	for _, n := range value.Content {
		var t gopoly.Term
		switch n.Kind {
		case yaml.SequenceNode:
			var pair []int
			if err := n.Decode(&pair); err != nil {
				return err
			}
			if len(pair) != 2 {
				return fmt.Errorf("line %d: term pair needs [coeff, exp], got %d values", n.Line, len(pair))
			}
			t = gopoly.Term{Coeff: pair[0], Exp: pair[1]}
		case yaml.MappingNode:
			if err := checkTermKeys(n); err != nil {
				return err
			}
			if err := n.Decode(&t); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: term must be a pair or a mapping", n.Line)
		}
		out = append(out, t)
	}
	*l = out
	return nil
}

// checkTermKeys requires exactly the keys coeff and exp. Node.Decode does
// not inherit the decoder's KnownFields setting.
func checkTermKeys(n *yaml.Node) error {
	seen := map[string]bool{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		switch k.Value {
		case "coeff", "exp":
			seen[k.Value] = true
		default:
			return fmt.Errorf("line %d: unknown term key %q", k.Line, k.Value)
		}
	}
	for _, key := range []string{"coeff", "exp"} {
		if !seen[key] {
			return fmt.Errorf("line %d: term missing %q", n.Line, key)
		}
	}
	return nil
}

// Result is the outcome of one step. Exactly one of Poly and Value is set.
type Result struct {
	Name  string             `json:"name"`
	Op    string             `json:"op"`
	Poly  *gopoly.Polynomial `json:"poly,omitempty"`
	Value *int               `json:"value,omitempty"`
}

func (r Result) String() string {
	if r.Value != nil {
		return fmt.Sprintf("%s = %d", r.Name, *r.Value)
	}
	return fmt.Sprintf("%s = %s", r.Name, r.Poly)
}

// Load decodes a worksheet from r. Unknown keys are rejected.
func Load(r io.Reader) (*Worksheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var ws Worksheet
	if err := dec.Decode(&ws); err != nil {
		if errors.Is(err, io.EOF) {
			return &ws, nil
		}
		return nil, fmt.Errorf("decode worksheet: %w", err)
	}
	return &ws, nil
}

// Evaluate runs the steps in order. Each step sees the input polynomials
// and the polynomial results of earlier steps.
func (ws *Worksheet) Evaluate() ([]Result, error) {
	env := make(map[string]*gopoly.Polynomial, len(ws.Polynomials))
	names := make([]string, 0, len(ws.Polynomials))
	for name := range ws.Polynomials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p, err := gopoly.FromTerms(ws.Polynomials[name])
		if err != nil {
			return nil, fmt.Errorf("polynomial %s: %w", name, err)
		}
		env[name] = p
	}

	seen := make(map[string]bool, len(names)+len(ws.Steps))
	for _, name := range names {
		seen[name] = true
	}
	results := make([]Result, 0, len(ws.Steps))
	for i, step := range ws.Steps {
		if step.Name == "" {
			return nil, fmt.Errorf("step %d: missing name", i)
		}
		if seen[step.Name] {
			return nil, fmt.Errorf("step %s: %w", step.Name, ErrDuplicate)
		}
		seen[step.Name] = true
		res, err := evalStep(env, step)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Name, err)
		}
		if res.Poly != nil {
			env[step.Name] = res.Poly
		}
		results = append(results, res)
	}
	return results, nil
}

func evalStep(env map[string]*gopoly.Polynomial, step Step) (Result, error) {
	args := make([]*gopoly.Polynomial, len(step.Args))
	for i, name := range step.Args {
		p, ok := env[name]
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownName, name)
		}
		args[i] = p
	}
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s takes %d, got %d", ErrArity, step.Op, n, len(args))
		}
		return nil
	}
	poly := func(p *gopoly.Polynomial) (Result, error) {
		return Result{Name: step.Name, Op: step.Op, Poly: p}, nil
	}
	value := func(v int) (Result, error) {
		return Result{Name: step.Name, Op: step.Op, Value: &v}, nil
	}

	switch step.Op {
	case "add", "subtract", "multiply":
		if err := want(2); err != nil {
			return Result{}, err
		}
		switch step.Op {
		case "add":
			return poly(args[0].Add(args[1]))
		case "subtract":
			return poly(args[0].Sub(args[1]))
		}
		return poly(args[0].Multiply(args[1]))
	case "derivative":
		if err := want(1); err != nil {
			return Result{}, err
		}
		return poly(args[0].Derivative())
	case "negate":
		if err := want(1); err != nil {
			return Result{}, err
		}
		return poly(args[0].Neg())
	case "degree":
		if err := want(1); err != nil {
			return Result{}, err
		}
		return value(args[0].Degree())
	case "eval":
		if err := want(1); err != nil {
			return Result{}, err
		}
		if step.At == nil {
			return Result{}, fmt.Errorf("eval needs 'at'")
		}
		return value(args[0].Eval(*step.At))
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
}
