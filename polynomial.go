// Package gopoly provides a deterministic sparse polynomial kernel for Go.
//
// Design goals:
//   - Single variable x, integer coefficients, non-negative exponents
//   - Canonical form: no zero coefficients, one term per exponent
//   - Stable, descending-order output
//   - AI/LLM friendly: JSON, LaTeX, and MCP-ready APIs
package gopoly

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Errors
// ============================================================

var (
	ErrZeroCoefficient  = errors.New("gopoly: zero coefficient")
	ErrNegativeExponent = errors.New("gopoly: negative exponent")
)

// ============================================================
// Term
// ============================================================

// Term is a single coeff*x^exp contribution.
type Term struct {
	Coeff int `json:"coeff" yaml:"coeff" jsonschema:"integer coefficient"`
	Exp   int `json:"exp" yaml:"exp" jsonschema:"non-negative integer exponent"`
}

// Validate reports whether t can be stored as-is in a polynomial.
func Validate(t Term) error {
	if t.Exp < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeExponent, t.Exp)
	}
	if t.Coeff == 0 {
		return ErrZeroCoefficient
	}
	return nil
}

// ============================================================
// Polynomial
// ============================================================

// Polynomial is a sparse single-variable polynomial. The zero value is the
// zero polynomial and is ready to use. A nil *Polynomial reads as zero.
//
// Operations other than InsertTerm return fresh values. Copying the struct
// shares the underlying storage; use Clone for an independent copy.
type Polynomial struct {
	terms map[int]int
}

// New builds a polynomial by inserting each term in order.
func New(terms ...Term) *Polynomial {
	p := &Polynomial{}
	for _, t := range terms {
		p.InsertTerm(t.Coeff, t.Exp)
	}
	return p
}

// FromTerms is like New but rejects negative exponents instead of dropping
// them. Zero coefficients are accepted and contribute nothing.
func FromTerms(terms []Term) (*Polynomial, error) {
	for i, t := range terms {
		if t.Exp < 0 {
			return nil, fmt.Errorf("term %d: %w: %d", i, ErrNegativeExponent, t.Exp)
		}
	}
	return New(terms...), nil
}

// InsertTerm adds coeff*x^exp. Zero coefficients and negative exponents are
// ignored. A term that cancels an existing one removes it.
func (p *Polynomial) InsertTerm(coeff, exp int) {
	if coeff == 0 || exp < 0 {
		return
	}
	if p.terms == nil {
		p.terms = map[int]int{}
	}
	p.accumulate(exp, coeff)
}

func (p *Polynomial) accumulate(exp, coeff int) {
	if c := p.terms[exp] + coeff; c != 0 {
		p.terms[exp] = c
	} else {
		delete(p.terms, exp)
	}
}

func (p *Polynomial) view() map[int]int {
	if p == nil {
		return nil
	}
	return p.terms
}

// exponents returns the stored exponents, highest first.
func (p *Polynomial) exponents() []int {
	m := p.view()
	exps := make([]int, 0, len(m))
	for e := range m {
		exps = append(exps, e)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(exps)))
	return exps
}

func newSized(n int) *Polynomial { return &Polynomial{terms: make(map[int]int, n)} }

// ============================================================
// Queries
// ============================================================

func (p *Polynomial) Len() int     { return len(p.view()) }
func (p *Polynomial) IsZero() bool { return len(p.view()) == 0 }

// Coefficient returns the coefficient of x^exp, 0 if absent.
func (p *Polynomial) Coefficient(exp int) int { return p.view()[exp] }

// Degree returns the highest exponent, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	deg := -1
	for e := range p.view() {
		if e > deg {
			deg = e
		}
	}
	return deg
}

// Terms returns the canonical term list, highest exponent first.
func (p *Polynomial) Terms() []Term {
	exps := p.exponents()
	out := make([]Term, 0, len(exps))
	for _, e := range exps {
		out = append(out, Term{Coeff: p.terms[e], Exp: e})
	}
	return out
}

func (p *Polynomial) Equal(other *Polynomial) bool {
	a, b := p.view(), other.view()
	if len(a) != len(b) {
		return false
	}
	for e, c := range a {
		if b[e] != c {
			return false
		}
	}
	return true
}

func (p *Polynomial) Clone() *Polynomial {
	m := p.view()
	r := newSized(len(m))
	for e, c := range m {
		r.terms[e] = c
	}
	return r
}

// Eval returns p(x) using machine integers; overflow wraps.
func (p *Polynomial) Eval(x int) int {
	sum := 0
	for e, c := range p.view() {
		sum += c * ipow(x, e)
	}
	return sum
}

func ipow(base, exp int) int {
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// ============================================================
// Algebra
// ============================================================

// Add returns p + other.
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	r := p.Clone()
	for e, c := range other.view() {
		r.accumulate(e, c)
	}
	return r
}

// Sub returns p - other.
func (p *Polynomial) Sub(other *Polynomial) *Polynomial {
	r := p.Clone()
	for e, c := range other.view() {
		r.accumulate(e, -c)
	}
	return r
}

func (p *Polynomial) Neg() *Polynomial {
	m := p.view()
	r := newSized(len(m))
	for e, c := range m {
		r.terms[e] = -c
	}
	return r
}

// Multiply returns the formal product of p and other. Products whose
// exponent would exceed math.MaxInt are dropped, as InsertTerm drops
// exponents it cannot store.
func (p *Polynomial) Multiply(other *Polynomial) *Polynomial {
	a, b := p.view(), other.view()
	r := newSized(len(a) * len(b))
	for e1, c1 := range a {
		for e2, c2 := range b {
			if e1 > math.MaxInt-e2 {
				continue
			}
			r.accumulate(e1+e2, c1*c2)
		}
	}
	return r
}

// Derivative applies the power rule termwise.
func (p *Polynomial) Derivative() *Polynomial {
	m := p.view()
	r := newSized(len(m))
	for e, c := range m {
		if e > 0 {
			r.accumulate(e-1, c*e)
		}
	}
	return r
}

// DerivativeN returns the n-th derivative. n <= 0 returns a copy of p.
func (p *Polynomial) DerivativeN(n int) *Polynomial {
	r := p.Clone()
	for i := 0; i < n && !r.IsZero(); i++ {
		r = r.Derivative()
	}
	return r
}

// ============================================================
// Rendering
// ============================================================

func (p *Polynomial) String() string {
	return p.render(func(b *strings.Builder, exp int) {
		b.WriteString("x^")
		b.WriteString(strconv.Itoa(exp))
	})
}

func (p *Polynomial) LaTeX() string {
	return p.render(func(b *strings.Builder, exp int) {
		b.WriteString("x^{")
		b.WriteString(strconv.Itoa(exp))
		b.WriteString("}")
	})
}

// render lays out terms highest exponent first. power writes x^exp for
// exponents of 2 and above.
func (p *Polynomial) render(power func(b *strings.Builder, exp int)) string {
	exps := p.exponents()
	if len(exps) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, e := range exps {
		c := p.terms[e]
		switch {
		case i > 0 && c > 0:
			b.WriteString(" + ")
		case i > 0:
			b.WriteString(" - ")
		case c < 0:
			b.WriteString("-")
		}
		mag := c
		if mag < 0 {
			mag = -mag
		}
		if mag != 1 || e == 0 {
			b.WriteString(strconv.Itoa(mag))
		}
		switch {
		case e == 1:
			b.WriteString("x")
		case e >= 2:
			power(&b, e)
		}
	}
	return b.String()
}
