package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gopoly "github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/log"
)

// PolyInput is the MCP tool input for single-polynomial tools.
type PolyInput struct {
	P []gopoly.Term `json:"p" jsonschema:"terms of the polynomial"`
}

// BinaryInput is the MCP tool input for tools combining two polynomials.
type BinaryInput struct {
	P []gopoly.Term `json:"p" jsonschema:"terms of the left operand"`
	Q []gopoly.Term `json:"q" jsonschema:"terms of the right operand"`
}

// DerivativeInput is the MCP tool input for poly_derivative.
type DerivativeInput struct {
	P []gopoly.Term `json:"p" jsonschema:"terms of the polynomial"`
	N *int          `json:"n,omitempty" jsonschema:"derivative order, defaults to 1"`
}

// EvalInput is the MCP tool input for poly_eval.
type EvalInput struct {
	P []gopoly.Term `json:"p" jsonschema:"terms of the polynomial"`
	X int           `json:"x" jsonschema:"integer point to evaluate at"`
}

// PolyResult is the MCP tool output for tools producing a polynomial.
type PolyResult struct {
	Terms  []gopoly.Term `json:"terms" jsonschema:"canonical terms, highest exponent first"`
	String string        `json:"string" jsonschema:"display form"`
	LaTeX  string        `json:"latex" jsonschema:"LaTeX form"`
	Degree int           `json:"degree" jsonschema:"highest exponent, -1 for zero"`
}

// EvalResult is the MCP tool output for poly_eval.
type EvalResult struct {
	Value int `json:"value" jsonschema:"p(x)"`
}

func newPolyResult(p *gopoly.Polynomial) PolyResult {
	return PolyResult{Terms: p.Terms(), String: p.String(), LaTeX: p.LaTeX(), Degree: p.Degree()}
}

func registerTools(server *mcp.Server, logger *log.Logger) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "poly_normalize",
		Description: "Canonicalize a polynomial: combine like terms, drop zero terms, order by exponent",
	}, normalizeHandler(logger))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "poly_add",
		Description: "Sum of two polynomials p + q",
	}, binaryHandler("poly_add", logger, (*gopoly.Polynomial).Add))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "poly_subtract",
		Description: "Difference of two polynomials p - q",
	}, binaryHandler("poly_subtract", logger, (*gopoly.Polynomial).Sub))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "poly_multiply",
		Description: "Product of two polynomials p * q",
	}, binaryHandler("poly_multiply", logger, (*gopoly.Polynomial).Multiply))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "poly_derivative",
		Description: "n-th derivative of p (first derivative when n is omitted)",
	}, derivativeHandler(logger))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "poly_eval",
		Description: "Evaluate p at an integer x",
	}, evalHandler(logger))
}

func build(name string, terms []gopoly.Term) (*gopoly.Polynomial, error) {
	p, err := gopoly.FromTerms(terms)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

func normalizeHandler(logger *log.Logger) mcp.ToolHandlerFor[PolyInput, PolyResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PolyInput) (*mcp.CallToolResult, PolyResult, error) {
		p, err := build("p", input.P)
		if err != nil {
			logger.Debug("tool rejected input", "tool", "poly_normalize", "err", err)
			return nil, PolyResult{}, err
		}
		return nil, newPolyResult(p), nil
	}
}

func binaryHandler(tool string, logger *log.Logger, op func(a, b *gopoly.Polynomial) *gopoly.Polynomial) mcp.ToolHandlerFor[BinaryInput, PolyResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input BinaryInput) (*mcp.CallToolResult, PolyResult, error) {
		p, err := build("p", input.P)
		if err != nil {
			logger.Debug("tool rejected input", "tool", tool, "err", err)
			return nil, PolyResult{}, err
		}
		q, err := build("q", input.Q)
		if err != nil {
			logger.Debug("tool rejected input", "tool", tool, "err", err)
			return nil, PolyResult{}, err
		}
		return nil, newPolyResult(op(p, q)), nil
	}
}

func derivativeHandler(logger *log.Logger) mcp.ToolHandlerFor[DerivativeInput, PolyResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DerivativeInput) (*mcp.CallToolResult, PolyResult, error) {
		n := 1
		if input.N != nil {
			n = *input.N
		}
		if n < 0 {
			return nil, PolyResult{}, fmt.Errorf("n must be non-negative, got %d", n)
		}
		p, err := build("p", input.P)
		if err != nil {
			logger.Debug("tool rejected input", "tool", "poly_derivative", "err", err)
			return nil, PolyResult{}, err
		}
		return nil, newPolyResult(p.DerivativeN(n)), nil
	}
}

func evalHandler(logger *log.Logger) mcp.ToolHandlerFor[EvalInput, EvalResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EvalInput) (*mcp.CallToolResult, EvalResult, error) {
		p, err := build("p", input.P)
		if err != nil {
			logger.Debug("tool rejected input", "tool", "poly_eval", "err", err)
			return nil, EvalResult{}, err
		}
		return nil, EvalResult{Value: p.Eval(input.X)}, nil
	}
}
