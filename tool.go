package gopoly

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getPoly := func(key string) (*Polynomial, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		p, err := FromJSON(val)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return p, nil
	}
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		n, err := toInt(v, key)
		if err != nil {
			return 0, fmt.Errorf("param %w", err)
		}
		return n, nil
	}
	respond := func(p *Polynomial) ToolResponse {
		return ToolResponse{Result: p.toJSON(), LaTeX: p.LaTeX(), String: p.String()}
	}
	binary := func(op func(a, b *Polynomial) *Polynomial) ToolResponse {
		a, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getPoly("q")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(op(a, b))
	}

	switch req.Tool {
	case "normalize":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p)

	case "add":
		return binary((*Polynomial).Add)

	case "subtract":
		return binary((*Polynomial).Sub)

	case "multiply":
		return binary((*Polynomial).Multiply)

	case "derivative":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p.Derivative())

	case "derivative_n":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		n, err := getInt("n")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if n < 0 {
			return ToolResponse{Error: "n must be non-negative"}
		}
		return respond(p.DerivativeN(n))

	case "degree":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		d := p.Degree()
		return ToolResponse{Result: d, String: fmt.Sprintf("%d", d)}

	case "coefficient":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := getInt("exp")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		c := p.Coefficient(e)
		return ToolResponse{Result: c, String: fmt.Sprintf("%d", c)}

	case "eval":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getInt("x")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v := p.Eval(x)
		return ToolResponse{Result: v, String: fmt.Sprintf("%d", v)}

	case "to_latex":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p.LaTeX(), LaTeX: p.LaTeX(), String: p.String()}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("normalize", "Canonicalize a polynomial given as {terms:[{coeff,exp}]}", []string{"p"}, map[string]string{"p": "object"}),
		ts("add", "Sum p + q", []string{"p", "q"}, map[string]string{"p": "object", "q": "object"}),
		ts("subtract", "Difference p - q", []string{"p", "q"}, map[string]string{"p": "object", "q": "object"}),
		ts("multiply", "Product p * q", []string{"p", "q"}, map[string]string{"p": "object", "q": "object"}),
		ts("derivative", "First derivative d/dx", []string{"p"}, map[string]string{"p": "object"}),
		ts("derivative_n", "nth derivative. Requires n (int >= 0)", []string{"p", "n"}, map[string]string{"p": "object", "n": "integer"}),
		ts("degree", "Highest exponent, -1 for the zero polynomial", []string{"p"}, map[string]string{"p": "object"}),
		ts("coefficient", "Coefficient of x^exp", []string{"p", "exp"}, map[string]string{"p": "object", "exp": "integer"}),
		ts("eval", "Evaluate p at integer x", []string{"p", "x"}, map[string]string{"p": "object", "x": "integer"}),
		ts("to_latex", "Convert to LaTeX", []string{"p"}, map[string]string{"p": "object"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
