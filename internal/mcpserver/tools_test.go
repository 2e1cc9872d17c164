package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	gopoly "github.com/njchilds90/gopoly"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := NewServer(testLogger()).Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("connect server: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decodeStructuredContent[T any](t *testing.T, v any) T {
	t.Helper()
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return out
}

func terms(pairs ...[2]int) []map[string]any {
	out := make([]map[string]any, len(pairs))
	for i, p := range pairs {
		out[i] = map[string]any{"coeff": p[0], "exp": p[1]}
	}
	return out
}

func callPoly(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) PolyResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if res == nil || res.IsError {
		t.Fatalf("%s failed: %+v", name, res)
	}
	return decodeStructuredContent[PolyResult](t, res.StructuredContent)
}

func TestListTools(t *testing.T) {
	session := connect(t)
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	got := map[string]bool{}
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, want := range []string{"poly_normalize", "poly_add", "poly_subtract", "poly_multiply", "poly_derivative", "poly_eval"} {
		if !got[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestPolyTools(t *testing.T) {
	session := connect(t)
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"normalize", "poly_normalize", map[string]any{"p": terms([2]int{1, 1}, [2]int{1, 1}, [2]int{0, 3})}, "2x"},
		{"add", "poly_add", map[string]any{
			"p": terms([2]int{3, 2}, [2]int{1, 0}),
			"q": terms([2]int{1, 1}, [2]int{2, 0}),
		}, "3x^2 + x + 3"},
		{"subtract", "poly_subtract", map[string]any{
			"p": terms([2]int{5, 3}),
			"q": terms([2]int{5, 3}),
		}, "0"},
		{"multiply", "poly_multiply", map[string]any{
			"p": terms([2]int{1, 1}, [2]int{1, 0}),
			"q": terms([2]int{1, 1}, [2]int{-1, 0}),
		}, "x^2 - 1"},
		{"derivative", "poly_derivative", map[string]any{"p": terms([2]int{1, 3}, [2]int{2, 1})}, "3x^2 + 2"},
		{"second derivative", "poly_derivative", map[string]any{"p": terms([2]int{1, 3}, [2]int{2, 1}), "n": 2}, "6x"},
		{"zeroth derivative", "poly_derivative", map[string]any{"p": terms([2]int{1, 3}, [2]int{2, 1}), "n": 0}, "x^3 + 2x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := callPoly(t, session, tt.tool, tt.args)
			if got.String != tt.want {
				t.Errorf("want %q, got %q", tt.want, got.String)
			}
		})
	}
}

func TestPolyMultiplyStructured(t *testing.T) {
	session := connect(t)
	got := callPoly(t, session, "poly_multiply", map[string]any{
		"p": terms([2]int{1, 2}, [2]int{1, 1}, [2]int{1, 0}),
		"q": terms([2]int{1, 1}, [2]int{-1, 0}),
	})
	want := PolyResult{
		Terms:  []gopoly.Term{{Coeff: 1, Exp: 3}, {Coeff: -1, Exp: 0}},
		String: "x^3 - 1",
		LaTeX:  "x^{3} - 1",
		Degree: 3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestPolyEval(t *testing.T) {
	session := connect(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "poly_eval",
		Arguments: map[string]any{"p": terms([2]int{-2, 3}, [2]int{5, 0}), "x": 2},
	})
	if err != nil {
		t.Fatalf("call poly_eval: %v", err)
	}
	if res.IsError {
		t.Fatalf("poly_eval failed: %+v", res)
	}
	out := decodeStructuredContent[EvalResult](t, res.StructuredContent)
	if out.Value != -11 {
		t.Errorf("want -11, got %d", out.Value)
	}
}

func TestNegativeExponentIsToolError(t *testing.T) {
	session := connect(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "poly_normalize",
		Arguments: map[string]any{"p": terms([2]int{1, -1})},
	})
	if err == nil && !res.IsError {
		t.Fatalf("expected negative exponent to fail, got %+v", res.StructuredContent)
	}
}
