package gopoly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// JSON Serialization
// ============================================================

type polyJSON struct {
	Terms []Term `json:"terms"`
}

// MarshalJSON encodes p as {"terms":[{"coeff":c,"exp":e},...]} in
// canonical order.
func (p *Polynomial) MarshalJSON() ([]byte, error) {
	return json.Marshal(polyJSON{Terms: p.Terms()})
}

// UnmarshalJSON replaces p with the decoded polynomial. Unknown fields and
// negative exponents are rejected.
func (p *Polynomial) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw polyJSON
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode polynomial: %w", err)
	}
	q, err := FromTerms(raw.Terms)
	if err != nil {
		return err
	}
	p.terms = q.terms
	return nil
}

func (p *Polynomial) toJSON() map[string]interface{} {
	terms := p.Terms()
	out := make([]interface{}, len(terms))
	for i, t := range terms {
		out[i] = map[string]interface{}{"coeff": t.Coeff, "exp": t.Exp}
	}
	return map[string]interface{}{"type": "poly", "terms": out}
}

func ToJSON(p *Polynomial) (string, error) {
	b, err := json.Marshal(p.toJSON())
	return string(b), err
}

// FromJSON builds a polynomial from a loosely typed object as produced by
// decoding JSON into interface{} values. The "type" field is optional but
// must be "poly" when present.
func FromJSON(data map[string]interface{}) (*Polynomial, error) {
	if data == nil {
		return nil, fmt.Errorf("polynomial must be an object")
	}
	if typAny, ok := data["type"]; ok {
		if typ, ok := typAny.(string); !ok || typ != "poly" {
			return nil, fmt.Errorf("field 'type' must be \"poly\"")
		}
	}
	rawAny, ok := data["terms"]
	if !ok {
		return nil, fmt.Errorf("missing 'terms' field")
	}
	raw, ok := rawAny.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field 'terms' must be an array")
	}

	terms := make([]Term, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("terms[%d] must be an object", i)
		}
		c, err := intField(m, "coeff")
		if err != nil {
			return nil, fmt.Errorf("terms[%d]: %w", i, err)
		}
		e, err := intField(m, "exp")
		if err != nil {
			return nil, fmt.Errorf("terms[%d]: %w", i, err)
		}
		terms[i] = Term{Coeff: c, Exp: e}
	}
	return FromTerms(terms)
}

func intField(m map[string]interface{}, field string) (int, error) {
	v, ok := m[field]
	if !ok {
		return 0, fmt.Errorf("missing %q", field)
	}
	return toInt(v, field)
}

func toInt(v interface{}, field string) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%q must be an integer", field)
		}
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%q is out of range", field)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q must be an integer", field)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("%q must be a number", field)
}
