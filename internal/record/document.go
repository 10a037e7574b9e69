package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"gopkg.in/yaml.v3"

	"record-mapper/internal/match"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrNotNumeric   = errors.New("field is not numeric")
	ErrNotArray     = errors.New("input is not an array of objects")
)

// Fields names the document keys read by the three accessors.
type Fields struct {
	El1 string `yaml:"el1"`
	El2 string `yaml:"el2"`
	I   string `yaml:"i"`
}

// DefaultFields are the keys an encoded Original uses.
var DefaultFields = Fields{El1: "el1", El2: "el2", I: "i"}

// Keys returns the three keys in accessor order.
func (f Fields) Keys() []string {
	return []string{f.El1, f.El2, f.I}
}

// Document is a dynamic source record decoded from JSON or YAML.
type Document map[string]any

// Field returns the raw value under name. A present key holding null is not
// an error.
func (d Document) Field(name string) (any, error) {
	v, ok := d[name]
	if !ok {
		return nil, fmt.Errorf("%w %q%s", ErrMissingField, name, match.Hint(name, d.keys()))
	}

	return v, nil
}

func (d Document) keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Number returns the value under name as a float64.
func (d Document) Number(name string) (float64, error) {
	v, err := d.Field(name)
	if err != nil {
		return 0, err
	}

	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: %q holds %T", ErrNotNumeric, name, v)
	}

	return f, nil
}

// Bind resolves the three accessors of d. It is the only place a dynamic
// record can fail.
func (d Document) Bind(f Fields) (Bound, error) {
	el1, err := d.Field(f.El1)
	if err != nil {
		return Bound{}, err
	}

	el2, err := d.Field(f.El2)
	if err != nil {
		return Bound{}, err
	}

	i, err := d.Number(f.I)
	if err != nil {
		return Bound{}, err
	}

	return Bound{el1: el1, el2: el2, i: i}, nil
}

// BindAll binds every document, stopping at the first failure.
func BindAll(docs []Document, f Fields) ([]Bound, error) {
	out := make([]Bound, len(docs))

	for i, d := range docs {
		b, err := d.Bind(f)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}

		out[i] = b
	}

	return out, nil
}

// Bound is a Document whose accessors already succeeded. It satisfies
// mapper.Original[any, any, float64].
type Bound struct {
	el1 any
	el2 any
	i   float64
}

func (b Bound) El1() any   { return b.el1 }
func (b Bound) El2() any   { return b.el2 }
func (b Bound) I() float64 { return b.i }

// DecodeJSON parses a JSON array of objects. Numbers decode as json.Number.
func DecodeJSON(data []byte) ([]Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrNotArray
	}

	// Numbers stay json.Number so pass-through values re-encode verbatim.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var docs []Document
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON documents: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to parse JSON documents: unexpected data after the array")
	}

	for i, d := range docs {
		if d == nil {
			return nil, fmt.Errorf("%w: element %d is null", ErrNotArray, i)
		}
	}

	return docs, nil
}

// DecodeYAML parses a YAML sequence of mappings.
func DecodeYAML(data []byte) ([]Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML documents: %w", err)
	}

	if len(root.Content) == 0 {
		return []Document{}, nil
	}

	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, ErrNotArray
	}

	docs := make([]Document, 0, len(seq.Content))

	for i, n := range seq.Content {
		if n.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: element %d is not a mapping", ErrNotArray, i)
		}

		var d Document
		if err := n.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode YAML document %d: %w", i, err)
		}

		if d == nil {
			d = Document{}
		}

		docs = append(docs, d)
	}

	return docs, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), false
		}

		return f, true
	default:
		return 0, false
	}
}
