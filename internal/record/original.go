package record

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

// Original is the concrete source record: two string pass-through values and
// an integer to clamp. It satisfies mapper.Original[string, string, int].
type Original struct {
	el1 string
	el2 string
	i   int
}

// originalWire is the encoded shape of an Original.
type originalWire struct {
	El1 string `json:"el1" yaml:"el1"`
	El2 string `json:"el2" yaml:"el2"`
	I   int    `json:"i" yaml:"i"`
}

// NewOriginal builds an Original.
func NewOriginal(el1, el2 string, i int) Original {
	return Original{el1: el1, el2: el2, i: i}
}

func (o Original) El1() string { return o.el1 }
func (o Original) El2() string { return o.el2 }
func (o Original) I() int      { return o.i }

// String returns a debug representation.
func (o Original) String() string {
	return fmt.Sprintf("Original{el1=%q, el2=%q, i=%d}", o.el1, o.el2, o.i)
}

func (o Original) wire() originalWire {
	return originalWire{El1: o.el1, El2: o.el2, I: o.i}
}

// MarshalJSON implements json.Marshaler.
func (o Original) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Original) UnmarshalJSON(data []byte) error {
	var w originalWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*o = NewOriginal(w.El1, w.El2, w.I)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Original) MarshalYAML() (any, error) {
	return o.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Original) UnmarshalYAML(value *yaml.Node) error {
	var w originalWire
	if err := value.Decode(&w); err != nil {
		return err
	}

	*o = NewOriginal(w.El1, w.El2, w.I)

	return nil
}

// Random builds n Originals with fixed pass-through values and a numeric
// value drawn uniformly from the int32 range. A negative n yields none.
func Random(n int, rnd *rand.Rand) []Original {
	out := make([]Original, max(n, 0))
	for i := range out {
		out[i] = NewOriginal("el1", "el2", int(int32(rnd.Uint32())))
	}

	return out
}
