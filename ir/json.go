package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// MarshalJSON encodes n as JSON keeping the order of object entries.  Key
// strategies and element labels are dropped.
func (n *Node) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return FromObject(o).MarshalJSON()
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	switch n.typ {
	case NullType:
		buf.WriteString("null")
	case OverlayType:
		return fmt.Errorf("overlay placeholder has no JSON form")
	case StringType:
		writeJSONString(buf, n.str)
	case IntType:
		buf.WriteString(strconv.FormatInt(n.i, 10))
	case FloatType:
		if math.IsInf(n.f, 0) || math.IsNaN(n.f) {
			return fmt.Errorf("unsupported float %v", n.f)
		}
		s := strconv.FormatFloat(n.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case BoolType:
		buf.WriteString(strconv.FormatBool(n.b))
	case ArrayType, ListType:
		buf.WriteByte('[')
		for i, v := range n.values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		i := 0
		for k, v := range n.obj.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			writeJSONString(buf, k.Name)
			buf.WriteByte(':')
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		panic("type")
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}

// FromJSON decodes a single JSON value keeping the order of object entries.
// Numbers without fraction or exponent become Ints.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return n, nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '[':
			vs := []*Node{}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				vs = append(vs, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return FromSlice(vs), nil
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(k, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return FromObject(obj), nil
		}
		return nil, fmt.Errorf("unexpected %v", x)
	case json.Number:
		if !strings.ContainsAny(string(x), ".eE") {
			i, err := x.Int64()
			if err != nil {
				return nil, fmt.Errorf("number %s: %w", x, err)
			}
			return FromInt(i), nil
		}
		return FromAny(x)
	default:
		return FromAny(x)
	}
}
