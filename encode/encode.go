package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/layer-format/go-layer/ir"
)

// Encode writes n to w.  The default is JSON indented by 2.
func Encode(n *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &encState{format: JSONFormat, indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.color == nil {
		es.color = func(_ ColorAttr, s string) string { return s }
	}
	switch es.format {
	case JSONFormat:
		buf := &bytes.Buffer{}
		if err := es.writeJSON(buf, n, 0); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	case YAMLFormat:
		d, err := yaml.Marshal(toYAML(n))
		if err != nil {
			return fmt.Errorf("could not encode yaml: %w", err)
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, es.format)
	}
}

func EncodeObject(o *ir.Object, w io.Writer, opts ...EncodeOption) error {
	return Encode(ir.FromObject(o), w, opts...)
}

// MustString returns n encoded with opts, panicking on error.
func MustString(n *ir.Node, opts ...EncodeOption) string {
	buf := &bytes.Buffer{}
	if err := Encode(n, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func (es *encState) newline(buf *bytes.Buffer, depth int) {
	if es.indent <= 0 {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *encState) writeJSON(buf *bytes.Buffer, n *ir.Node, depth int) error {
	switch n.Type() {
	case ir.ArrayType, ir.ListType:
		elts := n.Elems()
		if len(elts) == 0 {
			buf.WriteString(es.color(SepColor, "[]"))
			return nil
		}
		buf.WriteString(es.color(SepColor, "["))
		for i, e := range elts {
			if i > 0 {
				buf.WriteString(es.color(SepColor, ","))
			}
			es.newline(buf, depth+1)
			if err := es.writeJSON(buf, e, depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteString(es.color(SepColor, "]"))
		return nil
	case ir.ObjectType:
		o, _ := n.AsObject()
		if o.Len() == 0 {
			buf.WriteString(es.color(SepColor, "{}"))
			return nil
		}
		buf.WriteString(es.color(SepColor, "{"))
		i := 0
		for k, v := range o.All() {
			if i > 0 {
				buf.WriteString(es.color(SepColor, ","))
			}
			i++
			es.newline(buf, depth+1)
			kd, err := ir.FromString(k.Name).MarshalJSON()
			if err != nil {
				return err
			}
			buf.WriteString(es.color(FieldColor, string(kd)))
			buf.WriteString(es.color(SepColor, ":"))
			if es.indent > 0 {
				buf.WriteByte(' ')
			}
			if err := es.writeJSON(buf, v, depth+1); err != nil {
				return err
			}
		}
		es.newline(buf, depth)
		buf.WriteString(es.color(SepColor, "}"))
		return nil
	}
	d, err := n.MarshalJSON()
	if err != nil {
		return err
	}
	buf.WriteString(es.color(leafAttr(n.Type()), string(d)))
	return nil
}

func leafAttr(t ir.Type) ColorAttr {
	switch t {
	case ir.StringType:
		return StringColor
	case ir.IntType, ir.FloatType:
		return NumberColor
	case ir.BoolType:
		return BoolColor
	}
	return NullColor
}

func toYAML(n *ir.Node) any {
	switch n.Type() {
	case ir.ObjectType:
		o, _ := n.AsObject()
		ms := make(yaml.MapSlice, 0, o.Len())
		for k, v := range o.All() {
			ms = append(ms, yaml.MapItem{Key: k.Name, Value: toYAML(v)})
		}
		return ms
	case ir.ArrayType, ir.ListType:
		elts := n.Elems()
		res := make([]any, len(elts))
		for i, e := range elts {
			res[i] = toYAML(e)
		}
		return res
	}
	return ir.ToAny(n)
}
