package ir

import (
	"strconv"
	"strings"
)

// String returns a compact single line rendering of n for diagnostics and
// test failures.  Keys are shown with their sigils and labeled elements
// with their labels.
func (n *Node) String() string {
	b := &strings.Builder{}
	n.writeTo(b)
	return b.String()
}

func (o *Object) String() string {
	b := &strings.Builder{}
	writeObject(b, o)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	if n.label != nil {
		b.WriteString(n.label.String())
		b.WriteString(": ")
	}
	switch n.typ {
	case NullType:
		b.WriteString("null")
	case OverlayType:
		b.WriteByte('#')
	case StringType:
		b.WriteString(strconv.Quote(n.str))
	case IntType:
		b.WriteString(strconv.FormatInt(n.i, 10))
	case FloatType:
		b.WriteString(strconv.FormatFloat(n.f, 'g', -1, 64))
	case BoolType:
		b.WriteString(strconv.FormatBool(n.b))
	case ArrayType, ListType:
		b.WriteByte('[')
		for i, v := range n.values {
			if i > 0 {
				b.WriteString(", ")
			}
			v.writeTo(b)
		}
		b.WriteByte(']')
	case ObjectType:
		writeObject(b, n.obj)
	default:
		b.WriteString("<unknown type>")
	}
}

func writeObject(b *strings.Builder, o *Object) {
	b.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		i++
		b.WriteString(k.String())
		b.WriteString(": ")
		v.writeTo(b)
	}
	b.WriteByte('}')
}
