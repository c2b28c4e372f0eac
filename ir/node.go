package ir

type Node struct {
	typ    Type
	str    string
	i      int64
	f      float64
	b      bool
	values []*Node
	obj    *Object

	// label is set for array elements written as 'key: value'.
	label *Key
}

func Null() *Node {
	return &Node{typ: NullType}
}

func FromString(s string) *Node {
	return &Node{typ: StringType, str: s}
}

func FromInt(i int64) *Node {
	return &Node{typ: IntType, i: i}
}

func FromFloat(f float64) *Node {
	return &Node{typ: FloatType, f: f}
}

func FromBool(b bool) *Node {
	return &Node{typ: BoolType, b: b}
}

// FromSlice creates an Array node holding vs.  vs is not copied.
func FromSlice(vs []*Node) *Node {
	return &Node{typ: ArrayType, values: vs}
}

// FromList creates a List node holding vs.  vs is not copied.
func FromList(vs []*Node) *Node {
	return &Node{typ: ListType, values: vs}
}

func FromObject(o *Object) *Node {
	if o == nil {
		o = NewObject()
	}
	return &Node{typ: ObjectType, obj: o}
}

// Overlay returns a new '#' placeholder.
func Overlay() *Node {
	return &Node{typ: OverlayType}
}

func (n *Node) Type() Type {
	return n.typ
}

// WithLabel returns a shallow copy of n labeled with k.
func (n *Node) WithLabel(k Key) *Node {
	c := *n
	c.label = &k
	return &c
}

// WithoutLabel returns n, or a shallow copy of n without its label.
func (n *Node) WithoutLabel() *Node {
	if n.label == nil {
		return n
	}
	c := *n
	c.label = nil
	return &c
}

// Label returns the key an array element was written with, if any.
func (n *Node) Label() (Key, bool) {
	if n.label == nil {
		return Key{}, false
	}
	return *n.label, true
}

func (n *Node) IsNull() bool {
	return n.typ == NullType
}

func (n *Node) IsOverlayPlaceholder() bool {
	return n.typ == OverlayType
}

// Len returns the number of elements of a sequence or the number of
// entries of an object, and 0 for leaves.
func (n *Node) Len() int {
	switch n.typ {
	case ArrayType, ListType:
		return len(n.values)
	case ObjectType:
		return n.obj.Len()
	}
	return 0
}

// Truth reports whether n is non-empty and non-zero.
func Truth(n *Node) bool {
	switch n.typ {
	case ObjectType:
		return n.obj.Len() != 0
	case ArrayType, ListType:
		return len(n.values) != 0
	case StringType:
		return n.str != ""
	case IntType:
		return n.i != 0
	case FloatType:
		return n.f != 0.0
	case BoolType:
		return n.b
	case NullType, OverlayType:
		return false
	default:
		panic("type")
	}
}
