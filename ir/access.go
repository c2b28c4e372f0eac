package ir

func (n *Node) AsString() (string, error) {
	if n.typ != StringType {
		return "", mismatch(StringType, n)
	}
	return n.str, nil
}

func (n *Node) AsInt() (int64, error) {
	if n.typ != IntType {
		return 0, mismatch(IntType, n)
	}
	return n.i, nil
}

// AsFloat returns the value of a Float node, or the value of an Int node
// converted to float64.
func (n *Node) AsFloat() (float64, error) {
	switch n.typ {
	case FloatType:
		return n.f, nil
	case IntType:
		return float64(n.i), nil
	}
	return 0, mismatch(FloatType, n)
}

func (n *Node) AsBool() (bool, error) {
	if n.typ != BoolType {
		return false, mismatch(BoolType, n)
	}
	return n.b, nil
}

// AsArray returns a copy of the elements of an Array or a List.
func (n *Node) AsArray() ([]*Node, error) {
	if !n.typ.IsSequence() {
		return nil, mismatch(ArrayType, n)
	}
	return n.elems(), nil
}

// AsList is the same as AsArray, reporting List in errors.
func (n *Node) AsList() ([]*Node, error) {
	if !n.typ.IsSequence() {
		return nil, mismatch(ListType, n)
	}
	return n.elems(), nil
}

func (n *Node) AsObject() (*Object, error) {
	if n.typ != ObjectType {
		return nil, mismatch(ObjectType, n)
	}
	return n.obj, nil
}

func (n *Node) elems() []*Node {
	res := make([]*Node, len(n.values))
	copy(res, n.values)
	return res
}

// Elems returns the elements of a sequence without copying.  Callers must
// not modify the result.
func (n *Node) Elems() []*Node {
	if !n.typ.IsSequence() {
		return nil
	}
	return n.values
}
