package ir

// Equal reports whether a and b hold the same value.  Arrays and Lists with
// equal elements are equal.  Objects are equal when they hold the same key
// names with equal values, in any order.  Key strategies and element labels
// are not compared.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !SameKind(a.typ, b.typ) {
		return false
	}
	switch a.typ {
	case NullType, OverlayType:
		return true
	case StringType:
		return a.str == b.str
	case IntType:
		return a.i == b.i
	case FloatType:
		return a.f == b.f
	case BoolType:
		return a.b == b.b
	case ArrayType, ListType:
		if len(a.values) != len(b.values) {
			return false
		}
		for i := range a.values {
			if !Equal(a.values[i], b.values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		return EqualObjects(a.obj, b.obj)
	default:
		panic("type")
	}
}

// EqualObjects is Equal for objects.
func EqualObjects(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, av := range a.All() {
		bv, ok := b.Get(k.Name)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}
