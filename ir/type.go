package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	StringType
	IntType
	FloatType
	BoolType
	ArrayType
	ListType
	ObjectType
	// OverlayType is the '#' placeholder found in overlay patch arrays.
	OverlayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:    "Null",
		StringType:  "String",
		IntType:     "Int",
		FloatType:   "Float",
		BoolType:    "Bool",
		ArrayType:   "Array",
		ListType:    "List",
		ObjectType:  "Object",
		OverlayType: "Overlay",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":    NullType,
		"String":  StringType,
		"Int":     IntType,
		"Float":   FloatType,
		"Bool":    BoolType,
		"Array":   ArrayType,
		"List":    ListType,
		"Object":  ObjectType,
		"Overlay": OverlayType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		StringType,
		IntType,
		FloatType,
		BoolType,
		ArrayType,
		ListType,
		ObjectType,
		OverlayType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ListType, ObjectType:
		return false
	default:
		return true
	}
}

// IsSequence reports whether t is one of the two interchangeable sequence
// types.
func (t Type) IsSequence() bool {
	return t == ArrayType || t == ListType
}

// SameKind reports whether a and b are the same tag for the purposes of
// merging, where Array and List are one kind.
func SameKind(a, b Type) bool {
	if a.IsSequence() && b.IsSequence() {
		return true
	}
	return a == b
}
