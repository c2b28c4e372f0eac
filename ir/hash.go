package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of n consistent with [Equal] within a process.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(seed)

	typ := n.typ
	if typ == ListType {
		typ = ArrayType
	}
	h.WriteByte(byte(typ))

	var b [8]byte
	switch n.typ {
	case NullType, OverlayType:
	case BoolType:
		if n.b {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntType:
		binary.LittleEndian.PutUint64(b[:], uint64(n.i))
		h.Write(b[:])
	case FloatType:
		f := n.f
		if f == 0 {
			// -0 == 0
			f = 0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType:
		h.WriteString(n.str)
	case ArrayType, ListType:
		for _, v := range n.values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		binary.LittleEndian.PutUint64(b[:], n.obj.Hash())
		h.Write(b[:])
	}
	return h.Sum64()
}

// Hash returns a hash of o which does not depend on the order of its
// entries.
func (o *Object) Hash() uint64 {
	var sum uint64
	for k, v := range o.All() {
		var h maphash.Hash
		h.SetSeed(seed)
		h.WriteString(k.Name)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v.Hash())
		h.Write(b[:])
		sum += h.Sum64()
	}
	return sum
}
