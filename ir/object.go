package ir

import "iter"

// Object is an insertion ordered map from key names to nodes.
type Object struct {
	keys   []Key
	values []*Node
	index  map[string]int
}

func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Put associates v with k.  If an entry named k.Name exists, its key and
// value are replaced in place and its position is kept.
func (o *Object) Put(k Key, v *Node) {
	if o.index == nil {
		o.index = map[string]int{}
	}
	if i, ok := o.index[k.Name]; ok {
		o.keys[i] = k
		o.values[i] = v
		return
	}
	o.index[k.Name] = len(o.keys)
	o.keys = append(o.keys, k)
	o.values = append(o.values, v)
}

// Set is Put with a key without strategy.
func (o *Object) Set(name string, v *Node) {
	o.Put(Key{Name: name}, v)
}

func (o *Object) Get(name string) (*Node, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Key returns the key, with its strategy, stored under name.
func (o *Object) Key(name string) (Key, bool) {
	if o == nil {
		return Key{}, false
	}
	i, ok := o.index[name]
	if !ok {
		return Key{}, false
	}
	return o.keys[i], true
}

func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) Keys() []Key {
	if o == nil {
		return nil
	}
	res := make([]Key, len(o.keys))
	copy(res, o.keys)
	return res
}

// All iterates over the entries of o in order.
func (o *Object) All() iter.Seq2[Key, *Node] {
	return func(yield func(Key, *Node) bool) {
		if o == nil {
			return
		}
		for i, k := range o.keys {
			if !yield(k, o.values[i]) {
				return
			}
		}
	}
}

// Delete removes the entry named name, if present.
func (o *Object) Delete(name string) {
	i, ok := o.index[name]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.values = append(o.values[:i], o.values[i+1:]...)
	delete(o.index, name)
	for j := i; j < len(o.keys); j++ {
		o.index[o.keys[j].Name] = j
	}
}

// Clone returns a shallow copy of o: the entries are copied, the nodes are
// shared.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	res := &Object{
		keys:   make([]Key, len(o.keys)),
		values: make([]*Node, len(o.values)),
		index:  make(map[string]int, len(o.index)),
	}
	copy(res.keys, o.keys)
	copy(res.values, o.values)
	for k, v := range o.index {
		res.index[k] = v
	}
	return res
}

type KeyVal struct {
	Key Key
	Val *Node
}

// FromKeyVals creates an Object node from kvs, later entries replacing
// earlier ones with the same name.
func FromKeyVals(kvs []KeyVal) *Node {
	obj := NewObject()
	for _, kv := range kvs {
		obj.Put(kv.Key, kv.Val)
	}
	return FromObject(obj)
}
