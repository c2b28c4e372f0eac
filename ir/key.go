package ir

import "github.com/signadot/layer-format/go-layer/strategy"

// Key is an object key together with the merge strategy given by its
// sigil.  Two keys denote the same entry when their names are equal.
type Key struct {
	Name     string
	Strategy strategy.Strategy
}

func K(name string) Key {
	return Key{Name: name}
}

// ParseKey splits a leading sigil off of s.
func ParseKey(s string) Key {
	st, n := strategy.Parse(s)
	return Key{Name: s[n:], Strategy: st}
}

func (k Key) String() string {
	return k.Strategy.Sigil() + k.Name
}

func (k Key) Same(o Key) bool {
	return k.Name == o.Name
}
