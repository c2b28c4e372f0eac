// Package strategy resolves per-key merge strategies.
//
// A key in a layer document may carry a leading sigil which tells the merge
// engine how the key's value combines with the value of the same key in the
// base document:
//
//	=key   Replace
//	<key   Prepend
//	>key   Append
//	#key   Overlay
//	##key  OverlayTruncate
//	!key   Delete
//
// A key without a sigil is Undefined and inherits the strategy of its
// enclosing entry, see [Effective].
package strategy

import (
	"errors"
	"fmt"
	"strings"
)

type Strategy int

const (
	Undefined Strategy = iota
	Replace
	Prepend
	Append
	Overlay
	OverlayTruncate
	Delete
)

var ErrBadStrategy = errors.New("bad merge strategy")

// sigils is ordered so that longer sigils are tried first.
var sigils = []struct {
	sigil string
	s     Strategy
}{
	{"##", OverlayTruncate},
	{"#", Overlay},
	{"=", Replace},
	{"<", Prepend},
	{">", Append},
	{"!", Delete},
}

func All() []Strategy {
	return []Strategy{
		Undefined,
		Replace,
		Prepend,
		Append,
		Overlay,
		OverlayTruncate,
		Delete,
	}
}

// Parse reads the sigil at the start of s, returning the strategy and the
// number of bytes the sigil occupies.  If s does not start with a sigil, Parse
// returns Undefined and 0.
func Parse(s string) (Strategy, int) {
	for i := range sigils {
		sg := &sigils[i]
		if strings.HasPrefix(s, sg.sigil) {
			return sg.s, len(sg.sigil)
		}
	}
	return Undefined, 0
}

// IsSigilStart reports whether r can start a sigil.
func IsSigilStart(r rune) bool {
	switch r {
	case '=', '<', '>', '#', '!':
		return true
	}
	return false
}

// FromSigil returns the strategy denoted by exactly sig.
func FromSigil(sig string) (Strategy, error) {
	if sig == "" {
		return Undefined, nil
	}
	s, n := Parse(sig)
	if n != len(sig) {
		return Undefined, fmt.Errorf("%w: sigil %q", ErrBadStrategy, sig)
	}
	return s, nil
}

// Effective returns own unless it is Undefined, in which case the inherited
// strategy applies.
func Effective(own, inherited Strategy) Strategy {
	if own != Undefined {
		return own
	}
	return inherited
}

func (s Strategy) Sigil() string {
	switch s {
	case Replace:
		return "="
	case Prepend:
		return "<"
	case Append:
		return ">"
	case Overlay:
		return "#"
	case OverlayTruncate:
		return "##"
	case Delete:
		return "!"
	}
	return ""
}

func (s Strategy) String() string {
	d, err := s.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Undefined:
		return []byte("undefined"), nil
	case Replace:
		return []byte("replace"), nil
	case Prepend:
		return []byte("prepend"), nil
	case Append:
		return []byte("append"), nil
	case Overlay:
		return []byte("overlay"), nil
	case OverlayTruncate:
		return []byte("overlay-truncate"), nil
	case Delete:
		return []byte("delete"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a strategy>", int(s))
	}
}

func (s *Strategy) UnmarshalText(d []byte) error {
	for _, st := range All() {
		if st.String() == string(d) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrBadStrategy, d)
}

// Describe returns a one line human description of s, as shown by editor
// tooling.
func (s Strategy) Describe() string {
	switch s {
	case Replace:
		return "the patch value replaces the base value"
	case Prepend:
		return "strings and arrays are prepended to the base, numbers are added"
	case Append:
		return "strings and arrays are appended to the base, numbers are added"
	case Overlay:
		return "the patch is laid over the base by position, booleans are and-ed"
	case OverlayTruncate:
		return "like overlay, but arrays are cut to the patch length"
	case Delete:
		return "the key is removed from the result"
	}
	return "inherits the strategy of the enclosing entry"
}
