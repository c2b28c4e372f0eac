package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node inside a document, written as fields and indices
// such as
//
//	unit.stats.kills
//	grid[0][1]
//	tags[*]
//	'a.b'.c
//
// Fields containing any of ".[]'*" are quoted with single quotes.
type Path struct {
	Field    *string
	Index    *int
	IndexAll bool
	Next     *Path
}

func (p *Path) String() string {
	var b strings.Builder
	for q := p; q != nil; q = q.Next {
		switch {
		case q.Field != nil:
			if b.Len() != 0 {
				b.WriteByte('.')
			}
			b.WriteString(PathField(*q.Field))
		case q.IndexAll:
			b.WriteString("[*]")
		case q.Index != nil:
			b.WriteString("[" + strconv.Itoa(*q.Index) + "]")
		}
	}
	return b.String()
}

// PathField quotes f if needed for use in a path.
func PathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*[]") == -1 {
		return f
	}
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// JoinField appends field f to the path string p.
func JoinField(p, f string) string {
	if p == "" {
		return PathField(f)
	}
	return p + "." + PathField(f)
}

// JoinIndex appends index i to the path string p.
func JoinIndex(p string, i int) string {
	return p + "[" + strconv.Itoa(i) + "]"
}

// ParsePath parses a path.  The empty path addresses the root.
func ParsePath(p string) (*Path, error) {
	if p == "" {
		return nil, nil
	}
	if p[0] != '[' && p[0] != '.' {
		p = "." + p
	}
	root := &Path{}
	if err := parseFrag(p, root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	var rest string
	switch frag[0] {
	case '.':
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		rest = frag[i+2:]
	default:
		return fmt.Errorf("expected '.' or '['")
	}
	if len(rest) == 0 {
		return nil
	}
	next := &Path{}
	if err := parseFrag(rest, next); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseIndex(is string) (index int, all bool, err error) {
	if is == "*" {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath returns the node at path p, or nil if nothing is there.  It is an
// error to step into a node of the wrong type or to use '[*]'.
func (n *Node) GetPath(p string) (*Node, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	res := n
	for ; yp != nil; yp = yp.Next {
		switch {
		case yp.IndexAll:
			return nil, fmt.Errorf("%w: any index in get", ErrPath)
		case yp.Index != nil:
			if !res.typ.IsSequence() {
				return nil, fmt.Errorf("%w: expected array, got %s", ErrPath, res.typ)
			}
			index := *yp.Index
			if index >= len(res.values) {
				return nil, nil
			}
			res = res.values[index]
		case yp.Field != nil:
			if res.typ != ObjectType {
				return nil, fmt.Errorf("%w: expected object, got %s", ErrPath, res.typ)
			}
			v, ok := res.obj.Get(*yp.Field)
			if !ok {
				return nil, nil
			}
			res = v
		}
	}
	return res, nil
}

// ListPath appends to dst every node matched by p, which may use '[*]'.
func (n *Node) ListPath(dst []*Node, p string) ([]*Node, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return n.listPath(dst, yp), nil
}

func (n *Node) listPath(dst []*Node, yp *Path) []*Node {
	if yp == nil {
		return append(dst, n)
	}
	switch n.typ {
	case ObjectType:
		if yp.Field == nil {
			return dst
		}
		if v, ok := n.obj.Get(*yp.Field); ok {
			dst = v.listPath(dst, yp.Next)
		}
	case ArrayType, ListType:
		switch {
		case yp.IndexAll:
			for _, v := range n.values {
				dst = v.listPath(dst, yp.Next)
			}
		case yp.Index != nil:
			if idx := *yp.Index; idx < len(n.values) {
				dst = n.values[idx].listPath(dst, yp.Next)
			}
		}
	}
	return dst
}
