package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/parse"
	"github.com/signadot/layer-format/go-layer/strategy"
	"go.lsp.dev/protocol"
)

const maxHoverValue = 50

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	line, col := doc.fromLSP(params.Position)
	entry := doc.entryAt(line, col)
	if entry == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: buildHoverText(entry),
		},
	}, nil
}

func buildHoverText(e *parse.Entry) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("**Key:** `%s`", e.Key))
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("**Path:** `%s`", e.Path))
	}
	st := e.Effective
	if e.Key.Strategy == strategy.Undefined {
		parts = append(parts, fmt.Sprintf("**Strategy:** %s (inherited), %s", st, st.Describe()))
	} else {
		parts = append(parts, fmt.Sprintf("**Strategy:** %s, %s", st, st.Describe()))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("**Type:** %s", e.Value.Type()))
		if v := valueInfo(e.Value); v != "" {
			parts = append(parts, fmt.Sprintf("**Value:** %s", v))
		}
	}
	return strings.Join(parts, "\n\n")
}

func valueInfo(n *ir.Node) string {
	switch n.Type() {
	case ir.ArrayType, ir.ListType:
		return fmt.Sprintf("array with %d elements", n.Len())
	case ir.ObjectType:
		return fmt.Sprintf("object with %d keys", n.Len())
	}
	val := []rune(n.String())
	if len(val) > maxHoverValue {
		return fmt.Sprintf("`%s...`", string(val[:maxHoverValue]))
	}
	return fmt.Sprintf("`%s`", string(val))
}
