package main

import (
	"context"
	"strings"

	"github.com/signadot/layer-format/go-layer/strategy"
	"go.lsp.dev/protocol"
)

// Completion offers the strategy sigils where a key may start.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	line, col := doc.fromLSP(params.Position)
	text := []rune(string(doc.lines.Line(line)))
	prefix := string(text[:min(col-1, len(text))])

	completions := []protocol.CompletionItem{}
	typed, ok := keyPrefix(prefix)
	if !ok {
		return &protocol.CompletionList{Items: completions}, nil
	}
	for _, st := range strategy.All() {
		sig := st.Sigil()
		if sig == "" || !strings.HasPrefix(sig, typed) {
			continue
		}
		completions = append(completions, protocol.CompletionItem{
			Label:      sig,
			Kind:       protocol.CompletionItemKindOperator,
			Detail:     st.String(),
			InsertText: strings.TrimPrefix(sig, typed),
			Documentation: protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: st.Describe(),
			},
		})
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completions,
	}, nil
}

// keyPrefix reports whether the text before the cursor ends where a key may
// start, possibly after a partly typed sigil which it returns.
func keyPrefix(prefix string) (string, bool) {
	i := strings.LastIndexAny(prefix, "{[, \t")
	typed := prefix[i+1:]
	if strings.HasSuffix(strings.TrimRight(prefix[:i+1], " \t"), ":") {
		return "", false
	}
	for _, r := range typed {
		if !strategy.IsSigilStart(r) {
			return "", false
		}
	}
	return typed, true
}
