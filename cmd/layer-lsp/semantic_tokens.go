package main

import (
	"context"
	"math"
	"slices"

	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/token"
	"go.lsp.dev/protocol"
)

var (
	tokenTypes = []protocol.SemanticTokenTypes{
		protocol.SemanticTokenProperty,
		protocol.SemanticTokenOperator,
		protocol.SemanticTokenString,
		protocol.SemanticTokenNumber,
		protocol.SemanticTokenKeyword,
	}
	tokenModifiers = []protocol.SemanticTokenModifiers{
		protocol.SemanticTokenModifierModification,
	}
)

const (
	propertyToken uint32 = iota
	operatorToken
	stringToken
	numberToken
	keywordToken
)

const modificationBit uint32 = 1

type tokenInfo struct {
	line, character, length uint32
	tokenType               uint32
	modifiers               uint32
}

// collectSemanticTokens returns tokens for the keys and leaf values of
// doc's entries that lie within lines [from, to].
func collectSemanticTokens(doc *document, from, to int) []uint32 {
	var toks []tokenInfo
	add := func(start, end token.Pos, typ, mods uint32) {
		if start.Line != end.Line || end.Col <= start.Col {
			return
		}
		if start.Line < from || start.Line > to {
			return
		}
		s, e := doc.posToLSP(start), doc.posToLSP(end)
		toks = append(toks, tokenInfo{
			line:      s.Line,
			character: s.Character,
			length:    e.Character - s.Character,
			tokenType: typ,
			modifiers: mods,
		})
	}
	for i := range doc.entries {
		e := &doc.entries[i]
		keyStart := e.KeyPos
		if sig := e.Key.Strategy.Sigil(); sig != "" {
			sigEnd := keyStart
			sigEnd.Col += len(sig)
			add(keyStart, sigEnd, operatorToken, modificationBit)
			keyStart = sigEnd
		}
		add(keyStart, e.KeyEnd, propertyToken, 0)
		if typ, ok := leafToken(e.Value); ok {
			add(e.ValuePos, e.ValueEnd, typ, 0)
		}
	}
	slices.SortFunc(toks, func(a, b tokenInfo) int {
		if a.line != b.line {
			return int(a.line) - int(b.line)
		}
		return int(a.character) - int(b.character)
	})
	return encodeTokens(toks)
}

func leafToken(n *ir.Node) (uint32, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Type() {
	case ir.StringType:
		return stringToken, true
	case ir.IntType, ir.FloatType:
		return numberToken, true
	case ir.BoolType, ir.NullType:
		return keywordToken, true
	}
	return 0, false
}

func encodeTokens(toks []tokenInfo) []uint32 {
	data := make([]uint32, 0, 5*len(toks))
	var prevLine, prevChar uint32
	for _, ti := range toks {
		deltaLine := ti.line - prevLine
		deltaChar := ti.character
		if deltaLine == 0 {
			deltaChar = ti.character - prevChar
		}
		data = append(data, deltaLine, deltaChar, ti.length, ti.tokenType, ti.modifiers)
		prevLine = ti.line
		prevChar = ti.character
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc, 1, math.MaxInt),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	from := int(params.Range.Start.Line) + 1
	to := int(params.Range.End.Line) + 1
	return &protocol.SemanticTokens{
		Data: collectSemanticTokens(doc, from, to),
	}, nil
}
