package main

import (
	"net/url"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/signadot/layer-format/go-layer/debug"
	"github.com/signadot/layer-format/go-layer/ir"
	"github.com/signadot/layer-format/go-layer/parse"
	"github.com/signadot/layer-format/go-layer/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	lines   *token.Doc
	obj     *ir.Object
	entries []parse.Entry
	err     error
}

func newDocument(uri, content string, version int32) *document {
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
		lines:   token.NewDoc([]byte(content)),
	}
	doc.obj, doc.err = parse.Parse(label(uri), []byte(content), parse.ParseEntries(&doc.entries))
	if debug.LSP() {
		debug.Logf("parsed %s v%d: %d entries, err=%v\n", uri, version, len(doc.entries), doc.err)
	}
	return doc
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// label returns the file path of uri for error messages.
func label(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

// toLSP converts a 1-based line and rune column to a protocol position,
// whose character offset counts UTF-16 code units.
func (d *document) toLSP(line, col int) protocol.Position {
	text := d.lines.Line(line)
	units := 0
	for c := 1; c < col && len(text) > 0; c++ {
		r, sz := utf8.DecodeRune(text)
		units += runeUnits(r)
		text = text[sz:]
	}
	return protocol.Position{Line: uint32(max(line-1, 0)), Character: uint32(units)}
}

// fromLSP is the inverse of toLSP.
func (d *document) fromLSP(p protocol.Position) (line, col int) {
	line = int(p.Line) + 1
	text := d.lines.Line(line)
	col = 1
	for units := 0; units < int(p.Character) && len(text) > 0; col++ {
		r, sz := utf8.DecodeRune(text)
		units += runeUnits(r)
		text = text[sz:]
	}
	return line, col
}

func (d *document) posToLSP(p token.Pos) protocol.Position {
	return d.toLSP(p.Line, p.Col)
}

// entryAt returns the innermost entry containing the 1-based position.
func (d *document) entryAt(line, col int) *parse.Entry {
	// entries are ordered by their ends, so nested entries come first.
	for i := range d.entries {
		if d.entries[i].Contains(line, col) {
			return &d.entries[i]
		}
	}
	return nil
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
