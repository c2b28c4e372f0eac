// Package token provides the character level primitives of the layer
// syntax: a [Scanner] which tracks line and column, character classes, and
// comment skipping.
//
// Comments start with '**' and run to the end of the line.  A comment on the
// last line of a document may also be ended by a '}' which is the final
// character of the document, so that
//
//	{ a: 1 ** one }
//
// is a complete document.
package token
