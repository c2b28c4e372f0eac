// Package parse parses layer documents into [ir.Object]s.
//
// # Usage
//
//	obj, err := parse.Parse("base.txt", data)
//	if err != nil {
//	    return err
//	}
//
//	// a single line mod
//	obj, err := parse.ParseString("mod", `>hp: 20, #tags: [#, "x"]`)
//
// # Syntax
//
// A document is an object whose outer braces are optional.  Entries are
// 'key: value' pairs and commas between entries are optional.  Keys are
// either quoted strings or runs of letters, digits and '_', '¤', '-', '.',
// optionally preceded by a merge strategy sigil (see package strategy).
//
// Values are strings, integers, floats, true, false, null, objects and
// arrays.  Inside arrays '#' is the overlay placeholder and an element may
// be written as 'key: value'.  Element labels carry no sigil, so '#' must
// not be directly followed by a key.  Comments start with '**'.
//
// Errors are reported as [*Error], which carries the source label, line and
// column.
package parse
