// Package ir holds the in memory representation of layer documents.
//
// A document is an ordered [Object] mapping [Key]s to [Node]s.  A Node is a
// closed tagged union over the types listed by [Types]: its tag is fixed when
// it is constructed and every accessor either returns the payload for that
// tag or a [*TypeMismatchError].
//
// Keys carry the merge strategy written in front of them in the source.  The
// strategy is metadata: keys are identified by name alone, and [Equal] and
// [Hash] ignore it.
//
// Nodes and objects are not mutated once they are handed out by the parser or
// by the merge engine.
package ir
