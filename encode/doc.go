// Package encode exports merged documents as JSON or YAML for other tools.
// Object entries keep their order in both formats.
package encode
