// Package modelio implements the two persisted text formats the core
// accepts for compatibility with external tooling: a row-major triples
// format for transition matrices, and a label format for state
// labelings. The core itself never touches a filesystem; these
// functions operate on an io.Reader/io.Writer supplied by the caller,
// in the teacher's streaming-builder idiom (one pass, no intermediate
// buffering of the whole matrix).
package modelio
