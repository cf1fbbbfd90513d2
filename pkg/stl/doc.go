// Package stl reads and writes triangle meshes in the ASCII STL grammar.
//
// Input is tokenized lazily on whitespace; the parser pulls one token at a
// time through a single-token lookahead and yields facets as it completes
// them. Malformed input stops the Reader with a *ParseError carrying the
// offending line, and Load never returns a partial mesh.
package stl
