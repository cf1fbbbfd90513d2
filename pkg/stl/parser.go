package stl

import (
	"fmt"
	"io"

	"github.com/chazu/winding/pkg/mesh"
)

// ParseError reports malformed input with the line it was found on.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// state is the grammar nonterminal the reader expects next.
type state int

const (
	stateSolid state = iota
	stateFacets
	stateDone
	stateFailed
)

// Reader pulls facets from an ASCII mesh description one at a time:
//
//	solid [name]
//	  facet normal nx ny nz
//	    outer loop
//	      vertex x y z
//	      vertex x y z
//	      vertex x y z
//	    endloop
//	  endfacet
//	endsolid [name]
//
// Use it like bufio.Scanner:
//
//	r := stl.NewReader(in)
//	for r.Next() {
//		tri := r.Facet()
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	cur   *cursor
	state state
	named bool
	name  string
	facet mesh.Triangle
	err   error
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{cur: &cursor{lex: newLexer(r), last: 1}, state: stateSolid}
}

// Name returns the solid's name, available after the first call to Next.
func (r *Reader) Name() string {
	return r.name
}

// Facet returns the triangle read by the last successful call to Next.
func (r *Reader) Facet() mesh.Triangle {
	return r.facet
}

// Err returns the first error encountered, or nil after a clean endsolid.
func (r *Reader) Err() error {
	return r.err
}

// Next advances to the next facet. It returns false at endsolid or on error.
func (r *Reader) Next() bool {
	for {
		switch r.state {
		case stateSolid:
			if err := r.header(); err != nil {
				return r.fail(err)
			}
			r.state = stateFacets

		case stateFacets:
			if r.cur.at("facet") {
				tri, err := r.parseFacet()
				if err != nil {
					return r.fail(err)
				}
				r.facet = tri
				return true
			}
			if r.cur.at("endsolid") {
				if err := r.footer(); err != nil {
					return r.fail(err)
				}
				r.state = stateDone
				return false
			}
			if _, ok := r.cur.peek(); !ok {
				return r.fail(r.errorf(r.cur.last, `unexpected end of input, expected "endsolid"`))
			}
			return r.fail(r.unexpected(`"facet" or "endsolid"`))

		default:
			return false
		}
	}
}

func (r *Reader) fail(err error) bool {
	r.err = err
	r.state = stateFailed
	return false
}

func (r *Reader) errorf(line int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// unexpected builds the error for a lookahead that does not fit the grammar.
func (r *Reader) unexpected(want string) error {
	lx, ok := r.cur.peek()
	if !ok {
		return r.errorf(r.cur.last, "unexpected end of input, expected %s", want)
	}
	return r.errorf(lx.line, "unexpected symbol %s, expected %s", lx, want)
}

// header consumes "solid" and the optional name.
func (r *Reader) header() error {
	if err := r.cur.fill(); err != nil {
		return err
	}
	if err := r.expect("solid"); err != nil {
		return err
	}
	if lx, ok := r.cur.peek(); ok && lx.kind != kindKeyword {
		r.named = true
		r.name = lx.text
		return r.cur.advance()
	}
	return nil
}

// footer consumes "endsolid" and, when the solid was named, the closing
// name token. The two names are not compared.
func (r *Reader) footer() error {
	if err := r.expect("endsolid"); err != nil {
		return err
	}
	if !r.named {
		return nil
	}
	lx, ok := r.cur.peek()
	if !ok {
		return r.errorf(r.cur.last, "unexpected end of input, expected name after \"endsolid\"")
	}
	if lx.kind == kindKeyword {
		return r.unexpected("solid name")
	}
	return r.cur.advance()
}

// expect consumes the keyword kw or fails.
func (r *Reader) expect(kw string) error {
	if !r.cur.at(kw) {
		return r.unexpected(fmt.Sprintf("%q", kw))
	}
	return r.cur.advance()
}

// number consumes a numeric literal.
func (r *Reader) number() (float64, error) {
	lx, ok := r.cur.peek()
	if !ok || lx.kind != kindNumber {
		return 0, r.unexpected("number")
	}
	return lx.num, r.cur.advance()
}

func (r *Reader) vector() (mesh.Point, error) {
	var v [3]float64
	for i := range v {
		f, err := r.number()
		if err != nil {
			return mesh.Point{}, err
		}
		v[i] = f
	}
	return mesh.Point{X: v[0], Y: v[1], Z: v[2]}, nil
}

func (r *Reader) normal() (mesh.Point, error) {
	if err := r.expect("normal"); err != nil {
		return mesh.Point{}, err
	}
	return r.vector()
}

func (r *Reader) loop() ([3]mesh.Point, error) {
	var vs [3]mesh.Point
	if err := r.expect("outer"); err != nil {
		return vs, err
	}
	if err := r.expect("loop"); err != nil {
		return vs, err
	}
	for i := range vs {
		if err := r.expect("vertex"); err != nil {
			return vs, err
		}
		v, err := r.vector()
		if err != nil {
			return vs, err
		}
		vs[i] = v
	}
	return vs, r.expect("endloop")
}

// parseFacet reads one facet. The normal normally precedes the loop but is
// also accepted after it.
func (r *Reader) parseFacet() (mesh.Triangle, error) {
	var tri mesh.Triangle
	if err := r.expect("facet"); err != nil {
		return tri, err
	}

	var err error
	switch {
	case r.cur.at("normal"):
		if tri.Normal, err = r.normal(); err != nil {
			return tri, err
		}
		if tri.V, err = r.loop(); err != nil {
			return tri, err
		}
	case r.cur.at("outer"):
		if tri.V, err = r.loop(); err != nil {
			return tri, err
		}
		if tri.Normal, err = r.normal(); err != nil {
			return tri, err
		}
	default:
		return tri, r.unexpected(`"normal" or "outer"`)
	}

	return tri, r.expect("endfacet")
}

// Load reads a complete mesh. On error no mesh is returned.
func Load(in io.Reader) (*mesh.Mesh, error) {
	r := NewReader(in)
	var tris []mesh.Triangle
	for r.Next() {
		tris = append(tris, r.Facet())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return mesh.New(r.Name(), tris), nil
}
