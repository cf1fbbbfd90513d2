package stl

import (
	"errors"
	"io"
)

// cursor gives the parser one lexeme of lookahead. The lookahead is only
// replaced by an explicit advance.
type cursor struct {
	lex  *lexer
	look lexeme
	eof  bool
	// line of the most recently consumed lexeme
	last int
}

func (c *cursor) fill() error {
	lx, err := c.lex.next()
	if errors.Is(err, io.EOF) {
		c.eof = true
		c.look = lexeme{}
		return nil
	}
	if err != nil {
		return err
	}
	c.look = lx
	return nil
}

// peek returns the lookahead lexeme and false at end of input.
func (c *cursor) peek() (lexeme, bool) {
	return c.look, !c.eof
}

// at reports whether the lookahead is the keyword kw.
func (c *cursor) at(kw string) bool {
	return !c.eof && c.look.kind == kindKeyword && c.look.text == kw
}

// advance consumes the lookahead and reads the next lexeme.
func (c *cursor) advance() error {
	if c.eof {
		return nil
	}
	c.last = c.look.line
	return c.fill()
}
