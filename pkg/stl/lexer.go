package stl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// isKeyword reports whether s is one of the fixed grammar keywords.
func isKeyword(s string) bool {
	switch s {
	case "solid", "facet", "normal", "outer", "loop",
		"vertex", "endloop", "endfacet", "endsolid":
		return true
	}
	return false
}

// numberPattern matches the numeric literals accepted for coordinates.
var numberPattern = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

type lexemeKind int

const (
	kindWord lexemeKind = iota
	kindKeyword
	kindNumber
)

// lexeme is one whitespace-delimited token with its classification.
type lexeme struct {
	text string
	line int
	kind lexemeKind
	num  float64
}

func (l lexeme) String() string {
	return strconv.Quote(l.text)
}

// lexer splits the input into lexemes on demand.
type lexer struct {
	r    *bufio.Reader
	line int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

// next returns the next lexeme. It returns io.EOF once the input is
// exhausted.
func (l *lexer) next() (lexeme, error) {
	var sb strings.Builder
	start := 0
	for {
		c, size, err := l.r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return classify(sb.String(), start)
			}
			if errors.Is(err, io.EOF) {
				return lexeme{}, io.EOF
			}
			return lexeme{}, fmt.Errorf("stl: read: %w", err)
		}
		if c == utf8.RuneError && size == 1 {
			return lexeme{}, &ParseError{Line: l.line, Msg: "invalid UTF-8 byte"}
		}
		if unicode.IsSpace(c) {
			if c == '\n' {
				l.line++
			}
			if sb.Len() > 0 {
				return classify(sb.String(), start)
			}
			continue
		}
		if sb.Len() == 0 {
			start = l.line
		}
		sb.WriteRune(c)
	}
}

func classify(text string, line int) (lexeme, error) {
	lx := lexeme{text: text, line: line}
	switch {
	case isKeyword(text):
		lx.kind = kindKeyword
	case numberPattern.MatchString(text):
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lexeme{}, &ParseError{Line: line, Msg: fmt.Sprintf("invalid number %q: %v", text, err)}
		}
		lx.kind = kindNumber
		lx.num = v
	}
	return lx, nil
}
