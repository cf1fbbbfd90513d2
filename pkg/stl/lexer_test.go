package stl

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"solid", "facet", "normal", "outer", "loop", "vertex", "endloop", "endfacet", "endsolid"} {
		if !isKeyword(kw) {
			t.Errorf("isKeyword(%q) = false", kw)
		}
	}
	for _, s := range []string{"", "Solid", "end", "loops", "1.0", "name"} {
		if isKeyword(s) {
			t.Errorf("isKeyword(%q) = true", s)
		}
	}
}

func TestLexerTokens(t *testing.T) {
	lex := newLexer(strings.NewReader("solid  cube\n\tfacet 1.5\r\n\n-2e3 x.5\nendsolid"))
	want := []struct {
		text string
		line int
		kind lexemeKind
		num  float64
	}{
		{"solid", 1, kindKeyword, 0},
		{"cube", 1, kindWord, 0},
		{"facet", 2, kindKeyword, 0},
		{"1.5", 2, kindNumber, 1.5},
		{"-2e3", 4, kindNumber, -2000},
		{"x.5", 4, kindWord, 0},
		{"endsolid", 5, kindKeyword, 0},
	}
	for i, w := range want {
		lx, err := lex.next()
		if err != nil {
			t.Fatalf("token %d: error = %v", i, err)
		}
		if lx.text != w.text || lx.line != w.line || lx.kind != w.kind || lx.num != w.num {
			t.Errorf("token %d = %+v, want %+v", i, lx, w)
		}
	}
	if _, err := lex.next(); !errors.Is(err, io.EOF) {
		t.Errorf("after last token: error = %v, want io.EOF", err)
	}
}

func TestNumberPattern(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"-1", true},
		{"+.5", true},
		{"3.25", true},
		{"1e5", true},
		{"1.5E-07", true},
		{"1.", false},
		{"e5", false},
		{"1e", false},
		{"1.2.3", false},
		{"0x10", false},
		{"nan", false},
	}
	for _, tt := range tests {
		if got := numberPattern.MatchString(tt.in); got != tt.want {
			t.Errorf("numberPattern.MatchString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLexerReadError(t *testing.T) {
	_, err := Load(failingReader{})
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Load() error = %v, want wrapped read error", err)
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Error("read failure reported as a ParseError")
	}
}

func TestLexerRejectsInvalidUTF8(t *testing.T) {
	_, err := Load(strings.NewReader("solid t\nfacet normal 0 0 1\n\nouter lo\xffop\n"))
	if err == nil {
		t.Fatal("Load() accepted a non-UTF-8 token")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v (%T), want *ParseError", err, err)
	}
	if pe.Line != 4 || !strings.Contains(pe.Msg, "UTF-8") {
		t.Errorf("ParseError = %v, want line 4 invalid UTF-8", pe)
	}

	// Valid multi-byte names pass through unchanged.
	m, err := Load(strings.NewReader("solid café\nendsolid café\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "café" {
		t.Errorf("Name = %q, want %q", m.Name, "café")
	}
}
