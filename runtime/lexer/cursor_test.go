package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursorTraversal(t *testing.T) {
	c := NewCursor("ab\ncd")

	type step struct {
		Char rune
		Pos  Position
	}
	var got []step
	for {
		pos := c.Position()
		ch, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, step{ch, pos})
	}

	want := []step{
		{'a', Position{Line: 1, Column: 1, Offset: 0}},
		{'b', Position{Line: 1, Column: 2, Offset: 1}},
		{'\n', Position{Line: 1, Column: 3, Offset: 2}},
		{'c', Position{Line: 2, Column: 1, Offset: 3}},
		{'d', Position{Line: 2, Column: 2, Offset: 4}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("traversal mismatch (-want +got):\n%s", diff)
	}
	if !c.AtEOF() {
		t.Error("cursor should be at EOF")
	}
	if _, ok := c.Peek(); ok {
		t.Error("Peek at EOF should report no character")
	}
}

func TestCursorLineBreaks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Position
	}{
		{"lf", "a\nb", Position{Line: 2, Column: 2, Offset: 3}},
		{"cr", "a\rb", Position{Line: 2, Column: 2, Offset: 3}},
		{"crlf", "a\r\nb", Position{Line: 2, Column: 2, Offset: 4}},
		{"lfcr is two breaks", "a\n\rb", Position{Line: 3, Column: 2, Offset: 4}},
		{"line separator", "a" + string(ls) + "b", Position{Line: 2, Column: 2, Offset: 5}},
		{"paragraph separator", "a" + string(ps) + "b", Position{Line: 2, Column: 2, Offset: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.input)
			for !c.AtEOF() {
				c.Next()
			}
			if diff := cmp.Diff(tt.want, c.Position()); diff != "" {
				t.Errorf("end position mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCursorPeekAt(t *testing.T) {
	c := NewCursor("x" + string(rune(0x00E9)) + "y")

	for i, want := range []rune{'x', 0x00E9, 'y'} {
		ch, ok := c.PeekAt(i)
		if !ok || ch != want {
			t.Errorf("PeekAt(%d) = %q, %v; want %q", i, ch, ok, want)
		}
	}
	if _, ok := c.PeekAt(3); ok {
		t.Error("PeekAt past the end should report no character")
	}
	if c.Offset() != 0 {
		t.Errorf("peeking must not consume, offset = %d", c.Offset())
	}

	c.Next()
	if ch, _ := c.Peek(); ch != 0x00E9 {
		t.Errorf("Peek after Next = %q", ch)
	}
	if got := c.Position(); got.Column != 2 || got.Offset != 1 {
		t.Errorf("position after one rune = %v offset %d", got, got.Offset)
	}
}

func TestCursorSliceAndReset(t *testing.T) {
	c := NewCursor("hello world")
	for i := 0; i < 5; i++ {
		c.Next()
	}
	if got := c.Slice(0, c.Offset()); got != "hello" {
		t.Errorf("Slice = %q, want hello", got)
	}

	c.Reset("\nz")
	if diff := cmp.Diff(Position{Line: 1, Column: 1, Offset: 0}, c.Position()); diff != "" {
		t.Errorf("Reset position mismatch (-want +got):\n%s", diff)
	}
	c.Next()
	if ch, _ := c.Next(); ch != 'z' || c.Position().Line != 2 {
		t.Errorf("expected z on line 2, got %q at %v", ch, c.Position())
	}
}

func TestCursorCRAtEndThenReset(t *testing.T) {
	c := NewCursor("\r")
	c.Next()
	c.Reset("\nx")
	c.Next()
	if got := c.Position().Line; got != 2 {
		t.Errorf("LF after Reset must break the line, got line %d", got)
	}
}
