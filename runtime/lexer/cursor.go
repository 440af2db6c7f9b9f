package lexer

import "unicode/utf8"

// Cursor is a peekable stream of Unicode scalar values over one source text.
// It tracks the 1-based line and column of the next character to be read.
//
// Columns count scalar values, not bytes. A CR LF pair counts as a single
// line break; every other line terminator counts as one.
type Cursor struct {
	src    string
	offset int
	line   int
	column int
	lastCR bool // previous consumed character was CR
}

// NewCursor creates a cursor positioned at the start of src.
func NewCursor(src string) *Cursor {
	c := &Cursor{}
	c.Reset(src)
	return c
}

// Reset repositions the cursor at the start of src.
func (c *Cursor) Reset(src string) {
	c.src = src
	c.offset = 0
	c.line = 1
	c.column = 1
	c.lastCR = false
}

// Peek returns the next character without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	if c.offset >= len(c.src) {
		return 0, false
	}
	return decodeRune(c.src[c.offset:])
}

// PeekAt returns the character n positions ahead of the next one without
// consuming anything. PeekAt(0) is equivalent to Peek.
func (c *Cursor) PeekAt(n int) (rune, bool) {
	off := c.offset
	for ; n > 0; n-- {
		if off >= len(c.src) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(c.src[off:])
		off += size
	}
	if off >= len(c.src) {
		return 0, false
	}
	return decodeRune(c.src[off:])
}

// Next consumes and returns one character, advancing the position.
func (c *Cursor) Next() (rune, bool) {
	if c.offset >= len(c.src) {
		return 0, false
	}
	ch, size := utf8.DecodeRuneInString(c.src[c.offset:])
	c.offset += size

	switch {
	case ch == '\n' && c.lastCR:
		// second half of CR LF; the CR already broke the line
		c.lastCR = false
	case IsLineTerminator(ch):
		c.line++
		c.column = 1
		c.lastCR = ch == '\r'
	default:
		c.column++
		c.lastCR = false
	}
	return ch, true
}

// Position returns the position of the next character.
func (c *Cursor) Position() Position {
	return Position{Line: c.line, Column: c.column, Offset: c.offset}
}

// Offset returns the byte offset of the next character.
func (c *Cursor) Offset() int {
	return c.offset
}

// Slice returns the source text between two byte offsets.
func (c *Cursor) Slice(start, end int) string {
	return c.src[start:end]
}

// AtEOF reports whether every character has been consumed.
func (c *Cursor) AtEOF() bool {
	return c.offset >= len(c.src)
}

func decodeRune(s string) (rune, bool) {
	ch, _ := utf8.DecodeRuneInString(s)
	return ch, true
}
