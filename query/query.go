package query

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen is the number of bytes a query can hold.
const DefaultMaxLen = 4095

// DefaultDelimiters separate words for word motion and deletion.
const DefaultDelimiters = " "

// Direction selects which side of the cursor an operation works on.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Buffer holds the query as UTF-8 bytes plus a byte cursor.
//
// The cursor always sits on a rune boundary: 0 <= cursor <= len, and
// text[cursor] is never a continuation byte. Every method that
// changes the text reports whether it did, so the caller can decide
// whether to run the matcher again; cursor-only motion never does.
type Buffer struct {
	text       []byte
	cursor     int
	maxLen     int
	delimiters string
}

// New creates an empty buffer that rejects content longer than maxLen
// bytes. A non-positive maxLen selects DefaultMaxLen.
func New(maxLen int) *Buffer {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Buffer{
		maxLen:     maxLen,
		delimiters: DefaultDelimiters,
	}
}

// SetDelimiters replaces the word delimiter set.
func (b *Buffer) SetDelimiters(s string) {
	b.delimiters = s
}

func (b *Buffer) String() string {
	return string(b.text)
}

// Bytes returns a copy of the query bytes.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.text))
	copy(out, b.text)
	return out
}

func (b *Buffer) Len() int {
	return len(b.text)
}

func (b *Buffer) MaxLen() int {
	return b.maxLen
}

func (b *Buffer) Cursor() int {
	return b.cursor
}

// Head returns the text before the cursor.
func (b *Buffer) Head() string {
	return string(b.text[:b.cursor])
}

// AtStart and AtEnd report the cursor position.
func (b *Buffer) AtStart() bool { return b.cursor == 0 }
func (b *Buffer) AtEnd() bool   { return b.cursor == len(b.text) }

// nextRune returns the byte offset of the rune boundary next to the
// cursor in the given direction.
func (b *Buffer) nextRune(dir Direction) int {
	n := b.cursor + int(dir)
	for n > 0 && n < len(b.text) && isContinuation(b.text[n]) {
		n += int(dir)
	}
	return n
}

func isContinuation(c byte) bool {
	return c&0xc0 == 0x80
}

func (b *Buffer) isDelimiterAt(pos int) bool {
	r, _ := utf8.DecodeRune(b.text[pos:])
	return strings.ContainsRune(b.delimiters, r)
}

// wordEdge returns where a word motion from the cursor would land:
// first across delimiters, then across non-delimiters.
func (b *Buffer) wordEdge(dir Direction) int {
	saved := b.cursor
	defer func() { b.cursor = saved }()

	if dir == Backward {
		for b.cursor > 0 && b.isDelimiterAt(b.nextRune(Backward)) {
			b.cursor = b.nextRune(Backward)
		}
		for b.cursor > 0 && !b.isDelimiterAt(b.nextRune(Backward)) {
			b.cursor = b.nextRune(Backward)
		}
		return b.cursor
	}

	for b.cursor < len(b.text) && b.isDelimiterAt(b.cursor) {
		b.cursor = b.nextRune(Forward)
	}
	for b.cursor < len(b.text) && !b.isDelimiterAt(b.cursor) {
		b.cursor = b.nextRune(Forward)
	}
	return b.cursor
}

// Insert puts p at the cursor and moves the cursor past it. An
// insertion that would exceed the bound is rejected as a whole.
func (b *Buffer) Insert(p []byte) bool {
	if len(p) == 0 || len(b.text)+len(p) > b.maxLen {
		return false
	}

	buf := make([]byte, 0, len(b.text)+len(p))
	buf = append(buf, b.text[:b.cursor]...)
	buf = append(buf, p...)
	buf = append(buf, b.text[b.cursor:]...)
	b.text = buf
	b.cursor += len(p)
	return true
}

func (b *Buffer) InsertString(s string) bool {
	return b.Insert([]byte(s))
}

// deleteRange removes [start, end) and leaves the cursor at start.
func (b *Buffer) deleteRange(start, end int) bool {
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start >= end {
		return false
	}

	b.text = append(b.text[:start], b.text[end:]...)
	b.cursor = start
	return true
}

// DeleteRune deletes one rune before (Backward) or after (Forward)
// the cursor.
func (b *Buffer) DeleteRune(dir Direction) bool {
	if dir == Backward {
		if b.cursor == 0 {
			return false
		}
		return b.deleteRange(b.nextRune(Backward), b.cursor)
	}

	if b.cursor == len(b.text) {
		return false
	}
	return b.deleteRange(b.cursor, b.nextRune(Forward))
}

// DeleteWord deletes from the cursor to the word edge in dir.
func (b *Buffer) DeleteWord(dir Direction) bool {
	edge := b.wordEdge(dir)
	if dir == Backward {
		return b.deleteRange(edge, b.cursor)
	}
	return b.deleteRange(b.cursor, edge)
}

func (b *Buffer) DeleteToEnd() bool {
	return b.deleteRange(b.cursor, len(b.text))
}

func (b *Buffer) DeleteToStart() bool {
	return b.deleteRange(0, b.cursor)
}

// MoveRune moves the cursor by one rune. It reports whether the
// cursor moved.
func (b *Buffer) MoveRune(dir Direction) bool {
	if (dir == Backward && b.cursor == 0) || (dir == Forward && b.cursor == len(b.text)) {
		return false
	}
	b.cursor = b.nextRune(dir)
	return true
}

func (b *Buffer) MoveWord(dir Direction) bool {
	edge := b.wordEdge(dir)
	if edge == b.cursor {
		return false
	}
	b.cursor = edge
	return true
}

// MoveToStart and MoveToEnd place the cursor at either end of the text.
func (b *Buffer) MoveToStart() {
	b.cursor = 0
}

func (b *Buffer) MoveToEnd() {
	b.cursor = len(b.text)
}

// Set replaces the text and puts the cursor at its end. Text longer
// than the bound is cut at the last rune boundary that fits.
func (b *Buffer) Set(s string) bool {
	if len(s) > b.maxLen {
		n := b.maxLen
		for n > 0 && isContinuation(s[n]) {
			n--
		}
		s = s[:n]
	}

	changed := s != string(b.text)
	b.text = []byte(s)
	b.cursor = len(b.text)
	return changed
}

// Clear empties the buffer.
func (b *Buffer) Clear() bool {
	if len(b.text) == 0 {
		return false
	}
	b.text = b.text[:0]
	b.cursor = 0
	return true
}
