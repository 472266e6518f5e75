// Package source defines named source text with line index.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column numbers for byte offset pos.
// Columns are counted in runes. pos is clamped to source bounds.
func (s *Source) LineCol(pos int) (line, col int) {
	pos = max(0, min(pos, len(s.content)))
	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos returns byte offset for 1-based line and column numbers, columns are counted in bytes.
// Returns 0 for non-positive line or column, result is clamped to source length.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	return min(s.lineStarts[line-1]+col-1, l)
}

// Locate returns source name, line, and column for byte offset pos.
func (s *Source) Locate(pos int) (name string, line, col int) {
	line, col = s.LineCol(pos)
	return s.name, line, col
}

// At returns source position for byte offset pos.
func (s *Source) At(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, max(0, min(pos, len(s.content))), line, col}
}

// Pos is a position in source, it implements mpg.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
