// Package lineindex precomputes line-start byte offsets for a source buffer
// and answers offset<->(line,column) queries in O(log n), or O(n) total for a
// batch of sorted offsets.
//
// Grounded on original_source/crates/reukocyte_checker/src/locator.rs, ported
// method-for-method, and cross-checked against the teacher's
// internal/core/manipulator.go computeLineIndex/byteToLine binary-search idiom.
package lineindex

import "sort"

// Index maps byte offsets within a source buffer to 1-indexed line/column
// pairs. It is immutable once built and safe for concurrent read access.
type Index struct {
	lineStarts []int
	lines      [][]byte
}

// FromSource builds a Index from source bytes with one linear pass.
func FromSource(source []byte) *Index {
	lineStarts := make([]int, 0, len(source)/80+1)
	lineStarts = append(lineStarts, 0)
	for i, b := range source {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	lines := make([][]byte, len(lineStarts))
	for i := range lineStarts {
		start := lineStarts[i]
		var end int
		if i+1 < len(lineStarts) {
			end = lineStarts[i+1] - 1
			if end < start {
				end = start
			}
		} else {
			end = len(source)
		}
		lines[i] = source[start:end]
	}

	return &Index{lineStarts: lineStarts, lines: lines}
}

// lineIndexOf returns the 0-indexed line containing offset.
func (x *Index) lineIndexOf(offset int) int {
	// sort.Search finds the first i such that lineStarts[i] > offset; the
	// containing line is i-1 (lineStarts[0] == 0 so i is always >= 1).
	i := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	})
	return i - 1
}

// LineNumber returns the 1-indexed line number for a byte offset.
func (x *Index) LineNumber(offset int) int {
	return x.lineIndexOf(offset) + 1
}

// ColumnNumber returns the 1-indexed column number for a byte offset.
func (x *Index) ColumnNumber(offset int) int {
	li := x.lineIndexOf(offset)
	return offset - x.lineStarts[li] + 1
}

// LineColumn returns both the 1-indexed line and column for a byte offset.
func (x *Index) LineColumn(offset int) (line, column int) {
	li := x.lineIndexOf(offset)
	return li + 1, offset - x.lineStarts[li] + 1
}

// LineRange returns the byte range [lineStart, nextLineStart) containing
// offset; ok is false for nextLineStart when offset is on the last line.
func (x *Index) LineRange(offset int) (lineStart int, nextLineStart int, ok bool) {
	li := x.lineIndexOf(offset)
	lineStart = x.lineStarts[li]
	if li+1 < len(x.lineStarts) {
		return lineStart, x.lineStarts[li+1], true
	}
	return lineStart, 0, false
}

// AreOnSameLine reports whether two byte offsets fall on the same line.
func (x *Index) AreOnSameLine(pos1, pos2 int) bool {
	lineStart, nextLineStart, ok := x.LineRange(pos1)
	if pos2 < lineStart {
		return false
	}
	if !ok {
		return true
	}
	return pos2 < nextLineStart
}

// Line returns the content of the 0-indexed line, excluding its newline.
func (x *Index) Line(lineIdx int) ([]byte, bool) {
	if lineIdx < 0 || lineIdx >= len(x.lines) {
		return nil, false
	}
	return x.lines[lineIdx], true
}

// LineAt returns the content of the line containing offset.
func (x *Index) LineAt(offset int) []byte {
	return x.lines[x.lineIndexOf(offset)]
}

// Indentation counts leading space/tab bytes (each worth 1, tabs not
// expanded) on the line containing offset.
func (x *Index) Indentation(offset int) int {
	line := x.LineAt(offset)
	n := 0
	for _, b := range line {
		if b == ' ' || b == '\t' {
			n++
		} else {
			break
		}
	}
	return n
}

// Column returns the 0-indexed column within the line for offset (unlike
// ColumnNumber, which is 1-indexed).
func (x *Index) Column(offset int) int {
	li := x.lineIndexOf(offset)
	return offset - x.lineStarts[li]
}

// LineStart returns the byte offset where the given 0-indexed line starts.
func (x *Index) LineStart(lineIdx int) (int, bool) {
	if lineIdx < 0 || lineIdx >= len(x.lineStarts) {
		return 0, false
	}
	return x.lineStarts[lineIdx], true
}

// LineEndOffset returns the byte offset where the line containing offset
// ends, just before its terminating newline (or at source end on the last
// line).
func (x *Index) LineEndOffset(offset int) int {
	li := x.lineIndexOf(offset)
	if li+1 < len(x.lineStarts) {
		end := x.lineStarts[li+1] - 1
		if end < x.lineStarts[li] {
			end = x.lineStarts[li]
		}
		return end
	}
	return x.lineStarts[li] + len(x.lines[li])
}

// LineCount returns the number of lines in the source.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}

// Resolved is the result of resolving one (start, end) byte range to line and
// column numbers.
type Resolved struct {
	LineStart   int
	LineEnd     int
	ColumnStart int
	ColumnEnd   int
}

// BatchResolve resolves a list of (start, end) byte ranges to line/column
// pairs in O(n+m), assuming offsets arrive sorted by start (the Checker
// collects diagnostics in traversal order and passes them here in a
// start-sorted view; its final (start,end) sort happens after this call).
func (x *Index) BatchResolve(ranges [][2]int) []Resolved {
	results := make([]Resolved, 0, len(ranges))
	currentLine := 0
	lineCount := len(x.lineStarts)

	for _, r := range ranges {
		start, end := r[0], r[1]

		for currentLine+1 < lineCount && x.lineStarts[currentLine+1] <= start {
			currentLine++
		}
		lineStartOffset := x.lineStarts[currentLine]
		lineStart := currentLine + 1
		columnStart := start - lineStartOffset + 1

		endLine := currentLine
		for endLine+1 < lineCount && x.lineStarts[endLine+1] <= end {
			endLine++
		}
		endLineStartOffset := x.lineStarts[endLine]
		lineEnd := endLine + 1
		columnEnd := end - endLineStartOffset + 1

		results = append(results, Resolved{
			LineStart:   lineStart,
			LineEnd:     lineEnd,
			ColumnStart: columnStart,
			ColumnEnd:   columnEnd,
		})
	}

	return results
}
