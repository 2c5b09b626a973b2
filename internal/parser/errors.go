package parser

import "fmt"

// ParseError wraps any parser failure with the offending line and its
// position in the source file.
type ParseError struct {
	LineNo int
	Line   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v (%q)", e.LineNo, e.Err, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ChapterSequenceError reports an explicit chapter number that does not
// match the running chapter counter.
type ChapterSequenceError struct {
	Expected int
	Got      int
}

func (e *ChapterSequenceError) Error() string {
	return fmt.Sprintf("chapter out of sequence: expected %d, got %d", e.Expected, e.Got)
}

// VerseSequenceError reports a verse number that does not match the next
// expected verse in its chapter. Ordering is load-bearing for citation
// correctness, so the parser never silently renumbers.
type VerseSequenceError struct {
	Chapter  int
	Expected int
	Got      int
}

func (e *VerseSequenceError) Error() string {
	return fmt.Sprintf("verse out of sequence in chapter %d: expected %d, got %d", e.Chapter, e.Expected, e.Got)
}

// EmptyChapterError reports a chapter heading that was never followed by
// a verse line.
type EmptyChapterError struct {
	Chapter int
}

func (e *EmptyChapterError) Error() string {
	return fmt.Sprintf("chapter %d has no verses", e.Chapter)
}
