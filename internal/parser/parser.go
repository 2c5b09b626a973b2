// Package parser converts raw, loosely structured book files into an
// ordered, validated verse corpus.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/scripture-search-engine/internal/books"
	"github.com/scripture-search-engine/internal/models"
)

// Options controls corpus-shape behavior the asset format leaves open.
type Options struct {
	// JoinContinuations appends non-numbered text lines to the current
	// verse (line-wrap joining). When false such lines are skipped as
	// noise, matching a strictly one-verse-per-line corpus.
	JoinContinuations bool
}

// DefaultOptions matches the shipped asset format, which wraps long
// verses across lines.
func DefaultOptions() Options {
	return Options{JoinContinuations: true}
}

var (
	// A chapter heading is a bare number or "Chapter N".
	chapterRe = regexp.MustCompile(`(?i)^(?:chapter\s+)?(\d+)\s*$`)
	// A verse line is "<verse-number> <text>".
	verseRe = regexp.MustCompile(`^(\d+)\s+(\S.*)$`)
	// Decorative separator lines such as "----" or "* * *".
	decorRe = regexp.MustCompile(`^[\s*\-=_~.]+$`)
)

// state names for the line machine.
const (
	awaitChapter = iota
	inChapter
)

// Parse reads one book's source text and returns its verse records in
// order. The book identity must already be canonical. Parse is pure: it
// touches nothing beyond the supplied reader.
func Parse(book books.BookID, r io.Reader, opts Options) ([]models.VerseRecord, error) {
	var (
		records       []models.VerseRecord
		state         = awaitChapter
		chapter       int
		expectedVerse = 1
		lineNo        int
	)

	fail := func(line string, err error) error {
		return &ParseError{LineNo: lineNo, Line: line, Err: err}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || decorRe.MatchString(line) {
			continue
		}

		if m := chapterRe.FindStringSubmatch(line); m != nil {
			if state == inChapter && expectedVerse == 1 {
				return nil, fail(line, &EmptyChapterError{Chapter: chapter})
			}
			got, _ := strconv.Atoi(m[1])
			if got != chapter+1 {
				return nil, fail(line, &ChapterSequenceError{Expected: chapter + 1, Got: got})
			}
			chapter = got
			expectedVerse = 1
			state = inChapter
			continue
		}

		if m := verseRe.FindStringSubmatch(line); m != nil {
			if state == awaitChapter {
				return nil, fail(line, fmt.Errorf("verse line before any chapter heading"))
			}
			got, _ := strconv.Atoi(m[1])
			if got != expectedVerse {
				return nil, fail(line, &VerseSequenceError{Chapter: chapter, Expected: expectedVerse, Got: got})
			}
			text := collapseSpaces(m[2])
			records = append(records, models.NewVerseRecord(string(book), chapter, got, text))
			expectedVerse++
			continue
		}

		// A non-blank, non-marker, non-numbered line: wrapped verse text.
		if opts.JoinContinuations && len(records) > 0 && state == inChapter && expectedVerse > 1 {
			last := &records[len(records)-1]
			joined := last.Text + " " + collapseSpaces(line)
			records[len(records)-1] = models.NewVerseRecord(last.Book, last.Chapter, last.Verse, joined)
		}
		// Otherwise noise; skipped.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if state == inChapter && expectedVerse == 1 {
		lineNo++
		return nil, fail("", &EmptyChapterError{Chapter: chapter})
	}
	return records, nil
}

// ValidateShape checks a parsed corpus against a book's expected chapter
// lengths (verses per chapter). A nil shape validates trivially.
func ValidateShape(records []models.VerseRecord, shape []int) error {
	if shape == nil {
		return nil
	}
	counts := make([]int, 0, len(shape))
	for _, rec := range records {
		for len(counts) < rec.Chapter {
			counts = append(counts, 0)
		}
		counts[rec.Chapter-1]++
	}
	if len(counts) != len(shape) {
		return fmt.Errorf("expected %d chapters, parsed %d", len(shape), len(counts))
	}
	for i, want := range shape {
		if counts[i] != want {
			return fmt.Errorf("chapter %d: expected %d verses, parsed %d", i+1, want, counts[i])
		}
	}
	return nil
}

// IsSequenceError reports whether err is one of the ordering refinements
// of ParseError.
func IsSequenceError(err error) bool {
	var cs *ChapterSequenceError
	var vs *VerseSequenceError
	return errors.As(err, &cs) || errors.As(err, &vs)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
