package models

import (
	"fmt"
	"strings"
)

// VerseRecord is the atomic indexed unit: one verse of text with its address.
// Records are immutable once built by the parser.
type VerseRecord struct {
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
	ID        string `json:"id"`
}

// NewVerseRecord builds a record with its derived reference and id.
// Book must already be canonical; the parser owns validation of the rest.
func NewVerseRecord(book string, chapter, verse int, text string) VerseRecord {
	return VerseRecord{
		Book:      book,
		Chapter:   chapter,
		Verse:     verse,
		Text:      text,
		Reference: FormatReference(book, chapter, verse),
		ID:        VerseID(book, chapter, verse),
	}
}

// FormatReference returns the canonical display reference, e.g. "Alma 1:2".
func FormatReference(book string, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", book, chapter, verse)
}

// VerseID returns the deterministic store key for a verse address, e.g.
// "alma-1-2". Re-indexing the same verse always produces the same id, so
// upserts overwrite rather than duplicate.
func VerseID(book string, chapter, verse int) string {
	slug := strings.ToLower(book)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "&", "and")
	return fmt.Sprintf("%s-%d-%d", slug, chapter, verse)
}
