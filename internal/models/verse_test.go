package models

import "testing"

func TestNewVerseRecord(t *testing.T) {
	rec := NewVerseRecord("Alma", 32, 21, "faith is not to have a perfect knowledge")
	if rec.Reference != "Alma 32:21" {
		t.Errorf("Reference = %q", rec.Reference)
	}
	if rec.ID != "alma-32-21" {
		t.Errorf("ID = %q", rec.ID)
	}
}

func TestVerseID(t *testing.T) {
	tests := []struct {
		book           string
		chapter, verse int
		want           string
	}{
		{"Alma", 1, 2, "alma-1-2"},
		{"1 Nephi", 3, 7, "1-nephi-3-7"},
		{"Joseph Smith-History", 1, 15, "joseph-smith-history-1-15"},
		{"D&C", 4, 2, "dandc-4-2"},
	}
	for _, tt := range tests {
		if got := VerseID(tt.book, tt.chapter, tt.verse); got != tt.want {
			t.Errorf("VerseID(%q, %d, %d) = %q, want %q", tt.book, tt.chapter, tt.verse, got, tt.want)
		}
	}
}

func TestVerseIDDeterministic(t *testing.T) {
	if VerseID("Alma", 1, 2) != VerseID("Alma", 1, 2) {
		t.Error("VerseID not deterministic")
	}
	if VerseID("Alma", 1, 2) == VerseID("Alma", 2, 1) {
		t.Error("distinct addresses share an id")
	}
}
