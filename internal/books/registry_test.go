package books

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		input string
		want  BookID
	}{
		{"canonical name", "Alma", "Alma"},
		{"lower case", "alma", "Alma"},
		{"file code", "ALM", "Alma"},
		{"surrounding whitespace", "  Alma  ", "Alma"},
		{"hyphenated archive name", "1-Nephi", "1 Nephi"},
		{"printed abbreviation with period", "1 Ne.", "1 Nephi"},
		{"file code numbered", "NE1", "1 Nephi"},
		{"ampersand code", "D&C", "Doctrine and Covenants"},
		{"spelled out", "doctrine and covenants", "Doctrine and Covenants"},
		{"collapsed whitespace", "Words  of   Mormon", "Words of Mormon"},
		{"old testament", "GEN", "Genesis"},
		{"new testament", "1 Cor", "1 Corinthians"},
		{"pearl of great price", "JS-H", "Joseph Smith-History"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Canonicalize("Gospel of Thomas")
	if err == nil {
		t.Fatal("expected error for unknown book")
	}
	var unknown *UnknownBookError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T, want *UnknownBookError", err)
	}
	if unknown.Name != "Gospel of Thomas" {
		t.Errorf("unknown.Name = %q", unknown.Name)
	}
}

func TestBooksOrderAndSize(t *testing.T) {
	r := NewRegistry()
	all := r.Books()

	if len(all) != 87 {
		t.Fatalf("len(Books()) = %d, want 87", len(all))
	}
	if all[0] != "Genesis" {
		t.Errorf("first book = %q, want Genesis", all[0])
	}
	if all[len(all)-1] != "Articles of Faith" {
		t.Errorf("last book = %q, want Articles of Faith", all[len(all)-1])
	}
}

func TestShapeRegistration(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Shape("Alma"); ok {
		t.Fatal("registry should ship without shape data")
	}

	r.RegisterShape("Alma", []int{33, 38})
	shape, ok := r.Shape("Alma")
	if !ok {
		t.Fatal("Shape(Alma) not found after RegisterShape")
	}
	if len(shape) != 2 || shape[0] != 33 || shape[1] != 38 {
		t.Errorf("shape = %v, want [33 38]", shape)
	}

	// Returned slice is a copy; mutating it must not corrupt the registry.
	shape[0] = 0
	again, _ := r.Shape("Alma")
	if again[0] != 33 {
		t.Error("Shape returned registry-backed slice, want a copy")
	}
}
