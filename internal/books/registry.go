// Package books maps arbitrary book names and abbreviations to the fixed
// canonical book list of the scripture corpus.
package books

import (
	"fmt"
	"strings"
)

// BookID is the single normalized name used internally for a scripture
// book, distinct from user-facing aliases.
type BookID string

// UnknownBookError reports a name that matches no canonical book or alias.
type UnknownBookError struct {
	Name string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book: %q", e.Name)
}

// Registry is the canonical book table. It is immutable after
// construction except for optional shape registration, and safe for
// concurrent readers.
type Registry struct {
	order   []BookID
	aliases map[string]BookID
	shapes  map[BookID][]int
}

// NewRegistry builds the registry from the fixed canon table.
func NewRegistry() *Registry {
	r := &Registry{
		aliases: make(map[string]BookID),
		shapes:  make(map[BookID][]int),
	}
	for _, b := range canon {
		id := BookID(b.name)
		r.order = append(r.order, id)
		r.addAlias(b.name, id)
		for _, a := range b.aliases {
			r.addAlias(a, id)
		}
	}
	return r
}

func (r *Registry) addAlias(name string, id BookID) {
	key := normalize(name)
	if existing, ok := r.aliases[key]; ok && existing != id {
		panic(fmt.Sprintf("books: alias %q maps to both %q and %q", name, existing, id))
	}
	r.aliases[key] = id
}

// Canonicalize resolves a user-supplied book name to its canonical id.
// Matching is case-, whitespace- and punctuation-insensitive.
func (r *Registry) Canonicalize(name string) (BookID, error) {
	id, ok := r.aliases[normalize(name)]
	if !ok {
		return "", &UnknownBookError{Name: name}
	}
	return id, nil
}

// Books returns the canonical book list in corpus order.
func (r *Registry) Books() []BookID {
	out := make([]BookID, len(r.order))
	copy(out, r.order)
	return out
}

// RegisterShape attaches the expected chapter lengths (verses per
// chapter, 1-based order) for a book, enabling parse-completeness
// validation. Shape data is optional; the registry ships without it.
func (r *Registry) RegisterShape(id BookID, chapterLengths []int) {
	shape := make([]int, len(chapterLengths))
	copy(shape, chapterLengths)
	r.shapes[id] = shape
}

// Shape returns the registered chapter lengths for a book, if any.
func (r *Registry) Shape(id BookID) ([]int, bool) {
	shape, ok := r.shapes[id]
	if !ok {
		return nil, false
	}
	out := make([]int, len(shape))
	copy(out, shape)
	return out, true
}

// normalize reduces a name to its lookup key: lower case, hyphens and
// underscores as spaces, periods dropped, runs of whitespace collapsed.
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}
