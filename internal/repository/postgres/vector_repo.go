// Package postgres implements the vector store on PostgreSQL with the
// pgvector extension.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/scripture-search-engine/internal/embeddings"
	"github.com/scripture-search-engine/internal/repository"
)

// VectorStore implements repository.VectorStore for PostgreSQL with pgvector
type VectorStore struct {
	db       *sqlx.DB
	embedder embeddings.Embedder
	table    string
}

// NewVectorStore creates a new PostgreSQL vector store over the given
// pool and embedding backend. The table name identifies the collection.
func NewVectorStore(db *sqlx.DB, embedder embeddings.Embedder, table string) *VectorStore {
	return &VectorStore{db: db, embedder: embedder, table: table}
}

// EnsureSchema creates the pgvector extension and the collection table
// if they do not exist. dims must match the embedding backend.
func (s *VectorStore) EnsureSchema(ctx context.Context, dims int) error {
	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return &repository.StoreConnectionError{Err: fmt.Errorf("create extension: %w", err)}
	}
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id        text PRIMARY KEY,
			book      text NOT NULL,
			chapter   integer NOT NULL,
			verse     integer NOT NULL,
			reference text NOT NULL,
			text      text NOT NULL,
			embedding vector(%d) NOT NULL
		)`, pq.QuoteIdentifier(s.table), dims)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return &repository.StoreConnectionError{Err: fmt.Errorf("create table: %w", err)}
	}
	return nil
}

// Clear removes every record in the collection.
func (s *VectorStore) Clear(ctx context.Context) error {
	stmt := fmt.Sprintf(`DELETE FROM %s`, pq.QuoteIdentifier(s.table))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return &repository.StoreConnectionError{Err: fmt.Errorf("clear collection: %w", err)}
	}
	return nil
}

// Upsert embeds the documents and writes them keyed by id, overwriting
// any prior version of the same verse.
func (s *VectorStore) Upsert(ctx context.Context, docs []repository.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.EmbedText
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts, embeddings.TaskTypeDocument)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, book, chapter, verse, reference, text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			book = EXCLUDED.book,
			chapter = EXCLUDED.chapter,
			verse = EXCLUDED.verse,
			reference = EXCLUDED.reference,
			text = EXCLUDED.text,
			embedding = EXCLUDED.embedding`, pq.QuoteIdentifier(s.table))

	for i, doc := range docs {
		vec := pgvector.NewVector(vectors[i])
		if _, err := s.db.ExecContext(ctx, stmt,
			doc.ID, doc.Book, doc.Chapter, doc.Verse, doc.Reference, doc.Text, vec); err != nil {
			return fmt.Errorf("upsert %s: %w", doc.ID, err)
		}
	}
	return nil
}

// Query performs vector similarity search, optionally pre-filtered to a
// set of books. Scores are cosine similarity (1 - distance), higher is
// more similar.
func (s *VectorStore) Query(ctx context.Context, text string, k int, bookFilter []string) ([]repository.Candidate, error) {
	embedding, err := s.embedder.Embed(ctx, text, embeddings.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	vec := pgvector.NewVector(embedding)

	var rows *sqlx.Rows
	if len(bookFilter) > 0 {
		stmt := fmt.Sprintf(`
			SELECT id, book, chapter, verse, reference, text,
			       1 - (embedding <=> $1::vector) as score
			FROM %s
			WHERE book = ANY($2)
			ORDER BY embedding <=> $1::vector
			LIMIT $3`, pq.QuoteIdentifier(s.table))
		rows, err = s.db.QueryxContext(ctx, stmt, vec, pq.Array(bookFilter), k)
	} else {
		stmt := fmt.Sprintf(`
			SELECT id, book, chapter, verse, reference, text,
			       1 - (embedding <=> $1::vector) as score
			FROM %s
			ORDER BY embedding <=> $1::vector
			LIMIT $2`, pq.QuoteIdentifier(s.table))
		rows, err = s.db.QueryxContext(ctx, stmt, vec, k)
	}
	if err != nil {
		return nil, &repository.StoreConnectionError{Err: fmt.Errorf("vector search: %w", err)}
	}
	defer rows.Close()

	var results []repository.Candidate
	for rows.Next() {
		var c repository.Candidate
		if err := rows.Scan(&c.ID, &c.Book, &c.Chapter, &c.Verse, &c.Reference, &c.Text, &c.Score); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	if results == nil {
		results = []repository.Candidate{}
	}
	return results, nil
}

// Count returns the number of records in the collection.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	stmt := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pq.QuoteIdentifier(s.table))
	var n int
	if err := s.db.GetContext(ctx, &n, stmt); err != nil {
		return 0, &repository.StoreConnectionError{Err: fmt.Errorf("count records: %w", err)}
	}
	return n, nil
}
