// Package services holds the indexing and query pipeline built on top
// of the repository, embedding, and llm packages.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/scripture-search-engine/internal/books"
	"github.com/scripture-search-engine/internal/models"
	"github.com/scripture-search-engine/internal/parser"
	"github.com/scripture-search-engine/internal/repository"
)

// IndexMode selects how an index run treats existing records.
type IndexMode int

const (
	// ModeReplace clears the collection before writing.
	ModeReplace IndexMode = iota
	// ModeAppend upserts by id, overwriting prior versions of the same
	// verse and leaving everything else in place.
	ModeAppend
)

// upsertBatchSize bounds how many verses go to the store (and the
// embedding backend) per call.
const upsertBatchSize = 100

// Indexer writes parsed verse records into the vector store.
type Indexer struct {
	store              repository.VectorStore
	registry           *books.Registry
	parseOpts          parser.Options
	embedWithReference bool
}

// NewIndexer builds an indexer. When embedWithReference is set the
// embedding input is "<reference> <text>" instead of the bare verse
// text; the stored payload text is unaffected.
func NewIndexer(store repository.VectorStore, registry *books.Registry, embedWithReference bool) *Indexer {
	return &Indexer{
		store:              store,
		registry:           registry,
		parseOpts:          parser.DefaultOptions(),
		embedWithReference: embedWithReference,
	}
}

// Index writes the records in batches. A failed batch is retried one
// record at a time so a single bad verse does not discard its
// neighbors; those per-record failures are collected in the report. A
// StoreConnectionError aborts the run immediately.
func (ix *Indexer) Index(ctx context.Context, records []models.VerseRecord, mode IndexMode) (models.IndexReport, error) {
	var report models.IndexReport

	if mode == ModeReplace {
		if err := ix.store.Clear(ctx); err != nil {
			return report, fmt.Errorf("clear collection: %w", err)
		}
	}

	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		docs := make([]repository.Document, len(batch))
		for i, rec := range batch {
			docs[i] = ix.document(rec)
		}

		err := ix.store.Upsert(ctx, docs)
		if err == nil {
			report.Added += len(docs)
			continue
		}
		var connErr *repository.StoreConnectionError
		if errors.As(err, &connErr) {
			return report, err
		}

		// Narrow the failure down to individual records.
		for _, doc := range docs {
			err := ix.store.Upsert(ctx, []repository.Document{doc})
			if err == nil {
				report.Added++
				continue
			}
			if errors.As(err, &connErr) {
				return report, err
			}
			report.Skipped++
			report.Errors = append(report.Errors, models.IndexWriteError{Source: doc.ID, Err: err})
		}
	}

	return report, nil
}

// IndexDir parses every *.txt file in dir (non-recursive, file stem
// names the book) and indexes the combined corpus. A file that fails
// canonicalization, parsing, or shape validation is skipped whole and
// reported; the remaining files still index.
func (ix *Indexer) IndexDir(ctx context.Context, dir string, mode IndexMode) (models.IndexReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return models.IndexReport{}, fmt.Errorf("read assets dir: %w", err)
	}

	var all []models.VerseRecord
	var fileErrors []models.IndexWriteError
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		records, err := ix.parseFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("skipping %s: %v", entry.Name(), err)
			fileErrors = append(fileErrors, models.IndexWriteError{Source: entry.Name(), Err: err})
			continue
		}
		all = append(all, records...)
	}

	report, err := ix.Index(ctx, all, mode)
	report.Errors = append(fileErrors, report.Errors...)
	return report, err
}

// parseFile reads one asset file into verse records, validating the
// whole file before any of its records can reach the store.
func (ix *Indexer) parseFile(path string) ([]models.VerseRecord, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	bookID, err := ix.registry.Canonicalize(stem)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	records, err := parser.Parse(bookID, f, ix.parseOpts)
	if err != nil {
		return nil, err
	}

	if shape, ok := ix.registry.Shape(bookID); ok {
		if err := parser.ValidateShape(records, shape); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (ix *Indexer) document(rec models.VerseRecord) repository.Document {
	embedText := rec.Text
	if ix.embedWithReference {
		embedText = rec.Reference + " " + rec.Text
	}
	return repository.Document{
		ID:        rec.ID,
		Book:      rec.Book,
		Chapter:   rec.Chapter,
		Verse:     rec.Verse,
		Reference: rec.Reference,
		Text:      rec.Text,
		EmbedText: embedText,
	}
}
